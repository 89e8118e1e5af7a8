/*
Copyright 2022 Cortex Labs, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package portal

import (
	"sync"

	"github.com/cortexlabs/qrun/pkg/lib/logging"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Service provides an interface to the mock portal's job handling
type Service interface {
	Submit(workspaceID string, resourceID string, body []byte) (api.JobResponse, error)
	Result(jobID uuid.UUID) (api.JobResponse, bool)
	Workspaces() api.Workspaces
	// Script makes later jobs on resourceID report the given statuses, one per result request.
	// A Finished entry without a result is filled with sampled bits. No statuses restores the default life cycle.
	Script(resourceID string, statuses ...api.ResultResponse)
	Stats() Stats
}

type Stats struct {
	Submitted int64
	Rejected  int64
	Polls     int64
	Evicted   int64
	Stored    int
}

type service struct {
	config  Config
	store   *jobStore
	logger  *zap.SugaredLogger
	metrics *Metrics

	scriptsMu sync.RWMutex
	scripts   map[string][]api.ResultResponse

	submitted atomic.Int64
	rejected  atomic.Int64
	polls     atomic.Int64
	evicted   atomic.Int64
}

// NewService creates a mock portal service; metrics may be nil
func NewService(config Config, metrics *Metrics, logger *zap.SugaredLogger) (Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &service{
		config:  config,
		store:   newJobStore(config.MaxJobs, config.Seed),
		logger:  logger,
		metrics: metrics,
		scripts: map[string][]api.ResultResponse{},
	}, nil
}

func (s *service) Submit(workspaceID string, resourceID string, body []byte) (api.JobResponse, error) {
	log := s.logger.With(zap.String("workspace", workspaceID), zap.String("resource", resourceID))

	if err := s.checkResource(workspaceID, resourceID); err != nil {
		s.rejected.Inc()
		return api.JobResponse{}, err
	}

	submission, err := decodeSubmission(body, s.config)
	if err != nil {
		s.rejected.Inc()
		log.Debugw("rejected submission", "error", err.Error())
		return api.JobResponse{}, err
	}

	j := &job{
		user: api.JobUser{
			JobID:       uuid.New(),
			JobType:     submission.JobType,
			Label:       submission.Label,
			ResourceID:  resourceID,
			WorkspaceID: workspaceID,
		},
		submission: submission,
		script:     s.scriptFor(resourceID, submission.NumCircuits()),
	}

	if evictedID, ok := s.store.add(j); ok {
		s.evicted.Inc()
		log.Debugw("forgot job", "job_id", evictedID)
	}
	s.submitted.Inc()
	if s.metrics != nil {
		s.metrics.jobsSubmitted.WithLabelValues(resourceID).Inc()
		s.metrics.jobsStored.Set(float64(s.store.len()))
	}

	log.Infow("job queued", "job_id", j.user.JobID, "circuits", submission.NumCircuits())
	return api.JobResponse{Job: j.user, Response: api.Queued{}}, nil
}

func (s *service) Result(jobID uuid.UUID) (api.JobResponse, bool) {
	s.polls.Inc()

	user, response, ok := s.store.advance(jobID)
	if !ok {
		return api.JobResponse{Response: api.UnknownJob{JobID: jobID, Message: api.UnknownJobMessage}}, false
	}
	return api.JobResponse{Job: user, Response: response}, true
}

func (s *service) Workspaces() api.Workspaces {
	return s.config.Workspaces
}

func (s *service) Script(resourceID string, statuses ...api.ResultResponse) {
	s.scriptsMu.Lock()
	defer s.scriptsMu.Unlock()

	if len(statuses) == 0 {
		delete(s.scripts, resourceID)
		return
	}
	s.scripts[resourceID] = append([]api.ResultResponse{}, statuses...)
}

func (s *service) Stats() Stats {
	return Stats{
		Submitted: s.submitted.Load(),
		Rejected:  s.rejected.Load(),
		Polls:     s.polls.Load(),
		Evicted:   s.evicted.Load(),
		Stored:    s.store.len(),
	}
}

func (s *service) scriptFor(resourceID string, numCircuits int) []api.ResultResponse {
	s.scriptsMu.RLock()
	defer s.scriptsMu.RUnlock()

	if script, ok := s.scripts[resourceID]; ok {
		return append([]api.ResultResponse{}, script...)
	}
	return lifecycle(s.config.QueuedPolls, numCircuits)
}

func (s *service) checkResource(workspaceID string, resourceID string) error {
	for _, workspace := range s.config.Workspaces {
		if workspace.ID != workspaceID {
			continue
		}
		if _, ok := s.config.Workspaces.Find(workspaceID, resourceID); !ok {
			return ErrorUnknownResource(workspaceID, resourceID)
		}
		return nil
	}
	return ErrorUnknownWorkspace(workspaceID)
}
