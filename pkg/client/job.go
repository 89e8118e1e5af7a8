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

package client

import (
	"context"
	"sync"
	"time"

	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Job is a submitted job together with what was submitted, which is needed to decode its result
type Job struct {
	client     *Client
	User       api.JobUser
	Submission api.JobSubmission
	Submitted  time.Time
}

func (c *Client) Run(ctx context.Context, workspaceID string, resourceID string, submission api.JobSubmission) (*Job, error) {
	user, err := c.Submit(ctx, workspaceID, resourceID, submission)
	if err != nil {
		return nil, err
	}
	return c.Attach(user, submission), nil
}

// Attach builds a handle for a job submitted earlier, e.g. by another process
func (c *Client) Attach(user api.JobUser, submission api.JobSubmission) *Job {
	return &Job{
		client:     c,
		User:       user,
		Submission: submission,
		Submitted:  time.Now(),
	}
}

func (j *Job) ID() uuid.UUID {
	return j.User.JobID
}

// Status fetches the current status once
func (j *Job) Status(ctx context.Context) (api.ResultResponse, error) {
	response, err := j.client.Result(ctx, j.ID())
	if err != nil {
		return nil, err
	}
	return response.Response, nil
}

// Wait polls until the job is terminal. Only a finished job yields a Result; every other terminal
// state is returned as its error (see OutcomeError).
func (j *Job) Wait(ctx context.Context, opts PollOptions) (*Result, error) {
	response, err := j.client.PollUntilTerminal(ctx, j.ID(), opts)
	if err != nil {
		return nil, err
	}

	tags := []string{"workspace:" + j.User.WorkspaceID, "resource:" + j.User.ResourceID}

	finished, ok := response.(api.Finished)
	if !ok {
		j.client.incr(_metricJobFailed, append(tags, "status:"+response.Status().String()))
		return nil, OutcomeError(j.ID(), response)
	}

	result, err := DecodeResult(j.ID(), j.Submission, finished)
	if err != nil {
		j.client.incr(_metricJobFailed, append(tags, "status:mismatch"))
		return nil, err
	}

	j.client.incr(_metricJobFinished, tags)
	elapsed := time.Since(j.Submitted)
	if err := j.client.metrics.Histogram(_metricTimeToResult, elapsed.Seconds(), tags, 1.0); err != nil {
		j.client.logger.Debugw("failed to submit metric", "metric", _metricTimeToResult, "error", err)
	}
	j.client.logger.Infow("job finished", "job_id", j.ID(), "elapsed", elapsed.String())

	return result, nil
}

// WaitAll waits for every job, polling at most parallelism jobs at a time (<= 0 means no limit).
// Results are in the order of jobs; a failed job leaves a nil entry and its error is collected
// into a client.jobs_failed error.
func WaitAll(ctx context.Context, jobs []*Job, opts PollOptions, parallelism int) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	errs := map[uuid.UUID]error{}
	var mu sync.Mutex

	var group errgroup.Group
	if parallelism > 0 {
		group.SetLimit(parallelism)
	}

	for i, job := range jobs {
		i, job := i, job
		group.Go(func() error {
			result, err := job.Wait(ctx, opts)
			if err != nil {
				mu.Lock()
				errs[job.ID()] = err
				mu.Unlock()
				return nil
			}
			results[i] = result
			return nil
		})
	}
	_ = group.Wait()

	if len(errs) > 0 {
		return results, ErrorJobsFailed(errs)
	}
	return results, nil
}

// AggregateStatus summarizes the statuses of several jobs: any failure (including an unknown job)
// wins, then cancellation, then progress. A mix of queued and finished jobs counts as queued.
func AggregateStatus(responses []api.ResultResponse) api.JobStatus {
	if len(responses) == 0 {
		return api.StatusUnknown
	}

	counts := map[api.JobStatus]int{}
	for _, response := range responses {
		if response == nil {
			counts[api.StatusUnknown]++
			continue
		}
		counts[response.Status()]++
	}

	switch {
	case counts[api.StatusError] > 0 || counts[api.StatusUnknownJob] > 0:
		return api.StatusError
	case counts[api.StatusCancelled] > 0:
		return api.StatusCancelled
	case counts[api.StatusOngoing] > 0:
		return api.StatusOngoing
	case counts[api.StatusQueued] == len(responses):
		return api.StatusQueued
	case counts[api.StatusFinished] == len(responses):
		return api.StatusFinished
	}
	return api.StatusQueued
}
