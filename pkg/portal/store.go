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
	"math/rand"
	"strconv"
	"sync"

	"github.com/cortexlabs/qrun/pkg/lib/cache"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/google/uuid"
)

type job struct {
	user       api.JobUser
	submission api.JobSubmission
	// script is replayed one entry per result request; the last entry repeats
	script []api.ResultResponse
	step   int
}

// jobStore keeps the most recent jobs; older ones are forgotten in submission order
type jobStore struct {
	mu     sync.Mutex
	jobs   map[uuid.UUID]*job
	recent cache.Fifo
	rand   *rand.Rand
}

func newJobStore(maxJobs int, seed int64) *jobStore {
	return &jobStore{
		jobs:   map[uuid.UUID]*job{},
		recent: cache.NewFifoCache(maxJobs),
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// add returns the id of the job that was forgotten to make room, if any
func (s *jobStore) add(j *job) (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[j.user.JobID] = j
	evicted, ok := s.recent.Add(j.user.JobID.String())
	if !ok {
		return uuid.Nil, false
	}
	evictedID := uuid.MustParse(evicted)
	delete(s.jobs, evictedID)
	return evictedID, true
}

func (s *jobStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// advance returns the job's next status, or false if the job is unknown
func (s *jobStore) advance(jobID uuid.UUID) (api.JobUser, api.ResultResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[jobID]
	if !ok {
		return api.JobUser{}, nil, false
	}

	i := j.step
	if i >= len(j.script) {
		i = len(j.script) - 1
	} else {
		j.step++
	}

	response := j.script[i]
	if finished, ok := response.(api.Finished); ok && finished.Result == nil {
		finished.Result = s.sample(j.submission)
		j.script[i] = finished
		response = finished
	}
	return j.user, response, true
}

// sample draws uniformly random bits with the shape of each circuit
func (s *jobStore) sample(submission api.JobSubmission) map[string][][]int {
	result := make(map[string][][]int, submission.NumCircuits())
	for i, qc := range submission.Payload.Circuits {
		shots := make([][]int, qc.Repetitions)
		for shot := range shots {
			bits := make([]int, qc.NumberOfQubits)
			for qubit := range bits {
				bits[qubit] = s.rand.Intn(2)
			}
			shots[shot] = bits
		}
		result[strconv.Itoa(i)] = shots
	}
	return result
}

// lifecycle is queued for queuedPolls requests, then ongoing once per circuit, then finished
func lifecycle(queuedPolls int, numCircuits int) []api.ResultResponse {
	script := make([]api.ResultResponse, 0, queuedPolls+numCircuits+1)
	for i := 0; i < queuedPolls; i++ {
		script = append(script, api.Queued{})
	}
	for i := 0; i < numCircuits; i++ {
		script = append(script, api.Ongoing{FinishedCount: i})
	}
	return append(script, api.Finished{})
}
