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
	"fmt"
	"sort"
	"strconv"

	"github.com/cortexlabs/qrun/pkg/circuit"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/google/uuid"
)

// Result holds the measured samples of a finished job, keyed by circuit position in the submission
type Result struct {
	JobID    uuid.UUID
	Circuits []api.QuantumCircuit
	// Samples[i][shot][qubit] is 0 or 1
	Samples map[int][][]int
}

// DecodeResult checks a finished response against the submission it belongs to.
// A circuit without an entry is a mismatch, never zero shots.
func DecodeResult(jobID uuid.UUID, submission api.JobSubmission, finished api.Finished) (*Result, error) {
	circuits := submission.Payload.Circuits
	samples := make(map[int][][]int, len(finished.Result))

	keys := make([]string, 0, len(finished.Result))
	for key := range finished.Result {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		index, err := strconv.Atoi(key)
		if err != nil {
			return nil, ErrorResultMismatch(jobID, fmt.Sprintf("result key %q is not a circuit index", key))
		}
		if index < 0 || index >= len(circuits) {
			return nil, ErrorResultMismatch(jobID, fmt.Sprintf("result key %d is out of range (%d circuits submitted)", index, len(circuits)))
		}
		if _, ok := samples[index]; ok {
			return nil, ErrorResultMismatch(jobID, fmt.Sprintf("result key %q duplicates circuit %d", key, index))
		}

		shots := finished.Result[key]
		if err := checkShots(shots, circuits[index]); err != nil {
			return nil, ErrorResultMismatch(jobID, fmt.Sprintf("circuit %d: %s", index, err.Error()))
		}
		samples[index] = shots
	}

	for i := range circuits {
		if _, ok := samples[i]; !ok {
			return nil, ErrorResultMismatch(jobID, fmt.Sprintf("circuit %d has no result", i))
		}
	}

	return &Result{
		JobID:    jobID,
		Circuits: circuits,
		Samples:  samples,
	}, nil
}

func checkShots(shots [][]int, qc api.QuantumCircuit) error {
	if len(shots) != qc.Repetitions {
		return fmt.Errorf("expected %d shots, got %d", qc.Repetitions, len(shots))
	}
	for shot, bits := range shots {
		if len(bits) != qc.NumberOfQubits {
			return fmt.Errorf("shot %d: expected %d qubits, got %d", shot, qc.NumberOfQubits, len(bits))
		}
		for qubit, bit := range bits {
			if bit != 0 && bit != 1 {
				return fmt.Errorf("shot %d, qubit %d: %d is not a bit", shot, qubit, bit)
			}
		}
	}
	return nil
}

func (r *Result) NumCircuits() int {
	return len(r.Circuits)
}

// CircuitSamples returns the samples of the circuit at index
func (r *Result) CircuitSamples(index int) ([][]int, error) {
	if index < 0 || index >= len(r.Circuits) {
		return nil, ErrorCircuitOutOfRange(index, len(r.Circuits))
	}
	return r.Samples[index], nil
}

// Counts returns the histogram of the circuit at index; memoryMap may be nil (see circuit.Counts)
func (r *Result) Counts(index int, memoryMap map[int]int) (map[string]int, error) {
	samples, err := r.CircuitSamples(index)
	if err != nil {
		return nil, err
	}
	return circuit.Counts(samples, r.Circuits[index].NumberOfQubits, memoryMap)
}

// OutcomeError converts a terminal non-finished response into its error; it returns nil for Finished
func OutcomeError(jobID uuid.UUID, response api.ResultResponse) error {
	switch response := response.(type) {
	case api.Finished:
		return nil
	case api.Failed:
		return ErrorJobError(jobID, response.Message)
	case api.Cancelled:
		return ErrorJobCancelled(jobID)
	case api.UnknownJob:
		if response.JobID != uuid.Nil {
			return ErrorUnknownJob(response.JobID)
		}
		return ErrorUnknownJob(jobID)
	}
	return ErrorJobNotTerminal(jobID, response)
}
