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
	"testing"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func twoCircuitSubmission() api.JobSubmission {
	return api.JobSubmission{
		JobType: api.JobTypeQuantumCircuit,
		Payload: api.QuantumCircuits{Circuits: []api.QuantumCircuit{
			{NumberOfQubits: 2, Repetitions: 2, QuantumCircuit: api.Circuit{api.Measure{}}},
			{NumberOfQubits: 1, Repetitions: 3, QuantumCircuit: api.Circuit{api.Measure{}}},
		}},
	}
}

func TestDecodeResult(t *testing.T) {
	t.Parallel()

	jobID := uuid.New()
	finished := api.Finished{Result: map[string][][]int{
		"0": {{0, 1}, {1, 1}},
		"1": {{1}, {0}, {1}},
	}}

	result, err := DecodeResult(jobID, twoCircuitSubmission(), finished)
	require.NoError(t, err)
	require.Equal(t, [][]int{{0, 1}, {1, 1}}, result.Samples[0])
	require.Equal(t, [][]int{{1}, {0}, {1}}, result.Samples[1])

	counts, err := result.Counts(0, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"0x2": 1, "0x3": 1}, counts)

	counts, err = result.Counts(0, map[int]int{0: 1, 1: 0})
	require.NoError(t, err)
	require.Equal(t, map[string]int{"0x1": 1, "0x3": 1}, counts)

	counts, err = result.Counts(1, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"0x1": 2, "0x0": 1}, counts)
}

func TestDecodeResultMismatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		result map[string][][]int
	}{
		{"missing circuit", map[string][][]int{"0": {{0, 1}, {1, 1}}}},
		{"index out of range", map[string][][]int{"0": {{0, 1}, {1, 1}}, "1": {{1}, {0}, {1}}, "2": {{1}}}},
		{"non integer index", map[string][][]int{"0": {{0, 1}, {1, 1}}, "one": {{1}, {0}, {1}}}},
		{"duplicate index", map[string][][]int{"0": {{0, 1}, {1, 1}}, "00": {{0, 1}, {1, 1}}, "1": {{1}, {0}, {1}}}},
		{"wrong shot count", map[string][][]int{"0": {{0, 1}}, "1": {{1}, {0}, {1}}}},
		{"wrong qubit count", map[string][][]int{"0": {{0, 1}, {1}}, "1": {{1}, {0}, {1}}}},
		{"not a bit", map[string][][]int{"0": {{0, 1}, {2, 1}}, "1": {{1}, {0}, {1}}}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeResult(uuid.New(), twoCircuitSubmission(), api.Finished{Result: tc.result})
			require.Equal(t, ErrResultMismatch, errors.GetKind(err))
		})
	}
}

func TestOutcomeError(t *testing.T) {
	t.Parallel()

	jobID := uuid.New()

	require.NoError(t, OutcomeError(jobID, api.Finished{}))

	err := OutcomeError(jobID, api.Failed{Message: "ion lost"})
	require.Equal(t, ErrJobError, errors.GetKind(err))
	require.Contains(t, err.Error(), "ion lost")

	require.Equal(t, ErrJobCancelled, errors.GetKind(OutcomeError(jobID, api.Cancelled{})))

	other := uuid.New()
	err = OutcomeError(jobID, api.UnknownJob{JobID: other, Message: api.UnknownJobMessage})
	require.Equal(t, ErrUnknownJob, errors.GetKind(err))
	require.Equal(t, other, errors.GetMetadata(err))

	require.Equal(t, ErrJobNotTerminal, errors.GetKind(OutcomeError(jobID, api.Ongoing{FinishedCount: 1})))
}
