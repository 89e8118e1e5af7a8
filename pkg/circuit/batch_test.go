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

package circuit

import (
	"testing"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/stretchr/testify/require"
)

func TestBatch(t *testing.T) {
	t.Parallel()

	encoder := NewEncoder(Options{})

	first, err := NewQuantumCircuit(encoder, bellOps(), 2, 5)
	require.NoError(t, err)
	second, err := NewQuantumCircuit(encoder, []api.Operation{api.GateRZ{Qubit: 0, Phi: 1}, api.Measure{}}, 1, 10)
	require.NoError(t, err)

	submission, err := Batch("bell", first, second)
	require.NoError(t, err)
	require.Equal(t, api.JobTypeQuantumCircuit, submission.JobType)
	require.Equal(t, "bell", submission.Label)
	require.Equal(t, []api.QuantumCircuit{first, second}, submission.Payload.Circuits)
	require.NoError(t, ValidateSubmission(submission))

	_, err = Batch("empty")
	require.Equal(t, ErrEmptyBatch, errors.GetKind(err))

	_, err = NewQuantumCircuit(encoder, bellOps(), 2, 0)
	require.Equal(t, ErrInvalidRepetitions, errors.GetKind(err))

	first.Repetitions = -1
	_, err = Batch("invalid", second, first)
	require.Equal(t, ErrInvalidRepetitions, errors.GetKind(err))
	require.Contains(t, errors.Message(err), "circuit 1")
}

func TestValidateSubmission(t *testing.T) {
	t.Parallel()

	err := ValidateSubmission(api.JobSubmission{JobType: "other", Payload: api.QuantumCircuits{Circuits: []api.QuantumCircuit{{}}}})
	require.True(t, IsStructural(err))

	err = ValidateSubmission(api.JobSubmission{JobType: api.JobTypeQuantumCircuit})
	require.Equal(t, ErrEmptyBatch, errors.GetKind(err))

	err = ValidateSubmission(api.JobSubmission{JobType: api.JobTypeQuantumCircuit, Payload: api.QuantumCircuits{Circuits: []api.QuantumCircuit{
		{NumberOfQubits: 1, Repetitions: 1, QuantumCircuit: api.Circuit{api.GateRZ{Qubit: 0, Phi: 3}}},
	}}})
	require.True(t, IsRange(err))
}
