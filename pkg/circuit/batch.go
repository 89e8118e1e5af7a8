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
	"fmt"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/types/api"
)

func NewQuantumCircuit(enc *Encoder, ops []api.Operation, numberOfQubits int, repetitions int) (api.QuantumCircuit, error) {
	if repetitions <= 0 {
		return api.QuantumCircuit{}, ErrorInvalidRepetitions(repetitions)
	}

	encoded, err := enc.Encode(ops, numberOfQubits)
	if err != nil {
		return api.QuantumCircuit{}, err
	}

	return api.QuantumCircuit{
		NumberOfQubits: numberOfQubits,
		QuantumCircuit: encoded,
		Repetitions:    repetitions,
	}, nil
}

// Batch packs circuits into one job; the circuit at position i is reported under result key "i"
func Batch(label string, circuits ...api.QuantumCircuit) (api.JobSubmission, error) {
	if len(circuits) == 0 {
		return api.JobSubmission{}, ErrorEmptyBatch()
	}

	for i, qc := range circuits {
		if err := ValidateQuantumCircuit(qc); err != nil {
			return api.JobSubmission{}, errors.Wrap(err, fmt.Sprintf("circuit %d", i))
		}
	}

	return api.JobSubmission{
		JobType: api.JobTypeQuantumCircuit,
		Label:   label,
		Payload: api.QuantumCircuits{
			Circuits: append([]api.QuantumCircuit(nil), circuits...),
		},
	}, nil
}
