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

package api

import (
	"bytes"
	"encoding/json"
)

const (
	JobTypeQuantumCircuit = "quantum_circuit"
	MaxOperations         = 10000
)

// Circuit is an ordered list of operations; order is significant
type Circuit []Operation

func (c Circuit) MarshalJSON() ([]byte, error) {
	ops := []Operation(c)
	if ops == nil {
		ops = []Operation{}
	}
	return json.Marshal(ops)
}

func (c *Circuit) UnmarshalJSON(data []byte) error {
	ops, err := DecodeCircuit(data)
	if err != nil {
		return err
	}
	*c = ops
	return nil
}

// DecodeCircuit parses a json array of operations, dispatching each entry on its discriminant
func DecodeCircuit(data []byte) (Circuit, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return nil, ErrorCircuitNotArray()
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, ErrorCircuitNotArray()
	}

	ops := make(Circuit, 0, len(raws))
	for i, raw := range raws {
		op, err := DecodeOperation(i, raw)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

type QuantumCircuit struct {
	NumberOfQubits int     `json:"number_of_qubits"`
	QuantumCircuit Circuit `json:"quantum_circuit"`
	Repetitions    int     `json:"repetitions"`
}

type QuantumCircuits struct {
	Circuits []QuantumCircuit `json:"circuits"`
}

type JobSubmission struct {
	JobType string          `json:"job_type"`
	Label   string          `json:"label"`
	Payload QuantumCircuits `json:"payload"`
}

func (submission JobSubmission) NumCircuits() int {
	return len(submission.Payload.Circuits)
}
