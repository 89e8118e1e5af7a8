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
	"encoding/json"
	"fmt"

	"github.com/cortexlabs/qrun/pkg/circuit"
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/types/api"
)

type rawCircuit struct {
	NumberOfQubits int             `json:"number_of_qubits"`
	Repetitions    int             `json:"repetitions"`
	QuantumCircuit json.RawMessage `json:"quantum_circuit"`
}

type rawSubmission struct {
	JobType string `json:"job_type"`
	Label   string `json:"label"`
	Payload struct {
		Circuits []rawCircuit `json:"circuits"`
	} `json:"payload"`
}

func circuitLoc(index int, rest ...interface{}) []interface{} {
	return append([]interface{}{"body", "payload", "circuits", index}, rest...)
}

// decodeSubmission decodes and validates a request body, reporting problems with their location in the body
func decodeSubmission(body []byte, config Config) (api.JobSubmission, error) {
	var raw rawSubmission
	if err := json.Unmarshal(body, &raw); err != nil {
		return api.JobSubmission{}, ErrorInvalidSubmission(api.ValidationError{Loc: []interface{}{"body"}, Msg: err.Error(), Type: "value_error.jsondecode"})
	}

	if raw.JobType != api.JobTypeQuantumCircuit {
		return api.JobSubmission{}, ErrorInvalidSubmission(api.ValidationError{
			Loc:  []interface{}{"body", "job_type"},
			Msg:  fmt.Sprintf("unexpected value; permitted: %q", api.JobTypeQuantumCircuit),
			Type: "value_error.const",
		})
	}
	if len(raw.Payload.Circuits) == 0 {
		return api.JobSubmission{}, ErrorInvalidSubmission(api.ValidationError{
			Loc:  []interface{}{"body", "payload", "circuits"},
			Msg:  "ensure this value has at least 1 items",
			Type: "value_error.list.min_items",
		})
	}

	submission := api.JobSubmission{
		JobType: raw.JobType,
		Label:   raw.Label,
	}

	var details []api.ValidationError
	for i, rc := range raw.Payload.Circuits {
		if rc.NumberOfQubits > config.MaxQubits {
			details = append(details, api.ValidationError{
				Loc:  circuitLoc(i, "number_of_qubits"),
				Msg:  fmt.Sprintf("ensure this value is less than or equal to %d", config.MaxQubits),
				Type: "value_error.number.not_le",
			})
			continue
		}
		if rc.Repetitions > config.MaxRepetitions {
			details = append(details, api.ValidationError{
				Loc:  circuitLoc(i, "repetitions"),
				Msg:  fmt.Sprintf("ensure this value is less than or equal to %d", config.MaxRepetitions),
				Type: "value_error.number.not_le",
			})
			continue
		}

		ops, err := api.DecodeCircuit(rc.QuantumCircuit)
		if err != nil {
			details = append(details, operationDetail(i, err))
			continue
		}

		qc := api.QuantumCircuit{
			NumberOfQubits: rc.NumberOfQubits,
			QuantumCircuit: ops,
			Repetitions:    rc.Repetitions,
		}
		if err := circuit.ValidateQuantumCircuit(qc); err != nil {
			details = append(details, operationDetail(i, err))
			continue
		}
		submission.Payload.Circuits = append(submission.Payload.Circuits, qc)
	}

	if len(details) > 0 {
		return api.JobSubmission{}, ErrorInvalidSubmission(details...)
	}
	return submission, nil
}

func operationDetail(circuitIndex int, err error) api.ValidationError {
	loc := circuitLoc(circuitIndex, "quantum_circuit")
	switch metadata := errors.GetMetadata(err).(type) {
	case api.FieldError:
		if metadata.Index >= 0 {
			loc = append(loc, metadata.Index)
		}
		if metadata.Field != "" {
			loc = append(loc, metadata.Field)
		}
	case circuit.Violation:
		switch {
		case metadata.Index >= 0:
			loc = append(loc, metadata.Index)
			if metadata.Field != "" {
				loc = append(loc, metadata.Field)
			}
		case metadata.Field != "":
			// circuit-level fields sit next to quantum_circuit
			loc = circuitLoc(circuitIndex, metadata.Field)
		}
	}

	return api.ValidationError{
		Loc:  loc,
		Msg:  errors.Message(err),
		Type: "value_error",
	}
}
