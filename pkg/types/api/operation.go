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
	"encoding/json"
	"fmt"
	"sort"
)

// OperationKind is the value of the "operation" discriminant of a wire operation
type OperationKind string

const (
	OperationRZ      OperationKind = "RZ"
	OperationR       OperationKind = "R"
	OperationRXX     OperationKind = "RXX"
	OperationMeasure OperationKind = "MEASURE"
)

const OperationKey = "operation"

var _operationFields = map[OperationKind][]string{
	OperationRZ:      {"phi", "qubit"},
	OperationR:       {"phi", "qubit", "theta"},
	OperationRXX:     {"qubits", "theta"},
	OperationMeasure: {},
}

func OperationKinds() []OperationKind {
	return []OperationKind{OperationRZ, OperationR, OperationRXX, OperationMeasure}
}

func (kind OperationKind) String() string {
	return string(kind)
}

func (kind OperationKind) Valid() bool {
	_, ok := _operationFields[kind]
	return ok
}

// Fields lists the keys (besides the discriminant) an operation of this kind carries on the wire
func (kind OperationKind) Fields() []string {
	return append([]string(nil), _operationFields[kind]...)
}

// Operation is a closed sum type: GateRZ, GateR, GateRXX and Measure are its only variants.
// Angles are expressed in units of π.
type Operation interface {
	Kind() OperationKind
	isOperation()
}

type GateRZ struct {
	Qubit int     `json:"qubit"`
	Phi   float64 `json:"phi"`
}

type GateR struct {
	Qubit int     `json:"qubit"`
	Phi   float64 `json:"phi"`
	Theta float64 `json:"theta"`
}

type GateRXX struct {
	Qubits []int   `json:"qubits"`
	Theta  float64 `json:"theta"`
}

type Measure struct{}

func (GateRZ) Kind() OperationKind  { return OperationRZ }
func (GateR) Kind() OperationKind   { return OperationR }
func (GateRXX) Kind() OperationKind { return OperationRXX }
func (Measure) Kind() OperationKind { return OperationMeasure }

func (GateRZ) isOperation()  {}
func (GateR) isOperation()   {}
func (GateRXX) isOperation() {}
func (Measure) isOperation() {}

func (op GateRZ) String() string {
	return fmt.Sprintf("RZ(q%d, phi=%g)", op.Qubit, op.Phi)
}

func (op GateR) String() string {
	return fmt.Sprintf("R(q%d, phi=%g, theta=%g)", op.Qubit, op.Phi, op.Theta)
}

func (op GateRXX) String() string {
	return fmt.Sprintf("RXX(q%v, theta=%g)", op.Qubits, op.Theta)
}

func (Measure) String() string {
	return "MEASURE"
}

func (op GateRZ) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Operation OperationKind `json:"operation"`
		Phi       float64       `json:"phi"`
		Qubit     int           `json:"qubit"`
	}{OperationRZ, op.Phi, op.Qubit})
}

func (op GateR) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Operation OperationKind `json:"operation"`
		Phi       float64       `json:"phi"`
		Theta     float64       `json:"theta"`
		Qubit     int           `json:"qubit"`
	}{OperationR, op.Phi, op.Theta, op.Qubit})
}

func (op GateRXX) MarshalJSON() ([]byte, error) {
	qubits := op.Qubits
	if qubits == nil {
		qubits = []int{}
	}
	return json.Marshal(struct {
		Operation OperationKind `json:"operation"`
		Qubits    []int         `json:"qubits"`
		Theta     float64       `json:"theta"`
	}{OperationRXX, qubits, op.Theta})
}

func (op Measure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Operation OperationKind `json:"operation"`
	}{OperationMeasure})
}

// DecodeOperation dispatches on the "operation" discriminant and requires exactly the field set of that tag.
// index is only used for error reporting.
func DecodeOperation(index int, data []byte) (Operation, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, ErrorOperationNotObject(index)
	}

	rawKind, ok := fields[OperationKey]
	if !ok {
		return nil, ErrorMissingField(index, "", OperationKey)
	}

	var kind OperationKind
	if err := json.Unmarshal(rawKind, &kind); err != nil {
		return nil, ErrorInvalidFieldType(index, "", OperationKey, "string")
	}
	if !kind.Valid() {
		return nil, ErrorUnknownOperation(index, string(kind))
	}

	expected := map[string]bool{OperationKey: true}
	for _, field := range _operationFields[kind] {
		expected[field] = true
		if _, ok := fields[field]; !ok {
			return nil, ErrorMissingField(index, kind, field)
		}
	}

	var unexpected []string
	for field := range fields {
		if !expected[field] {
			unexpected = append(unexpected, field)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return nil, ErrorUnexpectedField(index, kind, unexpected[0])
	}

	switch kind {
	case OperationRZ:
		op := GateRZ{}
		if err := decodeField(index, kind, fields, "qubit", &op.Qubit, "integer"); err != nil {
			return nil, err
		}
		if err := decodeField(index, kind, fields, "phi", &op.Phi, "number"); err != nil {
			return nil, err
		}
		return op, nil
	case OperationR:
		op := GateR{}
		if err := decodeField(index, kind, fields, "qubit", &op.Qubit, "integer"); err != nil {
			return nil, err
		}
		if err := decodeField(index, kind, fields, "phi", &op.Phi, "number"); err != nil {
			return nil, err
		}
		if err := decodeField(index, kind, fields, "theta", &op.Theta, "number"); err != nil {
			return nil, err
		}
		return op, nil
	case OperationRXX:
		op := GateRXX{}
		if err := decodeField(index, kind, fields, "qubits", &op.Qubits, "array of integers"); err != nil {
			return nil, err
		}
		if err := decodeField(index, kind, fields, "theta", &op.Theta, "number"); err != nil {
			return nil, err
		}
		return op, nil
	case OperationMeasure:
		return Measure{}, nil
	}

	return nil, ErrorUnknownOperation(index, string(kind))
}

func decodeField(index int, kind OperationKind, fields map[string]json.RawMessage, field string, dst interface{}, expectedType string) error {
	if err := json.Unmarshal(fields[field], dst); err != nil {
		return ErrorInvalidFieldType(index, kind, field, expectedType)
	}
	return nil
}
