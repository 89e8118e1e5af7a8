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
	s "github.com/cortexlabs/qrun/pkg/lib/strings"
	"github.com/cortexlabs/qrun/pkg/types/api"
)

const (
	ErrEmpty                  = "circuit.empty"
	ErrTooManyOperations      = "circuit.too_many_operations"
	ErrInvalidNumberOfQubits  = "circuit.invalid_number_of_qubits"
	ErrInvalidRepetitions     = "circuit.invalid_repetitions"
	ErrEmptyBatch             = "circuit.empty_batch"
	ErrStructuralViolation    = "circuit.structural_violation"
	ErrRangeViolation         = "circuit.range_violation"
	ErrUnsupportedOperation   = "circuit.unsupported_operation"
	ErrInvalidMemoryMapEntry  = "circuit.invalid_memory_map_entry"
	ErrIncompleteMemoryMap    = "circuit.incomplete_memory_map"
	ErrNonInjectiveMemoryMap  = "circuit.non_injective_memory_map"
	ErrNumberOfQubitsMismatch = "circuit.number_of_qubits_mismatch"
)

type ViolationClass string

const (
	StructuralViolation ViolationClass = "structural"
	RangeViolation      ViolationClass = "range"
)

// Violation identifies the first invalid operation of a circuit.
// Index is the position in the caller's operation list (-1 for circuit-level violations).
type Violation struct {
	Index      int
	Operation  api.OperationKind
	Field      string
	Constraint string
	Class      ViolationClass
}

func (v Violation) String() string {
	loc := "circuit"
	if v.Index >= 0 {
		loc = fmt.Sprintf("operation %d", v.Index)
		if v.Operation != "" {
			loc += fmt.Sprintf(" (%s)", v.Operation)
		}
	}
	if v.Field != "" {
		loc += ": " + v.Field
	}
	return loc + ": " + v.Constraint
}

func ErrorEmpty() error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrEmpty,
		Message:  "circuit must contain at least one operation",
		Metadata: Violation{Index: -1, Constraint: "at least one operation", Class: StructuralViolation},
	})
}

func ErrorTooManyOperations(numOperations int) error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrTooManyOperations,
		Message:  fmt.Sprintf("circuit has %d operations, which exceeds the limit of %d", numOperations, api.MaxOperations),
		Metadata: Violation{Index: -1, Constraint: fmt.Sprintf("at most %d operations", api.MaxOperations), Class: StructuralViolation},
	})
}

func ErrorInvalidNumberOfQubits(numQubits int) error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrInvalidNumberOfQubits,
		Message:  fmt.Sprintf("number of qubits must be greater than 0 (got %d)", numQubits),
		Metadata: Violation{Index: -1, Field: "number_of_qubits", Constraint: "> 0", Class: RangeViolation},
	})
}

func ErrorInvalidRepetitions(repetitions int) error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrInvalidRepetitions,
		Message:  fmt.Sprintf("repetitions must be greater than 0 (got %d)", repetitions),
		Metadata: Violation{Index: -1, Field: "repetitions", Constraint: "> 0", Class: RangeViolation},
	})
}

func ErrorEmptyBatch() error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrEmptyBatch,
		Message:  "a job must contain at least one circuit",
		Metadata: Violation{Index: -1, Constraint: "at least one circuit", Class: StructuralViolation},
	})
}

func ErrorStructuralViolation(index int, kind api.OperationKind, field string, constraint string) error {
	v := Violation{Index: index, Operation: kind, Field: field, Constraint: constraint, Class: StructuralViolation}
	return errors.WithStack(&errors.Error{
		Kind:     ErrStructuralViolation,
		Message:  "invalid circuit structure: " + v.String(),
		Metadata: v,
	})
}

func ErrorRangeViolation(index int, kind api.OperationKind, field string, constraint string, value interface{}) error {
	v := Violation{Index: index, Operation: kind, Field: field, Constraint: constraint, Class: RangeViolation}
	return errors.WithStack(&errors.Error{
		Kind:     ErrRangeViolation,
		Message:  fmt.Sprintf("value out of range: %s (got %v)", v.String(), value),
		Metadata: v,
	})
}

func ErrorUnsupportedOperation(index int, op interface{}) error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrUnsupportedOperation,
		Message:  fmt.Sprintf("operation %d: unsupported operation %T", index, op),
		Metadata: Violation{Index: index, Constraint: "supported operation", Class: StructuralViolation},
	})
}

func ErrorInvalidMemoryMapEntry(qubit int, bit int, numberOfQubits int) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrInvalidMemoryMapEntry,
		Message: fmt.Sprintf("invalid memory map entry %d -> %d: qubit must be in [0, %d) and classical bit must be non-negative", qubit, bit, numberOfQubits),
	})
}

func ErrorIncompleteMemoryMap(numQubits int, missing []int) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrIncompleteMemoryMap,
		Message: fmt.Sprintf("memory map must cover all %d qubits (missing %s %s)", numQubits, s.PluralS("qubit", len(missing)), s.UserStrsAnd(missing)),
	})
}

func ErrorNonInjectiveMemoryMap(bit int) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrNonInjectiveMemoryMap,
		Message: fmt.Sprintf("memory map assigns more than one qubit to classical bit %d", bit),
	})
}

func ErrorNumberOfQubitsMismatch(expected int, actual int) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrNumberOfQubitsMismatch,
		Message: fmt.Sprintf("sample has %d qubits, expected %d", actual, expected),
	})
}

func GetViolation(err error) (Violation, bool) {
	v, ok := errors.GetMetadata(err).(Violation)
	return v, ok
}

// IsStructural reports whether err is a structural encoding error (wrong shape, field set, or ordering)
func IsStructural(err error) bool {
	if api.IsDecodingError(err) {
		return true
	}
	v, ok := GetViolation(err)
	return ok && v.Class == StructuralViolation
}

// IsRange reports whether err is a numeric-domain encoding error
func IsRange(err error) bool {
	v, ok := GetViolation(err)
	return ok && v.Class == RangeViolation
}

func IsEncodingError(err error) bool {
	return IsStructural(err) || IsRange(err)
}
