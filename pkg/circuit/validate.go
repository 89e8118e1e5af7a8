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

// Validate checks a circuit that is already in wire form. It stops at the first invalid operation.
func Validate(ops []api.Operation, numberOfQubits int) error {
	if err := validateSize(len(ops), numberOfQubits); err != nil {
		return err
	}

	for i, op := range ops {
		if err := validateStructure(i, op, len(ops), numberOfQubits); err != nil {
			return err
		}
		if err := validateDomain(i, op); err != nil {
			return err
		}
	}
	return nil
}

func ValidateQuantumCircuit(qc api.QuantumCircuit) error {
	if qc.Repetitions <= 0 {
		return ErrorInvalidRepetitions(qc.Repetitions)
	}
	return Validate(qc.QuantumCircuit, qc.NumberOfQubits)
}

// ValidateSubmission checks every circuit of a job; errors are prefixed with the circuit position
func ValidateSubmission(submission api.JobSubmission) error {
	if submission.JobType != api.JobTypeQuantumCircuit {
		return errors.Wrap(ErrorStructuralViolation(-1, "", "job_type", fmt.Sprintf("must be %q", api.JobTypeQuantumCircuit)), "job")
	}
	if submission.NumCircuits() == 0 {
		return ErrorEmptyBatch()
	}
	for i, qc := range submission.Payload.Circuits {
		if err := ValidateQuantumCircuit(qc); err != nil {
			return errors.Wrap(err, fmt.Sprintf("circuit %d", i))
		}
	}
	return nil
}

func validateSize(numOperations int, numberOfQubits int) error {
	if numberOfQubits <= 0 {
		return ErrorInvalidNumberOfQubits(numberOfQubits)
	}
	if numOperations == 0 {
		return ErrorEmpty()
	}
	if numOperations > api.MaxOperations {
		return ErrorTooManyOperations(numOperations)
	}
	return nil
}

func validateStructure(index int, op api.Operation, numOperations int, numberOfQubits int) error {
	value, ok := canonical(op)
	if !ok {
		return ErrorUnsupportedOperation(index, op)
	}

	switch o := value.(type) {
	case api.GateRZ:
		return validateQubit(index, api.OperationRZ, "qubit", o.Qubit, numberOfQubits)
	case api.GateR:
		return validateQubit(index, api.OperationR, "qubit", o.Qubit, numberOfQubits)
	case api.GateRXX:
		if len(o.Qubits) != 2 {
			return ErrorStructuralViolation(index, api.OperationRXX, "qubits", fmt.Sprintf("exactly 2 qubits (got %d)", len(o.Qubits)))
		}
		if o.Qubits[0] == o.Qubits[1] {
			return ErrorStructuralViolation(index, api.OperationRXX, "qubits", fmt.Sprintf("qubits must be distinct (got %d twice)", o.Qubits[0]))
		}
		for _, qubit := range o.Qubits {
			if err := validateQubit(index, api.OperationRXX, "qubits", qubit, numberOfQubits); err != nil {
				return err
			}
		}
	case api.Measure:
		if index != numOperations-1 {
			return ErrorStructuralViolation(index, api.OperationMeasure, "", "MEASURE must be the last operation")
		}
	}
	return nil
}

func validateQubit(index int, kind api.OperationKind, field string, qubit int, numberOfQubits int) error {
	if qubit < 0 || qubit >= numberOfQubits {
		return ErrorRangeViolation(index, kind, field, fmt.Sprintf("qubit index must be in [0, %d)", numberOfQubits), qubit)
	}
	return nil
}

func validateDomain(index int, op api.Operation) error {
	value, _ := canonical(op)

	switch o := value.(type) {
	case api.GateRZ:
		if !InPhaseDomain(o.Phi) {
			return ErrorRangeViolation(index, api.OperationRZ, "phi", fmt.Sprintf("must be in [0, %g)", PhasePeriod), o.Phi)
		}
	case api.GateR:
		if !InPhaseDomain(o.Phi) {
			return ErrorRangeViolation(index, api.OperationR, "phi", fmt.Sprintf("must be in [0, %g)", PhasePeriod), o.Phi)
		}
		if !InPolarDomain(o.Theta) {
			return ErrorRangeViolation(index, api.OperationR, "theta", fmt.Sprintf("must be in [0, %g]", MaxPolarTheta), o.Theta)
		}
	case api.GateRXX:
		if !InEntanglingDomain(o.Theta) {
			return ErrorRangeViolation(index, api.OperationRXX, "theta", fmt.Sprintf("must be in [0, %g]", MaxEntanglingTheta), o.Theta)
		}
	}
	return nil
}
