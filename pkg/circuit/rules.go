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

	libmath "github.com/cortexlabs/qrun/pkg/lib/math"
	"github.com/cortexlabs/qrun/pkg/types/api"
)

type Options struct {
	// DecomposeEntangling folds any RXX angle into [0, 0.5] by emitting compensating
	// single-qubit operations. Without it, RXX angles outside [0, 0.5] (mod 2) are rejected.
	DecomposeEntangling bool
}

// rule rewrites one operation into its normalized replacement sequence.
// index is the operation's position in the input, for error reporting.
type rule func(index int, op api.Operation, opts Options) ([]api.Operation, error)

var _rules = map[api.OperationKind]rule{
	api.OperationRZ:      normalizeRZ,
	api.OperationR:       normalizeR,
	api.OperationRXX:     normalizeRXX,
	api.OperationMeasure: normalizeMeasure,
}

// Normalize rewrites every operation so its angles fall inside the wire domains.
// The output may be longer than the input when DecomposeEntangling is set.
func Normalize(ops []api.Operation, opts Options) ([]api.Operation, error) {
	normalized := make([]api.Operation, 0, len(ops))
	for i, op := range ops {
		value, ok := canonical(op)
		if !ok {
			return nil, ErrorUnsupportedOperation(i, op)
		}
		rewrite, ok := _rules[value.Kind()]
		if !ok {
			return nil, ErrorUnsupportedOperation(i, op)
		}
		rewritten, err := rewrite(i, value, opts)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, rewritten...)
	}
	return normalized, nil
}

func checkFinite(index int, kind api.OperationKind, field string, value float64) error {
	if !libmath.IsFiniteFloat64(value) {
		return ErrorRangeViolation(index, kind, field, "must be a finite number", value)
	}
	return nil
}

func normalizeRZ(index int, op api.Operation, _ Options) ([]api.Operation, error) {
	gate := op.(api.GateRZ)
	if err := checkFinite(index, api.OperationRZ, "phi", gate.Phi); err != nil {
		return nil, err
	}
	gate.Phi = WrapPhase(gate.Phi)
	return []api.Operation{gate}, nil
}

// theta's sign is absorbed into phi
func normalizeR(index int, op api.Operation, _ Options) ([]api.Operation, error) {
	gate := op.(api.GateR)
	if err := checkFinite(index, api.OperationR, "phi", gate.Phi); err != nil {
		return nil, err
	}
	if err := checkFinite(index, api.OperationR, "theta", gate.Theta); err != nil {
		return nil, err
	}
	gate.Theta, gate.Phi = WrapPolar(gate.Theta, gate.Phi)
	return []api.Operation{gate}, nil
}

// folding may prepend operations on both qubits and surround the gate with RZ on the first qubit
func normalizeRXX(index int, op api.Operation, opts Options) ([]api.Operation, error) {
	gate := op.(api.GateRXX)
	if err := checkFinite(index, api.OperationRXX, "theta", gate.Theta); err != nil {
		return nil, err
	}
	if len(gate.Qubits) != 2 {
		return nil, ErrorStructuralViolation(index, api.OperationRXX, "qubits", "exactly 2 qubits")
	}
	qubits := []int{gate.Qubits[0], gate.Qubits[1]}

	if !opts.DecomposeEntangling {
		theta, ok := WrapEntanglingStrict(gate.Theta)
		if !ok {
			return nil, ErrorRangeViolation(index, api.OperationRXX, "theta", fmt.Sprintf("must be in [0, %g] modulo %g", MaxEntanglingTheta, PhasePeriod), gate.Theta)
		}
		return []api.Operation{api.GateRXX{Qubits: qubits, Theta: theta}}, nil
	}

	theta, frame := WrapEntangling(gate.Theta)
	if frame.IsIdentity() {
		return []api.Operation{api.GateRXX{Qubits: qubits, Theta: theta}}, nil
	}

	var ops []api.Operation
	if frame.FlipBoth {
		ops = append(ops,
			api.GateR{Qubit: qubits[0], Phi: 0, Theta: 1},
			api.GateR{Qubit: qubits[1], Phi: 0, Theta: 1},
		)
	}
	if frame.Mirror {
		ops = append(ops, api.GateRZ{Qubit: qubits[0], Phi: 1})
	}
	ops = append(ops, api.GateRXX{Qubits: qubits, Theta: theta})
	if frame.Mirror {
		ops = append(ops, api.GateRZ{Qubit: qubits[0], Phi: 1})
	}
	return ops, nil
}

func normalizeMeasure(_ int, _ api.Operation, _ Options) ([]api.Operation, error) {
	return []api.Operation{api.Measure{}}, nil
}

// canonical dereferences pointer variants so rules only see value types
func canonical(op api.Operation) (api.Operation, bool) {
	switch o := op.(type) {
	case api.GateRZ, api.GateR, api.GateRXX, api.Measure:
		return op, true
	case *api.GateRZ:
		if o != nil {
			return *o, true
		}
	case *api.GateR:
		if o != nil {
			return *o, true
		}
	case *api.GateRXX:
		if o != nil {
			return *o, true
		}
	case *api.Measure:
		if o != nil {
			return *o, true
		}
	}
	return nil, false
}
