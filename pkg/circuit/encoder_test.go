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
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/stretchr/testify/require"
)

func bellOps() []api.Operation {
	return []api.Operation{
		api.GateR{Qubit: 0, Theta: 0.5, Phi: 0.5},
		api.GateRXX{Qubits: []int{0, 1}, Theta: 0.5},
		api.GateRZ{Qubit: 1, Phi: -0.5},
		api.Measure{},
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	encoded, err := NewEncoder(Options{}).Encode(bellOps(), 2)
	require.NoError(t, err)
	require.Equal(t, api.Circuit{
		api.GateR{Qubit: 0, Theta: 0.5, Phi: 0.5},
		api.GateRXX{Qubits: []int{0, 1}, Theta: 0.5},
		api.GateRZ{Qubit: 1, Phi: 1.5},
		api.Measure{},
	}, encoded)
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	ops := append([]api.Operation{
		api.GateR{Qubit: 2, Theta: -2.75, Phi: 9.5},
		api.GateRXX{Qubits: []int{2, 0}, Theta: 1.2},
		&api.GateRZ{Qubit: 1, Phi: -7},
	}, bellOps()...)

	encoded, err := NewEncoder(Options{DecomposeEntangling: true}).Encode(ops, 3)
	require.NoError(t, err)

	data, err := json.Marshal(encoded)
	require.NoError(t, err)

	decoded, err := Decode(data, 3)
	require.NoError(t, err)
	require.Equal(t, encoded, decoded)
}

func TestEncodeRejections(t *testing.T) {
	t.Parallel()

	manyOps := make([]api.Operation, api.MaxOperations+1)
	for i := range manyOps {
		manyOps[i] = api.GateRZ{Qubit: 0, Phi: 0.5}
	}

	cases := []struct {
		name      string
		ops       []api.Operation
		numQubits int
		opts      Options
		kind      string
		index     int
		field     string
		class     ViolationClass
	}{
		{
			name:      "rxx repeated qubit",
			ops:       []api.Operation{api.GateRZ{Qubit: 0, Phi: 0}, api.GateRXX{Qubits: []int{1, 1}, Theta: 0.25}},
			numQubits: 2,
			kind:      ErrStructuralViolation,
			index:     1,
			field:     "qubits",
			class:     StructuralViolation,
		},
		{
			name:      "rxx one qubit",
			ops:       []api.Operation{api.GateRXX{Qubits: []int{0}, Theta: 0.25}},
			numQubits: 2,
			kind:      ErrStructuralViolation,
			index:     0,
			field:     "qubits",
			class:     StructuralViolation,
		},
		{
			name:      "rxx out of range in strict mode",
			ops:       []api.Operation{api.GateRXX{Qubits: []int{0, 1}, Theta: 0.6}},
			numQubits: 2,
			kind:      ErrRangeViolation,
			index:     0,
			field:     "theta",
			class:     RangeViolation,
		},
		{
			name:      "too many operations",
			ops:       manyOps,
			numQubits: 1,
			kind:      ErrTooManyOperations,
			index:     -1,
			class:     StructuralViolation,
		},
		{
			name:      "empty",
			ops:       []api.Operation{},
			numQubits: 1,
			kind:      ErrEmpty,
			index:     -1,
			class:     StructuralViolation,
		},
		{
			name:      "no qubits",
			ops:       bellOps(),
			numQubits: 0,
			kind:      ErrInvalidNumberOfQubits,
			index:     -1,
			field:     "number_of_qubits",
			class:     RangeViolation,
		},
		{
			name:      "measure not last",
			ops:       []api.Operation{api.Measure{}, api.GateRZ{Qubit: 0, Phi: 1}},
			numQubits: 1,
			kind:      ErrStructuralViolation,
			index:     0,
			class:     StructuralViolation,
		},
		{
			name:      "qubit out of range",
			ops:       []api.Operation{api.GateRZ{Qubit: 0, Phi: 1}, api.GateR{Qubit: 2, Theta: 0.5, Phi: 0}},
			numQubits: 2,
			kind:      ErrRangeViolation,
			index:     1,
			field:     "qubit",
			class:     RangeViolation,
		},
		{
			name:      "negative qubit",
			ops:       []api.Operation{api.GateRXX{Qubits: []int{-1, 0}, Theta: 0.1}},
			numQubits: 2,
			kind:      ErrRangeViolation,
			index:     0,
			field:     "qubits",
			class:     RangeViolation,
		},
		{
			name:      "nan angle",
			ops:       []api.Operation{api.GateRZ{Qubit: 0, Phi: math.NaN()}},
			numQubits: 1,
			opts:      Options{DecomposeEntangling: true},
			kind:      ErrRangeViolation,
			index:     0,
			field:     "phi",
			class:     RangeViolation,
		},
		{
			name:      "nil operation",
			ops:       []api.Operation{nil},
			numQubits: 1,
			kind:      ErrUnsupportedOperation,
			index:     0,
			class:     StructuralViolation,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEncoder(tc.opts).Encode(tc.ops, tc.numQubits)
			require.Error(t, err)
			require.Equal(t, tc.kind, errors.GetKind(err))

			v, ok := GetViolation(err)
			require.True(t, ok)
			require.Equal(t, tc.index, v.Index)
			require.Equal(t, tc.field, v.Field)
			require.Equal(t, tc.class, v.Class)
			require.Equal(t, tc.class == StructuralViolation, IsStructural(err))
			require.Equal(t, tc.class == RangeViolation, IsRange(err))
			require.True(t, IsEncodingError(err))
		})
	}
}

func TestEncodeDecomposeEntangling(t *testing.T) {
	t.Parallel()

	encoded, err := NewEncoder(Options{DecomposeEntangling: true}).Encode([]api.Operation{api.GateRXX{Qubits: []int{0, 1}, Theta: 0.6}, api.Measure{}}, 2)
	require.NoError(t, err)
	require.Len(t, encoded, 6)
	require.Equal(t, api.GateR{Qubit: 0, Theta: 1, Phi: 0}, encoded[0])
	require.Equal(t, api.GateR{Qubit: 1, Theta: 1, Phi: 0}, encoded[1])
	require.Equal(t, api.GateRZ{Qubit: 0, Phi: 1}, encoded[2])
	require.InDelta(t, 0.4, encoded[3].(api.GateRXX).Theta, 1e-12)
	require.Equal(t, api.GateRZ{Qubit: 0, Phi: 1}, encoded[4])
	require.Equal(t, api.Measure{}, encoded[5])
}

func TestEncodeLimitAppliesAfterExpansion(t *testing.T) {
	t.Parallel()

	ops := make([]api.Operation, api.MaxOperations/2)
	for i := range ops {
		ops[i] = api.GateRXX{Qubits: []int{0, 1}, Theta: 0.75}
	}

	_, err := NewEncoder(Options{}).Encode(ops, 2)
	require.Equal(t, ErrRangeViolation, errors.GetKind(err))

	_, err = NewEncoder(Options{DecomposeEntangling: true}).Encode(ops, 2)
	require.Equal(t, ErrTooManyOperations, errors.GetKind(err))

	limit := make([]api.Operation, api.MaxOperations)
	for i := range limit {
		limit[i] = api.GateRZ{Qubit: 0, Phi: 0.25}
	}
	encoded, err := NewEncoder(Options{}).Encode(limit, 1)
	require.NoError(t, err)
	require.Len(t, encoded, api.MaxOperations)
}

func TestCachedEncoder(t *testing.T) {
	t.Parallel()

	encoder := NewCachedEncoder(Options{}, time.Minute)

	first, err := encoder.Encode(bellOps(), 2)
	require.NoError(t, err)

	first[1].(api.GateRXX).Qubits[0] = 1

	second, err := encoder.Encode(bellOps(), 2)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, second[1].(api.GateRXX).Qubits)

	_, err = encoder.Encode(bellOps(), 1)
	require.Error(t, err)
	require.True(t, IsRange(err))

	_, err = encoder.Encode([]api.Operation{api.GateRZ{Qubit: 0, Phi: math.Inf(-1)}}, 1)
	require.True(t, IsRange(err))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`[{"operation": "RZ", "phi": 2.0, "qubit": 0}]`), 1)
	require.Equal(t, ErrRangeViolation, errors.GetKind(err))

	_, err = Decode([]byte(`[{"operation": "RXX", "qubits": [0, 1], "theta": 0.6}]`), 2)
	require.Equal(t, ErrRangeViolation, errors.GetKind(err))

	_, err = Decode([]byte(`[{"operation": "RXX", "qubits": [0, 0], "theta": 0.5}]`), 2)
	require.True(t, IsStructural(err))

	_, err = Decode([]byte(`[{"operation": "H", "qubit": 0}]`), 1)
	require.True(t, IsStructural(err))
	require.Equal(t, api.ErrUnknownOperation, errors.GetKind(err))

	_, err = Decode([]byte(`[]`), 1)
	require.Equal(t, ErrEmpty, errors.GetKind(err))
}
