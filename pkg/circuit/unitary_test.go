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
	"math"
	"math/cmplx"
	"testing"

	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/stretchr/testify/require"
)

type matrix [][]complex128

func identity(n int) matrix {
	m := make(matrix, n)
	for i := range m {
		m[i] = make([]complex128, n)
		m[i][i] = 1
	}
	return m
}

func (a matrix) mul(b matrix) matrix {
	n := len(a)
	out := make(matrix, n)
	for i := 0; i < n; i++ {
		out[i] = make([]complex128, n)
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return out
}

func kron(a matrix, b matrix) matrix {
	n, m := len(a), len(b)
	out := make(matrix, n*m)
	for i := range out {
		out[i] = make([]complex128, n*m)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < m; k++ {
				for l := 0; l < m; l++ {
					out[i*m+k][j*m+l] = a[i][j] * b[k][l]
				}
			}
		}
	}
	return out
}

func rzMatrix(phi float64) matrix {
	return matrix{
		{cmplx.Exp(complex(0, -phi*math.Pi/2)), 0},
		{0, cmplx.Exp(complex(0, phi*math.Pi/2))},
	}
}

func rMatrix(theta float64, phi float64) matrix {
	c := complex(math.Cos(theta*math.Pi/2), 0)
	s := complex(math.Sin(theta*math.Pi/2), 0)
	return matrix{
		{c, -1i * s * cmplx.Exp(complex(0, -phi*math.Pi))},
		{-1i * s * cmplx.Exp(complex(0, phi*math.Pi)), c},
	}
}

func rxxMatrix(theta float64) matrix {
	c := complex(math.Cos(theta*math.Pi/2), 0)
	s := -1i * complex(math.Sin(theta*math.Pi/2), 0)
	return matrix{
		{c, 0, 0, s},
		{0, c, s, 0},
		{0, s, c, 0},
		{s, 0, 0, c},
	}
}

func onQubit(m matrix, qubit int) matrix {
	if qubit == 0 {
		return kron(m, identity(2))
	}
	return kron(identity(2), m)
}

// twoQubitUnitary multiplies the operations in time order (later operations on the left)
func twoQubitUnitary(t *testing.T, ops []api.Operation) matrix {
	t.Helper()

	u := identity(4)
	for _, op := range ops {
		var g matrix
		switch o := op.(type) {
		case api.GateRZ:
			g = onQubit(rzMatrix(o.Phi), o.Qubit)
		case api.GateR:
			g = onQubit(rMatrix(o.Theta, o.Phi), o.Qubit)
		case api.GateRXX:
			g = rxxMatrix(o.Theta)
		default:
			t.Fatalf("unexpected operation %v", op)
		}
		u = g.mul(u)
	}
	return u
}

func requireEqualUpToGlobalPhase(t *testing.T, expected matrix, actual matrix, msgAndArgs ...interface{}) {
	t.Helper()

	var bi, bj int
	for i := range expected {
		for j := range expected[i] {
			if cmplx.Abs(expected[i][j]) > cmplx.Abs(expected[bi][bj]) {
				bi, bj = i, j
			}
		}
	}

	phase := actual[bi][bj] / expected[bi][bj]
	require.InDelta(t, 1.0, cmplx.Abs(phase), 1e-9, msgAndArgs...)
	for i := range expected {
		for j := range expected[i] {
			require.InDelta(t, 0.0, cmplx.Abs(actual[i][j]-phase*expected[i][j]), 1e-9, msgAndArgs...)
		}
	}
}

func TestUnitaryHelpers(t *testing.T) {
	t.Parallel()

	// RXX(1) is X⊗X up to phase, R(1, 0) is X up to phase
	requireEqualUpToGlobalPhase(t, rxxMatrix(1), kron(rMatrix(1, 0), rMatrix(1, 0)))
	// Z⊗I · RXX(θ) · Z⊗I = RXX(-θ)
	z := onQubit(rzMatrix(1), 0)
	requireEqualUpToGlobalPhase(t, rxxMatrix(-0.3), z.mul(rxxMatrix(0.3)).mul(z))
}

func TestNormalizeRPreservesUnitary(t *testing.T) {
	t.Parallel()

	for theta := -4.0; theta <= 4.0; theta += 0.125 {
		for _, phi := range []float64{-3.5, -1, -0.25, 0, 0.3, 1, 1.999, 2, 7.25} {
			input := []api.Operation{api.GateR{Qubit: 1, Theta: theta, Phi: phi}}
			normalized, err := Normalize(input, Options{})
			require.NoError(t, err)
			require.Len(t, normalized, 1)

			gate := normalized[0].(api.GateR)
			require.True(t, InPolarDomain(gate.Theta), "theta=%g phi=%g -> %v", theta, phi, gate)
			require.True(t, InPhaseDomain(gate.Phi), "theta=%g phi=%g -> %v", theta, phi, gate)

			requireEqualUpToGlobalPhase(t, twoQubitUnitary(t, input), twoQubitUnitary(t, normalized), "theta=%g phi=%g", theta, phi)
		}
	}
}

func TestNormalizeRZPreservesUnitary(t *testing.T) {
	t.Parallel()

	for phi := -6.0; phi <= 6.0; phi += 0.1 {
		input := []api.Operation{api.GateRZ{Qubit: 0, Phi: phi}}
		normalized, err := Normalize(input, Options{})
		require.NoError(t, err)
		require.True(t, InPhaseDomain(normalized[0].(api.GateRZ).Phi))
		requireEqualUpToGlobalPhase(t, twoQubitUnitary(t, input), twoQubitUnitary(t, normalized), "phi=%g", phi)
	}
}

func TestNormalizeRXXPreservesUnitary(t *testing.T) {
	t.Parallel()

	thetas := []float64{-2, -1.5, -1, -0.5, 0, 0.5, 0.6, 1, 1.5, 2, 2.5, 3.75}
	for theta := -5.0; theta <= 5.0; theta += 0.05 {
		thetas = append(thetas, theta)
	}

	for _, qubits := range [][]int{{0, 1}, {1, 0}} {
		for _, theta := range thetas {
			input := []api.Operation{api.GateRXX{Qubits: qubits, Theta: theta}}
			normalized, err := Normalize(input, Options{DecomposeEntangling: true})
			require.NoError(t, err)

			numRXX := 0
			for _, op := range normalized {
				if rxx, ok := op.(api.GateRXX); ok {
					numRXX++
					require.True(t, InEntanglingDomain(rxx.Theta), "theta=%g -> %v", theta, rxx)
					require.Equal(t, qubits, rxx.Qubits)
				}
			}
			require.Equal(t, 1, numRXX)

			requireEqualUpToGlobalPhase(t, twoQubitUnitary(t, input), twoQubitUnitary(t, normalized), "theta=%g qubits=%v", theta, qubits)
		}
	}
}
