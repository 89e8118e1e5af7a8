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

	libmath "github.com/cortexlabs/qrun/pkg/lib/math"
	"github.com/cortexlabs/qrun/pkg/types/api"
)

// All angles are in units of π.
const (
	PhasePeriod        = 2.0
	MaxPolarTheta      = 1.0
	MaxEntanglingTheta = 0.5
)

func FromRadians(radians float64) float64 {
	return radians / math.Pi
}

func InPhaseDomain(phi float64) bool {
	return phi >= 0 && phi < PhasePeriod
}

func InPolarDomain(theta float64) bool {
	return theta >= 0 && theta <= MaxPolarTheta
}

func InEntanglingDomain(theta float64) bool {
	return theta >= 0 && theta <= MaxEntanglingTheta
}

// WrapPhase maps phi into [0, 2). Values already in range are returned unchanged.
func WrapPhase(phi float64) float64 {
	if InPhaseDomain(phi) {
		return phi
	}
	return libmath.FloorModFloat64(phi, PhasePeriod)
}

// WrapPolar maps an R gate's angles into theta ∈ [0, 1], phi ∈ [0, 2).
// R(θ+2, φ) = -R(θ, φ) and R(-θ, φ) = R(θ, φ+1), so the result implements the same
// unitary up to a global phase.
func WrapPolar(theta float64, phi float64) (float64, float64) {
	if InPolarDomain(theta) {
		return theta, WrapPhase(phi)
	}

	wrapped := libmath.FloorModFloat64(theta, PhasePeriod)
	if wrapped > MaxPolarTheta {
		wrapped -= PhasePeriod
	}
	if wrapped < 0 {
		wrapped = -wrapped
		phi += 1
	}
	return wrapped, WrapPhase(phi)
}

// EntanglingFrame lists the single-qubit operations that must surround a folded RXX gate.
// FlipBoth: R(θ=1, φ=0) on both qubits before the gate (RXX(1) ∝ X⊗X ∝ R(1, 0)⊗R(1, 0)).
// Mirror: RZ(1) on the first qubit before and after the gate (Z⊗I · RXX(θ) · Z⊗I = RXX(-θ)).
type EntanglingFrame struct {
	FlipBoth bool
	Mirror   bool
}

func (f EntanglingFrame) IsIdentity() bool {
	return !f.FlipBoth && !f.Mirror
}

// WrapEntangling folds an RXX angle into [0, 0.5] and reports the compensating frame.
// Values already in range are returned unchanged with an identity frame.
func WrapEntangling(theta float64) (float64, EntanglingFrame) {
	if InEntanglingDomain(theta) {
		return theta, EntanglingFrame{}
	}

	var frame EntanglingFrame
	folded := theta
	if math.Abs(theta) > MaxEntanglingTheta {
		folded = libmath.FloorModFloat64(theta, PhasePeriod)
		switch {
		case folded <= MaxEntanglingTheta:
		case folded <= PhasePeriod-MaxEntanglingTheta:
			frame.FlipBoth = true
			folded -= 1
		default:
			folded -= PhasePeriod
		}
	}

	if folded < 0 {
		frame.Mirror = true
		folded = -folded
	}
	return folded, frame
}

// WrapEntanglingStrict only applies the 2-periodicity of RXX; ok is false if the
// result is outside [0, 0.5], since no compensating operations are allowed.
func WrapEntanglingStrict(theta float64) (float64, bool) {
	if InEntanglingDomain(theta) {
		return theta, true
	}
	wrapped := libmath.FloorModFloat64(theta, PhasePeriod)
	return wrapped, InEntanglingDomain(wrapped)
}

// RX rewrites an X rotation by theta as a normalized R gate with phi = 0
func RX(qubit int, theta float64) api.GateR {
	theta, phi := WrapPolar(theta, 0)
	return api.GateR{Qubit: qubit, Phi: phi, Theta: theta}
}

// RY rewrites a Y rotation by theta as a normalized R gate with phi = 0.5
func RY(qubit int, theta float64) api.GateR {
	theta, phi := WrapPolar(theta, 0.5)
	return api.GateR{Qubit: qubit, Phi: phi, Theta: theta}
}
