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

package math

import (
	"math"
)

// FloorModFloat64 returns val mod period in [0, period) for any finite val (period must be > 0)
func FloorModFloat64(val float64, period float64) float64 {
	mod := math.Mod(val, period)
	if mod < 0 {
		mod += period
	}
	// mod+period rounds up to period for tiny negative remainders
	if mod >= period {
		mod = 0
	}
	return math.Abs(mod)
}

func IsFiniteFloat64(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}
