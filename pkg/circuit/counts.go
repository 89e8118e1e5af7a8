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
	"math/big"
)

// Counts builds a histogram of samples keyed by the hex value of the classical register ("0x5").
// Bit i of the register holds the qubit that memoryMap sends to i; a nil map sends qubit n to bit n.
// A non-nil map must cover every qubit.
func Counts(samples [][]int, numberOfQubits int, memoryMap map[int]int) (map[string]int, error) {
	if err := validateMemoryMap(numberOfQubits, memoryMap); err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, sample := range samples {
		if len(sample) != numberOfQubits {
			return nil, ErrorNumberOfQubitsMismatch(numberOfQubits, len(sample))
		}

		register := new(big.Int)
		for qubit, state := range sample {
			if state == 0 {
				continue
			}
			bit := qubit
			if memoryMap != nil {
				bit = memoryMap[qubit]
			}
			register.SetBit(register, bit, 1)
		}
		counts["0x"+register.Text(16)]++
	}
	return counts, nil
}

func validateMemoryMap(numberOfQubits int, memoryMap map[int]int) error {
	if memoryMap == nil {
		return nil
	}

	bits := map[int]bool{}
	for qubit, bit := range memoryMap {
		if qubit < 0 || qubit >= numberOfQubits || bit < 0 {
			return ErrorInvalidMemoryMapEntry(qubit, bit, numberOfQubits)
		}
		if bits[bit] {
			return ErrorNonInjectiveMemoryMap(bit)
		}
		bits[bit] = true
	}

	var missing []int
	for qubit := 0; qubit < numberOfQubits; qubit++ {
		if _, ok := memoryMap[qubit]; !ok {
			missing = append(missing, qubit)
		}
	}
	if len(missing) > 0 {
		return ErrorIncompleteMemoryMap(numberOfQubits, missing)
	}
	return nil
}
