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
	"testing"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/stretchr/testify/require"
)

func TestCounts(t *testing.T) {
	t.Parallel()

	samples := [][]int{{1, 0, 0}, {0, 1, 0}, {1, 0, 0}}

	counts, err := Counts(samples, 3, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"0x1": 2, "0x2": 1}, counts)

	counts, err = Counts(samples, 3, map[int]int{0: 2, 1: 1, 2: 0})
	require.NoError(t, err)
	require.Equal(t, map[string]int{"0x4": 2, "0x2": 1}, counts)

	counts, err = Counts([][]int{{0, 0, 1}, {0, 0, 0}}, 3, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"0x4": 1, "0x0": 1}, counts)

	// classical register wider than the qubit register
	counts, err = Counts([][]int{{1}}, 1, map[int]int{0: 1})
	require.NoError(t, err)
	require.Equal(t, map[string]int{"0x2": 1}, counts)

	counts, err = Counts([][]int{{0, 1, 1}}, 3, map[int]int{0: 3, 1: 4, 2: 5})
	require.NoError(t, err)
	require.Equal(t, map[string]int{"0x30": 1}, counts)
}

func TestCountsErrors(t *testing.T) {
	t.Parallel()

	_, err := Counts([][]int{{0, 0, 1}}, 3, map[int]int{1: 2, 2: 1})
	require.Equal(t, ErrIncompleteMemoryMap, errors.GetKind(err))

	_, err = Counts([][]int{{0, 1}}, 2, map[int]int{0: 1, 1: 1})
	require.Equal(t, ErrNonInjectiveMemoryMap, errors.GetKind(err))

	_, err = Counts([][]int{{0, 1}}, 2, map[int]int{0: 0, 1: 1, 5: 2})
	require.Equal(t, ErrInvalidMemoryMapEntry, errors.GetKind(err))

	_, err = Counts([][]int{{0, 1, 0}}, 2, nil)
	require.Equal(t, ErrNumberOfQubitsMismatch, errors.GetKind(err))
}
