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

package table

import (
	"testing"

	"github.com/cortexlabs/qrun/pkg/lib/pointer"
	"github.com/stretchr/testify/require"
)

var _noBold = &Opts{BoldHeader: pointer.Bool(false)}

func TestFormatGroupsRepeatedValues(t *testing.T) {
	t.Parallel()

	tbl := Table{
		Headers: []Header{{Title: "WORKSPACE", Group: true}, {Title: "RESOURCE"}, {Title: "TYPE"}},
		Rows: [][]interface{}{
			{"default", "offline_simulator_noise", "simulator"},
			{"team", "ibex", "device"},
			{"default", "offline_simulator_no_noise", "simulator"},
		},
	}

	str, err := tbl.Format(_noBold)
	require.NoError(t, err)
	require.Equal(t, ""+
		"WORKSPACE   RESOURCE                     TYPE\n"+
		"default     offline_simulator_no_noise   simulator\n"+
		"            offline_simulator_noise      simulator\n"+
		"team        ibex                         device\n", str)
}

func TestFormatUnsorted(t *testing.T) {
	t.Parallel()

	tbl := Table{
		Headers: []Header{{Title: "ID"}, {Title: "STATUS"}},
		Rows:    [][]interface{}{{2, "queued"}, {1, "finished"}},
	}

	str, err := tbl.Format(_noBold, &Opts{Sort: pointer.Bool(false)})
	require.NoError(t, err)
	require.Equal(t, "ID   STATUS\n2    queued\n1    finished\n", str)
}

func TestFormatTruncates(t *testing.T) {
	t.Parallel()

	tbl := Table{
		Headers: []Header{{Title: "NAME", MaxWidth: 8}, {Title: "N"}},
		Rows:    [][]interface{}{{"abcdefghijkl", 1}},
	}

	str, err := tbl.Format(_noBold)
	require.NoError(t, err)
	require.Equal(t, "NAME       N\nabcdefg... 1\n", str)
}

func TestFormatErrors(t *testing.T) {
	t.Parallel()

	_, err := (&Table{}).Format()
	require.Error(t, err)

	_, err = (&Table{Headers: []Header{{Title: "A"}}, Rows: [][]interface{}{{1, 2}}}).Format()
	require.Error(t, err)

	_, err = (&Table{Headers: []Header{{Title: "LONG TITLE", MaxWidth: 3}}}).Format()
	require.Error(t, err)
}

func TestKeyValuePairs(t *testing.T) {
	t.Parallel()

	var kvs KeyValuePairs
	kvs.Add("job", "abc")
	kvs.Add("status", "finished")
	require.Equal(t, "job:    abc\nstatus: finished\n", kvs.String(KeyValuePairOpts{}))
}
