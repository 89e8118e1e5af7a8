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

package api

import (
	"testing"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/stretchr/testify/require"
)

var _testWorkspaces = Workspaces{
	{ID: "default", Resources: []Resource{
		{ID: "offline_simulator_no_noise", Name: "Offline ideal simulator", Type: ResourceTypeSimulator},
		{ID: "offline_simulator_noise", Name: "Offline noisy simulator", Type: ResourceTypeSimulator},
	}},
	{ID: "Lab-Workspace", Resources: []Resource{
		{ID: "ibex", Name: "IBEX", Type: ResourceTypeDevice},
		{ID: "simulator_noise", Name: "Noisy simulator", Type: ResourceTypeSimulator},
	}},
}

func TestWorkspacesFilter(t *testing.T) {
	t.Parallel()

	filtered, err := _testWorkspaces.Filter(FilterOptions{})
	require.NoError(t, err)
	require.Equal(t, _testWorkspaces, filtered)

	filtered, err = _testWorkspaces.Filter(FilterOptions{Workspace: "lab-*"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "Lab-Workspace", filtered[0].ID)
	require.Len(t, filtered[0].Resources, 2)

	filtered, err = _testWorkspaces.Filter(FilterOptions{Type: ResourceTypeDevice})
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	require.Empty(t, filtered[0].Resources)
	require.Equal(t, []Resource{{ID: "ibex", Name: "IBEX", Type: ResourceTypeDevice}}, filtered[1].Resources)

	filtered, err = _testWorkspaces.Filter(FilterOptions{Resource: "*SIMULATOR_NOISE"})
	require.NoError(t, err)
	require.Equal(t, "offline_simulator_noise", filtered[0].Resources[0].ID)
	require.Len(t, filtered[0].Resources, 1)
	require.Equal(t, "simulator_noise", filtered[1].Resources[0].ID)

	_, err = _testWorkspaces.Filter(FilterOptions{Workspace: "[default"})
	require.Equal(t, ErrInvalidPattern, errors.GetKind(err))
}

func TestWorkspacesFind(t *testing.T) {
	t.Parallel()

	resource, ok := _testWorkspaces.Find("Lab-Workspace", "ibex")
	require.True(t, ok)
	require.Equal(t, ResourceTypeDevice, resource.Type)

	_, ok = _testWorkspaces.Find("default", "ibex")
	require.False(t, ok)
}

func TestResourceTypeFromString(t *testing.T) {
	t.Parallel()

	resourceType, err := ResourceTypeFromString("Device")
	require.NoError(t, err)
	require.Equal(t, ResourceTypeDevice, resourceType)

	_, err = ResourceTypeFromString("emulator")
	require.Equal(t, ErrInvalidResourceType, errors.GetKind(err))
}

func TestValidationErrorPath(t *testing.T) {
	t.Parallel()

	v := ValidationError{Loc: []interface{}{"body", "payload", "circuits", float64(0), "repetitions"}, Msg: "ensure this value is less than or equal to 2000", Type: "value_error"}
	require.Equal(t, "body.payload.circuits.0.repetitions", v.Path())
	require.Equal(t, "body.payload.circuits.0.repetitions: ensure this value is less than or equal to 2000", v.String())
}
