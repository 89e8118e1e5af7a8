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

package flags

import (
	"testing"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestOutputTypeFlag(t *testing.T) {
	t.Parallel()

	output := PrettyOutputType
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.VarP(&output, "output", "o", "output format")

	require.NoError(t, flagSet.Parse([]string{"-o", "JSON"}))
	require.Equal(t, JSONOutputType, output)

	err := output.Set("yaml")
	require.Equal(t, ErrInvalidOutputType, errors.GetKind(err))
	require.Equal(t, JSONOutputType, output)
}
