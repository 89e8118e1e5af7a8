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

package urls

import (
	"testing"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/stretchr/testify/require"
)

func TestURLJoin(t *testing.T) {
	require.Equal(t, "https://arnica.aqt.eu/api/v1", URLJoin("https://arnica.aqt.eu", "/api/v1"))
	require.Equal(t, "https://arnica.aqt.eu/api/v1", URLJoin("https://arnica.aqt.eu/", "api/v1"))
	require.Equal(t, "https://arnica.aqt.eu/a/b", URLJoin("https://arnica.aqt.eu", "a", "/b"))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate("http://localhost:8888/api/v1"))
	require.Equal(t, ErrInvalidURL, errors.GetKind(Validate("localhost:8888")))
	require.Equal(t, ErrInvalidURL, errors.GetKind(Validate("ftp://arnica.aqt.eu")))
}

func TestCleanURL(t *testing.T) {
	require.Equal(t, "https://arnica.aqt.eu/result", CleanURL("https://arnica.aqt.eu/result?x=1"))
	require.Equal(t, "a%2Fb", PathSegment("a/b"))
}
