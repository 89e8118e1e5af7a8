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

package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "cli.yaml")

	require.NoError(t, WriteFile([]byte("a: 1\n"), path))
	require.True(t, IsFile(path))
	require.True(t, IsDir(filepath.Dir(path)))

	b, err := ReadFileBytes(path)
	require.NoError(t, err)
	require.Equal(t, "a: 1\n", string(b))

	require.NoError(t, WriteFile([]byte("a: 2\n"), path))
	b, err = ReadFileBytes(path)
	require.NoError(t, err)
	require.Equal(t, "a: 2\n", string(b))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestReadMissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := ReadFileBytes(filepath.Join(dir, "missing"))
	require.Equal(t, ErrFileDoesNotExist, errors.GetKind(err))

	_, err = ReadFileBytes(dir)
	require.Equal(t, ErrNotAFile, errors.GetKind(err))
}

func TestCreateDirIfMissing(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b")
	created, err := CreateDirIfMissing(dir)
	require.NoError(t, err)
	require.True(t, created)

	created, err = CreateDirIfMissing(dir)
	require.NoError(t, err)
	require.False(t, created)
}

func TestPathsWithoutTilde(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/tmp/x", EscapeTilde("/tmp/x"))
	require.Equal(t, "relative", EscapeTilde("relative"))
	require.Equal(t, "relative/x", ReplacePathWithTilde("relative/x"))
	require.True(t, filepath.IsAbs(UserRelToAbsPath("circuit.json")))
}
