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
	"strings"

	"github.com/mitchellh/go-homedir"
)

var _homeDir string

func homeDir() string {
	if _homeDir == "" {
		dir, err := homedir.Dir()
		if err != nil || dir == "" || dir == "/" {
			return ""
		}
		_homeDir = dir
	}
	return _homeDir
}

// EscapeTilde expands a leading ~ (e.g. ~/path -> /home/ubuntu/path); the path is returned unchanged if the home directory is unknown
func EscapeTilde(path string) string {
	if !(path == "~" || strings.HasPrefix(path, "~/")) {
		return path
	}
	home := homeDir()
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// e.g. /home/ubuntu/path -> ~/path
func ReplacePathWithTilde(absPath string) string {
	home := strings.TrimSuffix(homeDir(), "/")
	if home == "" || !strings.HasPrefix(absPath, "/") {
		return absPath
	}
	if absPath == home || strings.HasPrefix(absPath, home+"/") {
		return "~" + absPath[len(home):]
	}
	return absPath
}

func UserRelToAbsPath(relativePath string) string {
	path := EscapeTilde(relativePath)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return relativePath
	}
	return filepath.Join(cwd, path)
}

func IsFile(path string) bool {
	return CheckFile(path) == nil
}

// CheckFile returns nil if the path is a regular file
func CheckFile(path string) error {
	fileInfo, err := os.Stat(EscapeTilde(path))
	if err != nil {
		return ErrorFileDoesNotExist(path)
	}
	if fileInfo.IsDir() {
		return ErrorNotAFile(path)
	}
	return nil
}

func IsDir(path string) bool {
	fileInfo, err := os.Stat(EscapeTilde(path))
	return err == nil && fileInfo.IsDir()
}

func ReadFileBytes(path string) ([]byte, error) {
	if err := CheckFile(path); err != nil {
		return nil, err
	}

	fileBytes, err := os.ReadFile(EscapeTilde(path))
	if err != nil {
		return nil, ErrorReadFile(path, err)
	}
	return fileBytes, nil
}

func CreateDirIfMissing(path string) (bool, error) {
	if IsDir(path) {
		return false, nil
	}
	if IsFile(path) {
		return false, ErrorFileAlreadyExists(path)
	}
	if err := os.MkdirAll(EscapeTilde(path), 0755); err != nil {
		return false, ErrorCreateDir(path, err)
	}
	return true, nil
}

// WriteFile replaces path atomically: data goes to a temporary file in the same directory, which is then renamed
func WriteFile(data []byte, path string) error {
	cleanPath := EscapeTilde(path)
	if _, err := CreateDirIfMissing(filepath.Dir(cleanPath)); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(cleanPath), "."+filepath.Base(cleanPath)+".*")
	if err != nil {
		return ErrorCreateFile(path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return ErrorCreateFile(path, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return ErrorCreateFile(path, err)
	}
	if err := tmp.Close(); err != nil {
		return ErrorCreateFile(path, err)
	}
	if err := os.Rename(tmp.Name(), cleanPath); err != nil {
		return ErrorCreateFile(path, err)
	}
	return nil
}
