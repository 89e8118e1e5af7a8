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

package errors

import (
	stderrors "errors"
	"strings"
)

const (
	ErrUnexpected = "errors.unexpected"
)

func New(strs ...string) error {
	strs = removeEmptyStrs(strs)
	errStr := strings.Join(strs, ": ")

	return WithStack(&Error{
		Kind:    ErrNotQrunError,
		Message: errStr,
	})
}

func ErrorUnexpected(msgs ...string) error {
	strs := append([]string{"an unexpected error occurred"}, removeEmptyStrs(msgs)...)
	return WithStack(&Error{
		Kind:    ErrUnexpected,
		Message: strings.Join(strs, ": "),
	})
}

// Is reports whether any error in err's chain matches target
func Is(err error, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
