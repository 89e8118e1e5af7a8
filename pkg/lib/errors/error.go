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
	"fmt"
	"io"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

const ErrNotQrunError = "error"

type Error struct {
	Kind     string
	Message  string
	Metadata interface{} // won't be printed
	NoPrint  bool
	Cause    error
	stack    *stack
}

func (qrunError *Error) Error() string {
	return qrunError.Message
}

// Unwrap exposes the cause to the standard library's errors.Is and errors.As
func (qrunError *Error) Unwrap() error {
	return qrunError.Cause
}

func (qrunError *Error) StackTrace() pkgerrors.StackTrace {
	if qrunError.stack == nil {
		return nil
	}
	stackTrace := make([]pkgerrors.Frame, len(*qrunError.stack))
	for i := 0; i < len(stackTrace); i++ {
		stackTrace[i] = pkgerrors.Frame((*qrunError.stack)[i])
	}
	return stackTrace
}

func WithStack(err error) error {
	if err == nil {
		return nil
	}

	qrunError := getQrunError(err)

	if qrunError == nil {
		qrunError = &Error{
			Kind:    ErrNotQrunError,
			Message: strings.TrimSpace(err.Error()),
			Cause:   err,
		}
	}

	if qrunError.stack == nil {
		qrunError.stack = callers()
	}

	return qrunError
}

func Wrap(err error, strs ...string) error {
	if err == nil {
		return nil
	}

	qrunError := WithStack(err).(*Error)

	strs = removeEmptyStrs(strs)
	strs = append(strs, qrunError.Message)
	qrunError.Message = strings.Join(strs, ": ")

	return qrunError
}

func getQrunError(err error) *Error {
	if qrunError, ok := err.(*Error); ok {
		return qrunError
	}
	return nil
}

func GetKind(err error) string {
	if qrunError, ok := err.(*Error); ok {
		return qrunError.Kind
	}
	return ErrNotQrunError
}

func GetMetadata(err error) interface{} {
	if qrunError, ok := err.(*Error); ok {
		return qrunError.Metadata
	}
	return nil
}

func IsNoPrint(err error) bool {
	if qrunError, ok := err.(*Error); ok {
		return qrunError.NoPrint
	}
	return false
}

func SetNoPrint(err error) error {
	qrunError := WithStack(err).(*Error)
	qrunError.NoPrint = true
	return qrunError
}

// Returns nil if no cause
func Cause(err error) error {
	if qrunError, ok := err.(*Error); ok {
		return qrunError.Cause
	}
	return nil
}

func PrintStacktrace(err error) {
	fmt.Printf("%+v\n", err)
}

func (qrunError *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			io.WriteString(s, qrunError.Message)
			if qrunError.stack != nil {
				qrunError.stack.Format(s, verb)
			}
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, qrunError.Message)
	case 'q':
		fmt.Fprintf(s, "%q", qrunError.Message)
	}
}

func CastRecoverError(errInterface interface{}, strs ...string) error {
	var err error
	var ok bool
	err, ok = errInterface.(error)
	if !ok {
		err = ErrorUnexpected(fmt.Sprint(errInterface))
	}
	return Wrap(err, strs...)
}

func removeEmptyStrs(strs []string) []string {
	var cleanStrs []string
	for _, str := range strs {
		if str != "" {
			cleanStrs = append(cleanStrs, str)
		}
	}
	return cleanStrs
}
