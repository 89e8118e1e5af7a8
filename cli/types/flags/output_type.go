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
	"fmt"
	"strings"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	s "github.com/cortexlabs/qrun/pkg/lib/strings"
)

const ErrInvalidOutputType = "flags.invalid_output_type"

type OutputType int

const (
	UnknownOutputType OutputType = iota
	PrettyOutputType
	JSONOutputType
	TreeOutputType
)

var _outputTypes = []string{
	"unknown",
	"pretty",
	"json",
	"tree",
}

func OutputTypeFromString(s string) OutputType {
	for i := 0; i < len(_outputTypes); i++ {
		if strings.ToLower(s) == _outputTypes[i] {
			return OutputType(i)
		}
	}
	return UnknownOutputType
}

func OutputTypeStrings() []string {
	return _outputTypes[1:]
}

func (t OutputType) String() string {
	return _outputTypes[t]
}

// MarshalText satisfies TextMarshaler
func (t OutputType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText satisfies TextUnmarshaler
func (t *OutputType) UnmarshalText(text []byte) error {
	*t = OutputTypeFromString(string(text))
	return nil
}

// Set satisfies pflag.Value
func (t *OutputType) Set(value string) error {
	output := OutputTypeFromString(value)
	if output == UnknownOutputType {
		return ErrorInvalidOutputType(value)
	}
	*t = output
	return nil
}

func (t OutputType) Type() string {
	return "string"
}

func ErrorInvalidOutputType(provided string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrInvalidOutputType,
		Message: fmt.Sprintf("%s is not a valid output type; choose one of %s", s.UserStr(provided), s.UserStrsOr(OutputTypeStrings())),
	})
}
