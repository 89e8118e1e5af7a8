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

package prompt

import (
	"github.com/cortexlabs/qrun/pkg/lib/errors"
)

const (
	ErrUserCtrlC  = "prompt.user_ctrl_c"
	ErrNoTerminal = "prompt.no_terminal"
)

func ErrorUserCtrlC() error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrUserCtrlC,
		NoPrint: true,
	})
}

func ErrorNoTerminal(cause error) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrNoTerminal,
		Message: errors.Message(cause) + "\n\nall prompted values can also be passed as flags (e.g. `qrun env configure --portal-url URL --token TOKEN`)",
		Cause:   cause,
	})
}
