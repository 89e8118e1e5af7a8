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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	s "github.com/cortexlabs/qrun/pkg/lib/strings"
	input "github.com/cortexlabs/go-input"
)

type Prompter struct {
	ui     *input.UI
	writer io.Writer
}

func New(reader io.Reader, writer io.Writer) *Prompter {
	return &Prompter{
		ui:     &input.UI{Writer: writer, Reader: reader},
		writer: writer,
	}
}

var _default = New(os.Stdin, os.Stdout)

type Options struct {
	Prompt      string
	DefaultStr  string
	HideDefault bool
	MaskDefault bool
	HideTyping  bool
}

// Ask returns DefaultStr when the user just presses enter
func (p *Prompter) Ask(opts *Options) (string, error) {
	prompt := opts.Prompt

	if opts.DefaultStr != "" && !opts.HideDefault {
		defaultStr := opts.DefaultStr
		if opts.MaskDefault {
			defaultStr = s.MaskString(defaultStr, 4)
		}
		prompt = fmt.Sprintf("%s [%s]", opts.Prompt, defaultStr)
	}

	val, err := p.ui.Ask(prompt, &input.Options{
		Default:     opts.DefaultStr,
		Hide:        opts.HideTyping,
		Required:    false,
		HideDefault: true,
		HideOrder:   true,
		Loop:        false,
	})
	if err != nil {
		if errors.Message(err) == "interrupted" {
			return "", ErrorUserCtrlC()
		}
		if strings.Contains(errors.Message(err), "not a terminal") {
			return "", ErrorNoTerminal(err)
		}
		return "", errors.WithStack(err)
	}

	return strings.TrimSpace(val), nil
}

func (p *Prompter) YesOrNo(prompt string) (bool, error) {
	for {
		str, err := p.Ask(&Options{
			Prompt:      prompt + " (y/n)",
			HideDefault: true,
		})
		if err != nil {
			return false, err
		}

		switch strings.ToLower(str) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		fmt.Fprintln(p.writer, "please enter \"y\" or \"n\"")
		fmt.Fprintln(p.writer)
	}
}

func Ask(opts *Options) (string, error) {
	return _default.Ask(opts)
}

func YesOrNo(prompt string) (bool, error) {
	return _default.YesOrNo(prompt)
}
