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

package print

import (
	"fmt"
	"os"
	"strings"

	"github.com/cortexlabs/qrun/pkg/lib/console"
)

var _maxBoldLength = 150

func BoldFirstLine(msg string) {
	first, rest, hasRest := strings.Cut(msg, "\n")
	if len(first) > _maxBoldLength {
		fmt.Println(msg)
		return
	}

	fmt.Println(console.Bold(first))
	if hasRest {
		fmt.Println(rest)
	}
}

func StderrBoldFirstLine(msg string) {
	first, rest, hasRest := strings.Cut(msg, "\n")
	if len(first) > _maxBoldLength {
		StderrPrintln(msg)
		return
	}

	StderrPrintln(console.Bold(first))
	if hasRest {
		StderrPrintln(rest)
	}
}

// BoldFirstBlock bolds everything up to the first blank line
func BoldFirstBlock(msg string) {
	first, rest, hasRest := strings.Cut(msg, "\n\n")
	if len(first) > _maxBoldLength {
		fmt.Println(msg)
		return
	}

	fmt.Println(console.Bold(first))
	if hasRest {
		fmt.Println("\n" + rest)
	}
}

func StderrPrintln(str string) {
	os.Stderr.WriteString(str + "\n")
}
