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

package api

import (
	"fmt"
	"strings"
)

// ValidationError is one entry of the portal's 422 response
type ValidationError struct {
	Loc  []interface{} `json:"loc"`
	Msg  string        `json:"msg"`
	Type string        `json:"type"`
}

type HTTPValidationError struct {
	Detail []ValidationError `json:"detail"`
}

func (v ValidationError) Path() string {
	parts := make([]string, 0, len(v.Loc))
	for _, loc := range v.Loc {
		switch l := loc.(type) {
		case float64:
			parts = append(parts, fmt.Sprintf("%d", int(l)))
		default:
			parts = append(parts, fmt.Sprint(l))
		}
	}
	return strings.Join(parts, ".")
}

func (v ValidationError) String() string {
	if path := v.Path(); path != "" {
		return path + ": " + v.Msg
	}
	return v.Msg
}
