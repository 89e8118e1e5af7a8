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

package portal

import (
	"fmt"
	"strings"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/types/api"
)

const (
	ErrUnknownWorkspace  = "portal.unknown_workspace"
	ErrUnknownResource   = "portal.unknown_resource"
	ErrInvalidSubmission = "portal.invalid_submission"
	ErrInvalidConfig     = "portal.invalid_config"
)

func ErrorUnknownWorkspace(workspaceID string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrUnknownWorkspace,
		Message: fmt.Sprintf("workspace %q does not exist or is not accessible", workspaceID),
	})
}

func ErrorUnknownResource(workspaceID string, resourceID string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrUnknownResource,
		Message: fmt.Sprintf("resource %q does not exist in workspace %q", resourceID, workspaceID),
	})
}

// ErrorInvalidSubmission carries the entries of the 422 response as metadata
func ErrorInvalidSubmission(details ...api.ValidationError) error {
	strs := make([]string, len(details))
	for i, detail := range details {
		strs[i] = detail.String()
	}
	return errors.WithStack(&errors.Error{
		Kind:     ErrInvalidSubmission,
		Message:  "invalid submission: " + strings.Join(strs, "; "),
		Metadata: details,
	})
}

func ErrorInvalidConfig(reason string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrInvalidConfig,
		Message: "invalid portal configuration: " + reason,
	})
}

func validationDetails(err error) []api.ValidationError {
	if details, ok := errors.GetMetadata(err).([]api.ValidationError); ok {
		return details
	}
	return []api.ValidationError{{Loc: []interface{}{"body"}, Msg: errors.Message(err), Type: "value_error"}}
}
