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

	"github.com/cortexlabs/qrun/pkg/lib/errors"
)

const (
	ErrOperationNotObject  = "api.operation_not_object"
	ErrCircuitNotArray     = "api.circuit_not_array"
	ErrUnknownOperation    = "api.unknown_operation"
	ErrMissingField        = "api.missing_field"
	ErrUnexpectedField     = "api.unexpected_field"
	ErrInvalidFieldType    = "api.invalid_field_type"
	ErrUnknownJobStatus    = "api.unknown_job_status"
	ErrMalformedResponse   = "api.malformed_response"
	ErrInvalidResourceType = "api.invalid_resource_type"
	ErrInvalidPattern      = "api.invalid_pattern"
)

// FieldError is attached as metadata to every operation decoding error
type FieldError struct {
	Index     int
	Operation OperationKind
	Field     string
}

func fieldLocation(index int, kind OperationKind, field string) string {
	loc := fmt.Sprintf("operation %d", index)
	if kind != "" {
		loc += fmt.Sprintf(" (%s)", kind)
	}
	if field != "" {
		loc += fmt.Sprintf(": %s", field)
	}
	return loc
}

func ErrorOperationNotObject(index int) error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrOperationNotObject,
		Message:  fmt.Sprintf("%s: expected a json object", fieldLocation(index, "", "")),
		Metadata: FieldError{Index: index},
	})
}

func ErrorCircuitNotArray() error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrCircuitNotArray,
		Message:  "quantum circuit must be a json array of operations",
		Metadata: FieldError{Index: -1},
	})
}

func ErrorUnknownOperation(index int, kind string) error {
	valid := make([]string, 0, len(_operationFields))
	for _, k := range OperationKinds() {
		valid = append(valid, k.String())
	}
	return errors.WithStack(&errors.Error{
		Kind:     ErrUnknownOperation,
		Message:  fmt.Sprintf("%s: unknown operation %q (valid operations: %s)", fieldLocation(index, "", ""), kind, strings.Join(valid, ", ")),
		Metadata: FieldError{Index: index, Operation: OperationKind(kind)},
	})
}

func ErrorMissingField(index int, kind OperationKind, field string) error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrMissingField,
		Message:  fmt.Sprintf("%s: missing required field", fieldLocation(index, kind, field)),
		Metadata: FieldError{Index: index, Operation: kind, Field: field},
	})
}

func ErrorUnexpectedField(index int, kind OperationKind, field string) error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrUnexpectedField,
		Message:  fmt.Sprintf("%s: field is not supported for this operation (supported fields: %s)", fieldLocation(index, kind, field), strings.Join(kind.Fields(), ", ")),
		Metadata: FieldError{Index: index, Operation: kind, Field: field},
	})
}

func ErrorInvalidFieldType(index int, kind OperationKind, field string, expectedType string) error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrInvalidFieldType,
		Message:  fmt.Sprintf("%s: expected %s", fieldLocation(index, kind, field), expectedType),
		Metadata: FieldError{Index: index, Operation: kind, Field: field},
	})
}

func ErrorUnknownJobStatus(status string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrUnknownJobStatus,
		Message: fmt.Sprintf("unknown job status %q (known statuses: %s)", status, strings.Join(jobStatusStrings(), ", ")),
	})
}

func ErrorMalformedResponse(reason string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrMalformedResponse,
		Message: "malformed response: " + reason,
	})
}

func ErrorInvalidResourceType(resourceType string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrInvalidResourceType,
		Message: fmt.Sprintf("invalid resource type %q (valid types: %s, %s)", resourceType, ResourceTypeSimulator, ResourceTypeDevice),
	})
}

func ErrorInvalidPattern(pattern string, err error) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrInvalidPattern,
		Message: fmt.Sprintf("invalid pattern %q: %s", pattern, errors.Message(err)),
		Cause:   err,
	})
}

// IsDecodingError reports whether err came from decoding a wire circuit
func IsDecodingError(err error) bool {
	switch errors.GetKind(err) {
	case ErrOperationNotObject, ErrCircuitNotArray, ErrUnknownOperation, ErrMissingField, ErrUnexpectedField, ErrInvalidFieldType:
		return true
	}
	return false
}
