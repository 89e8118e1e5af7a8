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

package client

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	s "github.com/cortexlabs/qrun/pkg/lib/strings"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/google/uuid"
)

const (
	ErrInvalidConfig      = "client.invalid_config"
	ErrUnauthorized       = "client.unauthorized"
	ErrInvalidSubmission  = "client.invalid_submission"
	ErrRequestRejected    = "client.request_rejected"
	ErrNetworkFailure     = "client.network_failure"
	ErrRequestFailed      = "client.request_failed"
	ErrPollingTimeout     = "client.polling_timeout"
	ErrPollingCancelled   = "client.polling_cancelled"
	ErrPollingFailed      = "client.polling_failed"
	ErrJobError           = "client.job_error"
	ErrJobCancelled       = "client.job_cancelled"
	ErrUnknownJob         = "client.unknown_job"
	ErrJobNotTerminal     = "client.job_not_terminal"
	ErrProtocolError      = "client.protocol_error"
	ErrResultMismatch     = "client.result_mismatch"
	ErrCircuitOutOfRange  = "client.circuit_index_out_of_range"
	ErrJobsFailed         = "client.jobs_failed"
	ErrInvalidPollOptions = "client.invalid_poll_options"
)

// NetworkFailure is the metadata of client.network_failure errors
type NetworkFailure struct {
	// CompletionUnknown is true when the request may have reached the server; resubmitting could run the job twice
	CompletionUnknown bool
	Attempts          int
	StatusCode        int
}

// PollingStatus is the metadata of polling errors
type PollingStatus struct {
	JobID      uuid.UUID
	LastStatus api.ResultResponse
}

func ErrorInvalidConfig(field string, reason string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrInvalidConfig,
		Message: fmt.Sprintf("invalid client configuration: %s: %s", field, reason),
	})
}

func ErrorUnauthorized(body string) error {
	msg := "the portal rejected the access token (401 unauthorized); set a valid token with the " + tokenEnvVarHint()
	if body = strings.TrimSpace(body); body != "" {
		msg += ": " + body
	}
	return errors.WithStack(&errors.Error{
		Kind:    ErrUnauthorized,
		Message: msg,
	})
}

func ErrorInvalidSubmission(details []api.ValidationError, body string) error {
	msg := "the portal rejected the submission as invalid"
	if len(details) > 0 {
		strs := make([]string, len(details))
		for i, detail := range details {
			strs[i] = detail.String()
		}
		msg += ":\n" + strings.Join(strs, "\n")
	} else if body = strings.TrimSpace(body); body != "" {
		msg += ": " + body
	}
	return errors.WithStack(&errors.Error{
		Kind:     ErrInvalidSubmission,
		Message:  msg,
		Metadata: details,
	})
}

func ErrorRequestRejected(statusCode int, body string) error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrRequestRejected,
		Message:  fmt.Sprintf("the portal rejected the request (status code %d): %s", statusCode, strings.TrimSpace(body)),
		Metadata: statusCode,
	})
}

func ErrorNetworkFailure(err error, failure NetworkFailure) error {
	msg := fmt.Sprintf("submission failed after %d %s", failure.Attempts, s.PluralS("attempt", failure.Attempts))
	if failure.CompletionUnknown {
		msg += "; the job may or may not have been created, check the portal before resubmitting"
	}
	return errors.WithStack(&errors.Error{
		Kind:     ErrNetworkFailure,
		Message:  msg + ": " + errors.Message(err),
		Metadata: failure,
		Cause:    err,
	})
}

func ErrorRequestFailed(path string, attempts int, err error) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrRequestFailed,
		Message: fmt.Sprintf("request to %s failed after %d %s: %s", path, attempts, s.PluralS("attempt", attempts), errors.Message(err)),
		Cause:   err,
	})
}

func ErrorPollingTimeout(jobID uuid.UUID, timeout time.Duration, last api.ResultResponse) error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrPollingTimeout,
		Message:  fmt.Sprintf("job %s did not reach a terminal state within %s (last status: %s)", jobID, timeout, statusStr(last)),
		Metadata: PollingStatus{JobID: jobID, LastStatus: last},
	})
}

func ErrorPollingCancelled(jobID uuid.UUID, last api.ResultResponse, cause error) error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrPollingCancelled,
		Message:  fmt.Sprintf("stopped waiting for job %s (last status: %s); the job keeps running on the portal", jobID, statusStr(last)),
		Metadata: PollingStatus{JobID: jobID, LastStatus: last},
		Cause:    cause,
	})
}

func ErrorPollingFailed(jobID uuid.UUID, last api.ResultResponse, err error) error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrPollingFailed,
		Message:  fmt.Sprintf("unable to get the status of job %s: %s", jobID, errors.Message(err)),
		Metadata: PollingStatus{JobID: jobID, LastStatus: last},
		Cause:    err,
	})
}

func ErrorJobError(jobID uuid.UUID, message string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrJobError,
		Message: fmt.Sprintf("job %s failed: %s", jobID, message),
	})
}

func ErrorJobCancelled(jobID uuid.UUID) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrJobCancelled,
		Message: fmt.Sprintf("job %s was cancelled", jobID),
	})
}

func ErrorUnknownJob(jobID uuid.UUID) error {
	return errors.WithStack(&errors.Error{
		Kind:     ErrUnknownJob,
		Message:  fmt.Sprintf("the portal does not know job %s", jobID),
		Metadata: jobID,
	})
}

func ErrorJobNotTerminal(jobID uuid.UUID, status api.ResultResponse) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrJobNotTerminal,
		Message: fmt.Sprintf("job %s has not finished yet (status: %s)", jobID, statusStr(status)),
	})
}

func ErrorProtocolError(err error) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrProtocolError,
		Message: "unexpected response from the portal: " + errors.Message(err),
		Cause:   err,
	})
}

func ErrorResultMismatch(jobID uuid.UUID, reason string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrResultMismatch,
		Message: fmt.Sprintf("result of job %s does not match its submission: %s", jobID, reason),
	})
}

func ErrorCircuitOutOfRange(index int, numCircuits int) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrCircuitOutOfRange,
		Message: fmt.Sprintf("circuit index %d is out of range (job has %d %s)", index, numCircuits, s.PluralS("circuit", numCircuits)),
	})
}

func ErrorJobsFailed(errs map[uuid.UUID]error) error {
	ids := make([]string, 0, len(errs))
	for id := range errs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	return errors.WithStack(&errors.Error{
		Kind:     ErrJobsFailed,
		Message:  fmt.Sprintf("%d %s failed (%s)", len(errs), s.PluralS("job", len(errs)), s.StrsAnd(ids)),
		Metadata: errs,
	})
}

func ErrorInvalidPollOptions(reason string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrInvalidPollOptions,
		Message: "invalid poll options: " + reason,
	})
}

func statusStr(response api.ResultResponse) string {
	if response == nil {
		return "none"
	}
	if stringer, ok := response.(fmt.Stringer); ok {
		return stringer.String()
	}
	return response.Status().String()
}

// IsTransient reports whether retrying the same call later could succeed
func IsTransient(err error) bool {
	switch errors.GetKind(err) {
	case ErrNetworkFailure, ErrRequestFailed, ErrPollingFailed, ErrPollingTimeout:
		return true
	}
	return false
}
