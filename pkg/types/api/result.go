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
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type JobStatus int

const (
	StatusUnknown JobStatus = iota
	StatusQueued
	StatusOngoing
	StatusFinished
	StatusError
	StatusCancelled
	StatusUnknownJob
)

var _jobStatuses = []string{
	"unknown",
	"queued",
	"ongoing",
	"finished",
	"error",
	"cancelled",
	"unknown_job",
}

var _ = [1]int{}[int(StatusUnknownJob)-(len(_jobStatuses)-1)] // Ensure list length matches

func JobStatusFromString(s string) JobStatus {
	for i := 0; i < len(_jobStatuses); i++ {
		if s == _jobStatuses[i] {
			return JobStatus(i)
		}
	}
	return StatusUnknown
}

// wire values of response.status
func jobStatusStrings() []string {
	return _jobStatuses[StatusQueued:StatusUnknownJob]
}

func (status JobStatus) String() string {
	return _jobStatuses[status]
}

// MarshalText satisfies TextMarshaler
func (status JobStatus) MarshalText() ([]byte, error) {
	return []byte(status.String()), nil
}

// UnmarshalText satisfies TextUnmarshaler
func (status *JobStatus) UnmarshalText(text []byte) error {
	enum := string(text)
	for i := 0; i < len(_jobStatuses); i++ {
		if enum == _jobStatuses[i] {
			*status = JobStatus(i)
			return nil
		}
	}

	*status = StatusUnknown
	return nil
}

func (status JobStatus) IsTerminal() bool {
	switch status {
	case StatusFinished, StatusError, StatusCancelled, StatusUnknownJob:
		return true
	}
	return false
}

// ResultResponse is a closed sum type over the states a job can report:
// Queued, Ongoing, Finished, Failed, Cancelled and UnknownJob
type ResultResponse interface {
	Status() JobStatus
	isResultResponse()
}

type Queued struct{}

type Ongoing struct {
	FinishedCount int `json:"finished_count"`
}

// Finished.Result maps the zero-based circuit position (as a decimal string) to one bit row per shot
type Finished struct {
	Result map[string][][]int `json:"result"`
}

type Failed struct {
	Message string `json:"message"`
}

type Cancelled struct{}

// UnknownJob is returned when the portal does not recognize the job id
type UnknownJob struct {
	JobID   uuid.UUID `json:"job_id"`
	Message string    `json:"message"`
}

func (Queued) Status() JobStatus     { return StatusQueued }
func (Ongoing) Status() JobStatus    { return StatusOngoing }
func (Finished) Status() JobStatus   { return StatusFinished }
func (Failed) Status() JobStatus     { return StatusError }
func (Cancelled) Status() JobStatus  { return StatusCancelled }
func (UnknownJob) Status() JobStatus { return StatusUnknownJob }

func (Queued) isResultResponse()     {}
func (Ongoing) isResultResponse()    {}
func (Finished) isResultResponse()   {}
func (Failed) isResultResponse()     {}
func (Cancelled) isResultResponse()  {}
func (UnknownJob) isResultResponse() {}

func IsTerminal(response ResultResponse) bool {
	return response != nil && response.Status().IsTerminal()
}

func (r Queued) String() string     { return "queued" }
func (r Ongoing) String() string    { return fmt.Sprintf("ongoing (%d finished)", r.FinishedCount) }
func (r Finished) String() string   { return "finished" }
func (r Failed) String() string     { return "error: " + r.Message }
func (r Cancelled) String() string  { return "cancelled" }
func (r UnknownJob) String() string { return fmt.Sprintf("unknown job %s: %s", r.JobID, r.Message) }

func (r Queued) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status JobStatus `json:"status"`
	}{StatusQueued})
}

func (r Ongoing) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status        JobStatus `json:"status"`
		FinishedCount int       `json:"finished_count"`
	}{StatusOngoing, r.FinishedCount})
}

func (r Finished) MarshalJSON() ([]byte, error) {
	result := r.Result
	if result == nil {
		result = map[string][][]int{}
	}
	return json.Marshal(struct {
		Status JobStatus          `json:"status"`
		Result map[string][][]int `json:"result"`
	}{StatusFinished, result})
}

func (r Failed) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status  JobStatus `json:"status"`
		Message string    `json:"message"`
	}{StatusError, r.Message})
}

func (r Cancelled) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status JobStatus `json:"status"`
	}{StatusCancelled})
}

// DecodeResultResponse dispatches on the "status" discriminant.
// A status outside the known set is an error, never a non-terminal state.
func DecodeResultResponse(data []byte) (ResultResponse, error) {
	var probe struct {
		Status *string `json:"status"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, ErrorMalformedResponse("response is not a json object")
	}
	if probe.Status == nil {
		return nil, ErrorMalformedResponse(`response is missing "status"`)
	}

	switch JobStatusFromString(*probe.Status) {
	case StatusQueued:
		return Queued{}, nil
	case StatusOngoing:
		var r struct {
			FinishedCount *int `json:"finished_count"`
		}
		if err := json.Unmarshal(data, &r); err != nil || r.FinishedCount == nil {
			return nil, ErrorMalformedResponse(`ongoing response requires an integer "finished_count"`)
		}
		if *r.FinishedCount < 0 {
			return nil, ErrorMalformedResponse(`"finished_count" must be non-negative`)
		}
		return Ongoing{FinishedCount: *r.FinishedCount}, nil
	case StatusFinished:
		var r struct {
			Result map[string][][]int `json:"result"`
		}
		if err := json.Unmarshal(data, &r); err != nil || r.Result == nil {
			return nil, ErrorMalformedResponse(`finished response requires a "result" mapping circuit indices to samples`)
		}
		return Finished{Result: r.Result}, nil
	case StatusError:
		var r Failed
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, ErrorMalformedResponse(`error response requires a string "message"`)
		}
		return r, nil
	case StatusCancelled:
		return Cancelled{}, nil
	}

	return nil, ErrorUnknownJobStatus(*probe.Status)
}
