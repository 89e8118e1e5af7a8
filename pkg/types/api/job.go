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

	"github.com/google/uuid"
)

const UnknownJobMessage = "unknown job_id"

type JobUser struct {
	JobID       uuid.UUID `json:"job_id"`
	JobType     string    `json:"job_type"`
	Label       string    `json:"label"`
	ResourceID  string    `json:"resource_id"`
	WorkspaceID string    `json:"workspace_id"`
}

// JobResponse is the body of both the submit and the result endpoints
type JobResponse struct {
	Job      JobUser
	Response ResultResponse
}

func (r JobResponse) MarshalJSON() ([]byte, error) {
	if unknown, ok := r.Response.(UnknownJob); ok {
		return json.Marshal(struct {
			JobID   uuid.UUID `json:"job_id"`
			Message string    `json:"message"`
		}{unknown.JobID, unknown.Message})
	}

	return json.Marshal(struct {
		Job      JobUser        `json:"job"`
		Response ResultResponse `json:"response"`
	}{r.Job, r.Response})
}

func (r *JobResponse) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeJobResponse(data)
	if err != nil {
		return err
	}
	*r = decoded
	return nil
}

// DecodeJobResponse decodes a portal job body. A body carrying only job_id and message
// (the portal's answer for ids it does not know) decodes to an UnknownJob response.
func DecodeJobResponse(data []byte) (JobResponse, error) {
	var probe struct {
		Job      json.RawMessage `json:"job"`
		Response json.RawMessage `json:"response"`
		JobID    *string         `json:"job_id"`
		Message  string          `json:"message"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return JobResponse{}, ErrorMalformedResponse("body is not a json object")
	}

	if len(probe.Response) == 0 || string(probe.Response) == "null" {
		if probe.JobID == nil {
			return JobResponse{}, ErrorMalformedResponse(`body has neither "response" nor "job_id"`)
		}
		jobID, err := uuid.Parse(*probe.JobID)
		if err != nil {
			return JobResponse{}, ErrorMalformedResponse("invalid job_id " + *probe.JobID)
		}
		return JobResponse{
			Job:      JobUser{JobID: jobID},
			Response: UnknownJob{JobID: jobID, Message: probe.Message},
		}, nil
	}

	var job JobUser
	if len(probe.Job) > 0 {
		if err := json.Unmarshal(probe.Job, &job); err != nil {
			return JobResponse{}, ErrorMalformedResponse(`invalid "job": ` + err.Error())
		}
	}

	response, err := DecodeResultResponse(probe.Response)
	if err != nil {
		return JobResponse{}, err
	}

	return JobResponse{Job: job, Response: response}, nil
}
