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
	"context"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/lib/json"
	"github.com/cortexlabs/qrun/pkg/lib/requests"
	"github.com/cortexlabs/qrun/pkg/lib/urls"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"go.uber.org/zap"
)

const (
	_metricJobSubmitted = "qrun_job_submitted"
	_metricJobFinished  = "qrun_job_finished"
	_metricJobFailed    = "qrun_job_failed"
	_metricTimeToResult = "qrun_job_time_to_result"
)

func submitPath(workspaceID string, resourceID string) string {
	return "/submit/" + urls.PathSegment(workspaceID) + "/" + urls.PathSegment(resourceID)
}

// Submit creates a job on the given resource. Connection errors are retried; failures after the
// request may have reached the portal are only retried if Config.ConfirmResubmit allows it.
func (c *Client) Submit(ctx context.Context, workspaceID string, resourceID string, submission api.JobSubmission) (api.JobUser, error) {
	body, err := json.Marshal(submission)
	if err != nil {
		return api.JobUser{}, err
	}

	logger := c.logger.With("workspace", workspaceID, "resource", resourceID)
	path := submitPath(workspaceID, resourceID)

	attempts := 0
	completionUnknown := false
	var response *requests.Response

	operation := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		attempts++
		resp, err := c.do(ctx, http.MethodPost, path, body)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			if requests.IsDialError(err) {
				logger.Debugw("unable to connect, retrying", "attempt", attempts, "error", errors.Message(err))
				return err
			}
			completionUnknown = true
			return c.retryUnknownCompletion(logger, attempts, err, 0)
		}

		switch {
		case resp.IsSuccess():
			response = resp
			return nil
		case resp.StatusCode == http.StatusUnauthorized:
			return backoff.Permanent(ErrorUnauthorized(string(resp.Body)))
		case resp.StatusCode == http.StatusUnprocessableEntity:
			return backoff.Permanent(invalidSubmissionError(resp))
		case resp.IsServerError():
			completionUnknown = true
			return c.retryUnknownCompletion(logger, attempts, requests.ErrorResponseUnknown(string(resp.Body), resp.StatusCode), resp.StatusCode)
		default:
			return backoff.Permanent(ErrorRequestRejected(resp.StatusCode, resp.Message()))
		}
	}

	if err := backoff.Retry(operation, c.newBackOff(ctx)); err != nil {
		switch errors.GetKind(err) {
		case ErrUnauthorized, ErrInvalidSubmission, ErrRequestRejected, ErrNetworkFailure:
			return api.JobUser{}, err
		}
		return api.JobUser{}, ErrorNetworkFailure(err, NetworkFailure{CompletionUnknown: completionUnknown, Attempts: attempts})
	}

	decoded, err := api.DecodeJobResponse(response.Body)
	if err != nil {
		return api.JobUser{}, ErrorProtocolError(err)
	}

	tags := []string{"workspace:" + workspaceID, "resource:" + resourceID}
	c.incr(_metricJobSubmitted, tags)
	logger.Infow("job submitted", "job_id", decoded.Job.JobID, "circuits", submission.NumCircuits(), "attempt", attempts)

	job := decoded.Job
	if job.WorkspaceID == "" {
		job.WorkspaceID = workspaceID
	}
	if job.ResourceID == "" {
		job.ResourceID = resourceID
	}
	if job.Label == "" {
		job.Label = submission.Label
	}
	if job.JobType == "" {
		job.JobType = submission.JobType
	}
	return job, nil
}

func (c *Client) retryUnknownCompletion(logger *zap.SugaredLogger, attempt int, err error, statusCode int) error {
	if c.config.ConfirmResubmit != nil && c.config.ConfirmResubmit(attempt, err) {
		logger.Warnw("resubmitting a job whose previous submission may have been received", "attempt", attempt, "error", errors.Message(err))
		return err
	}
	return backoff.Permanent(ErrorNetworkFailure(err, NetworkFailure{
		CompletionUnknown: true,
		Attempts:          attempt,
		StatusCode:        statusCode,
	}))
}

func invalidSubmissionError(resp *requests.Response) error {
	var validationErr api.HTTPValidationError
	if err := json.Unmarshal(resp.Body, &validationErr); err != nil {
		return ErrorInvalidSubmission(nil, string(resp.Body))
	}
	return ErrorInvalidSubmission(validationErr.Detail, string(resp.Body))
}
