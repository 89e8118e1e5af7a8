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
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/lib/requests"
	"github.com/cortexlabs/qrun/pkg/lib/urls"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PollOptions struct {
	// Interval is the wait after the first non-terminal status
	Interval time.Duration
	// MaxInterval caps the wait as it grows by Multiplier
	MaxInterval time.Duration
	Multiplier  float64
	// Timeout <= 0 polls until the context is done
	Timeout time.Duration
	// OnProgress is called with every non-terminal status
	OnProgress func(api.ResultResponse)
}

func DefaultPollOptions() PollOptions {
	return PollOptions{
		Interval:    500 * time.Millisecond,
		MaxInterval: 5 * time.Second,
		Multiplier:  1.5,
	}
}

func (opts *PollOptions) validate() error {
	if opts.Interval < 0 {
		return ErrorInvalidPollOptions("interval must not be negative")
	}
	if opts.Interval == 0 {
		opts.Interval = DefaultPollOptions().Interval
	}
	if opts.MaxInterval < opts.Interval {
		opts.MaxInterval = opts.Interval
	}
	if opts.Multiplier == 0 {
		opts.Multiplier = DefaultPollOptions().Multiplier
	}
	if opts.Multiplier < 1 {
		return ErrorInvalidPollOptions("multiplier must be at least 1")
	}
	return nil
}

func resultPath(jobID uuid.UUID) string {
	return "/result/" + urls.PathSegment(jobID.String())
}

// get sends an idempotent request, retrying connection failures and 5xx responses.
// 2xx responses are returned, as are 404s when acceptNotFound is set.
func (c *Client) get(ctx context.Context, path string, acceptNotFound bool) (*requests.Response, error) {
	attempts := 0
	var response *requests.Response

	operation := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		attempts++
		resp, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			c.logger.Debugw("request failed, retrying", "path", path, "attempt", attempts, "error", errors.Message(err))
			return err
		}

		switch {
		case resp.IsSuccess(), acceptNotFound && resp.StatusCode == http.StatusNotFound:
			response = resp
			return nil
		case resp.StatusCode == http.StatusUnauthorized:
			return backoff.Permanent(ErrorUnauthorized(string(resp.Body)))
		case resp.IsServerError():
			c.logger.Debugw("server error, retrying", "path", path, "attempt", attempts, "status_code", resp.StatusCode)
			return requests.ErrorResponseUnknown(string(resp.Body), resp.StatusCode)
		default:
			return backoff.Permanent(ErrorRequestRejected(resp.StatusCode, resp.Message()))
		}
	}

	if err := backoff.Retry(operation, c.newBackOff(ctx)); err != nil {
		switch errors.GetKind(err) {
		case ErrUnauthorized, ErrRequestRejected:
			return nil, err
		}
		return nil, ErrorRequestFailed(path, attempts, err)
	}
	return response, nil
}

// Result fetches the current status of a job once
func (c *Client) Result(ctx context.Context, jobID uuid.UUID) (api.JobResponse, error) {
	return c.result(ctx, jobID, nil)
}

func (c *Client) result(ctx context.Context, jobID uuid.UUID, last api.ResultResponse) (api.JobResponse, error) {
	resp, err := c.get(ctx, resultPath(jobID), true)
	if err != nil {
		switch errors.GetKind(err) {
		case ErrUnauthorized, ErrRequestRejected:
			return api.JobResponse{}, err
		}
		return api.JobResponse{}, ErrorPollingFailed(jobID, last, err)
	}

	decoded, err := api.DecodeJobResponse(resp.Body)
	if err != nil {
		return api.JobResponse{}, ErrorProtocolError(err)
	}
	if unknown, ok := decoded.Response.(api.UnknownJob); ok && unknown.JobID == uuid.Nil {
		unknown.JobID = jobID
		decoded.Response = unknown
	}
	return decoded, nil
}

// PollUntilTerminal fetches the job status until it is finished, failed, cancelled or unknown
// to the portal. Stopping (timeout or ctx) leaves the job running on the portal.
func (c *Client) PollUntilTerminal(ctx context.Context, jobID uuid.UUID, opts PollOptions) (api.ResultResponse, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	pollCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	logger := c.logger.With("job_id", jobID)
	interval := opts.Interval
	var last api.ResultResponse

	for {
		decoded, err := c.result(pollCtx, jobID, last)
		if err != nil {
			if pollCtx.Err() != nil {
				return nil, c.pollingStopped(ctx, jobID, opts.Timeout, last)
			}
			return nil, err
		}

		response := decoded.Response
		if api.IsTerminal(response) {
			logger.Debugw("job reached a terminal state", "status", response.Status())
			return response, nil
		}

		checkProgress(logger, last, response)
		last = response
		if opts.OnProgress != nil {
			opts.OnProgress(response)
		}

		timer := time.NewTimer(interval)
		select {
		case <-pollCtx.Done():
			timer.Stop()
			return nil, c.pollingStopped(ctx, jobID, opts.Timeout, last)
		case <-timer.C:
		}

		interval = time.Duration(float64(interval) * opts.Multiplier)
		if interval > opts.MaxInterval {
			interval = opts.MaxInterval
		}
	}
}

func (c *Client) pollingStopped(ctx context.Context, jobID uuid.UUID, timeout time.Duration, last api.ResultResponse) error {
	if ctx.Err() != nil {
		return ErrorPollingCancelled(jobID, last, ctx.Err())
	}
	return ErrorPollingTimeout(jobID, timeout, last)
}

// checkProgress logs status sequences a well-behaved portal never produces
func checkProgress(logger *zap.SugaredLogger, last api.ResultResponse, current api.ResultResponse) {
	lastOngoing, ok := last.(api.Ongoing)
	if !ok {
		return
	}
	switch current := current.(type) {
	case api.Ongoing:
		if current.FinishedCount < lastOngoing.FinishedCount {
			logger.Warnw("finished_count decreased", "previous", lastOngoing.FinishedCount, "current", current.FinishedCount)
		}
	case api.Queued:
		logger.Warnw("job went back to queued after ongoing", "previous", lastOngoing.FinishedCount)
	}
}
