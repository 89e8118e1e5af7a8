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

	"github.com/DataDog/datadog-go/statsd"
	"github.com/cenkalti/backoff/v4"
	"github.com/cortexlabs/qrun/pkg/consts"
	"github.com/cortexlabs/qrun/pkg/lib/logging"
	"github.com/cortexlabs/qrun/pkg/lib/requests"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client talks to one portal. It holds no per-job state and is safe for concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    statsd.ClientInterface
	logger     *zap.SugaredLogger
}

// New validates config. statsdClient and logger may be nil.
func New(config Config, statsdClient statsd.ClientInterface, logger *zap.SugaredLogger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if statsdClient == nil {
		statsdClient = &statsd.NoOpClient{}
	}
	if logger == nil {
		logger = logging.Nop()
	}

	limit := rate.Inf
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
	}

	if config.Token == "" {
		logger.Warnw("no access token configured; only the default workspace will be available", "hint", tokenEnvVarHint())
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.HTTPTimeout},
		limiter:    rate.NewLimiter(limit, config.Burst),
		metrics:    statsdClient,
		logger:     logger,
	}, nil
}

func (c *Client) Config() Config {
	return c.config
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		consts.AuthHeader: "Bearer " + c.config.Token,
		"User-Agent":      c.config.UserAgent,
		"Accept":          "application/json",
	}
}

// do sends a single request; callers wait on the limiter first
func (c *Client) do(ctx context.Context, method string, path string, body []byte) (*requests.Response, error) {
	request, err := requests.New(ctx, method, c.config.BaseURL+path, body, c.headers())
	if err != nil {
		return nil, err
	}

	return requests.Do(c.httpClient, request)
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.config.Retry.InitialInterval
	b.MaxInterval = c.config.Retry.MaxInterval
	b.MaxElapsedTime = 0
	b.Reset()

	maxRetries := c.config.Retry.MaxAttempts - 1
	if maxRetries < 0 {
		maxRetries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxRetries)), ctx)
}

func (c *Client) incr(name string, tags []string) {
	if err := c.metrics.Incr(name, tags, 1.0); err != nil {
		c.logger.Debugw("failed to submit metric", "metric", name, "error", err)
	}
}
