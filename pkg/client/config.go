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
	"os"
	"strings"
	"time"

	"github.com/cortexlabs/qrun/pkg/consts"
	"github.com/cortexlabs/qrun/pkg/lib/urls"
)

type RetryConfig struct {
	// MaxAttempts counts the first attempt; 1 disables retries
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

type Config struct {
	// BaseURL is the API root, e.g. https://arnica.aqt.eu/api/v1
	BaseURL     string
	Token       string
	UserAgent   string
	HTTPTimeout time.Duration
	Retry       RetryConfig

	// RequestsPerSecond <= 0 disables client-side rate limiting
	RequestsPerSecond float64
	Burst             int

	// ConfirmResubmit is asked before resending a submission whose first send may have
	// reached the portal (timeout, reset connection, 5xx). Nil means never resend.
	ConfirmResubmit func(attempt int, err error) bool
}

func DefaultConfig() Config {
	return Config{
		BaseURL:     APIBaseURL(consts.DefaultPortalURL),
		UserAgent:   consts.UserAgent,
		HTTPTimeout: 10 * time.Second,
		Retry: RetryConfig{
			MaxAttempts:     5,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     10 * time.Second,
		},
		RequestsPerSecond: 10,
		Burst:             5,
	}
}

// ConfigFromEnv reads AQT_TOKEN and AQT_PORTAL_URL on top of the defaults
func ConfigFromEnv() Config {
	config := DefaultConfig()
	config.Token = os.Getenv(consts.TokenEnvVar)
	if portalURL := strings.TrimSpace(os.Getenv(consts.PortalURLEnvVar)); portalURL != "" {
		config.BaseURL = APIBaseURL(portalURL)
	}
	return config
}

// APIBaseURL appends the API version prefix to a portal URL
func APIBaseURL(portalURL string) string {
	portalURL = strings.TrimSuffix(strings.TrimSpace(portalURL), "/")
	if strings.HasSuffix(portalURL, consts.APIPathPrefix) {
		return portalURL
	}
	return urls.URLJoin(portalURL, consts.APIPathPrefix)
}

func (config *Config) Validate() error {
	if config.BaseURL == "" {
		return ErrorInvalidConfig("base url", "must be set")
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	if err := urls.Validate(config.BaseURL); err != nil {
		return err
	}

	if config.UserAgent == "" {
		config.UserAgent = consts.UserAgent
	}
	if config.HTTPTimeout < 0 {
		return ErrorInvalidConfig("http timeout", "must not be negative")
	}

	if config.Retry.MaxAttempts == 0 {
		config.Retry.MaxAttempts = 1
	}
	if config.Retry.MaxAttempts < 0 {
		return ErrorInvalidConfig("retry max attempts", "must not be negative")
	}
	if config.Retry.InitialInterval <= 0 {
		config.Retry.InitialInterval = DefaultConfig().Retry.InitialInterval
	}
	if config.Retry.MaxInterval < config.Retry.InitialInterval {
		config.Retry.MaxInterval = config.Retry.InitialInterval
	}

	if config.RequestsPerSecond > 0 && config.Burst < 1 {
		config.Burst = 1
	}
	return nil
}

func tokenEnvVarHint() string {
	return consts.TokenEnvVar + " environment variable or `qrun env configure`"
}
