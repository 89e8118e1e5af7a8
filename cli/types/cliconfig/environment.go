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

package cliconfig

import (
	"fmt"
	"strings"

	"github.com/cortexlabs/qrun/pkg/client"
	"github.com/cortexlabs/qrun/pkg/consts"
	"github.com/cortexlabs/qrun/pkg/lib/console"
	s "github.com/cortexlabs/qrun/pkg/lib/strings"
	"github.com/cortexlabs/qrun/pkg/lib/urls"
)

type Environment struct {
	Name      string `json:"name" yaml:"name"`
	PortalURL string `json:"portal_url" yaml:"portal_url"`
	Token     string `json:"token,omitempty" yaml:"token,omitempty"`
}

func (env Environment) String(isDefault bool) string {
	var envStr string

	if isDefault {
		envStr += console.Bold(env.Name + " (default)")
	} else {
		envStr += console.Bold(env.Name)
	}

	envStr += fmt.Sprintf("\nportal url: %s\n", env.PortalURL)
	if env.Token != "" {
		envStr += fmt.Sprintf("token:      %s\n", s.MaskString(env.Token, 4))
	} else {
		envStr += fmt.Sprintf("token:      <none> (falls back to %s)\n", consts.TokenEnvVar)
	}

	return envStr
}

// PortalURLValidator trims the url and defaults the scheme to https
func PortalURLValidator(val string) (string, error) {
	urlStr := strings.TrimSuffix(strings.TrimSpace(val), "/")
	if urlStr != "" && !strings.Contains(urlStr, "://") {
		urlStr = "https://" + urlStr
	}
	if err := urls.Validate(urlStr); err != nil {
		return "", err
	}
	return urlStr, nil
}

func (env *Environment) Validate() error {
	if env.Name == "" {
		return ErrorEnvironmentNameRequired()
	}

	if env.PortalURL == "" {
		env.PortalURL = consts.DefaultPortalURL
	}
	validURL, err := PortalURLValidator(env.PortalURL)
	if err != nil {
		return ErrorInvalidPortalURL(env.Name, err)
	}
	env.PortalURL = validURL

	return nil
}

// ClientConfig starts from the client defaults; AQT_TOKEN is used when the environment has no token
func (env Environment) ClientConfig() client.Config {
	config := client.ConfigFromEnv()
	config.BaseURL = client.APIBaseURL(env.PortalURL)
	if env.Token != "" {
		config.Token = env.Token
	}
	return config
}
