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

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	s "github.com/cortexlabs/qrun/pkg/lib/strings"
)

const (
	ErrEnvironmentNotConfigured  = "cliconfig.environment_not_configured"
	ErrDuplicateEnvironmentNames = "cliconfig.duplicate_environment_names"
	ErrEnvironmentNameRequired   = "cliconfig.environment_name_required"
	ErrInvalidPortalURL          = "cliconfig.invalid_portal_url"
	ErrParseCLIConfig            = "cliconfig.parse_cli_config"
)

func ErrorEnvironmentNotConfigured(envName string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrEnvironmentNotConfigured,
		Message: fmt.Sprintf("%s environment is not configured (see `qrun env configure`)", s.UserStr(envName)),
	})
}

func ErrorDuplicateEnvironmentNames(envName string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrDuplicateEnvironmentNames,
		Message: fmt.Sprintf("duplicate environment names (%s is defined more than once)", s.UserStr(envName)),
	})
}

func ErrorEnvironmentNameRequired() error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrEnvironmentNameRequired,
		Message: "environment name must be set",
	})
}

func ErrorInvalidPortalURL(envName string, cause error) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrInvalidPortalURL,
		Message: fmt.Sprintf("%s environment: invalid portal url: %s", s.UserStr(envName), errors.Message(cause)),
		Cause:   cause,
	})
}

func ErrorParseCLIConfig(path string, cause error) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrParseCLIConfig,
		Message: fmt.Sprintf("%s: unable to parse cli configuration: %s", path, cause.Error()),
		Cause:   cause,
	})
}
