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
	"github.com/cortexlabs/qrun/pkg/consts"
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/lib/files"
	"github.com/cortexlabs/yaml"
)

const DefaultEnvName = "aqt"

type CLIConfig struct {
	DefaultEnvironment string         `json:"default_environment" yaml:"default_environment"`
	Environments       []*Environment `json:"environments" yaml:"environments"`
}

func (cliConfig CLIConfig) GetEnv(envName string) (Environment, error) {
	for _, env := range cliConfig.Environments {
		if env.Name == envName {
			return *env, nil
		}
	}

	return Environment{}, ErrorEnvironmentNotConfigured(envName)
}

// SetEnv adds env, replacing an environment with the same name
func (cliConfig *CLIConfig) SetEnv(env Environment) {
	for i, existing := range cliConfig.Environments {
		if existing.Name == env.Name {
			cliConfig.Environments[i] = &env
			return
		}
	}
	cliConfig.Environments = append(cliConfig.Environments, &env)
}

func (cliConfig *CLIConfig) Validate() error {
	envNames := map[string]bool{}

	for _, env := range cliConfig.Environments {
		if envNames[env.Name] {
			return errors.Wrap(ErrorDuplicateEnvironmentNames(env.Name), "environments")
		}
		envNames[env.Name] = true

		if err := env.Validate(); err != nil {
			return errors.Wrap(err, "environments")
		}
	}

	// the default environment always exists, pointing at the public portal
	if !envNames[DefaultEnvName] {
		defaultEnv := &Environment{Name: DefaultEnvName, PortalURL: consts.DefaultPortalURL}
		cliConfig.Environments = append([]*Environment{defaultEnv}, cliConfig.Environments...)
	}

	if cliConfig.DefaultEnvironment == "" {
		cliConfig.DefaultEnvironment = DefaultEnvName
	}
	if !envNames[cliConfig.DefaultEnvironment] && cliConfig.DefaultEnvironment != DefaultEnvName {
		return errors.Wrap(ErrorEnvironmentNotConfigured(cliConfig.DefaultEnvironment), "default_environment")
	}

	return nil
}

// Read returns a validated config; a missing file yields the default config
func Read(path string) (CLIConfig, error) {
	cliConfig := CLIConfig{}

	if files.IsFile(path) {
		cliConfigBytes, err := files.ReadFileBytes(path)
		if err != nil {
			return CLIConfig{}, err
		}
		if err := yaml.Unmarshal(cliConfigBytes, &cliConfig); err != nil {
			return CLIConfig{}, ErrorParseCLIConfig(path, err)
		}
	}

	if err := cliConfig.Validate(); err != nil {
		return CLIConfig{}, errors.Wrap(err, path)
	}
	return cliConfig, nil
}

func Write(cliConfig CLIConfig, path string) error {
	if err := cliConfig.Validate(); err != nil {
		return err
	}

	cliConfigBytes, err := yaml.Marshal(cliConfig)
	if err != nil {
		return errors.WithStack(err)
	}
	return files.WriteFile(cliConfigBytes, path)
}
