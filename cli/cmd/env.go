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

package cmd

import (
	"fmt"
	"strings"

	"github.com/cortexlabs/qrun/cli/types/cliconfig"
	"github.com/cortexlabs/qrun/cli/types/flags"
	"github.com/cortexlabs/qrun/pkg/consts"
	"github.com/cortexlabs/qrun/pkg/lib/exit"
	"github.com/cortexlabs/qrun/pkg/lib/files"
	libjson "github.com/cortexlabs/qrun/pkg/lib/json"
	"github.com/cortexlabs/qrun/pkg/lib/print"
	"github.com/cortexlabs/qrun/pkg/lib/prompt"
	s "github.com/cortexlabs/qrun/pkg/lib/strings"
	"github.com/spf13/cobra"
)

var (
	_flagEnvPortalURL string
	_flagEnvToken     string
)

func envInit() {
	_envConfigureCmd.Flags().SortFlags = false
	_envConfigureCmd.Flags().StringVarP(&_flagEnvPortalURL, "portal-url", "p", "", "set the portal url without prompting")
	_envConfigureCmd.Flags().StringVarP(&_flagEnvToken, "token", "t", "", "set the access token without prompting")
	_envCmd.AddCommand(_envConfigureCmd)

	_envListCmd.Flags().SortFlags = false
	_envListCmd.Flags().VarP(&_flagOutput, "output", "o", fmt.Sprintf("output format: one of %s", strings.Join([]string{flags.PrettyOutputType.String(), flags.JSONOutputType.String()}, "|")))
	_envCmd.AddCommand(_envListCmd)

	_envDefaultCmd.Flags().SortFlags = false
	_envCmd.AddCommand(_envDefaultCmd)

	_envDeleteCmd.Flags().SortFlags = false
	_envCmd.AddCommand(_envDeleteCmd)
}

var _envCmd = &cobra.Command{
	Use:   "env",
	Short: "manage cli environments (contains subcommands)",
}

var _envConfigureCmd = &cobra.Command{
	Use:   "configure [ENVIRONMENT_NAME]",
	Short: "configure an environment",
	Args:  cobra.RangeArgs(0, 1),
	Run: func(cmd *cobra.Command, args []string) {
		cliConfig, err := readCLIConfig()
		if err != nil {
			exit.Error(err)
		}

		envName := cliconfig.DefaultEnvName
		if len(args) == 1 {
			envName = args[0]
		}

		existing, _ := cliConfig.GetEnv(envName)
		env := cliconfig.Environment{Name: envName, PortalURL: existing.PortalURL, Token: existing.Token}
		if env.PortalURL == "" {
			env.PortalURL = consts.DefaultPortalURL
		}

		if cmd.Flags().Changed("portal-url") {
			env.PortalURL = _flagEnvPortalURL
		} else {
			env.PortalURL, err = prompt.Ask(&prompt.Options{
				Prompt:     "portal url",
				DefaultStr: env.PortalURL,
			})
			if err != nil {
				exit.Error(err)
			}
		}

		if cmd.Flags().Changed("token") {
			env.Token = _flagEnvToken
		} else {
			env.Token, err = prompt.Ask(&prompt.Options{
				Prompt:      fmt.Sprintf("access token (leave empty to use %s)", consts.TokenEnvVar),
				DefaultStr:  env.Token,
				MaskDefault: true,
				HideTyping:  true,
			})
			if err != nil {
				exit.Error(err)
			}
		}

		if err := env.Validate(); err != nil {
			exit.Error(err)
		}

		cliConfig.SetEnv(env)
		if err := writeCLIConfig(cliConfig); err != nil {
			exit.Error(err)
		}

		print.BoldFirstLine(fmt.Sprintf("configured %s environment (saved in %s)", s.UserStr(envName), files.ReplacePathWithTilde(_cliConfigPath)))
	},
}

var _envListCmd = &cobra.Command{
	Use:   "list",
	Short: "list all configured environments",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cliConfig, err := readCLIConfig()
		if err != nil {
			exit.Error(err)
		}

		if _flagOutput == flags.JSONOutputType {
			masked := make([]cliconfig.Environment, len(cliConfig.Environments))
			for i, env := range cliConfig.Environments {
				masked[i] = *env
				masked[i].Token = s.MaskString(env.Token, 4)
			}
			b, err := libjson.MarshalIndent(masked)
			if err != nil {
				exit.Error(err)
			}
			fmt.Println(string(b))
			return
		}

		for i, env := range cliConfig.Environments {
			fmt.Print(env.String(cliConfig.DefaultEnvironment == env.Name))
			if i+1 < len(cliConfig.Environments) {
				fmt.Println()
			}
		}
	},
}

var _envDefaultCmd = &cobra.Command{
	Use:   "default [ENVIRONMENT_NAME]",
	Short: "set the default environment",
	Args:  cobra.RangeArgs(0, 1),
	Run: func(cmd *cobra.Command, args []string) {
		cliConfig, err := readCLIConfig()
		if err != nil {
			exit.Error(err)
		}

		if len(args) == 0 {
			fmt.Println(cliConfig.DefaultEnvironment)
			return
		}

		if _, err := cliConfig.GetEnv(args[0]); err != nil {
			exit.Error(err)
		}

		cliConfig.DefaultEnvironment = args[0]
		if err := writeCLIConfig(cliConfig); err != nil {
			exit.Error(err)
		}

		print.BoldFirstLine(fmt.Sprintf("set the default environment to %s", s.UserStr(args[0])))
	},
}

var _envDeleteCmd = &cobra.Command{
	Use:   "delete ENVIRONMENT_NAME",
	Short: "delete an environment configuration",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cliConfig, err := readCLIConfig()
		if err != nil {
			exit.Error(err)
		}

		envName := args[0]
		if _, err := cliConfig.GetEnv(envName); err != nil {
			exit.Error(err)
		}

		kept := cliConfig.Environments[:0]
		for _, env := range cliConfig.Environments {
			if env.Name != envName {
				kept = append(kept, env)
			}
		}
		cliConfig.Environments = kept
		if cliConfig.DefaultEnvironment == envName {
			cliConfig.DefaultEnvironment = cliconfig.DefaultEnvName
		}

		if err := writeCLIConfig(cliConfig); err != nil {
			exit.Error(err)
		}

		if envName == cliconfig.DefaultEnvName {
			print.BoldFirstLine(fmt.Sprintf("reset the %s environment to its defaults", s.UserStr(envName)))
			return
		}
		print.BoldFirstLine(fmt.Sprintf("deleted the %s environment", s.UserStr(envName)))
	},
}
