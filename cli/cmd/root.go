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
	"os"
	"path/filepath"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/lib/exit"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

const _configDirEnvVar = "QRUN_CONFIG_DIR"

var (
	_cmdStr string

	_localDir      string
	_cliConfigPath string
	_historyPath   string
)

func init() {
	_localDir = os.Getenv(_configDirEnvVar)
	if _localDir == "" {
		homeDir, err := homedir.Dir()
		if err != nil {
			exit.Error(errors.WithStack(err))
		}
		_localDir = filepath.Join(homeDir, ".qrun")
	}

	_cliConfigPath = filepath.Join(_localDir, "cli.yaml")
	_historyPath = filepath.Join(_localDir, "jobs.msgpack")

	cobra.EnablePrefixMatching = true

	_cmdStr = "qrun"
	for _, arg := range os.Args[1:] {
		_cmdStr += " " + arg
	}

	envInit()
	workspacesInit()
	submitInit()
	resultInit()
	jobsInit()
	portalInit()
}

var _rootCmd = &cobra.Command{
	Use:   "qrun",
	Short: "run quantum circuits on an AQT portal",
	Long:  `Encode, submit, and collect the results of quantum circuit jobs on an AQT portal`,
}

// Copied from https://github.com/spf13/cobra/blob/master/command.go
var _helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "help about any command",
	Long: `help provides help for any command in the CLI.
Type ` + _rootCmd.Name() + ` help [path to command] for full details.`,
	Run: func(c *cobra.Command, args []string) {
		cmd, _, e := c.Root().Find(args)
		if cmd == nil || e != nil {
			c.Printf("Unknown help topic %#q\n", args)
			c.Root().Usage()
		} else {
			cmd.InitDefaultHelpFlag()
			cmd.Help()
		}
	},
}

func Execute() {
	defer exit.RecoverAndExit()

	cobra.EnableCommandSorting = false

	_rootCmd.SetHelpCommand(_helpCmd)

	_rootCmd.AddCommand(_workspacesCmd)
	_rootCmd.AddCommand(_submitCmd)
	_rootCmd.AddCommand(_resultCmd)
	_rootCmd.AddCommand(_jobsCmd)

	_rootCmd.AddCommand(_envCmd)
	_rootCmd.AddCommand(_portalCmd)
	_rootCmd.AddCommand(_versionCmd)

	if err := _rootCmd.Execute(); err != nil {
		// cobra already printed usage errors
		exit.Error(errors.SetNoPrint(errors.WithStack(err)))
	}
}

var _flagEnv string

func addEnvFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&_flagEnv, "env", "e", "", "environment to use (defaults to the default environment, see `qrun env list`)")
}
