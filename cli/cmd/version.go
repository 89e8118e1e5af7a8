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
	"context"
	"fmt"

	"github.com/cortexlabs/qrun/pkg/consts"
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/spf13/cobra"
)

func init() {
	addEnvFlag(_versionCmd)
}

var _versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the version of the cli and check that the portal is reachable",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("cli version: " + consts.QrunVersion)

		env, err := getEnv(_flagEnv)
		if err != nil {
			fmt.Println("portal:      " + errors.Message(err))
			return
		}

		sess, err := newSession(env)
		if err != nil {
			fmt.Println("portal:      " + errors.Message(err))
			return
		}
		defer sess.close()

		workspaces, err := sess.client.Workspaces(context.Background())
		if err != nil {
			fmt.Printf("portal:      %s (unreachable: %s)\n", env.PortalURL, errors.MessageFirstLine(err))
			return
		}
		fmt.Printf("portal:      %s (%d workspaces available)\n", env.PortalURL, len(workspaces))
	},
}
