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
	"strings"

	"github.com/cortexlabs/qrun/cli/types/flags"
	"github.com/cortexlabs/qrun/pkg/lib/exit"
	libjson "github.com/cortexlabs/qrun/pkg/lib/json"
	"github.com/cortexlabs/qrun/pkg/lib/table"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
)

var (
	_flagWorkspacePattern string
	_flagResourcePattern  string
	_flagResourceType     string
	_flagOutput           = flags.PrettyOutputType
)

func workspacesInit() {
	_workspacesCmd.Flags().SortFlags = false
	addEnvFlag(_workspacesCmd)
	_workspacesCmd.Flags().StringVarP(&_flagWorkspacePattern, "workspace", "w", "", "only show workspaces matching this pattern (e.g. \"team-*\")")
	_workspacesCmd.Flags().StringVarP(&_flagResourcePattern, "resource", "r", "", "only show resources matching this pattern")
	_workspacesCmd.Flags().StringVarP(&_flagResourceType, "type", "t", "", "only show resources of this type (simulator|device)")
	_workspacesCmd.Flags().VarP(&_flagOutput, "output", "o", fmt.Sprintf("output format: one of %s", strings.Join(flags.OutputTypeStrings(), "|")))
}

var _workspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "list the workspaces and resources available to your token",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		filterOpts := api.FilterOptions{
			Workspace: _flagWorkspacePattern,
			Resource:  _flagResourcePattern,
		}
		if _flagResourceType != "" {
			resourceType, err := api.ResourceTypeFromString(_flagResourceType)
			if err != nil {
				exit.Error(err)
			}
			filterOpts.Type = resourceType
		}

		sess, closeSession := mustSession(_flagEnv)
		defer closeSession()

		ctx, cancel := interruptContext()
		defer cancel()

		str, err := workspacesStr(ctx, sess, filterOpts, _flagOutput)
		if err != nil {
			closeSession()
			exit.Error(err)
		}
		fmt.Print(str)
	},
}

func workspacesStr(ctx context.Context, sess *session, filterOpts api.FilterOptions, output flags.OutputType) (string, error) {
	workspaces, err := sess.client.Workspaces(ctx)
	if err != nil {
		return "", err
	}

	workspaces, err = workspaces.Filter(filterOpts)
	if err != nil {
		return "", err
	}

	return formatWorkspaces(workspaces, output)
}

func formatWorkspaces(workspaces api.Workspaces, output flags.OutputType) (string, error) {
	switch output {
	case flags.JSONOutputType:
		b, err := libjson.MarshalIndent(workspaces)
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	case flags.TreeOutputType:
		return workspacesTree(workspaces), nil
	}

	if len(workspaces) == 0 {
		return "", ErrorNoWorkspacesMatch()
	}
	t := workspacesTable(workspaces)
	return t.Format()
}

func workspacesTable(workspaces api.Workspaces) table.Table {
	t := table.Table{
		Headers: []table.Header{
			{Title: "WORKSPACE", Group: true},
			{Title: "RESOURCE"},
			{Title: "NAME", MaxWidth: 40},
			{Title: "TYPE"},
		},
	}

	for _, workspace := range workspaces {
		if len(workspace.Resources) == 0 {
			t.Rows = append(t.Rows, []interface{}{workspace.ID, "-", "-", "-"})
			continue
		}
		for _, resource := range workspace.Resources {
			t.Rows = append(t.Rows, []interface{}{workspace.ID, resource.ID, resource.Name, string(resource.Type)})
		}
	}

	return t
}

func workspacesTree(workspaces api.Workspaces) string {
	tree := treeprint.New()
	for _, workspace := range workspaces {
		branch := tree.AddBranch(workspace.ID)
		for _, resource := range workspace.Resources {
			branch.AddNode(fmt.Sprintf("%s (%s, %s)", resource.ID, resource.Type, resource.Name))
		}
	}
	return tree.String()
}
