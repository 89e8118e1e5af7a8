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
	"github.com/cortexlabs/qrun/cli/types/history"
	"github.com/cortexlabs/qrun/pkg/client"
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/lib/exit"
	libjson "github.com/cortexlabs/qrun/pkg/lib/json"
	"github.com/cortexlabs/qrun/pkg/lib/logging"
	"github.com/cortexlabs/qrun/pkg/lib/pointer"
	s "github.com/cortexlabs/qrun/pkg/lib/strings"
	"github.com/cortexlabs/qrun/pkg/lib/table"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/spf13/cobra"
)

var (
	_flagJobsLimit   int
	_flagJobsRefresh bool
)

func jobsInit() {
	_jobsCmd.Flags().SortFlags = false
	_jobsCmd.Flags().IntVarP(&_flagJobsLimit, "limit", "n", 20, "number of jobs to show, most recent first (0 shows all)")
	_jobsCmd.Flags().BoolVar(&_flagJobsRefresh, "refresh", false, "ask the portal for the current status of the listed jobs")
	_jobsCmd.Flags().VarP(&_flagOutput, "output", "o", fmt.Sprintf("output format: one of %s", strings.Join([]string{flags.PrettyOutputType.String(), flags.JSONOutputType.String()}, "|")))
}

var _jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "list the jobs submitted from this machine",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		h := loadHistory()
		entries := h.Newest(_flagJobsLimit)

		if len(entries) == 0 {
			fmt.Println("no jobs have been submitted yet")
			return
		}

		var overallStatus string
		var refreshErrs []error
		sessions := map[string]*session{}
		if _flagJobsRefresh {
			ctx, cancel := interruptContext()
			defer cancel()
			defer closeSessions(sessions)

			var statuses map[string]api.ResultResponse
			statuses, refreshErrs = refreshStatuses(ctx, h, entries, cachedSessions(sessions))
			for i := range entries {
				if status, ok := statuses[entries[i].JobID]; ok {
					entries[i].LastStatus = status.Status().String()
				}
			}
			saveHistory(h, logging.GetLogger())

			responses := make([]api.ResultResponse, 0, len(statuses))
			for _, response := range statuses {
				responses = append(responses, response)
			}
			overallStatus = client.AggregateStatus(responses).String()
		}

		if _flagOutput == flags.JSONOutputType {
			for i := range entries {
				entries[i].Submission = nil
			}
			b, err := libjson.MarshalIndent(entries)
			if err != nil {
				exit.Error(err)
			}
			fmt.Println(string(b))
		} else {
			t := jobsTable(entries)
			t.MustPrint(&table.Opts{Sort: pointer.Bool(false)})
			if overallStatus != "" {
				fmt.Printf("\noverall status of the refreshed jobs: %s\n", overallStatus)
			}
		}

		if errors.HasError(refreshErrs) {
			for _, err := range refreshErrs {
				errors.PrintError(err)
			}
			closeSessions(sessions)
			exit.Error(errors.SetNoPrint(errors.FirstError(refreshErrs...)))
		}
	},
}

// cachedSessions opens at most one session per environment, keeping them in sessions
func cachedSessions(sessions map[string]*session) func(envName string) (*session, error) {
	return func(envName string) (*session, error) {
		if sess, ok := sessions[envName]; ok {
			return sess, nil
		}
		env, err := getEnv(envName)
		if err != nil {
			return nil, err
		}
		sess, err := newSession(env)
		if err != nil {
			return nil, err
		}
		sessions[envName] = sess
		return sess, nil
	}
}

func closeSessions(sessions map[string]*session) {
	for envName, sess := range sessions {
		sess.close()
		delete(sessions, envName)
	}
}

// refreshStatuses asks the portal for the status of each entry, recording it in h.
// Failures are collected per job so one unreachable environment does not hide the others.
func refreshStatuses(ctx context.Context, h *history.History, entries []history.Entry, sessionFor func(envName string) (*session, error)) (map[string]api.ResultResponse, []error) {
	statuses := map[string]api.ResultResponse{}
	var errs []error

	for _, entry := range entries {
		jobStr := "job " + entry.JobID

		sess, err := sessionFor(entry.Env)
		if err != nil {
			errs, _ = errors.AddError(errs, err, jobStr)
			continue
		}

		jobID, err := entry.UUID()
		if err != nil {
			errs, _ = errors.AddError(errs, err, jobStr)
			continue
		}

		jobResponse, err := sess.client.Result(ctx, jobID)
		if errs, _ = errors.AddError(errs, err, jobStr); err != nil {
			continue
		}

		statuses[entry.JobID] = jobResponse.Response
		h.SetStatus(entry.JobID, jobResponse.Response.Status())
	}

	return statuses, errs
}

func jobsTable(entries []history.Entry) table.Table {
	t := table.Table{
		Headers: []table.Header{
			{Title: "JOB ID"},
			{Title: "ENV"},
			{Title: "WORKSPACE"},
			{Title: "RESOURCE"},
			{Title: "LABEL", MaxWidth: 30},
			{Title: "CIRCUITS"},
			{Title: "SUBMITTED"},
			{Title: "LAST STATUS"},
		},
	}

	for _, entry := range entries {
		label := entry.Label
		if label == "" {
			label = "-"
		}
		t.Rows = append(t.Rows, []interface{}{
			entry.JobID,
			entry.Env,
			entry.WorkspaceID,
			entry.ResourceID,
			label,
			fmt.Sprintf("%d %s", entry.NumCircuits, s.PluralS("circuit", entry.NumCircuits)),
			entry.Submitted.Local().Format("2006-01-02 15:04:05"),
			entry.LastStatus,
		})
	}

	return t
}
