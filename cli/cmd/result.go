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
	"time"

	"github.com/cortexlabs/qrun/cli/types/flags"
	"github.com/cortexlabs/qrun/cli/types/history"
	"github.com/cortexlabs/qrun/pkg/client"
	"github.com/cortexlabs/qrun/pkg/lib/console"
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/lib/exit"
	libjson "github.com/cortexlabs/qrun/pkg/lib/json"
	"github.com/cortexlabs/qrun/pkg/lib/pointer"
	"github.com/cortexlabs/qrun/pkg/lib/print"
	s "github.com/cortexlabs/qrun/pkg/lib/strings"
	"github.com/cortexlabs/qrun/pkg/lib/table"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var _flagWatch bool

func resultInit() {
	_resultCmd.Flags().SortFlags = false
	_resultCmd.Flags().BoolVarP(&_flagWatch, "watch", "W", false, "poll until the job reaches a terminal state")
	_resultCmd.Flags().DurationVar(&_flagTimeout, "timeout", 0, "with --watch, stop waiting after this long (e.g. 10m)")
	_resultCmd.Flags().StringVar(&_flagMemoryMap, "memory-map", "", "qubit to classical bit map for counts, e.g. 0:1,1:0 (default: identity)")
	addEnvFlag(_resultCmd)
	_resultCmd.Flags().VarP(&_flagOutput, "output", "o", fmt.Sprintf("output format: one of %s", strings.Join([]string{flags.PrettyOutputType.String(), flags.JSONOutputType.String()}, "|")))
}

var _resultCmd = &cobra.Command{
	Use:   "result JOB_ID",
	Short: "show the status of a job, and its counts once it has finished",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jobID, err := uuid.Parse(strings.TrimSpace(args[0]))
		if err != nil {
			exit.Error(ErrorInvalidJobID(args[0]))
		}

		h := loadHistory()
		entry, inHistory := h.Find(jobID.String())

		envName := _flagEnv
		if envName == "" && inHistory {
			envName = entry.Env
		}

		sess, closeSession := mustSession(envName)
		defer closeSession()

		ctx, cancel := interruptContext()
		defer cancel()

		var response api.ResultResponse
		if _flagWatch {
			opts := client.DefaultPollOptions()
			opts.Timeout = _flagTimeout
			opts.OnProgress = printProgress
			response, err = sess.client.PollUntilTerminal(ctx, jobID, opts)
		} else {
			var jobResponse api.JobResponse
			jobResponse, err = sess.client.Result(ctx, jobID)
			response = jobResponse.Response
		}
		if err != nil {
			closeSession()
			exit.Error(err)
		}

		if inHistory && h.SetStatus(jobID.String(), response.Status()) {
			saveHistory(h, sess.logger)
		}

		var historyEntry *history.Entry
		if inHistory {
			historyEntry = &entry
		} else if response.Status() == api.StatusFinished {
			print.StderrBoldFirstLine(errors.Message(ErrorJobNotInHistory(jobID.String())))
		}

		str, err := responseStr(jobID, response, historyEntry, _flagMemoryMap, _flagOutput)
		fmt.Print(str)
		if err != nil {
			closeSession()
			exit.Error(err)
		}
	},
}

// responseStr renders a job response. Terminal failures are returned as errors
// (after their json, with -o json) so the command exits non-zero.
// Counts need the submission, so a finished job without a history entry only shows its status.
func responseStr(jobID uuid.UUID, response api.ResultResponse, entry *history.Entry, memoryMapStr string, output flags.OutputType) (string, error) {
	finished, ok := response.(api.Finished)

	if !ok {
		var outcomeErr error
		if response.Status().IsTerminal() {
			outcomeErr = client.OutcomeError(jobID, response)
		}

		if output == flags.JSONOutputType {
			b, err := libjson.MarshalIndent(response)
			if err != nil {
				return "", err
			}
			return string(b) + "\n", outcomeErr
		}
		if outcomeErr != nil {
			return "", outcomeErr
		}
		return "status: " + coloredStatus(response) + "\n", nil
	}

	if entry == nil {
		return "status: " + coloredStatus(response) + "\n", nil
	}

	submission, err := entry.DecodeSubmission()
	if err != nil {
		return "", err
	}

	result, err := client.DecodeResult(jobID, submission, finished)
	if err != nil {
		return "", err
	}

	return resultStr(result, memoryMapStr, output)
}

func statusStr(response api.ResultResponse) string {
	if stringer, ok := response.(fmt.Stringer); ok {
		return stringer.String()
	}
	return response.Status().String()
}

func coloredStatus(response api.ResultResponse) string {
	switch response.Status() {
	case api.StatusFinished:
		return console.Green(statusStr(response))
	case api.StatusError, api.StatusCancelled, api.StatusUnknownJob:
		return console.Red(statusStr(response))
	}
	return console.Yellow(statusStr(response))
}

func printProgress(response api.ResultResponse) {
	print.StderrPrintln(fmt.Sprintf("%s  %s", time.Now().Format("15:04:05"), coloredStatus(response)))
}

type circuitCounts struct {
	Circuit int            `json:"circuit"`
	Shots   int            `json:"shots"`
	Counts  map[string]int `json:"counts"`
}

func resultCounts(result *client.Result, memoryMapStr string) ([]circuitCounts, error) {
	all := make([]circuitCounts, result.NumCircuits())
	for i := range all {
		memoryMap, err := parseMemoryMap(memoryMapStr, result.Circuits[i].NumberOfQubits)
		if err != nil {
			return nil, err
		}
		counts, err := result.Counts(i, memoryMap)
		if err != nil {
			return nil, err
		}
		all[i] = circuitCounts{Circuit: i, Shots: result.Circuits[i].Repetitions, Counts: counts}
	}
	return all, nil
}

func resultStr(result *client.Result, memoryMapStr string, output flags.OutputType) (string, error) {
	all, err := resultCounts(result, memoryMapStr)
	if err != nil {
		return "", err
	}

	if output == flags.JSONOutputType {
		b, err := libjson.MarshalIndent(all)
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	}

	var out strings.Builder
	for i, cc := range all {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(console.Bold(fmt.Sprintf("circuit %d (%d %s)", cc.Circuit, cc.Shots, s.PluralS("shot", cc.Shots))) + "\n")

		t := table.Table{
			Headers: []table.Header{{Title: "OUTCOME"}, {Title: "COUNT"}, {Title: "FREQUENCY"}},
		}
		for _, oc := range sortedCounts(cc.Counts) {
			t.Rows = append(t.Rows, []interface{}{oc.Outcome, oc.Count, s.Round(float64(oc.Count)/float64(cc.Shots), 3, 3)})
		}
		str, err := t.Format(&table.Opts{Sort: pointer.Bool(false)})
		if err != nil {
			return "", err
		}
		out.WriteString(str)
	}
	return out.String(), nil
}
