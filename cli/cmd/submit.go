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
	"github.com/cortexlabs/qrun/pkg/circuit"
	"github.com/cortexlabs/qrun/pkg/client"
	"github.com/cortexlabs/qrun/pkg/consts"
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/lib/exit"
	libjson "github.com/cortexlabs/qrun/pkg/lib/json"
	"github.com/cortexlabs/qrun/pkg/lib/print"
	s "github.com/cortexlabs/qrun/pkg/lib/strings"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/spf13/cobra"
)

var (
	_flagSubmitWorkspace string
	_flagSubmitResource  string
	_flagSubmitFile      string
	_flagSubmitShots     int
	_flagSubmitQubits    int
	_flagSubmitLabel     string
	_flagSubmitDecompose bool
	_flagSubmitRadians   bool
	_flagSubmitWait      bool
	_flagSubmitDryRun    bool
	_flagTimeout         time.Duration
	_flagMemoryMap       string
)

func submitInit() {
	_submitCmd.Flags().SortFlags = false
	_submitCmd.Flags().StringVarP(&_flagSubmitWorkspace, "workspace", "w", consts.DefaultWorkspaceID, "workspace to submit to")
	_submitCmd.Flags().StringVarP(&_flagSubmitResource, "resource", "r", consts.DefaultResourceID, "resource to run the job on")
	_submitCmd.Flags().StringVarP(&_flagSubmitFile, "file", "f", "", "circuit file (json)")
	_submitCmd.MarkFlagRequired("file")
	_submitCmd.Flags().IntVarP(&_flagSubmitShots, "shots", "s", 100, "repetitions of each circuit that does not set its own")
	_submitCmd.Flags().IntVarP(&_flagSubmitQubits, "qubits", "q", 0, "number of qubits of circuits that do not set their own")
	_submitCmd.Flags().StringVarP(&_flagSubmitLabel, "label", "l", "", "job label")
	_submitCmd.Flags().BoolVar(&_flagSubmitDecompose, "decompose", false, "rewrite entangling gates with angles outside [0, 0.5] instead of rejecting them")
	_submitCmd.Flags().BoolVar(&_flagSubmitRadians, "radians", false, "angles in the file are in radians instead of units of pi")
	_submitCmd.Flags().BoolVar(&_flagSubmitWait, "wait", false, "wait for the job to finish and print its counts")
	_submitCmd.Flags().DurationVar(&_flagTimeout, "timeout", 0, "stop waiting after this long (e.g. 10m); 0 waits until the job finishes")
	_submitCmd.Flags().StringVar(&_flagMemoryMap, "memory-map", "", "qubit to classical bit map for counts, e.g. 0:1,1:0 (default: identity)")
	_submitCmd.Flags().BoolVar(&_flagSubmitDryRun, "dry-run", false, "print the encoded job instead of submitting it")
	addYesFlag(_submitCmd)
	addEnvFlag(_submitCmd)
	_submitCmd.Flags().VarP(&_flagOutput, "output", "o", fmt.Sprintf("output format: one of %s", strings.Join([]string{flags.PrettyOutputType.String(), flags.JSONOutputType.String()}, "|")))
}

var _submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "encode and submit a circuit file as a job",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		submission, err := readSubmissionFile(_flagSubmitFile, circuitFileOptions{
			Label:     _flagSubmitLabel,
			Shots:     _flagSubmitShots,
			Qubits:    _flagSubmitQubits,
			Decompose: _flagSubmitDecompose,
			Radians:   _flagSubmitRadians,
		})
		if err != nil {
			if hint := encodingHint(err, _flagSubmitDecompose); hint != "" {
				errors.PrintError(err)
				print.StderrPrintln("\n" + hint)
				exit.Error(errors.SetNoPrint(err))
			}
			exit.Error(err)
		}

		if _flagSubmitDryRun {
			b, err := libjson.MarshalIndent(submission)
			if err != nil {
				exit.Error(err)
			}
			fmt.Println(string(b))
			return
		}

		sess, closeSession := mustSession(_flagEnv)
		defer closeSession()

		ctx, cancel := interruptContext()
		defer cancel()

		job, err := sess.client.Run(ctx, _flagSubmitWorkspace, _flagSubmitResource, submission)
		if err != nil {
			closeSession()
			exit.Error(err)
		}

		h := loadHistory()
		entry, err := history.NewEntry(sess.env.Name, job.User, submission, job.Submitted)
		if err == nil {
			h.Add(entry)
			saveHistory(h, sess.logger)
		}

		if _flagOutput == flags.JSONOutputType && !_flagSubmitWait {
			b, err := libjson.MarshalIndent(job.User)
			if err != nil {
				closeSession()
				exit.Error(err)
			}
			fmt.Println(string(b))
			return
		}

		print.BoldFirstLine(fmt.Sprintf("submitted job %s (%d %s to %s/%s)", job.ID(), submission.NumCircuits(), s.PluralS("circuit", submission.NumCircuits()), job.User.WorkspaceID, job.User.ResourceID))
		if !_flagSubmitWait {
			fmt.Printf("\nrun `qrun result %s --watch` to follow it\n", job.ID())
			return
		}

		opts := client.DefaultPollOptions()
		opts.Timeout = _flagTimeout
		opts.OnProgress = printProgress

		result, err := job.Wait(ctx, opts)
		recordOutcome(h, job.ID().String(), err, sess)
		if err != nil {
			closeSession()
			exit.Error(err)
		}

		str, err := resultStr(result, _flagMemoryMap, _flagOutput)
		if err != nil {
			closeSession()
			exit.Error(err)
		}
		fmt.Print("\n" + str)
	},
}

// recordOutcome stores the terminal (or last known) status of a waited-for job
func recordOutcome(h *history.History, jobID string, err error, sess *session) {
	status := api.StatusFinished
	if err != nil {
		switch errors.GetKind(err) {
		case client.ErrJobError:
			status = api.StatusError
		case client.ErrJobCancelled:
			status = api.StatusCancelled
		case client.ErrUnknownJob:
			status = api.StatusUnknownJob
		default:
			if polling, ok := errors.GetMetadata(err).(client.PollingStatus); ok && polling.LastStatus != nil {
				status = polling.LastStatus.Status()
			} else {
				return
			}
		}
	}

	if h.SetStatus(jobID, status) {
		saveHistory(h, sess.logger)
	}
}

func encodingHint(err error, decompose bool) string {
	if !circuit.IsEncodingError(err) {
		return ""
	}
	if circuit.IsRange(err) && !decompose {
		return "angles are in units of pi (use --radians otherwise); RXX angles outside [0, 0.5] can be rewritten with --decompose"
	}
	if circuit.IsRange(err) {
		return "angles are in units of pi (use --radians otherwise)"
	}
	return "every circuit must end with a single MEASURE, and its qubits must be below the circuit's number of qubits"
}
