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
	"os"
	"os/signal"
	"strings"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/cortexlabs/qrun/cli/types/cliconfig"
	"github.com/cortexlabs/qrun/cli/types/history"
	"github.com/cortexlabs/qrun/pkg/client"
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/lib/exit"
	"github.com/cortexlabs/qrun/pkg/lib/logging"
	"github.com/cortexlabs/qrun/pkg/lib/print"
	"github.com/cortexlabs/qrun/pkg/lib/prompt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// QRUN_STATSD_ADDR (host:port) enables job metrics
const _statsdAddrEnvVar = "QRUN_STATSD_ADDR"

var _flagYes bool

func addYesFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&_flagYes, "yes", "y", false, "resend a submission whose outcome is unknown without asking")
}

func readCLIConfig() (cliconfig.CLIConfig, error) {
	return cliconfig.Read(_cliConfigPath)
}

func writeCLIConfig(cliConfig cliconfig.CLIConfig) error {
	return cliconfig.Write(cliConfig, _cliConfigPath)
}

// getEnv resolves envName, falling back to the configured default environment
func getEnv(envName string) (cliconfig.Environment, error) {
	cliConfig, err := readCLIConfig()
	if err != nil {
		return cliconfig.Environment{}, err
	}
	if envName == "" {
		envName = cliConfig.DefaultEnvironment
	}
	return cliConfig.GetEnv(envName)
}

type session struct {
	env     cliconfig.Environment
	client  *client.Client
	metrics statsd.ClientInterface
	logger  *zap.SugaredLogger
}

func newSession(env cliconfig.Environment) (*session, error) {
	logger := logging.GetLogger()

	var metrics statsd.ClientInterface = &statsd.NoOpClient{}
	if addr := strings.TrimSpace(os.Getenv(_statsdAddrEnvVar)); addr != "" {
		statsdClient, err := statsd.New(addr, statsd.WithNamespace("qrun."))
		if err != nil {
			logger.Warnw("unable to connect to statsd; metrics are disabled", "address", addr, "error", err)
		} else {
			metrics = statsdClient
		}
	}

	config := env.ClientConfig()
	config.ConfirmResubmit = confirmResubmit

	c, err := client.New(config, metrics, logger)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%s environment", env.Name))
	}

	return &session{env: env, client: c, metrics: metrics, logger: logger}, nil
}

// mustSession exits on error; the returned func flushes metrics and logs
func mustSession(envName string) (*session, func()) {
	env, err := getEnv(envName)
	if err != nil {
		exit.Error(err)
	}
	sess, err := newSession(env)
	if err != nil {
		exit.Error(err)
	}
	return sess, sess.close
}

func (sess *session) close() {
	sess.metrics.Close()
	sess.logger.Sync()
}

func confirmResubmit(attempt int, err error) bool {
	if _flagYes {
		return true
	}

	print.StderrPrintln(fmt.Sprintf("submission attempt %d may or may not have reached the portal: %s", attempt, errors.Message(err)))
	yes, promptErr := prompt.YesOrNo("send it again? this can create a duplicate job")
	if promptErr != nil {
		return false
	}
	return yes
}

// interruptContext is cancelled on ctrl-c, so pollers stop cleanly
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func loadHistory() *history.History {
	h, err := history.Load(_historyPath)
	if err != nil {
		exit.Error(err, "job history")
	}
	return h
}

// saveHistory only warns: the job itself already succeeded
func saveHistory(h *history.History, logger *zap.SugaredLogger) {
	if err := h.Save(); err != nil {
		logger.Warnw("unable to update the job history", "path", _historyPath, "error", errors.Message(err))
	}
}
