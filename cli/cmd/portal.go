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
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/cortexlabs/qrun/pkg/consts"
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/lib/exit"
	"github.com/cortexlabs/qrun/pkg/lib/logging"
	"github.com/cortexlabs/qrun/pkg/portal"
	"github.com/gorilla/handlers"
	"github.com/spf13/cobra"
)

var (
	_flagPortalPort        int
	_flagPortalToken       string
	_flagPortalQueuedPolls int
	_flagPortalSeed        int64
	_flagPortalMaxJobs     int
)

func portalInit() {
	defaults := portal.DefaultConfig()

	_portalCmd.Flags().SortFlags = false
	_portalCmd.Flags().IntVarP(&_flagPortalPort, "port", "p", 8888, "port to listen on")
	_portalCmd.Flags().StringVarP(&_flagPortalToken, "token", "t", "", "require this bearer token (default: accept any request)")
	_portalCmd.Flags().IntVar(&_flagPortalQueuedPolls, "queued-polls", defaults.QueuedPolls, "result requests a new job answers with queued before it runs")
	_portalCmd.Flags().Int64Var(&_flagPortalSeed, "seed", defaults.Seed, "seed of the simulated measurement bits")
	_portalCmd.Flags().IntVar(&_flagPortalMaxJobs, "max-jobs", defaults.MaxJobs, "jobs to remember before the oldest are forgotten")
}

var _portalCmd = &cobra.Command{
	Use:   "portal",
	Short: "run a local mock portal for development",
	Long: `Run a local mock portal. Jobs are never executed: each one is queued, then reports
its circuits finishing one by one, then finishes with uniformly random bits.
Point an environment at it with ` + "`qrun env configure local --portal-url http://localhost:8888`.",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := logging.NewLogger(logging.InfoLogLevel)
		if err != nil {
			exit.Error(err)
		}
		defer logger.Sync()

		config := portal.DefaultConfig()
		config.Token = _flagPortalToken
		config.QueuedPolls = _flagPortalQueuedPolls
		config.Seed = _flagPortalSeed
		config.MaxJobs = _flagPortalMaxJobs

		endpoint, err := portal.New(config, logger)
		if err != nil {
			exit.Error(err)
		}

		corsOptions := []handlers.CORSOption{
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedHeaders([]string{"Content-Type", "User-Agent", "Accept", consts.AuthHeader}),
			handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		}

		server := &http.Server{
			Addr:              ":" + strconv.Itoa(_flagPortalPort),
			Handler:           handlers.CORS(corsOptions...)(endpoint.Router()),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Infow("starting mock portal", "address", server.Addr, "api", consts.APIPathPrefix)
			errCh <- server.ListenAndServe()
		}()

		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)

		select {
		case err = <-errCh:
			exit.Error(errors.WithStack(err), "mock portal")
		case <-sigint:
			logger.Info("shutting down mock portal")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err = server.Shutdown(ctx); err != nil {
				logger.Warnw("mock portal shutdown error", "error", err)
			}
			stats := endpoint.Service().Stats()
			logger.Infow("mock portal stopped", "submitted", stats.Submitted, "rejected", stats.Rejected, "polls", stats.Polls, "evicted", stats.Evicted)
		}
	},
}
