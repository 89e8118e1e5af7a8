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

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cortexlabs/qrun/pkg/circuit"
	"github.com/cortexlabs/qrun/pkg/consts"
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/portal"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const _testToken = "secret"

func newLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.FatalLevel)
	logger, err := config.Build()
	require.NoError(t, err)

	return logger.Sugar()
}

func newTestPortal(t *testing.T) (*portal.Endpoint, *httptest.Server) {
	t.Helper()

	config := portal.DefaultConfig()
	config.Token = _testToken
	endpoint, err := portal.New(config, newLogger(t))
	require.NoError(t, err)

	server := httptest.NewServer(endpoint.Router())
	t.Cleanup(server.Close)
	return endpoint, server
}

func newTestConfig(portalURL string) Config {
	config := DefaultConfig()
	config.BaseURL = APIBaseURL(portalURL)
	config.Token = _testToken
	config.HTTPTimeout = 5 * time.Second
	config.Retry = RetryConfig{
		MaxAttempts:     3,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	}
	config.RequestsPerSecond = 0
	return config
}

func newTestClient(t *testing.T, config Config) *Client {
	t.Helper()

	c, err := New(config, nil, newLogger(t))
	require.NoError(t, err)
	return c
}

func bellSubmission(t *testing.T) api.JobSubmission {
	t.Helper()

	ops := []api.Operation{
		circuit.RY(0, 0.5),
		api.GateRXX{Qubits: []int{0, 1}, Theta: 0.5},
		api.Measure{},
	}
	qc, err := circuit.NewQuantumCircuit(circuit.NewEncoder(circuit.Options{}), ops, 2, 5)
	require.NoError(t, err)

	submission, err := circuit.Batch("bell", qc)
	require.NoError(t, err)
	return submission
}

func fastPoll() PollOptions {
	return PollOptions{Interval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
}

func TestRunEndToEnd(t *testing.T) {
	t.Parallel()

	_, server := newTestPortal(t)
	c := newTestClient(t, newTestConfig(server.URL))
	submission := bellSubmission(t)

	job, err := c.Run(context.Background(), consts.DefaultWorkspaceID, consts.DefaultResourceID, submission)
	require.NoError(t, err)
	require.Equal(t, "bell", job.User.Label)
	require.Equal(t, consts.DefaultResourceID, job.User.ResourceID)

	result, err := job.Wait(context.Background(), fastPoll())
	require.NoError(t, err)
	require.Equal(t, job.ID(), result.JobID)
	require.Equal(t, 1, result.NumCircuits())
	require.Len(t, result.Samples[0], 5)
	for _, shot := range result.Samples[0] {
		require.Len(t, shot, 2)
	}

	counts, err := result.Counts(0, nil)
	require.NoError(t, err)
	total := 0
	for _, count := range counts {
		total += count
	}
	require.Equal(t, 5, total)

	_, err = result.Counts(1, nil)
	require.Equal(t, ErrCircuitOutOfRange, errors.GetKind(err))
}

func TestSubmitUnauthorized(t *testing.T) {
	t.Parallel()

	_, server := newTestPortal(t)
	config := newTestConfig(server.URL)
	config.Token = "wrong"
	c := newTestClient(t, config)

	_, err := c.Submit(context.Background(), consts.DefaultWorkspaceID, consts.DefaultResourceID, bellSubmission(t))
	require.Equal(t, ErrUnauthorized, errors.GetKind(err))

	_, err = c.Workspaces(context.Background())
	require.Equal(t, ErrUnauthorized, errors.GetKind(err))
}

func TestSubmitInvalid(t *testing.T) {
	t.Parallel()

	_, server := newTestPortal(t)
	c := newTestClient(t, newTestConfig(server.URL))

	// skips local validation, so the portal has to reject it
	submission := api.JobSubmission{
		JobType: api.JobTypeQuantumCircuit,
		Label:   "invalid",
		Payload: api.QuantumCircuits{Circuits: []api.QuantumCircuit{{
			NumberOfQubits: 2,
			Repetitions:    1,
			QuantumCircuit: api.Circuit{api.GateRXX{Qubits: []int{1, 1}, Theta: 0.25}},
		}}},
	}

	_, err := c.Submit(context.Background(), consts.DefaultWorkspaceID, consts.DefaultResourceID, submission)
	require.Equal(t, ErrInvalidSubmission, errors.GetKind(err))

	details, ok := errors.GetMetadata(err).([]api.ValidationError)
	require.True(t, ok)
	require.Len(t, details, 1)
	require.Equal(t, "body.payload.circuits.0.quantum_circuit.0.qubits", details[0].Path())

	_, err = c.Submit(context.Background(), consts.DefaultWorkspaceID, "ibex", bellSubmission(t))
	require.Equal(t, ErrRequestRejected, errors.GetKind(err))
	require.Equal(t, http.StatusNotFound, errors.GetMetadata(err))
}

func TestSubmitRetriesDialErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	c := newTestClient(t, newTestConfig(server.URL))

	_, err := c.Submit(context.Background(), consts.DefaultWorkspaceID, consts.DefaultResourceID, bellSubmission(t))
	require.Equal(t, ErrNetworkFailure, errors.GetKind(err))

	failure, ok := errors.GetMetadata(err).(NetworkFailure)
	require.True(t, ok)
	require.Equal(t, 3, failure.Attempts)
	require.False(t, failure.CompletionUnknown)
	require.True(t, IsTransient(err))
}

func TestSubmitUnknownCompletion(t *testing.T) {
	t.Parallel()

	endpoint, server := newTestPortal(t)
	c := newTestClient(t, newTestConfig(server.URL))

	endpoint.FailNext(1, http.StatusServiceUnavailable)
	_, err := c.Submit(context.Background(), consts.DefaultWorkspaceID, consts.DefaultResourceID, bellSubmission(t))
	require.Equal(t, ErrNetworkFailure, errors.GetKind(err))

	failure, ok := errors.GetMetadata(err).(NetworkFailure)
	require.True(t, ok)
	require.True(t, failure.CompletionUnknown)
	require.Equal(t, 1, failure.Attempts)
	require.Equal(t, http.StatusServiceUnavailable, failure.StatusCode)
	require.Equal(t, int64(0), endpoint.Service().Stats().Submitted)
}

func TestSubmitConfirmResubmit(t *testing.T) {
	t.Parallel()

	endpoint, server := newTestPortal(t)
	config := newTestConfig(server.URL)
	var confirmed []int
	config.ConfirmResubmit = func(attempt int, err error) bool {
		confirmed = append(confirmed, attempt)
		return true
	}
	c := newTestClient(t, config)

	endpoint.FailNext(1, http.StatusBadGateway)
	user, err := c.Submit(context.Background(), consts.DefaultWorkspaceID, consts.DefaultResourceID, bellSubmission(t))
	require.NoError(t, err)
	require.Equal(t, consts.DefaultWorkspaceID, user.WorkspaceID)
	require.Equal(t, []int{1}, confirmed)
	require.Equal(t, int64(1), endpoint.Service().Stats().Submitted)
}

func TestWorkspaces(t *testing.T) {
	t.Parallel()

	_, server := newTestPortal(t)
	c := newTestClient(t, newTestConfig(server.URL))

	workspaces, err := c.Workspaces(context.Background())
	require.NoError(t, err)
	require.Equal(t, portal.DefaultConfig().Workspaces, workspaces)

	_, ok := workspaces.Find(consts.DefaultWorkspaceID, consts.DefaultResourceID)
	require.True(t, ok)
}

func TestConfig(t *testing.T) {
	t.Parallel()

	require.Equal(t, "https://arnica.aqt.eu/api/v1", APIBaseURL("https://arnica.aqt.eu/"))
	require.Equal(t, "https://arnica.aqt.eu/api/v1", APIBaseURL("https://arnica.aqt.eu/api/v1"))

	config := DefaultConfig()
	config.Retry.MaxAttempts = 0
	require.NoError(t, config.Validate())
	require.Equal(t, 1, config.Retry.MaxAttempts)

	config = DefaultConfig()
	config.BaseURL = "ftp://example.com"
	require.Error(t, config.Validate())

	config = DefaultConfig()
	config.HTTPTimeout = -time.Second
	require.Equal(t, ErrInvalidConfig, errors.GetKind(config.Validate()))
}

func TestRunScriptedResult(t *testing.T) {
	t.Parallel()

	endpoint, server := newTestPortal(t)
	c := newTestClient(t, newTestConfig(server.URL))

	samples := [][]int{{0, 1}, {1, 1}, {0, 0}, {1, 1}, {1, 1}}
	endpoint.Service().Script(consts.DefaultResourceID,
		api.Queued{},
		api.Finished{Result: map[string][][]int{"0": samples}},
	)

	ops := []api.Operation{
		api.GateRZ{Qubit: 0, Phi: 0.5},
		api.GateR{Qubit: 1, Phi: 0.25, Theta: 0.5},
		api.GateRXX{Qubits: []int{0, 1}, Theta: 0.5},
		api.Measure{},
	}
	qc, err := circuit.NewQuantumCircuit(circuit.NewEncoder(circuit.Options{}), ops, 2, 5)
	require.NoError(t, err)
	require.Equal(t, api.Circuit(ops), qc.QuantumCircuit)

	submission, err := circuit.Batch("scripted", qc)
	require.NoError(t, err)

	job, err := c.Run(context.Background(), consts.DefaultWorkspaceID, consts.DefaultResourceID, submission)
	require.NoError(t, err)

	result, err := job.Wait(context.Background(), fastPoll())
	require.NoError(t, err)
	require.Equal(t, map[int][][]int{0: samples}, result.Samples)

	counts, err := result.Counts(0, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"0x2": 1, "0x3": 3, "0x0": 1}, counts)
}
