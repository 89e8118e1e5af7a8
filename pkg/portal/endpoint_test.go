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

package portal

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cortexlabs/qrun/pkg/consts"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const _testToken = "secret"

const _bellSubmission = `{
	"job_type": "quantum_circuit",
	"label": "bell",
	"payload": {"circuits": [{
		"number_of_qubits": 2,
		"repetitions": 5,
		"quantum_circuit": [
			{"operation": "R", "phi": 0.5, "theta": 0.5, "qubit": 0},
			{"operation": "RXX", "qubits": [0, 1], "theta": 0.5},
			{"operation": "MEASURE"}
		]
	}]}
}`

func newLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.FatalLevel)
	logger, err := config.Build()
	require.NoError(t, err)

	return logger.Sugar()
}

func newTestPortal(t *testing.T, config Config) (*Endpoint, *httptest.Server) {
	t.Helper()

	endpoint, err := New(config, newLogger(t))
	require.NoError(t, err)

	server := httptest.NewServer(endpoint.Router())
	t.Cleanup(server.Close)
	return endpoint, server
}

func doRequest(t *testing.T, method string, url string, body string) (int, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set(consts.AuthHeader, "Bearer "+_testToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBody
}

func TestEndpointJobLifecycle(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.Token = _testToken
	endpoint, server := newTestPortal(t, config)
	base := server.URL + consts.APIPathPrefix

	status, body := doRequest(t, "POST", base+"/submit/default/offline_simulator_no_noise", _bellSubmission)
	require.Equal(t, http.StatusOK, status, string(body))

	submitted, err := api.DecodeJobResponse(body)
	require.NoError(t, err)
	require.Equal(t, api.Queued{}, submitted.Response)
	require.Equal(t, "bell", submitted.Job.Label)
	require.Equal(t, "default", submitted.Job.WorkspaceID)

	expected := []api.JobStatus{api.StatusQueued, api.StatusOngoing, api.StatusFinished, api.StatusFinished}
	var finished api.Finished
	for _, expectedStatus := range expected {
		status, body = doRequest(t, "GET", base+"/result/"+submitted.Job.JobID.String(), "")
		require.Equal(t, http.StatusOK, status)
		decoded, err := api.DecodeJobResponse(body)
		require.NoError(t, err)
		require.Equal(t, expectedStatus, decoded.Response.Status())
		if f, ok := decoded.Response.(api.Finished); ok {
			if finished.Result != nil {
				require.Equal(t, finished, f)
			}
			finished = f
		}
	}

	require.Len(t, finished.Result, 1)
	require.Len(t, finished.Result["0"], 5)
	for _, shot := range finished.Result["0"] {
		require.Len(t, shot, 2)
	}

	stats := endpoint.Service().Stats()
	require.Equal(t, int64(1), stats.Submitted)
	require.Equal(t, int64(4), stats.Polls)
}

func TestEndpointUnknownJob(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.Token = _testToken
	_, server := newTestPortal(t, config)

	jobID := uuid.New()
	status, body := doRequest(t, "GET", server.URL+consts.APIPathPrefix+"/result/"+jobID.String(), "")
	require.Equal(t, http.StatusNotFound, status)
	require.JSONEq(t, `{"job_id": "`+jobID.String()+`", "message": "unknown job_id"}`, string(body))

	status, _ = doRequest(t, "GET", server.URL+consts.APIPathPrefix+"/result/not-a-uuid", "")
	require.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestEndpointEviction(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.Token = _testToken
	config.MaxJobs = 1
	endpoint, server := newTestPortal(t, config)
	base := server.URL + consts.APIPathPrefix

	_, body := doRequest(t, "POST", base+"/submit/default/offline_simulator_no_noise", _bellSubmission)
	first, err := api.DecodeJobResponse(body)
	require.NoError(t, err)
	_, body = doRequest(t, "POST", base+"/submit/default/offline_simulator_no_noise", _bellSubmission)
	second, err := api.DecodeJobResponse(body)
	require.NoError(t, err)

	status, _ := doRequest(t, "GET", base+"/result/"+first.Job.JobID.String(), "")
	require.Equal(t, http.StatusNotFound, status)
	status, _ = doRequest(t, "GET", base+"/result/"+second.Job.JobID.String(), "")
	require.Equal(t, http.StatusOK, status)

	require.Equal(t, int64(1), endpoint.Service().Stats().Evicted)
	require.Equal(t, 1, endpoint.Service().Stats().Stored)
}

func TestEndpointRejections(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.Token = _testToken
	_, server := newTestPortal(t, config)
	base := server.URL + consts.APIPathPrefix

	req, err := http.NewRequest("GET", base+"/workspaces", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	status, _ := doRequest(t, "POST", base+"/submit/nope/offline_simulator_no_noise", _bellSubmission)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, "POST", base+"/submit/default/ibex", _bellSubmission)
	require.Equal(t, http.StatusNotFound, status)

	cases := []struct {
		name string
		body string
		path string
	}{
		{
			"repeated qubit",
			`{"job_type": "quantum_circuit", "label": "", "payload": {"circuits": [{"number_of_qubits": 2, "repetitions": 1,
				"quantum_circuit": [{"operation": "RXX", "qubits": [1, 1], "theta": 0.25}]}]}}`,
			"body.payload.circuits.0.quantum_circuit.0.qubits",
		},
		{
			"unknown operation",
			`{"job_type": "quantum_circuit", "label": "", "payload": {"circuits": [{"number_of_qubits": 1, "repetitions": 1,
				"quantum_circuit": [{"operation": "H", "qubit": 0}]}]}}`,
			"body.payload.circuits.0.quantum_circuit.0",
		},
		{
			"too many repetitions",
			`{"job_type": "quantum_circuit", "label": "", "payload": {"circuits": [{"number_of_qubits": 1, "repetitions": 2001,
				"quantum_circuit": [{"operation": "MEASURE"}]}]}}`,
			"body.payload.circuits.0.repetitions",
		},
		{
			"zero repetitions",
			`{"job_type": "quantum_circuit", "label": "", "payload": {"circuits": [{"number_of_qubits": 1, "repetitions": 0,
				"quantum_circuit": [{"operation": "MEASURE"}]}]}}`,
			"body.payload.circuits.0.repetitions",
		},
		{
			"no circuits",
			`{"job_type": "quantum_circuit", "label": "", "payload": {"circuits": []}}`,
			"body.payload.circuits",
		},
	}

	for _, tc := range cases {
		status, body := doRequest(t, "POST", base+"/submit/default/offline_simulator_no_noise", tc.body)
		require.Equal(t, http.StatusUnprocessableEntity, status, tc.name)

		var validationErr api.HTTPValidationError
		require.NoError(t, json.Unmarshal(body, &validationErr), tc.name)
		require.Len(t, validationErr.Detail, 1, tc.name)
		require.Equal(t, tc.path, validationErr.Detail[0].Path(), tc.name)
	}
}

func TestEndpointScriptAndFailures(t *testing.T) {
	t.Parallel()

	endpoint, server := newTestPortal(t, DefaultConfig())
	base := server.URL + consts.APIPathPrefix

	endpoint.Service().Script(consts.DefaultResourceID, api.Ongoing{FinishedCount: 2}, api.Failed{Message: "device error"})
	_, body := doRequest(t, "POST", base+"/submit/default/"+consts.DefaultResourceID, _bellSubmission)
	submitted, err := api.DecodeJobResponse(body)
	require.NoError(t, err)

	_, body = doRequest(t, "GET", base+"/result/"+submitted.Job.JobID.String(), "")
	decoded, err := api.DecodeJobResponse(body)
	require.NoError(t, err)
	require.Equal(t, api.Ongoing{FinishedCount: 2}, decoded.Response)

	endpoint.FailNext(1, http.StatusServiceUnavailable)
	status, _ := doRequest(t, "GET", base+"/result/"+submitted.Job.JobID.String(), "")
	require.Equal(t, http.StatusServiceUnavailable, status)

	_, body = doRequest(t, "GET", base+"/result/"+submitted.Job.JobID.String(), "")
	decoded, err = api.DecodeJobResponse(body)
	require.NoError(t, err)
	require.Equal(t, api.Failed{Message: "device error"}, decoded.Response)
}

func TestEndpointMetrics(t *testing.T) {
	t.Parallel()

	endpoint, server := newTestPortal(t, DefaultConfig())

	status, _ := doRequest(t, "GET", server.URL+consts.APIPathPrefix+"/workspaces", "")
	require.Equal(t, http.StatusOK, status)
	_, _ = doRequest(t, "POST", server.URL+consts.APIPathPrefix+"/submit/default/"+consts.DefaultResourceID, _bellSubmission)

	require.Equal(t, float64(1), testutil.ToFloat64(endpoint.metrics.requestCount.WithLabelValues(_routeWorkspaces, "200")))
	require.Equal(t, float64(1), testutil.ToFloat64(endpoint.metrics.jobsSubmitted.WithLabelValues(consts.DefaultResourceID)))
	require.Equal(t, float64(1), testutil.ToFloat64(endpoint.metrics.jobsStored))

	status, body := doRequest(t, "GET", server.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(body), "qrun_portal_request_count")
	require.Contains(t, string(body), "qrun_portal_latency")
}
