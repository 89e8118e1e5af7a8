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
	"encoding/json"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/cortexlabs/qrun/pkg/consts"
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/lib/logging"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	_routeSubmit     = "submit"
	_routeResult     = "result"
	_routeWorkspaces = "workspaces"
	_routeMetrics    = "metrics"
)

// Endpoint wraps a portal Service with HTTP logic
type Endpoint struct {
	service Service
	token   string
	metrics *Metrics
	logger  *zap.SugaredLogger

	failuresLeft  atomic.Int64
	failureStatus atomic.Int64
}

// NewEndpoint creates and initializes a new Endpoint struct; an empty token disables authentication
func NewEndpoint(svc Service, token string, metrics *Metrics, logger *zap.SugaredLogger) *Endpoint {
	if metrics == nil {
		metrics = NewMetrics()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Endpoint{
		service: svc,
		token:   token,
		metrics: metrics,
		logger:  logger,
	}
}

// New builds a service and its endpoint from config
func New(config Config, logger *zap.SugaredLogger) (*Endpoint, error) {
	metrics := NewMetrics()
	svc, err := NewService(config, metrics, logger)
	if err != nil {
		return nil, err
	}
	return NewEndpoint(svc, config.Token, metrics, logger), nil
}

func (e *Endpoint) Service() Service {
	return e.service
}

// FailNext answers the next n requests with statusCode; statusCode 0 drops the connection without a response
func (e *Endpoint) FailNext(n int, statusCode int) {
	e.failureStatus.Store(int64(statusCode))
	e.failuresLeft.Store(int64(n))
}

// Router serves the portal API under /api/v1 and prometheus metrics under /metrics
func (e *Endpoint) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(e.injectFailures, e.recordMetrics)

	router.Handle("/metrics", e.metrics).Methods("GET").Name(_routeMetrics)

	apiRouter := router.PathPrefix(consts.APIPathPrefix).Subrouter()
	apiRouter.Use(e.authenticate)
	apiRouter.HandleFunc("/submit/{workspace}/{resource}", e.Submit).Methods("POST").Name(_routeSubmit)
	apiRouter.HandleFunc("/result/{job_id}", e.Result).Methods("GET").Name(_routeResult)
	apiRouter.HandleFunc("/workspaces", e.Workspaces).Methods("GET").Name(_routeWorkspaces)

	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(e.logger.Desugar())),
		handlers.PrintRecoveryStack(true),
	)(router)
}

// Submit is a handler for the job submission route
func (e *Endpoint) Submit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	workspaceID, resourceID := vars["workspace"], vars["resource"]

	body, err := ioutil.ReadAll(r.Body)
	defer func() {
		_ = r.Body.Close()
	}()
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "unable to read request body")
		return
	}

	response, err := e.service.Submit(workspaceID, resourceID, body)
	if err != nil {
		switch errors.GetKind(err) {
		case ErrUnknownWorkspace, ErrUnknownResource:
			respondDetail(w, http.StatusNotFound, errors.Message(err))
		case ErrInvalidSubmission:
			e.respond(w, http.StatusUnprocessableEntity, api.HTTPValidationError{Detail: validationDetails(err)})
		default:
			e.logger.Error(errors.Wrap(err, "failed to submit job"))
			respondDetail(w, http.StatusInternalServerError, errors.Message(err))
		}
		return
	}

	e.respond(w, http.StatusOK, response)
}

// Result is a handler for the job status route. Unknown ids are answered with 404 and the unknown job body.
func (e *Endpoint) Result(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(mux.Vars(r)["job_id"])
	if err != nil {
		e.respond(w, http.StatusUnprocessableEntity, api.HTTPValidationError{Detail: []api.ValidationError{{
			Loc:  []interface{}{"path", "job_id"},
			Msg:  "value is not a valid uuid",
			Type: "type_error.uuid",
		}}})
		return
	}

	response, ok := e.service.Result(jobID)
	if !ok {
		e.respond(w, http.StatusNotFound, response)
		return
	}
	e.respond(w, http.StatusOK, response)
}

// Workspaces is a handler for the workspace listing route
func (e *Endpoint) Workspaces(w http.ResponseWriter, r *http.Request) {
	e.respond(w, http.StatusOK, e.service.Workspaces())
}

func (e *Endpoint) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if e.token != "" && r.Header.Get(consts.AuthHeader) != "Bearer "+e.token {
			respondDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (e *Endpoint) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if e.failuresLeft.Dec() < 0 {
			e.failuresLeft.Store(0)
			next.ServeHTTP(w, r)
			return
		}

		statusCode := int(e.failureStatus.Load())
		if statusCode != 0 {
			respondDetail(w, statusCode, "injected failure")
			return
		}

		hijacker, ok := w.(http.Hijacker)
		if !ok {
			respondDetail(w, http.StatusInternalServerError, "injected failure")
			return
		}
		conn, _, err := hijacker.Hijack()
		if err == nil {
			_ = conn.Close()
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (e *Endpoint) recordMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(recorder, r)

		route := "unknown"
		if current := mux.CurrentRoute(r); current != nil && current.GetName() != "" {
			route = current.GetName()
		}
		e.metrics.HandleRequest(route, recorder.statusCode, time.Since(start))
	})
}

func (e *Endpoint) respond(w http.ResponseWriter, statusCode int, s interface{}) {
	if err := respondJSON(w, statusCode, s); err != nil {
		e.logger.Error(errors.Wrap(err, "failed to encode json response"))
	}
}

func respondDetail(w http.ResponseWriter, statusCode int, detail string) {
	_ = respondJSON(w, statusCode, map[string]string{"detail": detail})
}

func respondJSON(w http.ResponseWriter, statusCode int, s interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(s)
}
