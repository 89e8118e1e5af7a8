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
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are registered on their own registry, so several portals can run in one process
type Metrics struct {
	handler       http.Handler
	latencies     *prometheus.HistogramVec
	requestCount  *prometheus.CounterVec
	jobsSubmitted *prometheus.CounterVec
	jobsStored    prometheus.Gauge
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	return &Metrics{
		handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		latencies: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name: "qrun_portal_latency",
			Help: "Histogram of the portal request latencies in seconds",
		}, []string{"route"}),
		requestCount: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "qrun_portal_request_count",
			Help: "Request count of the portal",
		}, []string{"route", "status_code"}),
		jobsSubmitted: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "qrun_portal_jobs_submitted",
			Help: "Number of accepted jobs",
		}, []string{"resource"}),
		jobsStored: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "qrun_portal_jobs_stored",
			Help: "Number of jobs the portal still knows about",
		}),
	}
}

func (m *Metrics) HandleRequest(route string, statusCode int, duration time.Duration) {
	m.latencies.WithLabelValues(route).Observe(duration.Seconds())
	m.requestCount.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
}

func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
