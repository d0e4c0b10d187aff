/*
 * Copyright (C) 2019-2025 Hedera Hashgraph, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coinbase/rosetta-sdk-go/server"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/weaveworks/common/middleware"
)

const (
	application = "hedera-mirror-importer"
	metricsPath = "/metrics"

	statusFailure = "failure"
	statusSuccess = "success"
)

var (
	sizeBuckets = []float64{512, 1024, 10 * 1024, 25 * 1024, 50 * 1024}

	requestBytesHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hedera_mirror_importer_request_bytes",
		Buckets: sizeBuckets,
		Help:    "Size (in bytes) of messages received in the request.",
	}, []string{"method", "route"})

	requestDurationHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hedera_mirror_importer_request_duration",
		Buckets: []float64{.1, .25, .5, 1, 2.5, 5},
		Help:    "Time (in seconds) spent serving HTTP requests.",
	}, []string{"method", "route", "status_code", "ws"})

	requestInflightGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hedera_mirror_importer_request_inflight",
		Help: "Current number of inflight HTTP requests.",
	}, []string{"method", "route"})

	responseBytesHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hedera_mirror_importer_response_bytes",
		Buckets: sizeBuckets,
		Help:    "Size (in bytes) of messages sent in response.",
	}, []string{"method", "route"})

	batchFlushHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hedera_mirror_importer_batch_flush_duration",
		Buckets: []float64{.01, .05, .1, .5, 1, 5},
		Help:    "Time (in seconds) spent writing a batch of transactions.",
	})

	streamFileCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hedera_mirror_importer_stream_files",
		Help: "Number of record files processed.",
	}, []string{"status"})

	streamLatencyHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hedera_mirror_importer_stream_latency",
		Buckets: []float64{1, 2, 5, 10, 30, 60, 300},
		Help:    "Time (in seconds) between the consensus end of a record file and its commit.",
	})

	transactionCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hedera_mirror_importer_transactions",
		Help: "Number of transactions committed.",
	})
)

func init() {
	register := prometheus.WrapRegistererWith(prometheus.Labels{"application": application}, prometheus.DefaultRegisterer)
	register.MustRegister(requestBytesHistogram)
	register.MustRegister(requestDurationHistogram)
	register.MustRegister(requestInflightGauge)
	register.MustRegister(responseBytesHistogram)
	register.MustRegister(batchFlushHistogram)
	register.MustRegister(streamFileCounter)
	register.MustRegister(streamLatencyHistogram)
	register.MustRegister(transactionCounter)
}

// metricsController holds data used to serve metric requests
type metricsController struct {
}

// NewMetricsController constructs a new MetricsController object
func NewMetricsController() server.Router {
	return &metricsController{}
}

// Routes returns the metrics controller routes
func (c *metricsController) Routes() server.Routes {
	return server.Routes{
		{
			"metrics",
			"GET",
			metricsPath,
			promhttp.Handler().ServeHTTP,
		},
	}
}

// MetricsMiddleware instruments HTTP requests with request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return middleware.Instrument{
		Duration:         requestDurationHistogram,
		InflightRequests: requestInflightGauge,
		RequestBodySize:  requestBytesHistogram,
		ResponseBodySize: responseBytesHistogram,
		RouteMatcher:     next.(middleware.RouteMatcher),
	}.Wrap(next)
}

// StreamMetrics records the outcome of every record file and batch flush. It also reports the record stream as
// unhealthy while the latest processed file failed
type StreamMetrics struct {
	lastError error
	lastFile  string
	mutex     sync.RWMutex
}

func NewStreamMetrics() *StreamMetrics {
	return &StreamMetrics{}
}

func (s *StreamMetrics) OnFileComplete(recordFile *domain.RecordFile) {
	streamFileCounter.WithLabelValues(statusSuccess).Inc()
	transactionCounter.Add(float64(recordFile.Count))
	streamLatencyHistogram.Observe(time.Since(time.Unix(0, recordFile.ConsensusEnd)).Seconds())

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.lastError = nil
	s.lastFile = recordFile.Name
}

func (s *StreamMetrics) OnError(fileName string, err error) {
	streamFileCounter.WithLabelValues(statusFailure).Inc()

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.lastError = err
	s.lastFile = fileName
}

// OnFlush observes the duration of a batch flush
func (s *StreamMetrics) OnFlush(_ int, elapsed time.Duration) {
	batchFlushHistogram.Observe(elapsed.Seconds())
}

// Check fails while the latest processed record file failed
func (s *StreamMetrics) Check(context.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.lastError != nil {
		return errors.Wrapf(s.lastError, "record file %s failed", s.lastFile)
	}

	return nil
}
