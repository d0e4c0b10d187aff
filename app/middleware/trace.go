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
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	xForwardedForHeader = "X-Forwarded-For"
	xRealIpHeader       = "X-Real-IP"
)

var internalPaths = map[string]bool{livenessPath: true, metricsPath: true, readinessPath: true}

// statusRecorder keeps the status code written to the wrapped ResponseWriter
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// TracingMiddleware logs every request, the probes and the metrics scrapes at debug level
func TracingMiddleware(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		start := time.Now()
		recorder := newStatusRecorder(responseWriter)

		inner.ServeHTTP(recorder, request)

		path := request.URL.RequestURI()
		entry := log.WithFields(log.Fields{
			"client":  clientIpAddress(request),
			"elapsed": time.Since(start),
			"status":  recorder.statusCode,
		})
		if internalPaths[path] {
			entry.Debugf("%s %s", request.Method, path)
		} else {
			entry.Infof("%s %s", request.Method, path)
		}
	})
}

func clientIpAddress(r *http.Request) string {
	if ipAddress := r.Header.Get(xRealIpHeader); ipAddress != "" {
		return ipAddress
	}

	if ipAddress := r.Header.Get(xForwardedForHeader); ipAddress != "" {
		return ipAddress
	}

	ipAddress, _, _ := net.SplitHostPort(r.RemoteAddr)
	return ipAddress
}
