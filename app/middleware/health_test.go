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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/config"
	"github.com/hellofresh/health-go/v4"
	"github.com/stretchr/testify/require"
)

func healthy(context.Context) error {
	return nil
}

func TestLiveness(t *testing.T) {
	healthController, err := NewHealthController(config.Db{}, healthy)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "http://localhost"+livenessPath, nil)
	recorder := newStatusRecorder(httptest.NewRecorder())
	recorder.statusCode = http.StatusBadGateway
	healthController.Routes()[0].HandlerFunc.ServeHTTP(recorder, req)

	var check health.Check
	err = json.Unmarshal(recorder.body, &check)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, recorder.statusCode)
	require.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	require.Equal(t, health.StatusOK, check.Status)
}

func TestReadinessDatabaseUnavailable(t *testing.T) {
	healthController, err := NewHealthController(config.Db{}, healthy)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "http://localhost"+readinessPath, nil)
	recorder := newStatusRecorder(httptest.NewRecorder())
	healthController.Routes()[1].HandlerFunc.ServeHTTP(recorder, req)

	var check health.Check
	err = json.Unmarshal(recorder.body, &check)
	require.NoError(t, err)
	require.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	require.Equal(t, health.StatusUnavailable, check.Status)
	require.Equal(t, http.StatusServiceUnavailable, recorder.statusCode)
	require.Contains(t, check.Failures, "postgresql")
}
