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
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamMetricsCheck(t *testing.T) {
	streamMetrics := NewStreamMetrics()
	recordFile := &domain.RecordFile{ConsensusEnd: time.Now().UnixNano(), Count: 5, Name: "1.rcd"}

	assert.NoError(t, streamMetrics.Check(context.Background()))

	streamMetrics.OnError("2.rcd", errors.ErrHashMismatch)
	err := streamMetrics.Check(context.Background())
	assert.ErrorIs(t, err, errors.ErrHashMismatch)
	assert.Contains(t, err.Error(), "2.rcd")

	streamMetrics.OnFileComplete(recordFile)
	streamMetrics.OnFlush(5, time.Millisecond)
	assert.NoError(t, streamMetrics.Check(context.Background()))
}

func TestMetricsController(t *testing.T) {
	NewStreamMetrics().OnFileComplete(&domain.RecordFile{ConsensusEnd: time.Now().UnixNano(), Count: 3})
	routes := NewMetricsController().Routes()
	require.Len(t, routes, 1)

	req := httptest.NewRequest("GET", "http://localhost"+metricsPath, nil)
	recorder := httptest.NewRecorder()
	routes[0].HandlerFunc.ServeHTTP(recorder, req)

	body := recorder.Body.String()
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, strings.Contains(body, "hedera_mirror_importer_transactions"))
	assert.True(t, strings.Contains(body, `application="hedera-mirror-importer"`))
}
