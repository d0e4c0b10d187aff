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

package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/config"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	file1 = "2022-07-01T16_30_00.000000000Z.rcd"
	file2 = "2022-07-01T16_30_02.000000000Z.rcd"
	file3 = "2022-07-01T16_30_04.000000000Z.rcd"
)

var testRetry = config.Retry{MaxAttempts: 3}

type mockFileProcessor struct {
	mock.Mock
	processed []string
}

func (m *mockFileProcessor) Process(ctx context.Context, file *parser.StreamFile) (State, error) {
	m.processed = append(m.processed, file.Name)
	args := m.Called(ctx, file)
	return args.Get(0).(State), args.Error(1)
}

func TestPollInNameOrder(t *testing.T) {
	// given
	dir := createFiles(t, file3, file1, "2022-07-01T16_30_00.000000000Z_Balances.csv", file2)
	processor := &mockFileProcessor{}
	processor.On("Process", mock.Anything, mock.Anything).Return(Complete, nil)
	poller := NewPoller(dir, parser.RecordFileSuffix, time.Second, testRetry, processor)

	// when
	err := poller.Poll(context.Background())

	// then
	require.NoError(t, err)
	assert.Equal(t, []string{file1, file2, file3}, processor.processed)
}

func TestPollOnlyNewFiles(t *testing.T) {
	// given
	dir := createFiles(t, file1, file2)
	processor := &mockFileProcessor{}
	processor.On("Process", mock.Anything, mock.Anything).Return(Complete, nil)
	poller := NewPoller(dir, parser.RecordFileSuffix, time.Second, testRetry, processor)
	require.NoError(t, poller.Poll(context.Background()))
	createFile(t, dir, file3)

	// when
	err := poller.Poll(context.Background())

	// then
	require.NoError(t, err)
	assert.Equal(t, []string{file1, file2, file3}, processor.processed)
}

func TestPollMissingDirectory(t *testing.T) {
	processor := &mockFileProcessor{}
	poller := NewPoller(filepath.Join(t.TempDir(), "missing"), parser.RecordFileSuffix, time.Second, testRetry,
		processor)

	assert.NoError(t, poller.Poll(context.Background()))
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestPollRetry(t *testing.T) {
	// given
	dir := createFiles(t, file1, file2)
	processor := &mockFileProcessor{}
	processor.On("Process", mock.Anything, mock.Anything).Return(Error, errors.ErrDatabaseError).Once()
	processor.On("Process", mock.Anything, mock.Anything).Return(Complete, nil)
	poller := NewPoller(dir, parser.RecordFileSuffix, time.Second, testRetry, processor)

	// when
	err := poller.Poll(context.Background())

	// then
	require.NoError(t, err)
	assert.Equal(t, []string{file1, file1, file2}, processor.processed)
}

func TestPollRetriesExhausted(t *testing.T) {
	// given
	dir := createFiles(t, file1, file2)
	processor := &mockFileProcessor{}
	processor.On("Process", mock.Anything, mock.Anything).Return(Error, errors.ErrDatabaseError)
	poller := NewPoller(dir, parser.RecordFileSuffix, time.Second, testRetry, processor)

	// when
	err := poller.Poll(context.Background())

	// then
	assert.ErrorIs(t, err, errors.ErrDatabaseError)
	assert.Equal(t, []string{file1, file1, file1}, processor.processed)

	// when the failure is gone the file is picked up again
	processor.ExpectedCalls = nil
	processor.On("Process", mock.Anything, mock.Anything).Return(Complete, nil)
	err = poller.Poll(context.Background())

	// then
	require.NoError(t, err)
	assert.Equal(t, []string{file1, file1, file1, file1, file2}, processor.processed)
}

func TestPollNotRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "parse error", err: errors.NewParserErrorf(file1, "invalid")},
		{name: "hash mismatch", err: errors.Wrap(errors.ErrHashMismatch, file1)},
		{name: "entity type mismatch", err: errors.NewTypeMismatch("0.0.1001", 1, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := createFiles(t, file1, file2)
			processor := &mockFileProcessor{}
			processor.On("Process", mock.Anything, mock.Anything).Return(Error, tt.err)
			poller := NewPoller(dir, parser.RecordFileSuffix, time.Second, testRetry, processor)

			err := poller.Poll(context.Background())

			assert.Equal(t, tt.err, err)
			assert.Equal(t, []string{file1}, processor.processed)
		})
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	// given
	dir := createFiles(t, file1)
	processor := &mockFileProcessor{}
	processor.On("Process", mock.Anything, mock.Anything).Return(Complete, nil)
	poller := NewPoller(dir, parser.RecordFileSuffix, 10*time.Millisecond, testRetry, processor)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)

	// when
	go func() {
		done <- poller.Run(ctx)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	// then
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		assert.Fail(t, "poller did not stop")
	}
	assert.Equal(t, []string{file1}, processor.processed)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "INIT", Init.String())
	assert.Equal(t, "SKIP", Skip.String())
	assert.Equal(t, "STREAMING", Streaming.String())
	assert.Equal(t, "COMPLETE", Complete.String())
	assert.Equal(t, "ERROR", Error.String())
	assert.Equal(t, "UNKNOWN", State(100).String())
}

func createFiles(t *testing.T, names ...string) string {
	dir := t.TempDir()
	for _, name := range names {
		createFile(t, dir, name)
	}
	return dir
}

func createFile(t *testing.T, dir, name string) {
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{0x1}, 0644))
}
