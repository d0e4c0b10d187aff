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

package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampFromName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{name: "record file", input: "2022-07-01T16_30_00.269913000Z.rcd", expected: 1656693000269913000},
		{name: "balance file", input: "2022-07-01T16_30_00.269913000Z_Balances.csv", expected: 1656693000269913000},
		{name: "whole seconds", input: "2022-07-01T16_30_00Z.rcd", expected: 1656693000000000000},
		{name: "with directory", input: "/data/2022-07-01T16_30_00.000000001Z.rcd", expected: 1656693000000000001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := TimestampFromName(tt.input)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestTimestampFromNameInvalid(t *testing.T) {
	for _, name := range []string{"foobar.rcd", "2022-07-01 16:30:00Z.rcd", ""} {
		t.Run(name, func(t *testing.T) {
			_, err := TimestampFromName(name)

			assert.Error(t, err)
			assert.True(t, errors.IsParseError(err))
		})
	}
}

func TestReadStreamFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2022-07-01T16_30_00.269913000Z.rcd")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0600))

	file, err := ReadStreamFile(path)

	assert.NoError(t, err)
	assert.Equal(t, "2022-07-01T16_30_00.269913000Z.rcd", file.Name)
	assert.Equal(t, []byte{1, 2, 3}, file.Bytes)
	timestamp, err := file.Timestamp()
	assert.NoError(t, err)
	assert.Equal(t, int64(1656693000269913000), timestamp)
}

func TestReadStreamFileNotFound(t *testing.T) {
	file, err := ReadStreamFile(filepath.Join(t.TempDir(), "missing.rcd"))

	assert.Error(t, err)
	assert.Nil(t, file)
}
