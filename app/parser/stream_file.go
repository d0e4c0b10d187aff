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
	"strings"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
)

const (
	// timestampLayout is the consensus instant every stream file name starts with, ':' replaced by '_'
	timestampLayout = "2006-01-02T15_04_05.999999999Z"

	BalanceFileSuffix = "_Balances.csv"
	RecordFileSuffix  = ".rcd"
)

// StreamFile is a stream file already retrieved to local storage
type StreamFile struct {
	Bytes []byte
	Name  string
}

// ReadStreamFile loads the file at path
func ReadStreamFile(path string) (*StreamFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read stream file %s", path)
	}

	return &StreamFile{Bytes: data, Name: filepath.Base(path)}, nil
}

// Timestamp returns the consensus timestamp encoded in the file name
func (s *StreamFile) Timestamp() (int64, error) {
	return TimestampFromName(s.Name)
}

// TimestampFromName parses the consensus instant from a stream file name such as
// 2022-07-01T16_30_00.269913000Z.rcd or 2022-07-01T16_30_00.269913000Z_Balances.csv
func TimestampFromName(name string) (int64, error) {
	base := filepath.Base(name)
	end := strings.IndexByte(base, 'Z')
	if end == -1 {
		return 0, errors.NewParserErrorf(name, "file name has no timestamp")
	}

	instant, err := time.Parse(timestampLayout, base[:end+1])
	if err != nil {
		return 0, errors.NewParserError(name, err)
	}

	return instant.UnixNano(), nil
}
