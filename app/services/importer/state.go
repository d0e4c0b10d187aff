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
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
)

// State is the processing state of a stream file
type State int

const (
	Init State = iota
	Skip
	Streaming
	Complete
	Error
)

var stateNames = map[State]string{
	Init:      "INIT",
	Skip:      "SKIP",
	Streaming: "STREAMING",
	Complete:  "COMPLETE",
	Error:     "ERROR",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return "UNKNOWN"
}

// Listener is notified of the outcome of every record file that was not skipped
type Listener interface {
	OnFileComplete(recordFile *domain.RecordFile)
	OnError(fileName string, err error)
}

type compositeListener []Listener

func (c compositeListener) OnFileComplete(recordFile *domain.RecordFile) {
	for _, listener := range c {
		listener.OnFileComplete(recordFile)
	}
}

func (c compositeListener) OnError(fileName string, err error) {
	for _, listener := range c {
		listener.OnError(fileName, err)
	}
}
