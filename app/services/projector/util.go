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

package projector

import (
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/parser/record"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	log "github.com/sirupsen/logrus"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func durationSeconds(duration *services.Duration) *int64 {
	if duration == nil {
		return nil
	}

	seconds := duration.GetSeconds()
	return &seconds
}

func timestampNanos(timestamp *services.Timestamp) *int64 {
	if timestamp == nil {
		return nil
	}

	nanos := record.TimestampToNanos(timestamp)
	return &nanos
}

func stringValue(value *wrapperspb.StringValue) *string {
	if value == nil {
		return nil
	}

	s := value.GetValue()
	return &s
}

func int64Ptr(value int64) *int64 {
	return &value
}

func boolPtr(value bool) *bool {
	return &value
}

func stringPtr(value string) *string {
	return &value
}

// marshalMessage serializes a key or key list. An absent message is nil, a present but empty one is an empty non-nil
// slice
func marshalMessage(message proto.Message, isNil bool) []byte {
	if isNil {
		return nil
	}

	data, err := proto.Marshal(message)
	if err != nil {
		log.Warnf("Failed to serialize %s: %s", message.ProtoReflect().Descriptor().Name(), err)
		return nil
	}

	if data == nil {
		return []byte{}
	}

	return data
}

func marshalKey(key *services.Key) []byte {
	return marshalMessage(key, key == nil)
}

func marshalKeyList(keys *services.KeyList) []byte {
	return marshalMessage(keys, keys == nil)
}
