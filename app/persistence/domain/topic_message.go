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

package domain

const topicMessageTableName = "topic_message"

type TopicMessage struct {
	ChunkNum             *int32
	ChunkTotal           *int32
	ConsensusTimestamp   int64 `gorm:"primaryKey"`
	InitialTransactionId []byte
	Message              []byte
	PayerAccountId       EntityId
	RealmNum             int64
	RunningHash          []byte
	RunningHashVersion   int32
	SequenceNumber       int64
	TopicId              EntityId
	TopicNum             int64
	ValidStartTimestamp  *int64
}

func (TopicMessage) TableName() string {
	return topicMessageTableName
}
