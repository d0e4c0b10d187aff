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

const recordFileTableName = "record_file"

// RecordFile is a processed record stream file, the unit of ingestion and the block seen by the EVM
type RecordFile struct {
	ConsensusEnd     int64 `gorm:"primaryKey"`
	ConsensusStart   int64
	Count            int64
	FileHash         string
	Hash             string
	HapiVersionMajor int32
	HapiVersionMinor int32
	HapiVersionPatch int32
	Index            int64
	LoadEnd          int64
	LoadStart        int64
	Name             string
	NodeAccountId    *EntityId
	PrevHash         string
	Version          int32
}

func (RecordFile) TableName() string {
	return recordFileTableName
}
