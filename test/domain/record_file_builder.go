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

import (
	"fmt"
	"strings"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
)

type RecordFileBuilder struct {
	dbClient   interfaces.DbClient
	recordFile domain.RecordFile
}

func (b *RecordFileBuilder) Hash(hash string) *RecordFileBuilder {
	b.recordFile.FileHash = hash
	b.recordFile.Hash = hash
	return b
}

func (b *RecordFileBuilder) Index(index int64) *RecordFileBuilder {
	b.recordFile.Index = index
	return b
}

func (b *RecordFileBuilder) Name(name string) *RecordFileBuilder {
	b.recordFile.Name = name
	return b
}

func (b *RecordFileBuilder) PrevHash(prevHash string) *RecordFileBuilder {
	b.recordFile.PrevHash = prevHash
	return b
}

func (b *RecordFileBuilder) Persist() domain.RecordFile {
	b.dbClient.GetDb().Create(&b.recordFile)
	return b.recordFile
}

func NewRecordFileBuilder(dbClient interfaces.DbClient, consensusStart, consensusEnd int64) *RecordFileBuilder {
	hash := strings.Repeat(fmt.Sprintf("%02x", consensusEnd%256), 48)
	recordFile := domain.RecordFile{
		ConsensusEnd:   consensusEnd,
		ConsensusStart: consensusStart,
		Count:          1,
		FileHash:       hash,
		Hash:           hash,
		Index:          consensusEnd,
		LoadEnd:        consensusEnd + 10,
		LoadStart:      consensusEnd + 1,
		Name:           fmt.Sprintf("record_file_%d.rcd", consensusEnd),
		PrevHash:       strings.Repeat("0", 96),
		Version:        2,
	}
	return &RecordFileBuilder{dbClient: dbClient, recordFile: recordFile}
}
