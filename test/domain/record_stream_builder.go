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
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/parser"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

const (
	DefaultHapiVersion int32 = 27
	RecordFileVersion2 int32 = 2
)

// RecordStreamBuilder serializes record items into a record stream file
type RecordStreamBuilder struct {
	items    [][2][]byte
	prevHash []byte
	version  int32
}

func (b *RecordStreamBuilder) AddItem(
	body *services.TransactionBody,
	record *services.TransactionRecord,
) *RecordStreamBuilder {
	signedTransaction := &services.SignedTransaction{BodyBytes: MustMarshal(body)}
	transaction := &services.Transaction{SignedTransactionBytes: MustMarshal(signedTransaction)}
	return b.AddRawItem(MustMarshal(transaction), MustMarshal(record))
}

func (b *RecordStreamBuilder) AddRawItem(transactionBytes, recordBytes []byte) *RecordStreamBuilder {
	b.items = append(b.items, [2][]byte{transactionBytes, recordBytes})
	return b
}

func (b *RecordStreamBuilder) Version(version int32) *RecordStreamBuilder {
	b.version = version
	return b
}

// Build returns the stream file named after consensusStart
func (b *RecordStreamBuilder) Build(consensusStart int64) *parser.StreamFile {
	return &parser.StreamFile{Bytes: b.Bytes(), Name: RecordFileName(consensusStart)}
}

func (b *RecordStreamBuilder) Bytes() []byte {
	var buffer bytes.Buffer
	mustWrite(&buffer, b.version)
	mustWrite(&buffer, DefaultHapiVersion)
	buffer.WriteByte(1)
	buffer.Write(b.prevHash)
	for _, item := range b.items {
		buffer.WriteByte(2)
		mustWrite(&buffer, int32(len(item[0])))
		buffer.Write(item[0])
		mustWrite(&buffer, int32(len(item[1])))
		buffer.Write(item[1])
	}
	return buffer.Bytes()
}

func NewRecordStreamBuilder(prevHash []byte) *RecordStreamBuilder {
	if prevHash == nil {
		prevHash = make([]byte, 48)
	}
	return &RecordStreamBuilder{prevHash: prevHash, version: RecordFileVersion2}
}

// RecordFileName returns the record stream file name for the consensus instant
func RecordFileName(timestamp int64) string {
	return fmt.Sprintf("%s.rcd", time.Unix(0, timestamp).UTC().Format("2006-01-02T15_04_05.000000000Z"))
}

func mustWrite(buffer *bytes.Buffer, value int32) {
	if err := binary.Write(buffer, binary.BigEndian, value); err != nil {
		panic(err)
	}
}
