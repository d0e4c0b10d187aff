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

package record

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/parser"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
)

const (
	HashLength = sha512.Size384

	VersionOne = 1
	VersionTwo = 2

	// headerLength covers the format version, the hapi version, the previous hash marker and the previous hash
	headerLength   = 4 + 4 + 1 + HashLength
	markerPrevHash = byte(1)
	markerRecord   = byte(2)
)

// Reader streams the record items of a v1 or v2 record stream file in consensus order
type Reader struct {
	consensusEnd   int64
	consensusStart int64
	count          int32
	done           bool
	file           *parser.StreamFile
	hapiVersion    int32
	prevHash       []byte
	reader         *bytes.Reader
	version        int32
}

// NewReader validates the header of the file and positions the reader at the first record item
func NewReader(file *parser.StreamFile) (*Reader, error) {
	if len(file.Bytes) < headerLength {
		return nil, errors.NewParserErrorf(file.Name, "file is too short for a record file header")
	}

	r := &Reader{file: file, reader: bytes.NewReader(file.Bytes)}
	r.version = r.readInt32()
	if r.version != VersionOne && r.version != VersionTwo {
		return nil, errors.NewParserErrorf(file.Name, "unsupported record file version %d", r.version)
	}

	r.hapiVersion = r.readInt32()
	if marker, _ := r.reader.ReadByte(); marker != markerPrevHash {
		return nil, errors.NewParserErrorf(file.Name, "expected previous hash marker, got %d", marker)
	}

	r.prevHash = make([]byte, HashLength)
	if _, err := io.ReadFull(r.reader, r.prevHash); err != nil {
		return nil, errors.NewParserError(file.Name, err)
	}

	return r, nil
}

// Next returns the next record item, io.EOF after the last one
func (r *Reader) Next() (*RecordItem, error) {
	if r.done {
		return nil, io.EOF
	}

	marker, err := r.reader.ReadByte()
	if err == io.EOF {
		r.done = true
		return nil, io.EOF
	}

	if marker != markerRecord {
		return nil, errors.NewParserErrorf(r.file.Name, "expected record marker at item %d, got %d", r.count, marker)
	}

	transactionBytes, err := r.readChunk()
	if err != nil {
		return nil, errors.NewParserError(r.file.Name, errors.Wrapf(err, "Failed to read transaction %d", r.count))
	}

	recordBytes, err := r.readChunk()
	if err != nil {
		return nil, errors.NewParserError(r.file.Name, errors.Wrapf(err, "Failed to read record %d", r.count))
	}

	item, err := NewRecordItem(transactionBytes, recordBytes, r.count)
	if err != nil {
		return nil, errors.NewParserError(r.file.Name, err)
	}

	if r.count != 0 && item.ConsensusTimestamp <= r.consensusEnd {
		return nil, errors.NewParserErrorf(
			r.file.Name,
			"consensus timestamp %d of item %d is not after %d",
			item.ConsensusTimestamp,
			r.count,
			r.consensusEnd,
		)
	}

	if r.count == 0 {
		r.consensusStart = item.ConsensusTimestamp
	}
	r.consensusEnd = item.ConsensusTimestamp
	r.count++
	return item, nil
}

// RecordFile returns the metadata of the fully read file. Index, load times and the node are left to the caller
func (r *Reader) RecordFile() (*domain.RecordFile, error) {
	if !r.done {
		return nil, errors.Wrapf(errors.ErrIllegalState, "record file %s is not fully read", r.file.Name)
	}

	if r.count == 0 {
		return nil, errors.NewParserErrorf(r.file.Name, "record file has no items")
	}

	fileHash := hex.EncodeToString(r.fileHash())
	return &domain.RecordFile{
		ConsensusEnd:     r.consensusEnd,
		ConsensusStart:   r.consensusStart,
		Count:            int64(r.count),
		FileHash:         fileHash,
		Hash:             fileHash,
		HapiVersionMajor: r.hapiVersion,
		Name:             r.file.Name,
		PrevHash:         hex.EncodeToString(r.prevHash),
		Version:          r.version,
	}, nil
}

// fileHash is the SHA-384 of the file for v1, and the SHA-384 of the header followed by the SHA-384 of the items for
// v2
func (r *Reader) fileHash() []byte {
	data := r.file.Bytes
	if r.version == VersionOne {
		hash := sha512.Sum384(data)
		return hash[:]
	}

	contentHash := sha512.Sum384(data[headerLength:])
	digest := sha512.New384()
	digest.Write(data[:headerLength])
	digest.Write(contentHash[:])
	return digest.Sum(nil)
}

func (r *Reader) readChunk() ([]byte, error) {
	var length int32
	if err := binary.Read(r.reader, binary.BigEndian, &length); err != nil {
		return nil, err
	}

	if length < 0 || int64(length) > int64(r.reader.Len()) {
		return nil, errors.Errorf("invalid length %d", length)
	}

	chunk := make([]byte, length)
	if _, err := io.ReadFull(r.reader, chunk); err != nil {
		return nil, err
	}

	return chunk, nil
}

// readInt32 reads a header field, the header length is checked upfront
func (r *Reader) readInt32() int32 {
	var value int32
	_ = binary.Read(r.reader, binary.BigEndian, &value)
	return value
}
