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
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"google.golang.org/protobuf/proto"
)

// StorageChange is a contract storage slot access reported by the sidecar of a contract execution. A nil ValueWritten
// is a read
type StorageChange struct {
	ContractId   *services.ContractID
	Slot         []byte
	ValueRead    []byte
	ValueWritten []byte
}

// RecordItem is one decoded (transaction, record) pair of a record stream file
type RecordItem struct {
	ConsensusTimestamp int64
	Index              int32
	Record             *services.TransactionRecord
	StateChanges       []StorageChange
	Transaction        *services.Transaction
	TransactionBody    *services.TransactionBody
	TransactionBytes   []byte
	TransactionType    int16
	// KnownType is false when TransactionType was recovered from the unknown fields of the body
	KnownType bool
}

// NewRecordItem decodes the serialized transaction and record at position index of its file
func NewRecordItem(transactionBytes, recordBytes []byte, index int32) (*RecordItem, error) {
	transaction := &services.Transaction{}
	if err := proto.Unmarshal(transactionBytes, transaction); err != nil {
		return nil, errors.Wrap(err, "Failed to decode transaction")
	}

	body, err := decodeTransactionBody(transaction)
	if err != nil {
		return nil, err
	}

	record := &services.TransactionRecord{}
	if err = proto.Unmarshal(recordBytes, record); err != nil {
		return nil, errors.Wrap(err, "Failed to decode transaction record")
	}

	if record.GetConsensusTimestamp() == nil {
		return nil, errors.Errorf("Transaction record at index %d has no consensus timestamp", index)
	}

	if record.GetReceipt() == nil {
		return nil, errors.Errorf("Transaction record at index %d has no receipt", index)
	}

	transactionType, known := GetTransactionType(body)
	return &RecordItem{
		ConsensusTimestamp: TimestampToNanos(record.GetConsensusTimestamp()),
		Index:              index,
		KnownType:          known,
		Record:             record,
		Transaction:        transaction,
		TransactionBody:    body,
		TransactionBytes:   transactionBytes,
		TransactionType:    transactionType,
	}, nil
}

// decodeTransactionBody supports the signed transaction wrapper and the deprecated body and body bytes fields
func decodeTransactionBody(transaction *services.Transaction) (*services.TransactionBody, error) {
	bodyBytes := transaction.GetBodyBytes()
	if len(transaction.GetSignedTransactionBytes()) != 0 {
		signedTransaction := &services.SignedTransaction{}
		if err := proto.Unmarshal(transaction.GetSignedTransactionBytes(), signedTransaction); err != nil {
			return nil, errors.Wrap(err, "Failed to decode signed transaction")
		}
		bodyBytes = signedTransaction.GetBodyBytes()
	} else if len(bodyBytes) == 0 && transaction.GetBody() != nil {
		return transaction.GetBody(), nil
	}

	if len(bodyBytes) == 0 {
		return nil, errors.New("Transaction has no body")
	}

	body := &services.TransactionBody{}
	if err := proto.Unmarshal(bodyBytes, body); err != nil {
		return nil, errors.Wrap(err, "Failed to decode transaction body")
	}

	return body, nil
}

// IsSuccessful reports whether the receipt status allows state mutations
func (r *RecordItem) IsSuccessful() bool {
	return domain.IsSuccessfulResult(r.Result())
}

// Result returns the receipt status code
func (r *RecordItem) Result() int16 {
	return int16(r.Record.GetReceipt().GetStatus())
}

// PayerAccountId returns the account of the transaction id, which pays the fees
func (r *RecordItem) PayerAccountId() *services.AccountID {
	return r.TransactionBody.GetTransactionID().GetAccountID()
}

// ValidStartNs returns the valid start of the transaction id in nanoseconds
func (r *RecordItem) ValidStartNs() int64 {
	return TimestampToNanos(r.TransactionBody.GetTransactionID().GetTransactionValidStart())
}

// TimestampToNanos converts a protobuf timestamp to nanoseconds since epoch, 0 for nil
func TimestampToNanos(timestamp *services.Timestamp) int64 {
	if timestamp == nil {
		return 0
	}

	return timestamp.GetSeconds()*1_000_000_000 + int64(timestamp.GetNanos())
}
