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

const (
	// TransactionResultSuccess is ResponseCodeEnum SUCCESS
	TransactionResultSuccess int16 = 22
	// TransactionResultFeeScheduleFilePartUploaded is ResponseCodeEnum FEE_SCHEDULE_FILE_PART_UPLOADED
	TransactionResultFeeScheduleFilePartUploaded int16 = 104
	// TransactionResultSuccessButMissingExpectedOperation is ResponseCodeEnum SUCCESS_BUT_MISSING_EXPECTED_OPERATION
	TransactionResultSuccessButMissingExpectedOperation int16 = 220

	transactionTableName = "transaction"
)

// IsSuccessfulResult reports whether the transaction result code is one of the success codes
func IsSuccessfulResult(result int16) bool {
	return result == TransactionResultSuccess ||
		result == TransactionResultFeeScheduleFilePartUploaded ||
		result == TransactionResultSuccessButMissingExpectedOperation
}

type Transaction struct {
	ConsensusTimestamp   int64 `gorm:"primaryKey"`
	ChargedTxFee         int64
	EntityId             *EntityId
	Index                int32
	InitialBalance       int64
	MaxFee               int64
	Memo                 []byte
	NodeAccountId        *EntityId
	Nonce                int32
	PayerAccountId       EntityId
	Result               int16
	Scheduled            bool
	TransactionBytes     []byte
	TransactionHash      []byte
	Type                 int16
	ValidDurationSeconds *int64
	ValidStartNs         int64
}

func (Transaction) TableName() string {
	return transactionTableName
}
