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

import "github.com/hashgraph/hedera-sdk-go/v2/proto/services"

func AccountId(num int64) *services.AccountID {
	return &services.AccountID{Account: &services.AccountID_AccountNum{AccountNum: num}}
}

func ContractId(num int64) *services.ContractID {
	return &services.ContractID{Contract: &services.ContractID_ContractNum{ContractNum: num}}
}

func FileId(num int64) *services.FileID {
	return &services.FileID{FileNum: num}
}

func TokenId(num int64) *services.TokenID {
	return &services.TokenID{TokenNum: num}
}

func TopicId(num int64) *services.TopicID {
	return &services.TopicID{TopicNum: num}
}

func Timestamp(nanos int64) *services.Timestamp {
	return &services.Timestamp{Seconds: nanos / 1_000_000_000, Nanos: int32(nanos % 1_000_000_000)}
}

func TransactionId(payer, validStartNs int64) *services.TransactionID {
	return &services.TransactionID{AccountID: AccountId(payer), TransactionValidStart: Timestamp(validStartNs)}
}

// TransactionBody returns a body paid by payer, the caller sets the data variant
func TransactionBody(payer, validStartNs int64) *services.TransactionBody {
	return &services.TransactionBody{
		Memo:                     "memo",
		NodeAccountID:            AccountId(3),
		TransactionFee:           100_000,
		TransactionID:            TransactionId(payer, validStartNs),
		TransactionValidDuration: &services.Duration{Seconds: 120},
	}
}

// TransactionRecord returns a record with the status and fee transfers from payer to the node and the fee account
func TransactionRecord(status services.ResponseCodeEnum, consensusTimestamp, payer int64) *services.TransactionRecord {
	return &services.TransactionRecord{
		ConsensusTimestamp: Timestamp(consensusTimestamp),
		Receipt:            &services.TransactionReceipt{Status: status},
		TransactionFee:     100,
		TransactionHash:    []byte{0x1, 0x2, 0x3},
		TransferList: &services.TransferList{AccountAmounts: []*services.AccountAmount{
			{AccountID: AccountId(payer), Amount: -100},
			{AccountID: AccountId(3), Amount: 20},
			{AccountID: AccountId(98), Amount: 80},
		}},
	}
}
