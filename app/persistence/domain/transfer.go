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
	cryptoTransferTableName = "crypto_transfer"
	nftTransferTableName    = "nft_transfer"
	nonFeeTransferTableName = "non_fee_transfer"
	tokenTransferTableName  = "token_transfer"
)

type CryptoTransfer struct {
	Amount             int64
	ConsensusTimestamp int64
	EntityId           EntityId
	IsApproval         bool
	PayerAccountId     EntityId
}

func (CryptoTransfer) TableName() string {
	return cryptoTransferTableName
}

// NonFeeTransfer is a transfer the transaction body requested explicitly, as opposed to the fee transfers the ledger
// adds to the record
type NonFeeTransfer struct {
	Amount             int64
	ConsensusTimestamp int64
	EntityId           EntityId
	PayerAccountId     EntityId
}

func (NonFeeTransfer) TableName() string {
	return nonFeeTransferTableName
}

type TokenTransfer struct {
	AccountId          EntityId
	Amount             int64
	ConsensusTimestamp int64
	IsApproval         bool
	PayerAccountId     EntityId
	TokenId            EntityId
}

func (TokenTransfer) TableName() string {
	return tokenTransferTableName
}

type NftTransfer struct {
	ConsensusTimestamp int64
	IsApproval         bool
	PayerAccountId     EntityId
	ReceiverAccountId  *EntityId
	SenderAccountId    *EntityId
	SerialNumber       int64
	TokenId            EntityId
}

func (NftTransfer) TableName() string {
	return nftTransferTableName
}
