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

import "github.com/jackc/pgtype"

const (
	cryptoAllowanceTableName = "crypto_allowance"
	nftAllowanceTableName    = "nft_allowance"
	tokenAllowanceTableName  = "token_allowance"
)

type CryptoAllowance struct {
	Amount         int64
	AmountGranted  int64
	Owner          EntityId `gorm:"primaryKey"`
	PayerAccountId EntityId
	Spender        EntityId         `gorm:"primaryKey"`
	TimestampRange pgtype.Int8range `gorm:"type:int8range"`
}

func (CryptoAllowance) TableName() string {
	return cryptoAllowanceTableName
}

type TokenAllowance struct {
	Amount         int64
	AmountGranted  int64
	Owner          EntityId `gorm:"primaryKey"`
	PayerAccountId EntityId
	Spender        EntityId         `gorm:"primaryKey"`
	TimestampRange pgtype.Int8range `gorm:"type:int8range"`
	TokenId        EntityId         `gorm:"primaryKey"`
}

func (TokenAllowance) TableName() string {
	return tokenAllowanceTableName
}

type NftAllowance struct {
	ApprovedForAll bool
	Owner          EntityId `gorm:"primaryKey"`
	PayerAccountId EntityId
	Spender        EntityId         `gorm:"primaryKey"`
	TimestampRange pgtype.Int8range `gorm:"type:int8range"`
	TokenId        EntityId         `gorm:"primaryKey"`
}

func (NftAllowance) TableName() string {
	return nftAllowanceTableName
}
