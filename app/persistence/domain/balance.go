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
	accountBalanceFileTableName = "account_balance_file"
	accountBalanceTableName     = "account_balance"
	tokenBalanceTableName       = "token_balance"
)

type AccountBalanceFile struct {
	ConsensusTimestamp int64 `gorm:"primaryKey"`
	Count              int64
	FileHash           string
	LoadEnd            int64
	LoadStart          int64
	Name               string
	NodeAccountId      *EntityId
	TimeOffset         int32
}

func (AccountBalanceFile) TableName() string {
	return accountBalanceFileTableName
}

type AccountBalance struct {
	AccountId          EntityId `gorm:"primaryKey"`
	Balance            int64
	ConsensusTimestamp int64 `gorm:"primaryKey"`
}

func (AccountBalance) TableName() string {
	return accountBalanceTableName
}

type TokenBalance struct {
	AccountId          EntityId `gorm:"primaryKey"`
	Balance            int64
	ConsensusTimestamp int64    `gorm:"primaryKey"`
	TokenId            EntityId `gorm:"primaryKey"`
}

func (TokenBalance) TableName() string {
	return tokenBalanceTableName
}
