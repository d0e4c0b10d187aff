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
	contractResultTableName      = "contract_result"
	contractStateChangeTableName = "contract_state_change"
	contractStateTableName       = "contract_state"
)

type ContractResult struct {
	Amount             int64
	CallResult         []byte
	ConsensusTimestamp int64 `gorm:"primaryKey"`
	ContractId         EntityId
	ErrorMessage       *string
	FunctionParameters []byte
	GasLimit           int64
	GasUsed            *int64
	PayerAccountId     EntityId
}

func (ContractResult) TableName() string {
	return contractResultTableName
}

// ContractState is the current value of a contract storage slot
type ContractState struct {
	ContractId        EntityId `gorm:"primaryKey"`
	CreatedTimestamp  int64
	ModifiedTimestamp int64
	Slot              []byte `gorm:"primaryKey"`
	Value             []byte
}

func (ContractState) TableName() string {
	return contractStateTableName
}

// ContractStateChange is a storage slot read or write performed by a contract execution. A nil ValueWritten is a read
type ContractStateChange struct {
	ConsensusTimestamp int64    `gorm:"primaryKey"`
	ContractId         EntityId `gorm:"primaryKey"`
	Migration          bool
	PayerAccountId     EntityId
	Slot               []byte `gorm:"primaryKey"`
	ValueRead          []byte
	ValueWritten       []byte
}

func (ContractStateChange) TableName() string {
	return contractStateChangeTableName
}
