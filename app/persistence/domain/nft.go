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

const nftTableName = "nft"

// Nft is a unique token instance. Spender and DelegatingSpender are replaced on every version, the rest of the nil
// fields are unset
type Nft struct {
	AccountId         *EntityId
	CreatedTimestamp  *int64
	DelegatingSpender *EntityId
	Deleted           *bool
	Metadata          []byte
	SerialNumber      int64 `gorm:"primaryKey"`
	Spender           *EntityId
	TimestampRange    pgtype.Int8range `gorm:"type:int8range"`
	TokenId           EntityId         `gorm:"primaryKey"`
}

func (Nft) TableName() string {
	return nftTableName
}
