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
	entityTableName        = "entity"
	entityHistoryTableName = "entity_history"
)

// Entity is the current version of an account, contract, file, topic, token or schedule. Nil pointer and nil slice
// fields are unset, an empty non-nil key slice is an explicitly empty key
type Entity struct {
	Alias               []byte
	AutoRenewAccountId  *EntityId
	AutoRenewPeriod     *int64
	Balance             *int64
	BalanceTimestamp    *int64
	CreatedTimestamp    *int64
	Deleted             *bool
	EvmAddress          []byte
	ExpirationTimestamp *int64
	Id                  EntityId `gorm:"primaryKey"`
	Key                 []byte
	Memo                *string
	Num                 int64
	ProxyAccountId      *EntityId
	PublicKey           *string
	Realm               int64
	Shard               int64
	SubmitKey           []byte
	TimestampRange      pgtype.Int8range `gorm:"type:int8range"`
	Type                int16
}

func (Entity) TableName() string {
	return entityTableName
}

// GetModifiedTimestamp returns the consensus timestamp at which this version became effective
func (e *Entity) GetModifiedTimestamp() int64 {
	return GetTimestampRangeLower(e.TimestampRange)
}

// IsDeleted reports whether the entity is marked deleted
func (e *Entity) IsDeleted() bool {
	return e.Deleted != nil && *e.Deleted
}

// NewEntity creates an entity mutation for id effective at consensusTimestamp
func NewEntity(id EntityId, entityType int16, consensusTimestamp int64) *Entity {
	return &Entity{
		Id:             id,
		Num:            id.EntityNum,
		Realm:          id.RealmNum,
		Shard:          id.ShardNum,
		TimestampRange: NewTimestampRange(consensusTimestamp),
		Type:           entityType,
	}
}
