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

import (
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
)

// Entity type codes seeded by the schema migration
const (
	AccountType  int16 = 1
	ContractType int16 = 2
	FileType     int16 = 3
	TopicType    int16 = 4
	TokenType    int16 = 5
	ScheduleType int16 = 6
)

type EntityBuilder struct {
	dbClient   interfaces.DbClient
	entity     domain.Entity
	historical bool
}

func (b *EntityBuilder) Alias(alias []byte) *EntityBuilder {
	b.entity.Alias = alias
	return b
}

func (b *EntityBuilder) Balance(balance int64) *EntityBuilder {
	b.entity.Balance = &balance
	return b
}

func (b *EntityBuilder) Deleted(deleted bool) *EntityBuilder {
	b.entity.Deleted = &deleted
	return b
}

func (b *EntityBuilder) EvmAddress(evmAddress []byte) *EntityBuilder {
	b.entity.EvmAddress = evmAddress
	return b
}

func (b *EntityBuilder) Historical(historical bool) *EntityBuilder {
	b.historical = historical
	return b
}

func (b *EntityBuilder) Key(key []byte) *EntityBuilder {
	b.entity.Key = key
	return b
}

func (b *EntityBuilder) Memo(memo string) *EntityBuilder {
	b.entity.Memo = &memo
	return b
}

func (b *EntityBuilder) ModifiedTimestamp(timestamp int64) *EntityBuilder {
	b.entity.TimestampRange = domain.NewTimestampRange(timestamp)
	return b
}

func (b *EntityBuilder) TimestampRange(lowerInclusive, upperExclusive int64) *EntityBuilder {
	b.entity.TimestampRange = domain.NewClosedTimestampRange(lowerInclusive, upperExclusive)
	return b
}

func (b *EntityBuilder) Persist() domain.Entity {
	tableName := b.entity.TableName()
	if b.historical {
		tableName += "_history"
	}
	b.dbClient.GetDb().Table(tableName).Create(&b.entity)
	return b.entity
}

func NewEntityBuilder(dbClient interfaces.DbClient, id, timestamp int64, entityType int16) *EntityBuilder {
	entityId := domain.MustDecodeEntityId(id)
	entity := domain.NewEntity(entityId, entityType, timestamp)
	entity.CreatedTimestamp = &timestamp
	return &EntityBuilder{dbClient: dbClient, entity: *entity}
}
