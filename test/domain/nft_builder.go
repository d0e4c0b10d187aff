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

type NftBuilder struct {
	dbClient   interfaces.DbClient
	historical bool
	nft        domain.Nft
}

func (b *NftBuilder) AccountId(accountId int64) *NftBuilder {
	b.nft.AccountId = domain.MustDecodeEntityId(accountId).Ptr()
	return b
}

func (b *NftBuilder) Deleted(deleted bool) *NftBuilder {
	b.nft.Deleted = &deleted
	return b
}

func (b *NftBuilder) Historical(historical bool) *NftBuilder {
	b.historical = historical
	return b
}

func (b *NftBuilder) ModifiedTimestamp(timestamp int64) *NftBuilder {
	b.nft.TimestampRange = domain.NewTimestampRange(timestamp)
	return b
}

func (b *NftBuilder) TimestampRange(lowerInclusive, upperExclusive int64) *NftBuilder {
	b.nft.TimestampRange = domain.NewClosedTimestampRange(lowerInclusive, upperExclusive)
	return b
}

func (b *NftBuilder) Persist() domain.Nft {
	tableName := b.nft.TableName()
	if b.historical {
		tableName += "_history"
	}
	b.dbClient.GetDb().Table(tableName).Create(&b.nft)
	return b.nft
}

func NewNftBuilder(dbClient interfaces.DbClient, tokenId, serialNumber, timestamp int64) *NftBuilder {
	nft := domain.Nft{
		CreatedTimestamp: &timestamp,
		SerialNumber:     serialNumber,
		TimestampRange:   domain.NewTimestampRange(timestamp),
		TokenId:          domain.MustDecodeEntityId(tokenId),
	}
	return &NftBuilder{dbClient: dbClient, nft: nft}
}
