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
	"fmt"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
)

type TokenBuilder struct {
	dbClient   interfaces.DbClient
	historical bool
	token      domain.Token
}

func (b *TokenBuilder) FreezeKey(freezeKey []byte, freezeDefault bool) *TokenBuilder {
	b.token.FreezeDefault = &freezeDefault
	b.token.FreezeKey = freezeKey
	return b
}

func (b *TokenBuilder) Historical(historical bool) *TokenBuilder {
	b.historical = historical
	return b
}

func (b *TokenBuilder) KycKey(kycKey []byte) *TokenBuilder {
	b.token.KycKey = kycKey
	return b
}

func (b *TokenBuilder) ModifiedTimestamp(timestamp int64) *TokenBuilder {
	b.token.TimestampRange = domain.NewTimestampRange(timestamp)
	return b
}

func (b *TokenBuilder) TimestampRange(lowerInclusive, upperExclusive int64) *TokenBuilder {
	b.token.TimestampRange = domain.NewClosedTimestampRange(lowerInclusive, upperExclusive)
	return b
}

func (b *TokenBuilder) TotalSupply(totalSupply int64) *TokenBuilder {
	b.token.TotalSupply = &totalSupply
	return b
}

func (b *TokenBuilder) Type(tokenType string) *TokenBuilder {
	b.token.Type = &tokenType
	return b
}

func (b *TokenBuilder) Persist() domain.Token {
	tableName := b.token.TableName()
	if b.historical {
		tableName += "_history"
	}
	b.dbClient.GetDb().Table(tableName).Create(&b.token)
	return b.token
}

func NewTokenBuilder(dbClient interfaces.DbClient, tokenId, createdTimestamp, treasury int64) *TokenBuilder {
	decimals := int64(0)
	name := fmt.Sprintf("%d_name", tokenId)
	supplyType := domain.TokenSupplyTypeInfinite
	symbol := fmt.Sprintf("%d_symbol", tokenId)
	tokenType := domain.TokenTypeFungibleCommon
	token := domain.Token{
		CreatedTimestamp:  &createdTimestamp,
		Decimals:          &decimals,
		Name:              &name,
		SupplyType:        &supplyType,
		Symbol:            &symbol,
		TimestampRange:    domain.NewTimestampRange(createdTimestamp),
		TokenId:           domain.MustDecodeEntityId(tokenId),
		TreasuryAccountId: domain.MustDecodeEntityId(treasury).Ptr(),
		Type:              &tokenType,
	}
	return &TokenBuilder{dbClient: dbClient, token: token}
}
