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

type TokenAccountBuilder struct {
	dbClient     interfaces.DbClient
	historical   bool
	tokenAccount domain.TokenAccount
}

func (b *TokenAccountBuilder) Associated(associated bool, modifiedTimestamp int64) *TokenAccountBuilder {
	b.tokenAccount.Associated = &associated
	b.tokenAccount.TimestampRange = domain.NewTimestampRange(modifiedTimestamp)
	return b
}

func (b *TokenAccountBuilder) Balance(balance int64) *TokenAccountBuilder {
	b.tokenAccount.Balance = balance
	return b
}

func (b *TokenAccountBuilder) FreezeStatus(status domain.TokenFreezeStatus) *TokenAccountBuilder {
	b.tokenAccount.FreezeStatus = &status
	return b
}

func (b *TokenAccountBuilder) Historical(historical bool) *TokenAccountBuilder {
	b.historical = historical
	return b
}

func (b *TokenAccountBuilder) TimestampRange(lowerInclusive, upperExclusive int64) *TokenAccountBuilder {
	b.tokenAccount.TimestampRange = domain.NewClosedTimestampRange(lowerInclusive, upperExclusive)
	return b
}

func (b *TokenAccountBuilder) Persist() domain.TokenAccount {
	tableName := b.tokenAccount.TableName()
	if b.historical {
		tableName += "_history"
	}
	b.dbClient.GetDb().Table(tableName).Create(&b.tokenAccount)
	return b.tokenAccount
}

func NewTokenAccountBuilder(dbClient interfaces.DbClient, accountId, tokenId, timestamp int64) *TokenAccountBuilder {
	associated := true
	tokenAccount := domain.TokenAccount{
		AccountId:        domain.MustDecodeEntityId(accountId),
		Associated:       &associated,
		CreatedTimestamp: &timestamp,
		TimestampRange:   domain.NewTimestampRange(timestamp),
		TokenId:          domain.MustDecodeEntityId(tokenId),
	}
	return &TokenAccountBuilder{dbClient: dbClient, tokenAccount: tokenAccount}
}
