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
	"context"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/parser"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"gorm.io/gorm"
)

// AccountBalanceFileBuilder builds a balance snapshot as the balance file processor would have stored it
type AccountBalanceFileBuilder struct {
	dbClient interfaces.DbClient
	file     domain.AccountBalanceFile
	hbar     []domain.AccountBalance
	token    []domain.TokenBalance
}

func (b *AccountBalanceFileBuilder) AddAccountBalance(accountId, balance int64) *AccountBalanceFileBuilder {
	b.hbar = append(b.hbar, domain.AccountBalance{
		AccountId:          domain.MustDecodeEntityId(accountId),
		Balance:            balance,
		ConsensusTimestamp: b.file.ConsensusTimestamp,
	})
	return b
}

func (b *AccountBalanceFileBuilder) AddTokenBalance(accountId, tokenId, balance int64) *AccountBalanceFileBuilder {
	b.token = append(b.token, domain.TokenBalance{
		AccountId:          domain.MustDecodeEntityId(accountId),
		Balance:            balance,
		ConsensusTimestamp: b.file.ConsensusTimestamp,
		TokenId:            domain.MustDecodeEntityId(tokenId),
	})
	return b
}

func (b *AccountBalanceFileBuilder) Persist() domain.AccountBalanceFile {
	b.file.Count = int64(len(b.hbar))
	err := b.dbClient.RunInTransaction(context.Background(), 0, func(tx *gorm.DB) error {
		if err := tx.Create(&b.file).Error; err != nil {
			return err
		}
		if len(b.hbar) != 0 {
			if err := tx.Create(&b.hbar).Error; err != nil {
				return err
			}
		}
		if len(b.token) != 0 {
			return tx.Create(&b.token).Error
		}
		return nil
	})
	if err != nil {
		panic(err)
	}

	return b.file
}

func NewAccountBalanceFileBuilder(dbClient interfaces.DbClient, consensusTimestamp int64) *AccountBalanceFileBuilder {
	name := time.Unix(0, consensusTimestamp).UTC().Format("2006-01-02T15_04_05.000000000Z") + parser.BalanceFileSuffix
	return &AccountBalanceFileBuilder{
		dbClient: dbClient,
		file: domain.AccountBalanceFile{
			ConsensusTimestamp: consensusTimestamp,
			FileHash:           name,
			Name:               name,
		},
	}
}
