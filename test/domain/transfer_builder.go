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

var defaultPayer = domain.MustDecodeEntityId(211)

// TransferBuilder stages the hbar and token transfers of one transaction
type TransferBuilder struct {
	dbClient  interfaces.DbClient
	hbar      []domain.CryptoTransfer
	payer     domain.EntityId
	timestamp int64
	token     []domain.TokenTransfer
}

func (b *TransferBuilder) Payer(payer int64) *TransferBuilder {
	b.payer = domain.MustDecodeEntityId(payer)
	return b
}

func (b *TransferBuilder) Hbar(accountId, amount int64) *TransferBuilder {
	b.hbar = append(b.hbar, domain.CryptoTransfer{
		Amount:             amount,
		ConsensusTimestamp: b.timestamp,
		EntityId:           domain.MustDecodeEntityId(accountId),
	})
	return b
}

func (b *TransferBuilder) Token(tokenId, accountId, amount int64) *TransferBuilder {
	b.token = append(b.token, domain.TokenTransfer{
		AccountId:          domain.MustDecodeEntityId(accountId),
		Amount:             amount,
		ConsensusTimestamp: b.timestamp,
		TokenId:            domain.MustDecodeEntityId(tokenId),
	})
	return b
}

// Persist writes the staged transfers, all paid by the configured payer
func (b *TransferBuilder) Persist() {
	db := b.dbClient.GetDb()
	for i := range b.hbar {
		b.hbar[i].PayerAccountId = b.payer
	}
	for i := range b.token {
		b.token[i].PayerAccountId = b.payer
	}

	if len(b.hbar) != 0 {
		db.Create(&b.hbar)
	}
	if len(b.token) != 0 {
		db.Create(&b.token)
	}
}

func NewTransferBuilder(dbClient interfaces.DbClient, timestamp int64) *TransferBuilder {
	return &TransferBuilder{dbClient: dbClient, payer: defaultPayer, timestamp: timestamp}
}
