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

package persistence

import (
	"context"
	"database/sql"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
)

const (
	nftTable          = "nft"
	tokenAccountTable = "token_account"
	tokenTable        = "token"
)

// tokenRepository struct that has connection to the Database
type tokenRepository struct {
	dbClient interfaces.DbClient
}

// NewTokenRepository creates an instance of a tokenRepository struct
func NewTokenRepository(dbClient interfaces.DbClient) interfaces.TokenRepository {
	return &tokenRepository{dbClient}
}

func (tr *tokenRepository) Find(ctx context.Context, tokenId domain.EntityId, timestamp *int64) (
	*domain.Token,
	error,
) {
	return findVersion[domain.Token](
		ctx,
		tr.dbClient,
		tokenTable,
		"token_id = @token_id",
		timestamp,
		sql.Named("token_id", tokenId.EncodedId),
	)
}

// tokenAccountRepository struct that has connection to the Database
type tokenAccountRepository struct {
	dbClient interfaces.DbClient
}

// NewTokenAccountRepository creates an instance of a tokenAccountRepository struct
func NewTokenAccountRepository(dbClient interfaces.DbClient) interfaces.TokenAccountRepository {
	return &tokenAccountRepository{dbClient}
}

func (tar *tokenAccountRepository) Find(
	ctx context.Context,
	accountId domain.EntityId,
	tokenId domain.EntityId,
	timestamp *int64,
) (*domain.TokenAccount, error) {
	return findVersion[domain.TokenAccount](
		ctx,
		tar.dbClient,
		tokenAccountTable,
		"account_id = @account_id and token_id = @token_id",
		timestamp,
		sql.Named("account_id", accountId.EncodedId),
		sql.Named("token_id", tokenId.EncodedId),
	)
}

// nftRepository struct that has connection to the Database
type nftRepository struct {
	dbClient interfaces.DbClient
}

// NewNftRepository creates an instance of a nftRepository struct
func NewNftRepository(dbClient interfaces.DbClient) interfaces.NftRepository {
	return &nftRepository{dbClient}
}

func (nr *nftRepository) Find(ctx context.Context, tokenId domain.EntityId, serialNumber int64, timestamp *int64) (
	*domain.Nft,
	error,
) {
	return findVersion[domain.Nft](
		ctx,
		nr.dbClient,
		nftTable,
		"token_id = @token_id and serial_number = @serial_number",
		timestamp,
		sql.Named("token_id", tokenId.EncodedId),
		sql.Named("serial_number", serialNumber),
	)
}
