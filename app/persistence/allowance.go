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
	cryptoAllowanceTable = "crypto_allowance"
	nftAllowanceTable    = "nft_allowance"
	tokenAllowanceTable  = "token_allowance"

	filterByOwnerSpender        = "owner = @owner and spender = @spender"
	filterByOwnerSpenderTokenId = "owner = @owner and spender = @spender and token_id = @token_id"
)

// allowanceRepository struct that has connection to the Database
type allowanceRepository struct {
	dbClient interfaces.DbClient
}

// NewAllowanceRepository creates an instance of a allowanceRepository struct
func NewAllowanceRepository(dbClient interfaces.DbClient) interfaces.AllowanceRepository {
	return &allowanceRepository{dbClient}
}

func (ar *allowanceRepository) FindCryptoAllowance(
	ctx context.Context,
	owner domain.EntityId,
	spender domain.EntityId,
	timestamp *int64,
) (*domain.CryptoAllowance, error) {
	return findVersion[domain.CryptoAllowance](
		ctx,
		ar.dbClient,
		cryptoAllowanceTable,
		filterByOwnerSpender,
		timestamp,
		sql.Named("owner", owner.EncodedId),
		sql.Named("spender", spender.EncodedId),
	)
}

func (ar *allowanceRepository) FindNftAllowance(
	ctx context.Context,
	owner domain.EntityId,
	spender domain.EntityId,
	tokenId domain.EntityId,
	timestamp *int64,
) (*domain.NftAllowance, error) {
	return findVersion[domain.NftAllowance](
		ctx,
		ar.dbClient,
		nftAllowanceTable,
		filterByOwnerSpenderTokenId,
		timestamp,
		sql.Named("owner", owner.EncodedId),
		sql.Named("spender", spender.EncodedId),
		sql.Named("token_id", tokenId.EncodedId),
	)
}

func (ar *allowanceRepository) FindTokenAllowance(
	ctx context.Context,
	owner domain.EntityId,
	spender domain.EntityId,
	tokenId domain.EntityId,
	timestamp *int64,
) (*domain.TokenAllowance, error) {
	return findVersion[domain.TokenAllowance](
		ctx,
		ar.dbClient,
		tokenAllowanceTable,
		filterByOwnerSpenderTokenId,
		timestamp,
		sql.Named("owner", owner.EncodedId),
		sql.Named("spender", spender.EncodedId),
		sql.Named("token_id", tokenId.EncodedId),
	)
}
