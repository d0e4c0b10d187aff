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

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	log "github.com/sirupsen/logrus"
)

const (
	// balanceAsOf - The balance in the latest snapshot at or before @timestamp plus the transfers after the
	// snapshot up to @timestamp
	balanceAsOf = `with snapshot as (
                     select coalesce(max(consensus_timestamp), -1) as timestamp
                     from account_balance_file
                     where consensus_timestamp <= @timestamp
                   )
                   select
                     coalesce((
                       select balance
                       from account_balance ab
                       where ab.account_id = @account_id and ab.consensus_timestamp = snapshot.timestamp
                     ), 0) +
                     coalesce((
                       select sum(amount)
                       from crypto_transfer
                       where entity_id = @account_id and
                         consensus_timestamp > snapshot.timestamp and
                         consensus_timestamp <= @timestamp
                     ), 0)::bigint as balance
                   from snapshot`
	currentBalance = "select coalesce(balance, 0) as balance from entity where id = @account_id"
	// tokenBalanceAsOf - Same as balanceAsOf for a fungible token relationship
	tokenBalanceAsOf = `with snapshot as (
                          select coalesce(max(consensus_timestamp), -1) as timestamp
                          from account_balance_file
                          where consensus_timestamp <= @timestamp
                        )
                        select
                          coalesce((
                            select balance
                            from token_balance tb
                            where tb.account_id = @account_id and
                              tb.token_id = @token_id and
                              tb.consensus_timestamp = snapshot.timestamp
                          ), 0) +
                          coalesce((
                            select sum(amount)
                            from token_transfer
                            where account_id = @account_id and
                              token_id = @token_id and
                              consensus_timestamp > snapshot.timestamp and
                              consensus_timestamp <= @timestamp
                          ), 0)::bigint as balance
                        from snapshot`
	currentTokenBalance = `select balance from token_account where account_id = @account_id and token_id = @token_id`
)

type balance struct {
	Balance int64
}

// accountBalanceRepository struct that has connection to the Database
type accountBalanceRepository struct {
	dbClient interfaces.DbClient
}

// NewAccountBalanceRepository creates an instance of a accountBalanceRepository struct
func NewAccountBalanceRepository(dbClient interfaces.DbClient) interfaces.AccountBalanceRepository {
	return &accountBalanceRepository{dbClient: dbClient}
}

func (ar *accountBalanceRepository) GetBalance(ctx context.Context, accountId domain.EntityId, timestamp *int64) (
	int64,
	error,
) {
	query := currentBalance
	args := []interface{}{sql.Named("account_id", accountId.EncodedId)}
	if timestamp != nil {
		query = balanceAsOf
		args = append(args, sql.Named(timestampArgName, *timestamp))
	}

	return ar.sum(ctx, query, args...)
}

func (ar *accountBalanceRepository) GetTokenBalance(
	ctx context.Context,
	accountId domain.EntityId,
	tokenId domain.EntityId,
	timestamp *int64,
) (int64, error) {
	query := currentTokenBalance
	args := []interface{}{
		sql.Named("account_id", accountId.EncodedId),
		sql.Named("token_id", tokenId.EncodedId),
	}
	if timestamp != nil {
		query = tokenBalanceAsOf
		args = append(args, sql.Named(timestampArgName, *timestamp))
	}

	return ar.sum(ctx, query, args...)
}

func (ar *accountBalanceRepository) sum(ctx context.Context, query string, args ...interface{}) (int64, error) {
	db, cancel := ar.dbClient.GetDbWithContext(ctx)
	defer cancel()

	balances := make([]balance, 0, 1)
	if err := db.Raw(query, args...).Scan(&balances).Error; err != nil {
		log.Errorf(databaseErrorFormat, errors.ErrDatabaseError, err)
		return 0, errors.ErrDatabaseError
	}

	if len(balances) == 0 {
		return 0, nil
	}

	return balances[0].Balance, nil
}
