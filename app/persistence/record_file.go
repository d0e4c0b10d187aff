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
	// selectRecordFileByTimestamp - Selects the record file containing the consensus timestamp, i.e. the first one
	// whose consensus end is at or after it
	selectRecordFileByTimestamp = `select *
                                   from record_file
                                   where consensus_end >= @timestamp
                                   order by consensus_end
                                   limit 1`
	selectLatestRecordFile = `select *
                              from record_file
                              order by consensus_end desc
                              limit 1`
	selectRecordFileExists = "select exists(select 1 from record_file where name = @name) as found"
)

// recordFileRepository struct that has connection to the Database
type recordFileRepository struct {
	dbClient interfaces.DbClient
}

// NewRecordFileRepository creates an instance of a recordFileRepository struct
func NewRecordFileRepository(dbClient interfaces.DbClient) interfaces.RecordFileRepository {
	return &recordFileRepository{dbClient: dbClient}
}

func (rr *recordFileRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return exists(ctx, rr.dbClient, selectRecordFileExists, sql.Named("name", name))
}

func (rr *recordFileRepository) FindByTimestamp(ctx context.Context, timestamp int64) (*domain.RecordFile, error) {
	return rr.findOne(ctx, selectRecordFileByTimestamp, sql.Named(timestampArgName, timestamp))
}

func (rr *recordFileRepository) FindLatest(ctx context.Context) (*domain.RecordFile, error) {
	return rr.findOne(ctx, selectLatestRecordFile)
}

func (rr *recordFileRepository) findOne(ctx context.Context, query string, args ...interface{}) (
	*domain.RecordFile,
	error,
) {
	db, cancel := rr.dbClient.GetDbWithContext(ctx)
	defer cancel()

	recordFiles := make([]domain.RecordFile, 0, 1)
	if err := db.Raw(query, args...).Scan(&recordFiles).Error; err != nil {
		log.Errorf(databaseErrorFormat, errors.ErrDatabaseError, err)
		return nil, errors.ErrDatabaseError
	}

	if len(recordFiles) == 0 {
		return nil, nil
	}

	return &recordFiles[0], nil
}

// accountBalanceFileRepository struct that has connection to the Database
type accountBalanceFileRepository struct {
	dbClient interfaces.DbClient
}

// NewAccountBalanceFileRepository creates an instance of a accountBalanceFileRepository struct
func NewAccountBalanceFileRepository(dbClient interfaces.DbClient) interfaces.AccountBalanceFileRepository {
	return &accountBalanceFileRepository{dbClient: dbClient}
}

func (ar *accountBalanceFileRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return exists(
		ctx,
		ar.dbClient,
		"select exists(select 1 from account_balance_file where name = @name) as found",
		sql.Named("name", name),
	)
}

func exists(ctx context.Context, dbClient interfaces.DbClient, query string, args ...interface{}) (bool, error) {
	db, cancel := dbClient.GetDbWithContext(ctx)
	defer cancel()

	var result struct{ Found bool }
	if err := db.Raw(query, args...).Scan(&result).Error; err != nil {
		log.Errorf(databaseErrorFormat, errors.ErrDatabaseError, err)
		return false, errors.ErrDatabaseError
	}

	return result.Found, nil
}
