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
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	entityTable = "entity"

	filterByAlias      = "alias = @alias"
	filterByEvmAddress = "evm_address = @evm_address"
	filterById         = "id = @id"

	selectIdByAlias      = "select id from entity where alias = @alias"
	selectIdByEvmAddress = "select id from entity where evm_address = @evm_address"
	selectTypeById       = "select type from entity where id = @id"
)

type entityIdType struct {
	Id   int64
	Type int16
}

// entityRepository struct that has connection to the Database
type entityRepository struct {
	dbClient interfaces.DbClient
}

// NewEntityRepository creates an instance of a entityRepository struct
func NewEntityRepository(dbClient interfaces.DbClient) interfaces.EntityRepository {
	return &entityRepository{dbClient: dbClient}
}

// NewEntityStore creates the ingestion side entity store
func NewEntityStore() interfaces.EntityStore {
	return &entityRepository{}
}

func (er *entityRepository) FindByAlias(ctx context.Context, alias []byte, timestamp *int64) (*domain.Entity, error) {
	return er.findLive(ctx, filterByAlias, timestamp, sql.Named("alias", alias))
}

func (er *entityRepository) FindByEvmAddress(ctx context.Context, evmAddress []byte, timestamp *int64) (
	*domain.Entity,
	error,
) {
	return er.findLive(ctx, filterByEvmAddress, timestamp, sql.Named("evm_address", evmAddress))
}

func (er *entityRepository) FindById(ctx context.Context, id domain.EntityId, timestamp *int64) (
	*domain.Entity,
	error,
) {
	return er.findLive(ctx, filterById, timestamp, sql.Named("id", id.EncodedId))
}

func (er *entityRepository) FindIdByAlias(tx *gorm.DB, alias []byte) (domain.EntityId, error) {
	return findId(tx, selectIdByAlias, sql.Named("alias", alias))
}

func (er *entityRepository) FindIdByEvmAddress(tx *gorm.DB, evmAddress []byte) (domain.EntityId, error) {
	return findId(tx, selectIdByEvmAddress, sql.Named("evm_address", evmAddress))
}

func (er *entityRepository) InsertIfAbsent(tx *gorm.DB, entity *domain.Entity) (int16, error) {
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(entity).Error; err != nil {
		log.Errorf(databaseErrorFormat, errors.ErrDatabaseError, err)
		return 0, errors.ErrDatabaseError
	}

	// the stored row may predate this insert, its type is the source of truth
	types := make([]entityIdType, 0, 1)
	if err := tx.Raw(selectTypeById, sql.Named("id", entity.Id.EncodedId)).Scan(&types).Error; err != nil {
		log.Errorf(databaseErrorFormat, errors.ErrDatabaseError, err)
		return 0, errors.ErrDatabaseError
	}

	if len(types) == 0 {
		// a different row owns the alias or evm address of the entity
		return 0, errors.Wrapf(errors.ErrIllegalState, "entity %s conflicts with an existing entity", entity.Id)
	}

	return types[0].Type, nil
}

// findLive returns the matching version unless it is marked deleted
func (er *entityRepository) findLive(
	ctx context.Context,
	filter string,
	timestamp *int64,
	args ...interface{},
) (*domain.Entity, error) {
	entity, err := findVersion[domain.Entity](ctx, er.dbClient, entityTable, filter, timestamp, args...)
	if err != nil || entity == nil {
		return nil, err
	}

	if entity.IsDeleted() {
		return nil, nil
	}

	return entity, nil
}

func findId(tx *gorm.DB, query string, args ...interface{}) (domain.EntityId, error) {
	ids := make([]entityIdType, 0, 1)
	if err := tx.Raw(query, args...).Scan(&ids).Error; err != nil {
		log.Errorf(databaseErrorFormat, errors.ErrDatabaseError, err)
		return domain.EntityId{}, errors.ErrDatabaseError
	}

	if len(ids) == 0 {
		return domain.EntityId{}, nil
	}

	return domain.DecodeEntityId(ids[0].Id)
}
