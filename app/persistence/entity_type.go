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

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	log "github.com/sirupsen/logrus"
)

// entityTypeRepository struct that has connection to the Database
type entityTypeRepository struct {
	dbClient interfaces.DbClient
}

// NewEntityTypeRepository creates an instance of a entityTypeRepository struct
func NewEntityTypeRepository(dbClient interfaces.DbClient) interfaces.EntityTypeRepository {
	return &entityTypeRepository{dbClient: dbClient}
}

func (etr *entityTypeRepository) FindAll(ctx context.Context) ([]domain.EntityType, error) {
	db, cancel := etr.dbClient.GetDbWithContext(ctx)
	defer cancel()

	entityTypes := make([]domain.EntityType, 0)
	if err := db.Order("id").Find(&entityTypes).Error; err != nil {
		log.Errorf(databaseErrorFormat, errors.ErrDatabaseError, err)
		return nil, errors.ErrDatabaseError
	}

	return entityTypes, nil
}
