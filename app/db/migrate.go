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

package db

import (
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/db/migration"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Migrate brings the database schema up to date
func Migrate(dbClient interfaces.DbClient) error {
	sqlDb, err := dbClient.GetDb().DB()
	if err != nil {
		return errors.Wrap(err, "Failed to get sql DB")
	}

	version, err := migration.Up(sqlDb)
	if err != nil {
		return errors.Wrap(err, "Failed to migrate database schema")
	}

	log.Infof("Database schema is at version %d", version)
	return nil
}
