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
	"fmt"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	log "github.com/sirupsen/logrus"
)

const (
	databaseErrorFormat = "%s: %s"
	timestampArgName    = "timestamp"

	// selectCurrentVersion - Selects the current version of the rows matching the filter
	selectCurrentVersion = "select * from %[1]s where %[2]s"
	// selectVersionAsOf - Selects the version of the rows matching the filter in effect at @timestamp. The current
	// version, when already effective, always wins over the superseded versions in the history table
	selectVersionAsOf = `(
                           select * from %[1]s
                           where %[2]s and lower(timestamp_range) <= @timestamp
                         )
                         union all
                         (
                           select * from %[1]s_history
                           where %[2]s and lower(timestamp_range) <= @timestamp
                           order by lower(timestamp_range) desc
                           limit 1
                         )
                         order by timestamp_range desc
                         limit 1`
)

// findVersion returns the current version of the row matching filter when timestamp is nil, otherwise the version
// in effect at timestamp. Returns nil when there is no such row
func findVersion[T any](
	ctx context.Context,
	dbClient interfaces.DbClient,
	table string,
	filter string,
	timestamp *int64,
	args ...interface{},
) (*T, error) {
	db, cancel := dbClient.GetDbWithContext(ctx)
	defer cancel()

	query := fmt.Sprintf(selectCurrentVersion, table, filter)
	if timestamp != nil {
		query = fmt.Sprintf(selectVersionAsOf, table, filter)
		args = append(args, sql.Named(timestampArgName, *timestamp))
	}

	rows := make([]T, 0, 1)
	if err := db.Raw(query, args...).Scan(&rows).Error; err != nil {
		log.Errorf(databaseErrorFormat, errors.ErrDatabaseError, err)
		return nil, errors.ErrDatabaseError
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}
