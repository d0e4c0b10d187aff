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

package migration

import (
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
	log "github.com/sirupsen/logrus"
)

const dialect = "postgres"

//go:embed *.sql
var migrations embed.FS

// Up applies the embedded schema migrations that have not been applied yet and returns the resulting schema version
func Up(db *sql.DB) (int64, error) {
	goose.SetBaseFS(migrations)
	goose.SetLogger(log.StandardLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return 0, err
	}

	if err := goose.Up(db, "."); err != nil {
		return 0, err
	}

	return goose.GetDBVersion(db)
}
