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
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/config"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/db/migration"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	log "github.com/sirupsen/logrus"
	"github.com/thanhpk/randstr"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	dbName      = "mirror_node"
	dbUsername  = "mirror_importer_integration"
	poolMaxWait = 5 * time.Minute
	// tables holding reference or migration data survive the cleanup
	selectTablesToTruncate = `select string_agg(quote_ident(tablename), ', ')
                              from pg_tables
                              where schemaname = 'public' and tablename not in ('entity_type', 'goose_db_version')`
)

type DbResource struct {
	db       *sql.DB
	params   dbParams
	pool     *dockertest.Pool
	resource *dockertest.Resource
}

func CreateDbRecords(dbClient interfaces.DbClient, records ...interface{}) {
	for _, record := range records {
		dbClient.GetDb().Create(record)
	}
}

func ExecSql(dbClient interfaces.DbClient, sql string, values ...interface{}) {
	dbClient.GetDb().Exec(sql, values...)
}

// GetDbConfig returns the db config of the session
func (d DbResource) GetDbConfig() config.Db {
	return d.params.toConfig()
}

// GetDb returns the sql db pool
func (d DbResource) GetDb() *sql.DB {
	return d.db
}

// GetGormDb creates a gorm db session
func (d DbResource) GetGormDb() *gorm.DB {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: d.db}), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to create gorm db session: %s", err)
	}

	return gdb
}

type dbParams struct {
	endpoint string
	name     string
	username string
	password string
}

func (d dbParams) toDsn() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", d.username, d.password, d.endpoint, d.name)
}

func (d dbParams) toConfig() config.Db {
	hostPort := strings.Split(d.endpoint, ":")
	port, _ := strconv.ParseInt(hostPort[1], 10, 32)
	return config.Db{
		Host:     hostPort[0],
		Name:     d.name,
		Password: d.password,
		Pool: config.Pool{
			MaxIdleConnections: 20,
			MaxLifetime:        30,
			MaxOpenConnections: 100,
		},
		Port:     uint16(port),
		Username: d.username,
	}
}

// CleanupDb cleans the data written to the db during tests
func CleanupDb(db *sql.DB) {
	var tables sql.NullString
	if err := db.QueryRow(selectTablesToTruncate).Scan(&tables); err != nil {
		log.Fatalf("Failed to list tables: %s", err)
	}

	if !tables.Valid {
		return
	}

	if _, err := db.Exec("truncate " + tables.String); err != nil {
		log.Fatalf("Failed to truncate tables: %s", err)
	}
}

func SetupDb(migrate bool) DbResource {
	var db *sql.DB

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not connect to docker: %s", err)
	}

	// set max wait, used in pool.Retry to timeout
	pool.MaxWait = poolMaxWait

	log.Info("Create postgres container")
	resource, dbParams := createPostgresDb(pool)

	if err = pool.Retry(func() error {
		var err error
		db, err = sql.Open("postgres", dbParams.toDsn())
		if err != nil {
			log.Errorf("%s", err)
			return err
		}

		return db.Ping()
	}); err != nil {
		log.Fatalf("Could not connect to docker: %s", err)
	}

	if migrate {
		log.Info("Run schema migration")
		if _, err := migration.Up(db); err != nil {
			log.Fatalf("Failed to migrate schema: %s", err)
		}
	}

	return DbResource{
		db:       db,
		params:   dbParams,
		pool:     pool,
		resource: resource,
	}
}

func TearDownDb(dbResource DbResource) {
	log.Info("Remove postgres container")
	if err := dbResource.pool.Purge(dbResource.resource); err != nil {
		log.Errorf("Failed to purge postgresql resource: %s", err)
	}
}

func createPostgresDb(pool *dockertest.Pool) (*dockertest.Resource, dbParams) {
	dbPassword := randstr.Hex(12)
	env := []string{
		"POSTGRES_DB=" + dbName,
		"POSTGRES_USER=" + dbUsername,
		"POSTGRES_PASSWORD=" + dbPassword,
	}

	options := &dockertest.RunOptions{
		Name:       "importer_db_" + randstr.Hex(8),
		Repository: "postgres",
		Tag:        "16-alpine",
		Env:        env,
	}
	resource, err := pool.RunWithOptions(options)
	if err != nil {
		log.Fatalf("Could not start resource: %s", err)
	}

	return resource, dbParams{
		// use IPv4 local address, 'localhost' may resolve to IPv6 local address in github CI
		endpoint: "127.0.0.1:" + resource.GetPort("5432/tcp"),
		name:     dbName,
		username: dbUsername,
		password: dbPassword,
	}
}
