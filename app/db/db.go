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
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/config"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	gormlogrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	connectMaxRetries   = 3
	connectMinBackoff   = 500 * time.Millisecond
	connectPingDeadline = 5 * time.Second
)

// ConnectToDb opens the connection pool to PostgreSQL and waits until the database answers a ping. The ping is
// retried a few times since the importer usually starts alongside the database.
func ConnectToDb(ctx context.Context, dbConfig config.Db) (interfaces.DbClient, error) {
	gormDb, err := gorm.Open(postgres.Open(dbConfig.GetDsn()), &gorm.Config{Logger: gormlogrus.New()})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to open database")
	}

	sqlDb, err := gormDb.DB()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to get sql DB")
	}

	sqlDb.SetMaxIdleConns(dbConfig.Pool.MaxIdleConnections)
	sqlDb.SetConnMaxLifetime(time.Duration(dbConfig.Pool.MaxLifetime) * time.Minute)
	sqlDb.SetMaxOpenConns(dbConfig.Pool.MaxOpenConnections)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = connectMinBackoff
	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, connectPingDeadline)
		defer cancel()
		return sqlDb.PingContext(pingCtx)
	}
	notify := func(err error, next time.Duration) {
		log.Warnf("Database %s:%d is not reachable, retrying in %s: %s", dbConfig.Host, dbConfig.Port, next, err)
	}

	retryPolicy := backoff.WithContext(backoff.WithMaxRetries(policy, connectMaxRetries), ctx)
	if err = backoff.RetryNotify(ping, retryPolicy, notify); err != nil {
		sqlDb.Close() // #nosec
		return nil, errors.Wrap(err, "Failed to connect to database")
	}

	log.Info("Successfully connected to database")
	return NewDbClient(gormDb, uint(dbConfig.StatementTimeout)), nil
}
