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

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"gorm.io/gorm"
)

type client struct {
	db               *gorm.DB
	statementTimeout time.Duration
}

// NewDbClient wraps db, statementTimeout is in seconds and 0 disables the per statement deadline
func NewDbClient(db *gorm.DB, statementTimeout uint) interfaces.DbClient {
	return &client{db: db, statementTimeout: time.Duration(statementTimeout) * time.Second}
}

func (c *client) GetDb() *gorm.DB {
	return c.db
}

func (c *client) GetDbWithContext(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}

	if c.statementTimeout == 0 {
		return c.db.WithContext(ctx), func() {}
	}

	childCtx, cancel := context.WithTimeout(ctx, c.statementTimeout)
	return c.db.WithContext(childCtx), cancel
}

// RunInTransaction runs fn in one database transaction bounded by timeout, a non-positive timeout leaves only the
// deadline of ctx. The transaction is rolled back when fn returns an error.
func (c *client) RunInTransaction(ctx context.Context, timeout time.Duration, fn func(tx *gorm.DB) error) error {
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	return c.db.WithContext(ctx).Transaction(fn)
}
