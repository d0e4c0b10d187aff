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

package interfaces

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DbClient provides the gorm db, optionally bound to a context carrying the statement timeout
type DbClient interface {
	GetDb() *gorm.DB

	GetDbWithContext(ctx context.Context) (*gorm.DB, context.CancelFunc)

	RunInTransaction(ctx context.Context, timeout time.Duration, fn func(tx *gorm.DB) error) error
}
