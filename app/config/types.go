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

package config

import (
	"fmt"
	"math"
	"time"
)

const EntityCacheKey = "entity"

type Config struct {
	Cache           map[string]Cache
	Db              Db
	Log             Log
	Network         string
	Parser          Parser
	Port            uint16
	Realm           int64         `validate:"gte=0"`
	Shard           int64         `validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

type Cache struct {
	MaxSize int `yaml:"maxSize" validate:"gte=1"`
}

type Db struct {
	Host             string
	Name             string
	Password         string
	Pool             Pool
	Port             uint16
	StatementTimeout int `yaml:"statementTimeout"`
	Username         string
}

func (db Db) GetDsn() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s password=%s sslmode=disable",
		db.Host,
		db.Port,
		db.Username,
		db.Name,
		db.Password,
	)
}

type Log struct {
	Level string
}

type Parser struct {
	Balance BalanceParser
	Record  RecordParser
}

type BalanceParser struct {
	Enabled   bool
	Frequency time.Duration
	Path      string
}

type RecordParser struct {
	BatchSize          int `yaml:"batchSize" validate:"gte=1"`
	Enabled            bool
	EndDate            int64 `yaml:"endDate" validate:"gte=0"`
	Frequency          time.Duration
	Path               string
	Persist            Persist
	Retry              Retry
	SkipHashCheck      bool          `yaml:"skipHashCheck"`
	StartDate          int64         `yaml:"startDate" validate:"gte=0"`
	TransactionTimeout time.Duration `yaml:"transactionTimeout"`
}

// InRange reports whether the consensus timestamp falls in the configured [startDate, endDate] window. A zero
// endDate leaves the window open-ended.
func (r RecordParser) InRange(consensusTimestamp int64) bool {
	endDate := r.EndDate
	if endDate == 0 {
		endDate = math.MaxInt64
	}

	return consensusTimestamp >= r.StartDate && consensusTimestamp <= endDate
}

type Persist struct {
	Claims                bool
	Contracts             bool
	CryptoTransferAmounts bool `yaml:"cryptoTransferAmounts"`
	Files                 bool
	NonFeeTransfers       bool `yaml:"nonFeeTransfers"`
	SystemFiles           bool `yaml:"systemFiles"`
	TransactionBytes      bool `yaml:"transactionBytes"`
}

type Pool struct {
	MaxIdleConnections int `yaml:"maxIdleConnections"`
	MaxLifetime        int `yaml:"maxLifetime"`
	MaxOpenConnections int `yaml:"maxOpenConnections"`
}

type Retry struct {
	MaxAttempts int           `yaml:"maxAttempts" validate:"gte=1"`
	MaxBackoff  time.Duration `yaml:"maxBackoff"`
	MinBackoff  time.Duration `yaml:"minBackoff"`
}
