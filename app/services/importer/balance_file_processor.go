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

package importer

import (
	"context"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/parser"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/parser/balance"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const balanceBatchSize = 2000

// BalanceFileProcessor ingests account balance snapshot files, each in its own database transaction
type BalanceFileProcessor struct {
	dbClient               interfaces.DbClient
	accountBalanceFileRepo interfaces.AccountBalanceFileRepository
}

// NewBalanceFileProcessor creates a BalanceFileProcessor
func NewBalanceFileProcessor(
	dbClient interfaces.DbClient,
	accountBalanceFileRepo interfaces.AccountBalanceFileRepository,
) *BalanceFileProcessor {
	return &BalanceFileProcessor{accountBalanceFileRepo: accountBalanceFileRepo, dbClient: dbClient}
}

// Process stores the balances of the snapshot file, skipping a file with the name of one already stored
func (p *BalanceFileProcessor) Process(ctx context.Context, file *parser.StreamFile) (State, error) {
	exists, err := p.accountBalanceFileRepo.ExistsByName(ctx, file.Name)
	if err != nil {
		return Error, err
	}

	if exists {
		log.Infof("Skipping balance file %s, it was already processed", file.Name)
		return Skip, nil
	}

	loadStart := time.Now()
	snapshot, err := balance.Parse(file)
	if err != nil {
		log.Errorf("Failed to parse balance file %s: %s", file.Name, err)
		return Error, err
	}

	snapshot.File.LoadStart = loadStart.Unix()
	err = p.dbClient.RunInTransaction(ctx, 0, func(tx *gorm.DB) error {
		if len(snapshot.AccountBalances) != 0 {
			if err := tx.CreateInBatches(snapshot.AccountBalances, balanceBatchSize).Error; err != nil {
				return err
			}
		}

		if len(snapshot.TokenBalances) != 0 {
			if err := tx.CreateInBatches(snapshot.TokenBalances, balanceBatchSize).Error; err != nil {
				return err
			}
		}

		snapshot.File.LoadEnd = time.Now().Unix()
		return tx.Create(&snapshot.File).Error
	})
	if err != nil {
		log.Errorf("Failed to store balance file %s: %s", file.Name, err)
		return Error, errors.Wrap(errors.ErrDatabaseError, err.Error())
	}

	log.Infof("Processed balance file %s with %d accounts and %d token balances in %s", file.Name,
		len(snapshot.AccountBalances), len(snapshot.TokenBalances), time.Since(loadStart))
	return Complete, nil
}
