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

package bdd

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/config"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/parser"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/writer"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/services/addressbook"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/services/entity"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/services/importer"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/services/projector"
	tdb "github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/test/db"
	tdomain "github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/test/domain"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	log "github.com/sirupsen/logrus"
)

const (
	balanceTimestampLayout = "2006-01-02T15:04:05.000000000Z"
	fileNameLayout         = "2006-01-02T15_04_05.000000000Z"
	payer                  = int64(2)
)

var genesis = time.Date(2022, 7, 1, 16, 30, 0, 0, time.UTC).UnixNano()

type importerFeature struct {
	balanceDir string
	balanceErr error
	recordDir  string
	recordErr  error
	retry      config.Retry
}

func (f *importerFeature) reset(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
	tdb.CleanupDb(dbResource.GetDb())

	var err error
	if f.recordDir, err = os.MkdirTemp("", "recordstreams"); err != nil {
		return ctx, err
	}
	if f.balanceDir, err = os.MkdirTemp("", "accountBalances"); err != nil {
		return ctx, err
	}

	f.balanceErr = nil
	f.recordErr = nil
	f.retry = config.Retry{MaxAttempts: 2, MaxBackoff: 20 * time.Millisecond, MinBackoff: 10 * time.Millisecond}
	return ctx, nil
}

func (f *importerFeature) cleanup(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
	os.RemoveAll(f.recordDir) // #nosec
	os.RemoveAll(f.balanceDir) // #nosec
	return ctx, err
}

func (f *importerFeature) writeRecordFile(prevHash []byte, second, transfers int) error {
	consensusStart := genesis + int64(second)*int64(time.Second)
	builder := tdomain.NewRecordStreamBuilder(prevHash)
	for i := 0; i < transfers; i++ {
		timestamp := consensusStart + int64(i)
		body := tdomain.TransactionBody(payer, timestamp-10)
		body.Data = &services.TransactionBody_CryptoTransfer{CryptoTransfer: &services.CryptoTransferTransactionBody{}}
		builder.AddItem(body, tdomain.TransactionRecord(services.ResponseCodeEnum_SUCCESS, timestamp, payer))
	}

	name := filepath.Join(f.recordDir, tdomain.RecordFileName(consensusStart))
	return os.WriteFile(name, builder.Bytes(), 0600)
}

func (f *importerFeature) recordFileAt(second, transfers int) error {
	return f.writeRecordFile(nil, second, transfers)
}

func (f *importerFeature) chainedRecordFileAt(ctx context.Context, second, transfers int) error {
	latest, err := persistence.NewRecordFileRepository(dbClient).FindLatest(ctx)
	if err != nil {
		return err
	}
	if latest == nil {
		return errors.New("no record file has been imported")
	}

	prevHash, err := hex.DecodeString(latest.Hash)
	if err != nil {
		return err
	}

	return f.writeRecordFile(prevHash, second, transfers)
}

func (f *importerFeature) unchainedRecordFileAt(second, transfers int) error {
	prevHash := make([]byte, 48)
	for i := range prevHash {
		prevHash[i] = 0xff
	}
	return f.writeRecordFile(prevHash, second, transfers)
}

func (f *importerFeature) balanceFileAt(second int, table *godog.Table) error {
	timestamp := time.Unix(0, genesis+int64(second)*int64(time.Second)).UTC()
	lines := []string{
		"TimeStamp:" + timestamp.Format(balanceTimestampLayout),
		"shard,realm,number,balance",
	}
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != 2 {
			return fmt.Errorf("expected account and balance columns, got %d", len(row.Cells))
		}
		lines = append(lines, fmt.Sprintf("0,0,%s,%s", row.Cells[0].Value, row.Cells[1].Value))
	}

	name := filepath.Join(f.balanceDir, timestamp.Format(fileNameLayout)+parser.BalanceFileSuffix)
	return os.WriteFile(name, []byte(strings.Join(lines, "\n")+"\n"), 0600)
}

func (f *importerFeature) recordStreamPolled(ctx context.Context) error {
	rows, err := persistence.NewEntityTypeRepository(dbClient).FindAll(ctx)
	if err != nil {
		return err
	}

	entityTypes, err := domain.NewEntityTypes(rows)
	if err != nil {
		return err
	}

	addressBook, err := addressbook.NewService(0, 0)
	if err != nil {
		return err
	}

	recordParser := config.RecordParser{
		BatchSize:          2,
		Enabled:            true,
		Persist:            config.Persist{CryptoTransferAmounts: true},
		Retry:              f.retry,
		TransactionTimeout: time.Minute,
	}
	resolver := entity.NewResolver(persistence.NewEntityStore(), entityTypes, 100)
	processor := importer.NewRecordFileProcessor(
		recordParser,
		dbClient,
		persistence.NewRecordFileRepository(dbClient),
		resolver,
		projector.NewProjector(resolver, recordParser.Persist, addressBook),
		writer.NewBatchWriter(recordParser.BatchSize, recordParser.Persist.CryptoTransferAmounts),
	)

	poller := importer.NewPoller(f.recordDir, parser.RecordFileSuffix, time.Second, f.retry, processor)
	f.recordErr = poller.Poll(ctx)
	if f.recordErr != nil {
		log.Infof("Polling the record stream failed: %s", f.recordErr)
	}
	return nil
}

func (f *importerFeature) balanceStreamPolled(ctx context.Context) error {
	processor := importer.NewBalanceFileProcessor(dbClient, persistence.NewAccountBalanceFileRepository(dbClient))
	poller := importer.NewPoller(f.balanceDir, parser.BalanceFileSuffix, time.Second, f.retry, processor)
	f.balanceErr = poller.Poll(ctx)
	return nil
}

func (f *importerFeature) importSucceeded() error {
	if f.recordErr != nil {
		return fmt.Errorf("expected the import to succeed, got %w", f.recordErr)
	}
	return f.balanceErr
}

func (f *importerFeature) importFailedWithHashMismatch() error {
	if !errors.Is(f.recordErr, errors.ErrHashMismatch) {
		return fmt.Errorf("expected a hash mismatch, got %v", f.recordErr)
	}
	return nil
}

func (f *importerFeature) tableHasRows(table string, expected int) error {
	var count int
	if err := dbClient.GetDb().Raw("select count(*) from " + table).Scan(&count).Error; err != nil {
		return err
	}

	if count != expected {
		return fmt.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
	return nil
}

func (f *importerFeature) latestRecordFileIndex(ctx context.Context, expected int64) error {
	latest, err := persistence.NewRecordFileRepository(dbClient).FindLatest(ctx)
	if err != nil {
		return err
	}

	if latest == nil || latest.Index != expected {
		return fmt.Errorf("expected the latest record file to have index %d, got %+v", expected, latest)
	}
	return nil
}

func (f *importerFeature) accountBalance(account, expected int64) error {
	var balance int64
	if err := dbClient.GetDb().
		Raw("select balance from account_balance where account_id = ?", account).
		Scan(&balance).Error; err != nil {
		return err
	}

	if balance != expected {
		return fmt.Errorf("expected account %d to have balance %d, got %d", account, expected, balance)
	}
	return nil
}

func initializeImporterScenario(ctx *godog.ScenarioContext) {
	feature := &importerFeature{}

	ctx.Before(feature.reset)
	ctx.After(feature.cleanup)

	ctx.Step(`^a record file at second (\d+) with (\d+) crypto transfers?$`, feature.recordFileAt)
	ctx.Step(`^a record file at second (\d+) with (\d+) crypto transfers? chained to the latest import$`,
		feature.chainedRecordFileAt)
	ctx.Step(`^a record file at second (\d+) with (\d+) crypto transfers? and an unknown previous hash$`,
		feature.unchainedRecordFileAt)
	ctx.Step(`^a balance file at second (\d+) with the balances:$`, feature.balanceFileAt)
	ctx.Step(`^the importer polls the record stream$`, feature.recordStreamPolled)
	ctx.Step(`^the importer polls the balance stream$`, feature.balanceStreamPolled)
	ctx.Step(`^the import succeeds$`, feature.importSucceeded)
	ctx.Step(`^the import fails with a hash mismatch$`, feature.importFailedWithHashMismatch)
	ctx.Step(`^the ([a-z_]+) table has (\d+) rows?$`, feature.tableHasRows)
	ctx.Step(`^the latest record file has index (\d+)$`, feature.latestRecordFileIndex)
	ctx.Step(`^account (\d+) has a snapshot balance of (\d+)$`, feature.accountBalance)
}
