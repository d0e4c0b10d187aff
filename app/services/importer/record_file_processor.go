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
	"io"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/config"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/parser"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/parser/record"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Projector derives the rows of one record item
type Projector interface {
	Project(tx *gorm.DB, item *record.RecordItem) (*domain.ProjectionResult, error)
}

// Writer stages projections and writes them in the transaction of the file
type Writer interface {
	Add(tx *gorm.DB, result *domain.ProjectionResult) error
	OnFileComplete(tx *gorm.DB) error
	Reset()
}

// EntityCache holds the entity mappings learned while a file is processed
type EntityCache interface {
	Commit()
	Rollback()
}

// RecordFileProcessor ingests record stream files one at a time. Every file is applied in a single database
// transaction, a failed file leaves no rows behind and can be processed again from the start
type RecordFileProcessor struct {
	config         config.RecordParser
	dbClient       interfaces.DbClient
	entityCache    EntityCache
	listener       compositeListener
	projector      Projector
	recordFileRepo interfaces.RecordFileRepository
	writer         Writer
}

// NewRecordFileProcessor creates a RecordFileProcessor
func NewRecordFileProcessor(
	recordParser config.RecordParser,
	dbClient interfaces.DbClient,
	recordFileRepo interfaces.RecordFileRepository,
	entityCache EntityCache,
	projector Projector,
	writer Writer,
	listeners ...Listener,
) *RecordFileProcessor {
	return &RecordFileProcessor{
		config:         recordParser,
		dbClient:       dbClient,
		entityCache:    entityCache,
		listener:       listeners,
		projector:      projector,
		recordFileRepo: recordFileRepo,
		writer:         writer,
	}
}

// Process ingests the record file and returns its final state, Skip if a file with the same name was already
// ingested, Complete once its rows are committed, or Error with the cause
func (p *RecordFileProcessor) Process(ctx context.Context, file *parser.StreamFile) (State, error) {
	exists, err := p.recordFileRepo.ExistsByName(ctx, file.Name)
	if err != nil {
		return Error, err
	}

	if exists {
		log.Infof("Skipping record file %s, it was already processed", file.Name)
		return Skip, nil
	}

	previous, err := p.recordFileRepo.FindLatest(ctx)
	if err != nil {
		return p.onError(file.Name, err)
	}

	loadStart := time.Now()
	reader, err := record.NewReader(file)
	if err != nil {
		return p.onError(file.Name, err)
	}

	var recordFile *domain.RecordFile
	err = p.dbClient.RunInTransaction(ctx, p.config.TransactionTimeout, func(tx *gorm.DB) error {
		var streamErr error
		recordFile, streamErr = p.stream(tx, reader, previous, loadStart)
		return streamErr
	})
	if err != nil {
		return p.onError(file.Name, err)
	}

	p.entityCache.Commit()
	p.listener.OnFileComplete(recordFile)
	log.Infof("Processed record file %s with %d transactions in %s", recordFile.Name, recordFile.Count,
		time.Since(loadStart))
	return Complete, nil
}

func (p *RecordFileProcessor) stream(
	tx *gorm.DB,
	reader *record.Reader,
	previous *domain.RecordFile,
	loadStart time.Time,
) (*domain.RecordFile, error) {
	for {
		item, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if !p.config.InRange(item.ConsensusTimestamp) {
			continue
		}

		result, err := p.projector.Project(tx, item)
		if err != nil {
			return nil, err
		}

		if err = p.writer.Add(tx, result); err != nil {
			return nil, err
		}
	}

	if err := p.writer.OnFileComplete(tx); err != nil {
		return nil, err
	}

	recordFile, err := reader.RecordFile()
	if err != nil {
		return nil, err
	}

	if err = p.verifyHashChain(recordFile, previous); err != nil {
		return nil, err
	}

	if previous != nil {
		recordFile.Index = previous.Index + 1
	}
	recordFile.LoadStart = loadStart.Unix()
	recordFile.LoadEnd = time.Now().Unix()
	if err = tx.Create(recordFile).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseError, err.Error())
	}

	return recordFile, nil
}

func (p *RecordFileProcessor) verifyHashChain(recordFile, previous *domain.RecordFile) error {
	if p.config.SkipHashCheck || previous == nil || previous.Hash == recordFile.PrevHash {
		return nil
	}

	return errors.Wrapf(
		errors.ErrHashMismatch,
		"record file %s expects previous hash %s, latest file %s has %s",
		recordFile.Name,
		recordFile.PrevHash,
		previous.Name,
		previous.Hash,
	)
}

func (p *RecordFileProcessor) onError(fileName string, err error) (State, error) {
	p.entityCache.Rollback()
	p.writer.Reset()
	log.Errorf("Failed to process record file %s: %s", fileName, err)
	p.listener.OnError(fileName, err)
	return Error, err
}
