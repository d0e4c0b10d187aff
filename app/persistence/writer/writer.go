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

package writer

import (
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BatchWriter stages the projection of each transaction and writes the staged rows in bulk, either when batchSize
// transactions have been staged or at the end of a stream file. Nothing is written outside the caller's transaction
type BatchWriter struct {
	batch                  *Batch
	batchSize              int
	onFlush                func(transactions int, elapsed time.Duration)
	persistCryptoTransfers bool
}

// NewBatchWriter creates a BatchWriter flushing every batchSize transactions. Crypto transfer rows are only persisted
// when persistCryptoTransfers is set, the balance deltas they carry are always applied
func NewBatchWriter(batchSize int, persistCryptoTransfers bool) *BatchWriter {
	if batchSize < 1 {
		batchSize = 1
	}

	return &BatchWriter{
		batch:                  newBatch(),
		batchSize:              batchSize,
		persistCryptoTransfers: persistCryptoTransfers,
	}
}

// OnFlush registers a callback invoked after every successful flush
func (w *BatchWriter) OnFlush(onFlush func(transactions int, elapsed time.Duration)) {
	w.onFlush = onFlush
}

// Add stages the projection of one transaction, flushing when the batch size is reached
func (w *BatchWriter) Add(tx *gorm.DB, result *domain.ProjectionResult) error {
	w.batch.add(result, w.persistCryptoTransfers)
	return w.OnTransaction(tx)
}

// OnTransaction flushes when the staged transaction count reached the batch size
func (w *BatchWriter) OnTransaction(tx *gorm.DB) error {
	if w.batch.Len() < w.batchSize {
		return nil
	}

	return w.Flush(tx)
}

// OnFileComplete flushes whatever is staged
func (w *BatchWriter) OnFileComplete(tx *gorm.DB) error {
	return w.Flush(tx)
}

// Flush writes the staged rows in tx. The staged rows are dropped whether the write succeeds or not, a failed flush
// leaves tx unusable and the caller must roll it back
func (w *BatchWriter) Flush(tx *gorm.DB) error {
	batch := w.batch
	w.batch = newBatch()
	if batch.Len() == 0 {
		return nil
	}

	start := time.Now()
	if err := batch.write(tx); err != nil {
		return err
	}

	elapsed := time.Since(start)
	log.Debugf("Flushed %d transactions in %s", batch.Len(), elapsed)
	if w.onFlush != nil {
		w.onFlush(batch.Len(), elapsed)
	}

	return nil
}

// Reset drops the staged rows without writing them
func (w *BatchWriter) Reset() {
	w.batch = newBatch()
}
