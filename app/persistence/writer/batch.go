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
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 2000

type contractSlot struct {
	contractId int64
	slot       string
}

type mutation struct {
	model     interface{}
	table     *versionedTable
	timestamp int64
}

// Batch holds the rows staged since the last flush. A Batch is written once and then discarded
type Batch struct {
	contractResults      []domain.ContractResult
	contractStateChanges []domain.ContractStateChange
	contractStates       map[contractSlot]*domain.ContractState
	cryptoTransfers      []domain.CryptoTransfer
	entityBalances       map[int64]*balanceChange
	fileData             []domain.FileData
	liveHashes           []domain.LiveHash
	mutations            []mutation
	nftTransfers         []domain.NftTransfer
	nonFeeTransfers      []domain.NonFeeTransfer
	tokenBalances        map[tokenAccountKey]*balanceChange
	tokenTransfers       []domain.TokenTransfer
	topicMessages        []domain.TopicMessage
	transactions         []domain.Transaction
}

func newBatch() *Batch {
	return &Batch{
		contractStates: make(map[contractSlot]*domain.ContractState),
		entityBalances: make(map[int64]*balanceChange),
		tokenBalances:  make(map[tokenAccountKey]*balanceChange),
	}
}

// Len returns the number of transactions in the batch
func (b *Batch) Len() int {
	return len(b.transactions)
}

func (b *Batch) add(result *domain.ProjectionResult, persistCryptoTransfers bool) {
	b.transactions = append(b.transactions, result.Transaction)

	for i := range result.Entities {
		entity := &result.Entities[i]
		b.addMutation(entityTable, entity, entity.GetModifiedTimestamp())
	}
	for i := range result.Tokens {
		token := &result.Tokens[i]
		b.addMutation(tokenTable, token, domain.GetTimestampRangeLower(token.TimestampRange))
	}
	for i := range result.TokenAccounts {
		tokenAccount := &result.TokenAccounts[i]
		b.addMutation(tokenAccountTable, tokenAccount, domain.GetTimestampRangeLower(tokenAccount.TimestampRange))
	}
	for i := range result.Nfts {
		nft := &result.Nfts[i]
		b.addMutation(nftTable, nft, domain.GetTimestampRangeLower(nft.TimestampRange))
	}
	for i := range result.CryptoAllowances {
		allowance := &result.CryptoAllowances[i]
		b.addMutation(cryptoAllowanceTable, allowance, domain.GetTimestampRangeLower(allowance.TimestampRange))
	}
	for i := range result.TokenAllowances {
		allowance := &result.TokenAllowances[i]
		b.addMutation(tokenAllowanceTable, allowance, domain.GetTimestampRangeLower(allowance.TimestampRange))
	}
	for i := range result.NftAllowances {
		allowance := &result.NftAllowances[i]
		b.addMutation(nftAllowanceTable, allowance, domain.GetTimestampRangeLower(allowance.TimestampRange))
	}

	for _, transfer := range result.CryptoTransfers {
		addEntityBalance(b.entityBalances, transfer.EntityId, transfer.Amount, transfer.ConsensusTimestamp)
	}
	if persistCryptoTransfers {
		b.cryptoTransfers = append(b.cryptoTransfers, result.CryptoTransfers...)
	}

	for _, transfer := range result.TokenTransfers {
		addTokenBalance(
			b.tokenBalances,
			transfer.AccountId,
			transfer.TokenId,
			transfer.Amount,
			transfer.ConsensusTimestamp,
		)
	}
	b.tokenTransfers = append(b.tokenTransfers, result.TokenTransfers...)
	b.nftTransfers = append(b.nftTransfers, result.NftTransfers...)

	for _, transfer := range result.NonFeeTransfers {
		if transfer.Amount != 0 {
			b.nonFeeTransfers = append(b.nonFeeTransfers, transfer)
		}
	}

	if result.TopicMessage != nil {
		b.topicMessages = append(b.topicMessages, *result.TopicMessage)
	}
	if result.FileData != nil {
		b.fileData = append(b.fileData, *result.FileData)
	}
	if result.ContractResult != nil {
		b.contractResults = append(b.contractResults, *result.ContractResult)
	}
	if result.LiveHash != nil {
		b.liveHashes = append(b.liveHashes, *result.LiveHash)
	}

	for _, change := range result.ContractStateChanges {
		b.contractStateChanges = append(b.contractStateChanges, change)
		if change.ValueWritten != nil {
			b.addContractState(change)
		}
	}
}

func (b *Batch) addContractState(change domain.ContractStateChange) {
	key := contractSlot{contractId: change.ContractId.EncodedId, slot: string(change.Slot)}
	if state, ok := b.contractStates[key]; ok {
		state.ModifiedTimestamp = change.ConsensusTimestamp
		state.Value = change.ValueWritten
		return
	}

	b.contractStates[key] = &domain.ContractState{
		ContractId:        change.ContractId,
		CreatedTimestamp:  change.ConsensusTimestamp,
		ModifiedTimestamp: change.ConsensusTimestamp,
		Slot:              change.Slot,
		Value:             change.ValueWritten,
	}
}

func (b *Batch) addMutation(table *versionedTable, model interface{}, timestamp int64) {
	b.mutations = append(b.mutations, mutation{model: model, table: table, timestamp: timestamp})
}

// write applies the batch in the caller's transaction. Versioned mutations go first and in order, so the append only
// rows and balance deltas of the batch always see the rows they reference
func (b *Batch) write(tx *gorm.DB) error {
	for _, m := range b.mutations {
		if err := m.table.upsert(tx, m.model, m.timestamp); err != nil {
			return errors.Wrapf(err, "Failed to upsert %s at %d", m.table.name, m.timestamp)
		}
	}

	if err := writeEntityBalances(tx, b.entityBalances); err != nil {
		return errors.Wrap(err, "Failed to update entity balances")
	}

	if err := writeTokenBalances(tx, b.tokenBalances); err != nil {
		return errors.Wrap(err, "Failed to update token balances")
	}

	if err := b.writeContractStates(tx); err != nil {
		return errors.Wrap(err, "Failed to upsert contract state")
	}

	inserts := []struct {
		name  string
		count int
		rows  interface{}
	}{
		{"transaction", len(b.transactions), &b.transactions},
		{"crypto_transfer", len(b.cryptoTransfers), &b.cryptoTransfers},
		{"non_fee_transfer", len(b.nonFeeTransfers), &b.nonFeeTransfers},
		{"token_transfer", len(b.tokenTransfers), &b.tokenTransfers},
		{"nft_transfer", len(b.nftTransfers), &b.nftTransfers},
		{"topic_message", len(b.topicMessages), &b.topicMessages},
		{"file_data", len(b.fileData), &b.fileData},
		{"contract_result", len(b.contractResults), &b.contractResults},
		{"contract_state_change", len(b.contractStateChanges), &b.contractStateChanges},
		{"live_hash", len(b.liveHashes), &b.liveHashes},
	}
	for _, insert := range inserts {
		if insert.count == 0 {
			continue
		}

		if err := tx.CreateInBatches(insert.rows, insertBatchSize).Error; err != nil {
			return errors.Wrapf(err, "Failed to insert %d %s rows", insert.count, insert.name)
		}
	}

	return nil
}

func (b *Batch) writeContractStates(tx *gorm.DB) error {
	if len(b.contractStates) == 0 {
		return nil
	}

	keys := sortedKeys(b.contractStates, func(a, b contractSlot) int {
		if a.contractId != b.contractId {
			return compareInt64(a.contractId, b.contractId)
		}
		return compareString(a.slot, b.slot)
	})
	states := make([]domain.ContractState, 0, len(keys))
	for _, key := range keys {
		states = append(states, *b.contractStates[key])
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contract_id"}, {Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"modified_timestamp", "value"}),
	}).Create(&states).Error
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
