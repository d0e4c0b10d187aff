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

package domain

import (
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
)

type ContractStateChangeBuilder struct {
	change   domain.ContractStateChange
	dbClient interfaces.DbClient
}

func (b *ContractStateChangeBuilder) ValueRead(value []byte) *ContractStateChangeBuilder {
	b.change.ValueRead = value
	return b
}

func (b *ContractStateChangeBuilder) ValueWritten(value []byte) *ContractStateChangeBuilder {
	b.change.ValueWritten = value
	return b
}

// Persist inserts the change and, for a write, the resulting current slot value
func (b *ContractStateChangeBuilder) Persist() domain.ContractStateChange {
	db := b.dbClient.GetDb()
	db.Create(&b.change)
	if b.change.ValueWritten != nil {
		db.Exec(
			`insert into contract_state (contract_id, created_timestamp, modified_timestamp, slot, value)
             values (?, ?, ?, ?, ?)
             on conflict (contract_id, slot) do update
             set modified_timestamp = excluded.modified_timestamp, value = excluded.value`,
			b.change.ContractId.EncodedId,
			b.change.ConsensusTimestamp,
			b.change.ConsensusTimestamp,
			b.change.Slot,
			b.change.ValueWritten,
		)
	}
	return b.change
}

func NewContractStateChangeBuilder(
	dbClient interfaces.DbClient,
	contractId int64,
	slot []byte,
	timestamp int64,
) *ContractStateChangeBuilder {
	change := domain.ContractStateChange{
		ConsensusTimestamp: timestamp,
		ContractId:         domain.MustDecodeEntityId(contractId),
		PayerAccountId:     defaultPayer,
		Slot:               slot,
	}
	return &ContractStateChangeBuilder{change: change, dbClient: dbClient}
}
