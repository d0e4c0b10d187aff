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

package persistence

import (
	"context"
	"database/sql"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	log "github.com/sirupsen/logrus"
)

const (
	selectSlotValue = `select value
                       from contract_state
                       where contract_id = @contract_id and slot = @slot`
	// selectSlotValueAsOf - a read only access records the value it read, which is the slot value at that time
	selectSlotValueAsOf = `select coalesce(value_written, value_read) as value
                           from contract_state_change
                           where contract_id = @contract_id and
                             slot = @slot and
                             consensus_timestamp <= @timestamp
                           order by consensus_timestamp desc
                           limit 1`
)

type slotValue struct {
	Value []byte
}

// contractStateRepository struct that has connection to the Database
type contractStateRepository struct {
	dbClient interfaces.DbClient
}

// NewContractStateRepository creates an instance of a contractStateRepository struct
func NewContractStateRepository(dbClient interfaces.DbClient) interfaces.ContractStateRepository {
	return &contractStateRepository{dbClient}
}

func (cr *contractStateRepository) FindSlotValue(
	ctx context.Context,
	contractId domain.EntityId,
	slot []byte,
	timestamp *int64,
) ([]byte, error) {
	db, cancel := cr.dbClient.GetDbWithContext(ctx)
	defer cancel()

	query := selectSlotValue
	args := []interface{}{sql.Named("contract_id", contractId.EncodedId), sql.Named("slot", slot)}
	if timestamp != nil {
		query = selectSlotValueAsOf
		args = append(args, sql.Named(timestampArgName, *timestamp))
	}

	values := make([]slotValue, 0, 1)
	if err := db.Raw(query, args...).Scan(&values).Error; err != nil {
		log.Errorf(databaseErrorFormat, errors.ErrDatabaseError, err)
		return nil, errors.ErrDatabaseError
	}

	if len(values) == 0 {
		return nil, nil
	}

	return values[0].Value, nil
}
