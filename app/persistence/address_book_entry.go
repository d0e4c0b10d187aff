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
	// selectLatestAddressBookEntries - Selects the entries of the latest address book of the file
	selectLatestAddressBookEntries = `select abe.*
                                      from address_book_entry abe
                                      join (
                                        select start_consensus_timestamp
                                        from address_book
                                        where file_id = @file_id
                                        order by start_consensus_timestamp desc
                                        limit 1
                                      ) ab on abe.consensus_timestamp = ab.start_consensus_timestamp
                                      order by abe.node_id`
)

// addressBookEntryRepository struct that has connection to the Database
type addressBookEntryRepository struct {
	dbClient interfaces.DbClient
}

// NewAddressBookEntryRepository creates an instance of a addressBookEntryRepository struct.
func NewAddressBookEntryRepository(dbClient interfaces.DbClient) interfaces.AddressBookEntryRepository {
	return &addressBookEntryRepository{dbClient}
}

// Entries return the entries of the latest address book stored from the file
func (aber *addressBookEntryRepository) Entries(ctx context.Context, fileId domain.EntityId) (
	[]domain.AddressBookEntry,
	error,
) {
	db, cancel := aber.dbClient.GetDbWithContext(ctx)
	defer cancel()

	entries := make([]domain.AddressBookEntry, 0)
	if err := db.Raw(
		selectLatestAddressBookEntries,
		sql.Named("file_id", fileId.EncodedId),
	).Scan(&entries).Error; err != nil {
		log.Errorf(databaseErrorFormat, errors.ErrDatabaseError, err)
		return nil, errors.ErrDatabaseError
	}

	return entries, nil
}
