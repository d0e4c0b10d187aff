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
	"testing"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	tdb "github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/test/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var (
	addressBookFileId = domain.MustEntityIdFromString("0.0.102")
	nodeAccountId3    = domain.MustEntityIdFromString("0.0.3")
	nodeAccountId4    = domain.MustEntityIdFromString("0.0.4")
)

// run the suite
func TestAddressBookEntryRepositorySuite(t *testing.T) {
	suite.Run(t, new(addressBookEntryRepositorySuite))
}

type addressBookEntryRepositorySuite struct {
	integrationTest
	suite.Suite
}

func (suite *addressBookEntryRepositorySuite) TestEntries() {
	endTimestamp := int64(9)
	tdb.CreateDbRecords(dbClient,
		&domain.AddressBook{
			EndConsensusTimestamp:   &endTimestamp,
			FileData:                []byte{},
			FileId:                  addressBookFileId,
			NodeCount:               1,
			StartConsensusTimestamp: 1,
		},
		&domain.AddressBookEntry{ConsensusTimestamp: 1, NodeAccountId: nodeAccountId3, NodeId: 0},
		&domain.AddressBook{
			FileData:                []byte{},
			FileId:                  addressBookFileId,
			NodeCount:               2,
			StartConsensusTimestamp: 10,
		},
		&domain.AddressBookEntry{ConsensusTimestamp: 10, NodeAccountId: nodeAccountId4, NodeId: 1},
		&domain.AddressBookEntry{ConsensusTimestamp: 10, NodeAccountId: nodeAccountId3, NodeId: 0},
	)

	entries, err := NewAddressBookEntryRepository(dbClient).Entries(defaultContext, addressBookFileId)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), entries, 2)
	assert.Equal(suite.T(), nodeAccountId3, entries[0].NodeAccountId)
	assert.Equal(suite.T(), nodeAccountId4, entries[1].NodeAccountId)
}

func (suite *addressBookEntryRepositorySuite) TestEntriesNoAddressBook() {
	entries, err := NewAddressBookEntryRepository(dbClient).Entries(defaultContext, addressBookFileId)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), entries)
}
