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

package addressbook

import (
	"testing"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	tdomain "github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/test/domain"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/stretchr/testify/suite"
)

const (
	fileUpdateType int16 = 19
	timestamp1     int64 = 1656693000269913000
	timestamp2           = timestamp1 + 10
	timestamp3           = timestamp1 + 20
)

var (
	addressBookFile = domain.MustDecodeEntityId(addressBookFileNum)
	nodeDetailsFile = domain.MustDecodeEntityId(nodeDetailsFileNum)
)

func TestAddressBookServiceSuite(t *testing.T) {
	suite.Run(t, new(addressBookServiceSuite))
}

type addressBookServiceSuite struct {
	integrationTest
	suite.Suite
	service *Service
}

func (suite *addressBookServiceSuite) SetupSuite() {
	service, err := NewService(0, 0)
	suite.Require().NoError(err)
	suite.service = service
}

func (suite *addressBookServiceSuite) TestIsAddressBook() {
	suite.True(suite.service.IsAddressBook(addressBookFile))
	suite.True(suite.service.IsAddressBook(nodeDetailsFile))
	suite.False(suite.service.IsAddressBook(domain.MustDecodeEntityId(150)))
	suite.False(suite.service.IsAddressBook(domain.MustEntityIdFromString("1.0.102")))
}

func (suite *addressBookServiceSuite) TestOtherShardRealm() {
	service, err := NewService(1, 2)
	suite.Require().NoError(err)

	suite.True(service.IsAddressBook(domain.MustEntityIdFromString("1.2.102")))
	suite.False(service.IsAddressBook(addressBookFile))
}

func (suite *addressBookServiceSuite) TestOnFileDataComplete() {
	// given
	contents := tdomain.MustMarshal(nodeAddressBook())

	// when
	err := suite.service.OnFileData(dbClient.GetDb(), fileData(timestamp1, contents, fileUpdateType), false)

	// then
	suite.Require().NoError(err)
	suite.Equal(1, suite.countFileData())

	addressBooks := suite.addressBooks()
	suite.Equal([]domain.AddressBook{
		{
			FileData:                contents,
			FileId:                  addressBookFile,
			NodeCount:               2,
			StartConsensusTimestamp: timestamp1 + 1,
		},
	}, addressBooks)

	entries := suite.entries()
	suite.Equal([]domain.AddressBookEntry{
		{
			ConsensusTimestamp: timestamp1 + 1,
			Description:        "node 0",
			Memo:               "0.0.3",
			NodeAccountId:      domain.MustEntityIdFromString("0.0.3"),
			NodeCertHash:       []byte{0x1},
			NodeId:             0,
			PublicKey:          "308201a2",
			Stake:              10,
		},
		{
			ConsensusTimestamp: timestamp1 + 1,
			Memo:               "0.0.4",
			NodeAccountId:      domain.MustEntityIdFromString("0.0.4"),
			NodeId:             1,
			PublicKey:          "308201a3",
		},
	}, entries)

	endpoints := suite.endpoints()
	suite.Equal([]domain.AddressBookServiceEndpoint{
		{ConsensusTimestamp: timestamp1 + 1, IpAddressV4: "127.0.0.1", NodeId: 0, Port: 50211},
		{ConsensusTimestamp: timestamp1 + 1, IpAddressV4: "127.0.0.2", NodeId: 1, Port: 50212},
	}, endpoints)
}

func (suite *addressBookServiceSuite) TestOnFileDataAppend() {
	// given
	contents := tdomain.MustMarshal(nodeAddressBook())
	// the first part ends in the middle of the first node
	first := contents[:3]
	second := contents[3:]
	tx := dbClient.GetDb()

	// when
	err := suite.service.OnFileData(tx, fileData(timestamp1, first, fileUpdateType), false)

	// then
	suite.Require().NoError(err)
	suite.Empty(suite.addressBooks())

	// when
	err = suite.service.OnFileData(tx, fileData(timestamp2, second, fileAppendType), true)

	// then
	suite.Require().NoError(err)
	suite.Equal(2, suite.countFileData())
	addressBooks := suite.addressBooks()
	suite.Require().Len(addressBooks, 1)
	suite.Equal(contents, addressBooks[0].FileData)
	suite.Equal(timestamp2+1, addressBooks[0].StartConsensusTimestamp)
	suite.Len(suite.entries(), 2)
}

func (suite *addressBookServiceSuite) TestOnFileDataAppendIgnoresEarlierVersion() {
	// given
	contents := tdomain.MustMarshal(nodeAddressBook())
	tx := dbClient.GetDb()
	suite.Require().NoError(suite.service.OnFileData(tx, fileData(timestamp1, contents, fileUpdateType), false))

	// when
	err := suite.service.OnFileData(tx, fileData(timestamp2, contents[:3], fileUpdateType), false)
	suite.Require().NoError(err)
	err = suite.service.OnFileData(tx, fileData(timestamp3, contents[3:], fileAppendType), true)

	// then
	suite.Require().NoError(err)
	addressBooks := suite.addressBooks()
	suite.Require().Len(addressBooks, 2)
	suite.Equal(contents, addressBooks[1].FileData)
	suite.Equal(timestamp3+1, addressBooks[1].StartConsensusTimestamp)
}

func (suite *addressBookServiceSuite) TestOnFileDataIncomplete() {
	tests := []struct {
		name     string
		contents []byte
	}{
		{name: "empty", contents: []byte{}},
		{name: "invalid", contents: []byte{0xff, 0xff, 0xff}},
		{name: "no nodes", contents: tdomain.MustMarshal(&services.NodeAddressBook{})},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()

			err := suite.service.OnFileData(dbClient.GetDb(), fileData(timestamp1, tt.contents, fileUpdateType), false)

			suite.NoError(err)
			suite.Equal(1, suite.countFileData())
			suite.Empty(suite.addressBooks())
			suite.Empty(suite.entries())
		})
	}
}

func (suite *addressBookServiceSuite) TestOnFileDataClosesPrevious() {
	// given
	tx := dbClient.GetDb()
	book1 := tdomain.MustMarshal(nodeAddressBook())
	book2 := tdomain.MustMarshal(&services.NodeAddressBook{
		NodeAddress: []*services.NodeAddress{
			{NodeAccountId: tdomain.AccountId(5), NodeId: 2, RSA_PubKey: "308201a4"},
		},
	})

	// when
	suite.Require().NoError(suite.service.OnFileData(tx, fileData(timestamp1, book1, fileUpdateType), false))
	suite.Require().NoError(suite.service.OnFileData(tx, fileData(timestamp2, book2, fileUpdateType), false))

	// then
	end := timestamp2
	suite.Equal([]domain.AddressBook{
		{
			EndConsensusTimestamp:   &end,
			FileData:                book1,
			FileId:                  addressBookFile,
			NodeCount:               2,
			StartConsensusTimestamp: timestamp1 + 1,
		},
		{
			FileData:                book2,
			FileId:                  addressBookFile,
			NodeCount:               1,
			StartConsensusTimestamp: timestamp2 + 1,
		},
	}, suite.addressBooks())
	suite.Len(suite.entries(), 3)
}

func (suite *addressBookServiceSuite) TestOnFileDataDeprecatedEndpoint() {
	// given
	contents := tdomain.MustMarshal(&services.NodeAddressBook{
		NodeAddress: []*services.NodeAddress{
			{IpAddress: []byte("10.0.0.1"), Memo: []byte("0.0.3"), Portno: 50211, RSA_PubKey: "308201a2"},
		},
	})

	// when
	err := suite.service.OnFileData(dbClient.GetDb(), fileData(timestamp1, contents, fileUpdateType), false)

	// then
	suite.Require().NoError(err)
	suite.Equal([]domain.AddressBookServiceEndpoint{
		{ConsensusTimestamp: timestamp1 + 1, IpAddressV4: "10.0.0.1", NodeId: 0, Port: 50211},
	}, suite.endpoints())
}

func (suite *addressBookServiceSuite) TestOnFileDataSkipsNodeWithoutAccount() {
	// given
	contents := tdomain.MustMarshal(&services.NodeAddressBook{
		NodeAddress: []*services.NodeAddress{
			{Memo: []byte("not an account"), NodeId: 0},
			{NodeAccountId: tdomain.AccountId(4), NodeId: 1},
		},
	})

	// when
	err := suite.service.OnFileData(dbClient.GetDb(), fileData(timestamp1, contents, fileUpdateType), false)

	// then
	suite.Require().NoError(err)
	addressBooks := suite.addressBooks()
	suite.Require().Len(addressBooks, 1)
	suite.Equal(int32(1), addressBooks[0].NodeCount)
	entries := suite.entries()
	suite.Require().Len(entries, 1)
	suite.Equal(int64(1), entries[0].NodeId)
}

func (suite *addressBookServiceSuite) addressBooks() []domain.AddressBook {
	var addressBooks []domain.AddressBook
	suite.Require().NoError(
		dbClient.GetDb().Raw("select * from address_book order by start_consensus_timestamp").
			Scan(&addressBooks).Error,
	)
	return addressBooks
}

func (suite *addressBookServiceSuite) countFileData() int {
	var count int
	suite.Require().NoError(dbClient.GetDb().Raw("select count(*) from file_data").Scan(&count).Error)
	return count
}

func (suite *addressBookServiceSuite) endpoints() []domain.AddressBookServiceEndpoint {
	var endpoints []domain.AddressBookServiceEndpoint
	suite.Require().NoError(
		dbClient.GetDb().Raw("select * from address_book_service_endpoint order by consensus_timestamp, node_id").
			Scan(&endpoints).Error,
	)
	return endpoints
}

func (suite *addressBookServiceSuite) entries() []domain.AddressBookEntry {
	var entries []domain.AddressBookEntry
	suite.Require().NoError(
		dbClient.GetDb().Raw("select * from address_book_entry order by consensus_timestamp, node_id").
			Scan(&entries).Error,
	)
	return entries
}

func fileData(consensusTimestamp int64, contents []byte, transactionType int16) *domain.FileData {
	return &domain.FileData{
		ConsensusTimestamp: consensusTimestamp,
		EntityId:           addressBookFile,
		FileData:           contents,
		TransactionType:    transactionType,
	}
}

func nodeAddressBook() *services.NodeAddressBook {
	return &services.NodeAddressBook{
		NodeAddress: []*services.NodeAddress{
			{
				Description:   "node 0",
				Memo:          []byte("0.0.3"),
				NodeAccountId: tdomain.AccountId(3),
				NodeCertHash:  []byte{0x1},
				NodeId:        0,
				RSA_PubKey:    "308201a2",
				ServiceEndpoint: []*services.ServiceEndpoint{
					{IpAddressV4: []byte{127, 0, 0, 1}, Port: 50211},
				},
				Stake: 10,
			},
			{
				Memo:          []byte("0.0.4"),
				NodeAccountId: tdomain.AccountId(4),
				NodeId:        1,
				RSA_PubKey:    "308201a3",
				ServiceEndpoint: []*services.ServiceEndpoint{
					{IpAddressV4: []byte{127, 0, 0, 2}, Port: 50212},
				},
			},
		},
	}
}
