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
	"bytes"
	"database/sql"
	"net"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	log "github.com/sirupsen/logrus"
	"google.golang.org/protobuf/proto"
	"gorm.io/gorm"
)

// the address book files of a network
const (
	addressBookFileNum int64 = 102
	nodeDetailsFileNum int64 = 101
)

const closePreviousAddressBook = `update address_book
                                  set end_consensus_timestamp = @end
                                  where file_id = @file_id and end_consensus_timestamp is null`

// selectFileDataSinceLastUpdate - Selects the contents of the file written by its latest create or update and every
// append after it
const selectFileDataSinceLastUpdate = `select *
                                       from file_data
                                       where entity_id = @file_id and consensus_timestamp >= (
                                         select coalesce(max(consensus_timestamp), 0)
                                         from file_data
                                         where entity_id = @file_id and transaction_type <> @append_type
                                       )
                                       order by consensus_timestamp`

var fileAppendType = int16(
	(&services.TransactionBody{}).ProtoReflect().Descriptor().Fields().ByName("fileAppend").Number(),
)

// Service keeps the address book tables in step with the file transactions targeting the address book files. Every
// part of the file is stored, a new address book version is recorded once the parts form a complete book
type Service struct {
	fileIds map[int64]struct{}
}

// NewService creates a Service for the address book files of shard.realm
func NewService(shard, realm int64) (*Service, error) {
	fileIds := make(map[int64]struct{})
	for _, num := range []int64{nodeDetailsFileNum, addressBookFileNum} {
		fileId, err := domain.NewEntityId(shard, realm, num)
		if err != nil {
			return nil, err
		}
		fileIds[fileId.EncodedId] = struct{}{}
	}

	return &Service{fileIds: fileIds}, nil
}

// IsAddressBook reports whether the file is one of the address book files
func (s *Service) IsAddressBook(fileId domain.EntityId) bool {
	_, ok := s.fileIds[fileId.EncodedId]
	return ok
}

// OnFileData stores a part of an address book file and, when the parts written since the last create or update decode
// to a complete address book, records it as the current address book of the file
func (s *Service) OnFileData(tx *gorm.DB, fileData *domain.FileData, isAppend bool) error {
	if err := tx.Create(fileData).Error; err != nil {
		log.Errorf("Failed to store address book file data at %d: %s", fileData.ConsensusTimestamp, err)
		return errors.Wrap(errors.ErrDatabaseError, err.Error())
	}

	contents := fileData.FileData
	if isAppend {
		var err error
		if contents, err = s.readContents(tx, fileData.EntityId); err != nil {
			return err
		}
	}

	nodeAddressBook := &services.NodeAddressBook{}
	if err := proto.Unmarshal(contents, nodeAddressBook); err != nil || len(nodeAddressBook.GetNodeAddress()) == 0 {
		log.Infof("Address book file %s at %d is incomplete", fileData.EntityId, fileData.ConsensusTimestamp)
		return nil
	}

	return s.save(tx, fileData, contents, nodeAddressBook)
}

func (s *Service) readContents(tx *gorm.DB, fileId domain.EntityId) ([]byte, error) {
	var parts []domain.FileData
	if err := tx.Raw(
		selectFileDataSinceLastUpdate,
		sql.Named("append_type", fileAppendType),
		sql.Named("file_id", fileId.EncodedId),
	).Scan(&parts).Error; err != nil {
		log.Errorf("Failed to read address book file %s: %s", fileId, err)
		return nil, errors.Wrap(errors.ErrDatabaseError, err.Error())
	}

	var buffer bytes.Buffer
	for _, part := range parts {
		buffer.Write(part.FileData)
	}

	return buffer.Bytes(), nil
}

func (s *Service) save(
	tx *gorm.DB,
	fileData *domain.FileData,
	contents []byte,
	nodeAddressBook *services.NodeAddressBook,
) error {
	// the new version takes effect right after the transaction that completed it
	startTimestamp := fileData.ConsensusTimestamp + 1
	entries := make([]domain.AddressBookEntry, 0, len(nodeAddressBook.GetNodeAddress()))
	endpoints := make([]domain.AddressBookServiceEndpoint, 0)
	for _, nodeAddress := range nodeAddressBook.GetNodeAddress() {
		entry, err := toEntry(fileData.EntityId, nodeAddress, startTimestamp)
		if err != nil {
			log.Warnf("Skipping node %d of address book at %d: %s", nodeAddress.GetNodeId(), startTimestamp, err)
			continue
		}

		entries = append(entries, entry)
		endpoints = append(endpoints, toServiceEndpoints(nodeAddress, startTimestamp)...)
	}

	if err := tx.Exec(
		closePreviousAddressBook,
		sql.Named("end", fileData.ConsensusTimestamp),
		sql.Named("file_id", fileData.EntityId.EncodedId),
	).Error; err != nil {
		return errors.Wrap(errors.ErrDatabaseError, err.Error())
	}

	addressBook := &domain.AddressBook{
		FileData:                contents,
		FileId:                  fileData.EntityId,
		NodeCount:               int32(len(entries)),
		StartConsensusTimestamp: startTimestamp,
	}
	if err := tx.Create(addressBook).Error; err != nil {
		return errors.Wrap(errors.ErrDatabaseError, err.Error())
	}

	if len(entries) != 0 {
		if err := tx.Create(&entries).Error; err != nil {
			return errors.Wrap(errors.ErrDatabaseError, err.Error())
		}
	}

	if len(endpoints) != 0 {
		if err := tx.Create(&endpoints).Error; err != nil {
			return errors.Wrap(errors.ErrDatabaseError, err.Error())
		}
	}

	log.Infof("Saved address book of file %s with %d nodes effective at %d", fileData.EntityId, len(entries),
		startTimestamp)
	return nil
}

func toEntry(
	fileId domain.EntityId,
	nodeAddress *services.NodeAddress,
	consensusTimestamp int64,
) (domain.AddressBookEntry, error) {
	nodeAccountId, err := nodeAccount(fileId, nodeAddress)
	if err != nil {
		return domain.AddressBookEntry{}, err
	}

	return domain.AddressBookEntry{
		ConsensusTimestamp: consensusTimestamp,
		Description:        nodeAddress.GetDescription(),
		Memo:               string(nodeAddress.GetMemo()),
		NodeAccountId:      nodeAccountId,
		NodeCertHash:       nodeAddress.GetNodeCertHash(),
		NodeId:             nodeAddress.GetNodeId(),
		PublicKey:          nodeAddress.GetRSA_PubKey(),
		Stake:              nodeAddress.GetStake(),
	}, nil
}

// nodeAccount returns the account of the node, older address books only carry it in the memo
func nodeAccount(fileId domain.EntityId, nodeAddress *services.NodeAddress) (domain.EntityId, error) {
	if accountId := nodeAddress.GetNodeAccountId(); accountId != nil {
		return domain.NewEntityId(fileId.ShardNum, fileId.RealmNum, accountId.GetAccountNum())
	}

	return domain.EntityIdFromString(string(nodeAddress.GetMemo()))
}

func toServiceEndpoints(
	nodeAddress *services.NodeAddress,
	consensusTimestamp int64,
) []domain.AddressBookServiceEndpoint {
	endpoints := make([]domain.AddressBookServiceEndpoint, 0, len(nodeAddress.GetServiceEndpoint())+1)
	for _, serviceEndpoint := range nodeAddress.GetServiceEndpoint() {
		if len(serviceEndpoint.GetIpAddressV4()) != net.IPv4len {
			continue
		}

		endpoints = append(endpoints, domain.AddressBookServiceEndpoint{
			ConsensusTimestamp: consensusTimestamp,
			IpAddressV4:        net.IP(serviceEndpoint.GetIpAddressV4()).String(),
			NodeId:             nodeAddress.GetNodeId(),
			Port:               serviceEndpoint.GetPort(),
		})
	}

	if len(endpoints) == 0 && len(nodeAddress.GetIpAddress()) != 0 {
		endpoints = append(endpoints, domain.AddressBookServiceEndpoint{
			ConsensusTimestamp: consensusTimestamp,
			IpAddressV4:        string(nodeAddress.GetIpAddress()),
			NodeId:             nodeAddress.GetNodeId(),
			Port:               nodeAddress.GetPortno(),
		})
	}

	return endpoints
}
