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

package projector

import (
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/config"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/parser/record"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/services/entity"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddressBookListener is handed the contents of every file transaction targeting the address book file, in the
// database transaction of the file being processed
type AddressBookListener interface {
	IsAddressBook(fileId domain.EntityId) bool
	OnFileData(tx *gorm.DB, fileData *domain.FileData, isAppend bool) error
}

// Projector derives the rows of a record item, one handler per transaction body variant
type Projector struct {
	addressBook AddressBookListener
	entityTypes domain.EntityTypes
	persist     config.Persist
	resolver    *entity.Resolver
}

// NewProjector creates a Projector. addressBook may be nil
func NewProjector(resolver *entity.Resolver, persist config.Persist, addressBook AddressBookListener) *Projector {
	return &Projector{
		addressBook: addressBook,
		entityTypes: resolver.EntityTypes(),
		persist:     persist,
		resolver:    resolver,
	}
}

// itemContext is the state shared by the handlers projecting one record item
type itemContext struct {
	item      *record.RecordItem
	payer     domain.EntityId
	result    *domain.ProjectionResult
	timestamp int64
	tx        *gorm.DB
}

func (c *itemContext) successful() bool {
	return c.item.IsSuccessful()
}

func (c *itemContext) receipt() *services.TransactionReceipt {
	return c.item.Record.GetReceipt()
}

// setEntityId records the entity the transaction created, updated, deleted or otherwise referenced
func (c *itemContext) setEntityId(id domain.EntityId) {
	if !id.IsZero() {
		c.result.Transaction.EntityId = id.Ptr()
	}
}

// Project resolves every entity the record item references and returns the rows derived from it. Mutations are
// only derived from successful transactions, the transaction row and the transfer lists are always derived
func (p *Projector) Project(tx *gorm.DB, item *record.RecordItem) (*domain.ProjectionResult, error) {
	timestamp := item.ConsensusTimestamp
	body := item.TransactionBody

	payer, err := p.resolver.ResolveAccount(tx, item.PayerAccountId(), timestamp)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to resolve payer of transaction at %d", timestamp)
	}

	node, err := p.resolver.ResolveAccount(tx, body.GetNodeAccountID(), timestamp)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to resolve node of transaction at %d", timestamp)
	}

	c := &itemContext{
		item:      item,
		payer:     payer,
		result:    domain.NewProjectionResult(p.newTransaction(item, payer, node)),
		timestamp: timestamp,
		tx:        tx,
	}

	if !item.KnownType {
		log.Warnf(
			"Transaction at %d has unknown type %d, storing it without projection rules",
			timestamp,
			item.TransactionType,
		)
	}

	if err = p.projectBody(c); err != nil {
		return nil, errors.Wrapf(err, "Failed to project %s transaction at %d",
			record.GetTransactionTypeName(item.TransactionType), timestamp)
	}

	if err = p.projectTransfers(c); err != nil {
		return nil, err
	}

	if p.persist.NonFeeTransfers {
		if err = p.projectNonFeeTransfers(c); err != nil {
			return nil, err
		}
	}

	return c.result, nil
}

func (p *Projector) projectBody(c *itemContext) error {
	switch data := c.item.TransactionBody.GetData().(type) {
	case *services.TransactionBody_ConsensusCreateTopic:
		return p.onConsensusCreateTopic(c, data.ConsensusCreateTopic)
	case *services.TransactionBody_ConsensusDeleteTopic:
		return p.onConsensusDeleteTopic(c, data.ConsensusDeleteTopic)
	case *services.TransactionBody_ConsensusSubmitMessage:
		return p.onConsensusSubmitMessage(c, data.ConsensusSubmitMessage)
	case *services.TransactionBody_ConsensusUpdateTopic:
		return p.onConsensusUpdateTopic(c, data.ConsensusUpdateTopic)
	case *services.TransactionBody_ContractCall:
		return p.onContractCall(c, data.ContractCall)
	case *services.TransactionBody_ContractCreateInstance:
		return p.onContractCreate(c, data.ContractCreateInstance)
	case *services.TransactionBody_ContractDeleteInstance:
		return p.onContractDelete(c, data.ContractDeleteInstance)
	case *services.TransactionBody_ContractUpdateInstance:
		return p.onContractUpdate(c, data.ContractUpdateInstance)
	case *services.TransactionBody_CryptoAddLiveHash:
		return p.onCryptoAddLiveHash(c, data.CryptoAddLiveHash)
	case *services.TransactionBody_CryptoApproveAllowance:
		return p.onCryptoApproveAllowance(c, data.CryptoApproveAllowance)
	case *services.TransactionBody_CryptoCreateAccount:
		return p.onCryptoCreate(c, data.CryptoCreateAccount)
	case *services.TransactionBody_CryptoDelete:
		return p.onCryptoDelete(c, data.CryptoDelete)
	case *services.TransactionBody_CryptoDeleteAllowance:
		return p.onCryptoDeleteAllowance(c, data.CryptoDeleteAllowance)
	case *services.TransactionBody_CryptoDeleteLiveHash:
		return p.onCryptoDeleteLiveHash(c, data.CryptoDeleteLiveHash)
	case *services.TransactionBody_CryptoTransfer:
		return nil
	case *services.TransactionBody_CryptoUpdateAccount:
		return p.onCryptoUpdate(c, data.CryptoUpdateAccount)
	case *services.TransactionBody_FileAppend:
		return p.onFileAppend(c, data.FileAppend)
	case *services.TransactionBody_FileCreate:
		return p.onFileCreate(c, data.FileCreate)
	case *services.TransactionBody_FileDelete:
		return p.onFileDelete(c, data.FileDelete)
	case *services.TransactionBody_FileUpdate:
		return p.onFileUpdate(c, data.FileUpdate)
	case *services.TransactionBody_ScheduleCreate:
		return p.onScheduleCreate(c, data.ScheduleCreate)
	case *services.TransactionBody_ScheduleDelete:
		return p.onScheduleDelete(c, data.ScheduleDelete)
	case *services.TransactionBody_ScheduleSign:
		return p.onScheduleSign(c, data.ScheduleSign)
	case *services.TransactionBody_SystemDelete:
		return p.onSystemDelete(c, data.SystemDelete)
	case *services.TransactionBody_SystemUndelete:
		return p.onSystemUndelete(c, data.SystemUndelete)
	case *services.TransactionBody_TokenAssociate:
		return p.onTokenAssociate(c, data.TokenAssociate)
	case *services.TransactionBody_TokenBurn:
		return p.onTokenBurn(c, data.TokenBurn)
	case *services.TransactionBody_TokenCreation:
		return p.onTokenCreate(c, data.TokenCreation)
	case *services.TransactionBody_TokenDeletion:
		return p.onTokenDelete(c, data.TokenDeletion)
	case *services.TransactionBody_TokenDissociate:
		return p.onTokenDissociate(c, data.TokenDissociate)
	case *services.TransactionBody_TokenFreeze:
		return p.onTokenFreeze(c, data.TokenFreeze)
	case *services.TransactionBody_TokenGrantKyc:
		return p.onTokenGrantKyc(c, data.TokenGrantKyc)
	case *services.TransactionBody_TokenMint:
		return p.onTokenMint(c, data.TokenMint)
	case *services.TransactionBody_TokenRevokeKyc:
		return p.onTokenRevokeKyc(c, data.TokenRevokeKyc)
	case *services.TransactionBody_TokenUnfreeze:
		return p.onTokenUnfreeze(c, data.TokenUnfreeze)
	case *services.TransactionBody_TokenUpdate:
		return p.onTokenUpdate(c, data.TokenUpdate)
	case *services.TransactionBody_TokenWipe:
		return p.onTokenWipe(c, data.TokenWipe)
	default:
		// freeze, unchecked submit, prng, node and network administration transactions only produce the transaction
		// row and the transfer lists
		return nil
	}
}

func (p *Projector) newTransaction(item *record.RecordItem, payer, node domain.EntityId) domain.Transaction {
	body := item.TransactionBody
	transaction := domain.Transaction{
		ConsensusTimestamp: item.ConsensusTimestamp,
		ChargedTxFee:       int64(item.Record.GetTransactionFee()),
		Index:              item.Index,
		MaxFee:             int64(body.GetTransactionFee()),
		Nonce:              body.GetTransactionID().GetNonce(),
		PayerAccountId:     payer,
		Result:             item.Result(),
		Scheduled:          body.GetTransactionID().GetScheduled(),
		TransactionHash:    item.Record.GetTransactionHash(),
		Type:               item.TransactionType,
		ValidStartNs:       item.ValidStartNs(),
	}

	if !node.IsZero() {
		transaction.NodeAccountId = node.Ptr()
	}

	if body.GetMemo() != "" {
		transaction.Memo = []byte(body.GetMemo())
	}

	if body.GetTransactionValidDuration() != nil {
		transaction.ValidDurationSeconds = durationSeconds(body.GetTransactionValidDuration())
	}

	if p.persist.TransactionBytes {
		transaction.TransactionBytes = item.TransactionBytes
	}

	return transaction
}

// newEntity creates a mutation of id effective at the consensus timestamp of the item
func (p *Projector) newEntity(c *itemContext, id domain.EntityId, entityType int16) *domain.Entity {
	return domain.NewEntity(id, entityType, c.timestamp)
}

// addDeleted stages the deleted flag of id when the transaction succeeded
func (p *Projector) addDeleted(c *itemContext, id domain.EntityId, entityType int16, deleted bool) {
	c.setEntityId(id)
	if !c.successful() || id.IsZero() {
		return
	}

	entity := p.newEntity(c, id, entityType)
	entity.Deleted = &deleted
	c.result.AddEntity(entity)
}
