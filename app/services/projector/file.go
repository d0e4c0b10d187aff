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
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

// files below this number are system files
const systemFileThreshold = 1000

func (p *Projector) onFileCreate(c *itemContext, body *services.FileCreateTransactionBody) error {
	fileId, err := p.resolver.ResolveFile(c.tx, c.receipt().GetFileID(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(fileId)
	if !c.successful() || fileId.IsZero() {
		return nil
	}

	entity := p.newEntity(c, fileId, p.entityTypes.File())
	entity.CreatedTimestamp = int64Ptr(c.timestamp)
	entity.Deleted = boolPtr(false)
	entity.ExpirationTimestamp = timestampNanos(body.GetExpirationTime())
	entity.Key = marshalKeyList(body.GetKeys())
	entity.Memo = stringPtr(body.GetMemo())
	c.result.AddEntity(entity)

	return p.addFileData(c, fileId, body.GetContents(), false)
}

func (p *Projector) onFileUpdate(c *itemContext, body *services.FileUpdateTransactionBody) error {
	fileId, err := p.resolver.ResolveFile(c.tx, body.GetFileID(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(fileId)
	if !c.successful() || fileId.IsZero() {
		return nil
	}

	entity := p.newEntity(c, fileId, p.entityTypes.File())
	entity.ExpirationTimestamp = timestampNanos(body.GetExpirationTime())
	entity.Key = marshalKeyList(body.GetKeys())
	entity.Memo = stringValue(body.GetMemo())
	c.result.AddEntity(entity)

	if len(body.GetContents()) == 0 {
		return nil
	}

	return p.addFileData(c, fileId, body.GetContents(), false)
}

func (p *Projector) onFileAppend(c *itemContext, body *services.FileAppendTransactionBody) error {
	fileId, err := p.resolver.ResolveFile(c.tx, body.GetFileID(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(fileId)
	if !c.successful() || fileId.IsZero() {
		return nil
	}

	return p.addFileData(c, fileId, body.GetContents(), true)
}

func (p *Projector) onFileDelete(c *itemContext, body *services.FileDeleteTransactionBody) error {
	fileId, err := p.resolver.ResolveFile(c.tx, body.GetFileID(), c.timestamp)
	if err != nil {
		return err
	}

	p.addDeleted(c, fileId, p.entityTypes.File(), true)
	return nil
}

func (p *Projector) onSystemDelete(c *itemContext, body *services.SystemDeleteTransactionBody) error {
	return p.onSystemDeleted(c, body.GetFileID(), body.GetContractID(), true)
}

func (p *Projector) onSystemUndelete(c *itemContext, body *services.SystemUndeleteTransactionBody) error {
	return p.onSystemDeleted(c, body.GetFileID(), body.GetContractID(), false)
}

func (p *Projector) onSystemDeleted(
	c *itemContext,
	fileId *services.FileID,
	contractId *services.ContractID,
	deleted bool,
) error {
	if fileId != nil {
		id, err := p.resolver.ResolveFile(c.tx, fileId, c.timestamp)
		if err != nil {
			return err
		}

		p.addDeleted(c, id, p.entityTypes.File(), deleted)
		return nil
	}

	id, err := p.resolver.ResolveContract(c.tx, contractId, c.timestamp)
	if err != nil {
		return err
	}

	p.addDeleted(c, id, p.entityTypes.Contract(), deleted)
	return nil
}

// addFileData hands address book contents to the address book listener and stores the contents of the other files
// when enabled for their kind
func (p *Projector) addFileData(c *itemContext, fileId domain.EntityId, contents []byte, isAppend bool) error {
	fileData := &domain.FileData{
		ConsensusTimestamp: c.timestamp,
		EntityId:           fileId,
		FileData:           contents,
		TransactionType:    c.item.TransactionType,
	}

	if p.addressBook != nil && p.addressBook.IsAddressBook(fileId) {
		return p.addressBook.OnFileData(c.tx, fileData, isAppend)
	}

	isSystemFile := fileId.EntityNum < systemFileThreshold
	if p.persist.Files || (p.persist.SystemFiles && isSystemFile) {
		c.result.FileData = fileData
	}

	return nil
}
