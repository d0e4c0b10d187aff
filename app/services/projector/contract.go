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
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/tools"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

func (p *Projector) onContractCreate(c *itemContext, body *services.ContractCreateTransactionBody) error {
	c.result.Transaction.InitialBalance = body.GetInitialBalance()

	contractId, err := p.resolver.ResolveContract(c.tx, c.receipt().GetContractID(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(contractId)
	functionResult := c.item.Record.GetContractCreateResult()
	if err = p.addContractResult(c, contractId, body.GetConstructorParameters(), body.GetGas(),
		body.GetInitialBalance(), functionResult); err != nil {
		return err
	}

	if !c.successful() || contractId.IsZero() {
		return nil
	}

	entity := p.newEntity(c, contractId, p.entityTypes.Contract())
	entity.AutoRenewPeriod = durationSeconds(body.GetAutoRenewPeriod())
	entity.CreatedTimestamp = int64Ptr(c.timestamp)
	entity.Deleted = boolPtr(false)
	entity.Key = marshalKey(body.GetAdminKey())
	entity.Memo = stringPtr(body.GetMemo())
	entity.PublicKey = publicKeyHex(body.GetAdminKey(), c.timestamp)

	if evmAddress := functionResult.GetEvmAddress(); evmAddress != nil && len(evmAddress.GetValue()) != 0 {
		entity.EvmAddress = evmAddress.GetValue()
		p.resolver.RegisterAlias(entity.EvmAddress, contractId)
	}

	if entity.AutoRenewAccountId, err = p.resolveOptionalAccount(c, body.GetAutoRenewAccountId()); err != nil {
		return err
	}

	if entity.ProxyAccountId, err = p.resolveOptionalAccount(c, body.GetProxyAccountID()); err != nil {
		return err
	}

	c.result.AddEntity(entity)
	return nil
}

func (p *Projector) onContractUpdate(c *itemContext, body *services.ContractUpdateTransactionBody) error {
	contractId, err := p.resolver.ResolveContract(c.tx, body.GetContractID(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(contractId)
	if !c.successful() || contractId.IsZero() {
		return nil
	}

	entity := p.newEntity(c, contractId, p.entityTypes.Contract())
	entity.AutoRenewPeriod = durationSeconds(body.GetAutoRenewPeriod())
	entity.ExpirationTimestamp = timestampNanos(body.GetExpirationTime())

	switch memo := body.GetMemoField().(type) {
	case *services.ContractUpdateTransactionBody_MemoWrapper:
		entity.Memo = stringValue(memo.MemoWrapper)
	case *services.ContractUpdateTransactionBody_Memo:
		entity.Memo = stringPtr(memo.Memo)
	}

	if body.GetAdminKey() != nil {
		entity.Key = marshalKey(body.GetAdminKey())
		entity.PublicKey = publicKeyHex(body.GetAdminKey(), c.timestamp)
	}

	if entity.AutoRenewAccountId, err = p.resolveOptionalAccount(c, body.GetAutoRenewAccountId()); err != nil {
		return err
	}

	if entity.ProxyAccountId, err = p.resolveOptionalAccount(c, body.GetProxyAccountID()); err != nil {
		return err
	}

	c.result.AddEntity(entity)
	return nil
}

func (p *Projector) onContractDelete(c *itemContext, body *services.ContractDeleteTransactionBody) error {
	contractId, err := p.resolver.ResolveContract(c.tx, body.GetContractID(), c.timestamp)
	if err != nil {
		return err
	}

	p.addDeleted(c, contractId, p.entityTypes.Contract(), true)
	return nil
}

func (p *Projector) onContractCall(c *itemContext, body *services.ContractCallTransactionBody) error {
	contractId, err := p.resolver.ResolveContract(c.tx, body.GetContractID(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(contractId)
	return p.addContractResult(c, contractId, body.GetFunctionParameters(), body.GetGas(), body.GetAmount(),
		c.item.Record.GetContractCallResult())
}

// addContractResult records the outcome of a contract execution whether or not it succeeded, along with the storage
// slots it accessed
func (p *Projector) addContractResult(
	c *itemContext,
	contractId domain.EntityId,
	functionParameters []byte,
	gasLimit int64,
	amount int64,
	functionResult *services.ContractFunctionResult,
) error {
	if !p.persist.Contracts {
		return nil
	}

	contractResult := &domain.ContractResult{
		Amount:             amount,
		CallResult:         functionResult.GetContractCallResult(),
		ConsensusTimestamp: c.timestamp,
		ContractId:         contractId,
		FunctionParameters: functionParameters,
		GasLimit:           gasLimit,
		PayerAccountId:     c.payer,
	}

	if contractResult.CallResult == nil {
		contractResult.CallResult = []byte{}
	}

	if functionResult != nil {
		gasUsed := tools.SaturatingInt64(functionResult.GetGasUsed())
		contractResult.GasUsed = &gasUsed
		if functionResult.GetErrorMessage() != "" {
			contractResult.ErrorMessage = stringPtr(functionResult.GetErrorMessage())
		}
	}

	c.result.ContractResult = contractResult
	return p.addStateChanges(c)
}

func (p *Projector) addStateChanges(c *itemContext) error {
	for _, change := range c.item.StateChanges {
		contractId, err := p.resolver.ResolveContract(c.tx, change.ContractId, c.timestamp)
		if err != nil {
			return err
		}

		c.result.ContractStateChanges = append(c.result.ContractStateChanges, domain.ContractStateChange{
			ConsensusTimestamp: c.timestamp,
			ContractId:         contractId,
			PayerAccountId:     c.payer,
			Slot:               change.Slot,
			ValueRead:          change.ValueRead,
			ValueWritten:       change.ValueWritten,
		})
	}

	return nil
}
