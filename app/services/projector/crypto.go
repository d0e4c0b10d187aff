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

const evmAddressLength = 20

func (p *Projector) onCryptoCreate(c *itemContext, body *services.CryptoCreateTransactionBody) error {
	c.result.Transaction.InitialBalance = tools.SaturatingInt64(body.GetInitialBalance())

	accountId, err := p.resolver.ResolveAccount(c.tx, c.receipt().GetAccountID(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(accountId)
	if !c.successful() || accountId.IsZero() {
		return nil
	}

	entity := p.newEntity(c, accountId, p.entityTypes.Account())
	entity.AutoRenewPeriod = durationSeconds(body.GetAutoRenewPeriod())
	entity.CreatedTimestamp = int64Ptr(c.timestamp)
	entity.Deleted = boolPtr(false)
	entity.Key = marshalKey(body.GetKey())
	entity.Memo = stringPtr(body.GetMemo())
	entity.PublicKey = publicKeyHex(body.GetKey(), c.timestamp)

	if entity.ProxyAccountId, err = p.resolveOptionalAccount(c, body.GetProxyAccountID()); err != nil {
		return err
	}

	alias := body.GetAlias()
	if len(alias) == 0 {
		alias = c.item.Record.GetAlias()
	}

	if len(alias) == evmAddressLength {
		entity.EvmAddress = alias
		p.resolver.RegisterAlias(alias, accountId)
	} else if len(alias) != 0 {
		entity.Alias = alias
		p.resolver.RegisterAlias(alias, accountId)
	}

	c.result.AddEntity(entity)
	return nil
}

func (p *Projector) onCryptoUpdate(c *itemContext, body *services.CryptoUpdateTransactionBody) error {
	accountId, err := p.resolver.ResolveAccount(c.tx, body.GetAccountIDToUpdate(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(accountId)
	if !c.successful() || accountId.IsZero() {
		return nil
	}

	entity := p.newEntity(c, accountId, p.entityTypes.Account())
	entity.AutoRenewPeriod = durationSeconds(body.GetAutoRenewPeriod())
	entity.ExpirationTimestamp = timestampNanos(body.GetExpirationTime())
	entity.Memo = stringValue(body.GetMemo())

	if body.GetKey() != nil {
		entity.Key = marshalKey(body.GetKey())
		entity.PublicKey = publicKeyHex(body.GetKey(), c.timestamp)
	}

	if entity.ProxyAccountId, err = p.resolveOptionalAccount(c, body.GetProxyAccountID()); err != nil {
		return err
	}

	c.result.AddEntity(entity)
	return nil
}

func (p *Projector) onCryptoDelete(c *itemContext, body *services.CryptoDeleteTransactionBody) error {
	accountId, err := p.resolver.ResolveAccount(c.tx, body.GetDeleteAccountID(), c.timestamp)
	if err != nil {
		return err
	}

	p.addDeleted(c, accountId, p.entityTypes.Account(), true)
	return nil
}

func (p *Projector) onCryptoAddLiveHash(c *itemContext, body *services.CryptoAddLiveHashTransactionBody) error {
	accountId, err := p.resolver.ResolveAccount(c.tx, body.GetLiveHash().GetAccountId(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(accountId)
	if p.persist.Claims && c.successful() && !accountId.IsZero() {
		c.result.LiveHash = &domain.LiveHash{
			ConsensusTimestamp: c.timestamp,
			EntityId:           accountId,
			Livehash:           body.GetLiveHash().GetHash(),
		}
	}

	return nil
}

func (p *Projector) onCryptoDeleteLiveHash(c *itemContext, body *services.CryptoDeleteLiveHashTransactionBody) error {
	accountId, err := p.resolver.ResolveAccount(c.tx, body.GetAccountOfLiveHash(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(accountId)
	return nil
}

func (p *Projector) onCryptoApproveAllowance(
	c *itemContext,
	body *services.CryptoApproveAllowanceTransactionBody,
) error {
	if !c.successful() {
		return nil
	}

	timestampRange := domain.NewTimestampRange(c.timestamp)
	for _, allowance := range body.GetCryptoAllowances() {
		owner, spender, err := p.resolveOwnerAndSpender(c, allowance.GetOwner(), allowance.GetSpender())
		if err != nil {
			return err
		}

		c.result.CryptoAllowances = append(c.result.CryptoAllowances, domain.CryptoAllowance{
			Amount:         allowance.GetAmount(),
			AmountGranted:  allowance.GetAmount(),
			Owner:          owner,
			PayerAccountId: c.payer,
			Spender:        spender,
			TimestampRange: timestampRange,
		})
	}

	for _, allowance := range body.GetTokenAllowances() {
		owner, spender, err := p.resolveOwnerAndSpender(c, allowance.GetOwner(), allowance.GetSpender())
		if err != nil {
			return err
		}

		tokenId, err := p.resolver.ResolveToken(c.tx, allowance.GetTokenId(), c.timestamp)
		if err != nil {
			return err
		}

		c.result.TokenAllowances = append(c.result.TokenAllowances, domain.TokenAllowance{
			Amount:         allowance.GetAmount(),
			AmountGranted:  allowance.GetAmount(),
			Owner:          owner,
			PayerAccountId: c.payer,
			Spender:        spender,
			TimestampRange: timestampRange,
			TokenId:        tokenId,
		})
	}

	for _, allowance := range body.GetNftAllowances() {
		if err := p.onNftAllowance(c, allowance); err != nil {
			return err
		}
	}

	return nil
}

// onNftAllowance approves either every serial of the token, tracked as an nft allowance row, or the listed serials,
// tracked as the spender of each nft
func (p *Projector) onNftAllowance(c *itemContext, allowance *services.NftAllowance) error {
	owner, spender, err := p.resolveOwnerAndSpender(c, allowance.GetOwner(), allowance.GetSpender())
	if err != nil {
		return err
	}

	tokenId, err := p.resolver.ResolveToken(c.tx, allowance.GetTokenId(), c.timestamp)
	if err != nil {
		return err
	}

	if allowance.GetApprovedForAll() != nil {
		c.result.NftAllowances = append(c.result.NftAllowances, domain.NftAllowance{
			ApprovedForAll: allowance.GetApprovedForAll().GetValue(),
			Owner:          owner,
			PayerAccountId: c.payer,
			Spender:        spender,
			TimestampRange: domain.NewTimestampRange(c.timestamp),
			TokenId:        tokenId,
		})
	}

	delegatingSpender, err := p.resolveOptionalAccount(c, allowance.GetDelegatingSpender())
	if err != nil {
		return err
	}

	for _, serialNumber := range allowance.GetSerialNumbers() {
		c.result.Nfts = append(c.result.Nfts, domain.Nft{
			DelegatingSpender: delegatingSpender,
			SerialNumber:      serialNumber,
			Spender:           spender.Ptr(),
			TimestampRange:    domain.NewTimestampRange(c.timestamp),
			TokenId:           tokenId,
		})
	}

	return nil
}

func (p *Projector) onCryptoDeleteAllowance(c *itemContext, body *services.CryptoDeleteAllowanceTransactionBody) error {
	if !c.successful() {
		return nil
	}

	for _, allowance := range body.GetNftAllowances() {
		tokenId, err := p.resolver.ResolveToken(c.tx, allowance.GetTokenId(), c.timestamp)
		if err != nil {
			return err
		}

		// the owner must be resolved even though the nft rows are keyed by token and serial only
		if _, err = p.resolveOwner(c, allowance.GetOwner()); err != nil {
			return err
		}

		for _, serialNumber := range allowance.GetSerialNumbers() {
			c.result.Nfts = append(c.result.Nfts, domain.Nft{
				SerialNumber:   serialNumber,
				TimestampRange: domain.NewTimestampRange(c.timestamp),
				TokenId:        tokenId,
			})
		}
	}

	return nil
}

// resolveOwner resolves the owner of an allowance, defaulting to the payer
func (p *Projector) resolveOwner(c *itemContext, owner *services.AccountID) (domain.EntityId, error) {
	if owner == nil {
		return c.payer, nil
	}

	ownerId, err := p.resolver.ResolveAccount(c.tx, owner, c.timestamp)
	if err != nil || ownerId.IsZero() {
		return c.payer, err
	}

	return ownerId, nil
}

func (p *Projector) resolveOwnerAndSpender(c *itemContext, owner, spender *services.AccountID) (
	domain.EntityId,
	domain.EntityId,
	error,
) {
	ownerId, err := p.resolveOwner(c, owner)
	if err != nil {
		return domain.EntityId{}, domain.EntityId{}, err
	}

	spenderId, err := p.resolver.ResolveAccount(c.tx, spender, c.timestamp)
	if err != nil {
		return domain.EntityId{}, domain.EntityId{}, err
	}

	return ownerId, spenderId, nil
}

// resolveOptionalAccount resolves an account reference that is stored as nullable
func (p *Projector) resolveOptionalAccount(c *itemContext, accountId *services.AccountID) (*domain.EntityId, error) {
	id, err := p.resolver.ResolveAccount(c.tx, accountId, c.timestamp)
	if err != nil {
		return nil, err
	}

	return id.Ptr(), nil
}
