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

func (p *Projector) onTokenCreate(c *itemContext, body *services.TokenCreateTransactionBody) error {
	tokenId, err := p.resolver.ResolveToken(c.tx, c.receipt().GetTokenID(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(tokenId)
	if !c.successful() || tokenId.IsZero() {
		return nil
	}

	treasury, err := p.resolver.ResolveAccount(c.tx, body.GetTreasury(), c.timestamp)
	if err != nil {
		return err
	}

	entity := p.newEntity(c, tokenId, p.entityTypes.Token())
	entity.AutoRenewPeriod = durationSeconds(body.GetAutoRenewPeriod())
	entity.CreatedTimestamp = int64Ptr(c.timestamp)
	entity.Deleted = boolPtr(false)
	entity.ExpirationTimestamp = timestampNanos(body.GetExpiry())
	entity.Key = marshalKey(body.GetAdminKey())
	entity.Memo = stringPtr(body.GetMemo())
	entity.PublicKey = publicKeyHex(body.GetAdminKey(), c.timestamp)
	if entity.AutoRenewAccountId, err = p.resolveOptionalAccount(c, body.GetAutoRenewAccount()); err != nil {
		return err
	}
	c.result.AddEntity(entity)

	token := domain.Token{
		CreatedTimestamp:  int64Ptr(c.timestamp),
		Decimals:          int64Ptr(int64(body.GetDecimals())),
		FeeScheduleKey:    marshalKey(body.GetFeeScheduleKey()),
		FreezeDefault:     boolPtr(body.GetFreezeDefault()),
		FreezeKey:         marshalKey(body.GetFreezeKey()),
		InitialSupply:     int64Ptr(tools.SaturatingInt64(body.GetInitialSupply())),
		KycKey:            marshalKey(body.GetKycKey()),
		MaxSupply:         int64Ptr(body.GetMaxSupply()),
		Name:              stringPtr(body.GetName()),
		PauseKey:          marshalKey(body.GetPauseKey()),
		SupplyKey:         marshalKey(body.GetSupplyKey()),
		SupplyType:        stringPtr(body.GetSupplyType().String()),
		Symbol:            stringPtr(body.GetSymbol()),
		TimestampRange:    domain.NewTimestampRange(c.timestamp),
		TokenId:           tokenId,
		TotalSupply:       int64Ptr(tools.SaturatingInt64(body.GetInitialSupply())),
		TreasuryAccountId: treasury.Ptr(),
		Type:              stringPtr(body.GetTokenType().String()),
		WipeKey:           marshalKey(body.GetWipeKey()),
	}
	c.result.Tokens = append(c.result.Tokens, token)

	if treasury.IsZero() {
		return nil
	}

	// the treasury relationship is unfrozen and kyc granted whenever the token has the respective key
	treasuryAccount := p.newTokenAccount(c, treasury, tokenId)
	treasuryAccount.Associated = boolPtr(true)
	treasuryAccount.AutomaticAssociation = boolPtr(false)
	treasuryAccount.CreatedTimestamp = int64Ptr(c.timestamp)
	if len(token.FreezeKey) != 0 {
		status := domain.TokenFreezeStatusUnfrozen
		treasuryAccount.FreezeStatus = &status
	}
	if len(token.KycKey) != 0 {
		status := domain.TokenKycStatusGranted
		treasuryAccount.KycStatus = &status
	}
	c.result.TokenAccounts = append(c.result.TokenAccounts, treasuryAccount)

	return nil
}

func (p *Projector) onTokenUpdate(c *itemContext, body *services.TokenUpdateTransactionBody) error {
	tokenId, err := p.resolver.ResolveToken(c.tx, body.GetToken(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(tokenId)
	if !c.successful() || tokenId.IsZero() {
		return nil
	}

	entity := p.newEntity(c, tokenId, p.entityTypes.Token())
	entity.AutoRenewPeriod = durationSeconds(body.GetAutoRenewPeriod())
	entity.ExpirationTimestamp = timestampNanos(body.GetExpiry())
	entity.Memo = stringValue(body.GetMemo())
	if body.GetAdminKey() != nil {
		entity.Key = marshalKey(body.GetAdminKey())
		entity.PublicKey = publicKeyHex(body.GetAdminKey(), c.timestamp)
	}
	if entity.AutoRenewAccountId, err = p.resolveOptionalAccount(c, body.GetAutoRenewAccount()); err != nil {
		return err
	}
	c.result.AddEntity(entity)

	token := domain.Token{
		FeeScheduleKey: marshalKey(body.GetFeeScheduleKey()),
		FreezeKey:      marshalKey(body.GetFreezeKey()),
		KycKey:         marshalKey(body.GetKycKey()),
		PauseKey:       marshalKey(body.GetPauseKey()),
		SupplyKey:      marshalKey(body.GetSupplyKey()),
		TimestampRange: domain.NewTimestampRange(c.timestamp),
		TokenId:        tokenId,
		WipeKey:        marshalKey(body.GetWipeKey()),
	}

	if body.GetName() != "" {
		token.Name = stringPtr(body.GetName())
	}

	if body.GetSymbol() != "" {
		token.Symbol = stringPtr(body.GetSymbol())
	}

	if token.TreasuryAccountId, err = p.resolveOptionalAccount(c, body.GetTreasury()); err != nil {
		return err
	}

	c.result.Tokens = append(c.result.Tokens, token)
	return nil
}

func (p *Projector) onTokenDelete(c *itemContext, body *services.TokenDeleteTransactionBody) error {
	tokenId, err := p.resolver.ResolveToken(c.tx, body.GetToken(), c.timestamp)
	if err != nil {
		return err
	}

	p.addDeleted(c, tokenId, p.entityTypes.Token(), true)
	return nil
}

func (p *Projector) onTokenAssociate(c *itemContext, body *services.TokenAssociateTransactionBody) error {
	return p.onAssociation(c, body.GetAccount(), body.GetTokens(), true)
}

func (p *Projector) onTokenDissociate(c *itemContext, body *services.TokenDissociateTransactionBody) error {
	return p.onAssociation(c, body.GetAccount(), body.GetTokens(), false)
}

func (p *Projector) onAssociation(
	c *itemContext,
	account *services.AccountID,
	tokens []*services.TokenID,
	associated bool,
) error {
	accountId, err := p.resolver.ResolveAccount(c.tx, account, c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(accountId)
	if !c.successful() || accountId.IsZero() {
		return nil
	}

	for _, token := range tokens {
		tokenId, err := p.resolver.ResolveToken(c.tx, token, c.timestamp)
		if err != nil {
			return err
		}

		tokenAccount := p.newTokenAccount(c, accountId, tokenId)
		tokenAccount.Associated = boolPtr(associated)
		if associated {
			tokenAccount.AutomaticAssociation = boolPtr(false)
			tokenAccount.CreatedTimestamp = int64Ptr(c.timestamp)
		}
		c.result.TokenAccounts = append(c.result.TokenAccounts, tokenAccount)
	}

	return nil
}

func (p *Projector) onTokenFreeze(c *itemContext, body *services.TokenFreezeAccountTransactionBody) error {
	return p.onTokenAccountStatus(c, body.GetAccount(), body.GetToken(), func(tokenAccount *domain.TokenAccount) {
		status := domain.TokenFreezeStatusFrozen
		tokenAccount.FreezeStatus = &status
	})
}

func (p *Projector) onTokenUnfreeze(c *itemContext, body *services.TokenUnfreezeAccountTransactionBody) error {
	return p.onTokenAccountStatus(c, body.GetAccount(), body.GetToken(), func(tokenAccount *domain.TokenAccount) {
		status := domain.TokenFreezeStatusUnfrozen
		tokenAccount.FreezeStatus = &status
	})
}

func (p *Projector) onTokenGrantKyc(c *itemContext, body *services.TokenGrantKycTransactionBody) error {
	return p.onTokenAccountStatus(c, body.GetAccount(), body.GetToken(), func(tokenAccount *domain.TokenAccount) {
		status := domain.TokenKycStatusGranted
		tokenAccount.KycStatus = &status
	})
}

func (p *Projector) onTokenRevokeKyc(c *itemContext, body *services.TokenRevokeKycTransactionBody) error {
	return p.onTokenAccountStatus(c, body.GetAccount(), body.GetToken(), func(tokenAccount *domain.TokenAccount) {
		status := domain.TokenKycStatusRevoked
		tokenAccount.KycStatus = &status
	})
}

func (p *Projector) onTokenAccountStatus(
	c *itemContext,
	account *services.AccountID,
	token *services.TokenID,
	setStatus func(*domain.TokenAccount),
) error {
	tokenId, err := p.resolver.ResolveToken(c.tx, token, c.timestamp)
	if err != nil {
		return err
	}

	accountId, err := p.resolver.ResolveAccount(c.tx, account, c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(tokenId)
	if !c.successful() || tokenId.IsZero() || accountId.IsZero() {
		return nil
	}

	tokenAccount := p.newTokenAccount(c, accountId, tokenId)
	setStatus(&tokenAccount)
	c.result.TokenAccounts = append(c.result.TokenAccounts, tokenAccount)
	return nil
}

func (p *Projector) onTokenMint(c *itemContext, body *services.TokenMintTransactionBody) error {
	tokenId, err := p.onSupplyChange(c, body.GetToken())
	if err != nil || tokenId.IsZero() || !c.successful() {
		return err
	}

	metadata := body.GetMetadata()
	for i, serialNumber := range c.receipt().GetSerialNumbers() {
		nft := domain.Nft{
			CreatedTimestamp: int64Ptr(c.timestamp),
			Deleted:          boolPtr(false),
			SerialNumber:     serialNumber,
			TimestampRange:   domain.NewTimestampRange(c.timestamp),
			TokenId:          tokenId,
		}

		if i < len(metadata) {
			nft.Metadata = metadata[i]
		}

		c.result.Nfts = append(c.result.Nfts, nft)
	}

	return nil
}

func (p *Projector) onTokenBurn(c *itemContext, body *services.TokenBurnTransactionBody) error {
	tokenId, err := p.onSupplyChange(c, body.GetToken())
	if err != nil || tokenId.IsZero() || !c.successful() {
		return err
	}

	p.addDeletedNfts(c, tokenId, body.GetSerialNumbers())
	return nil
}

func (p *Projector) onTokenWipe(c *itemContext, body *services.TokenWipeAccountTransactionBody) error {
	tokenId, err := p.onSupplyChange(c, body.GetToken())
	if err != nil || tokenId.IsZero() || !c.successful() {
		return err
	}

	if _, err = p.resolver.ResolveAccount(c.tx, body.GetAccount(), c.timestamp); err != nil {
		return err
	}

	p.addDeletedNfts(c, tokenId, body.GetSerialNumbers())
	return nil
}

// onSupplyChange records the total supply the receipt reports after a mint, burn or wipe
func (p *Projector) onSupplyChange(c *itemContext, token *services.TokenID) (domain.EntityId, error) {
	tokenId, err := p.resolver.ResolveToken(c.tx, token, c.timestamp)
	if err != nil {
		return domain.EntityId{}, err
	}

	c.setEntityId(tokenId)
	if !c.successful() || tokenId.IsZero() {
		return tokenId, nil
	}

	c.result.Tokens = append(c.result.Tokens, domain.Token{
		TimestampRange: domain.NewTimestampRange(c.timestamp),
		TokenId:        tokenId,
		TotalSupply:    int64Ptr(int64(c.receipt().GetNewTotalSupply())),
	})
	return tokenId, nil
}

func (p *Projector) addDeletedNfts(c *itemContext, tokenId domain.EntityId, serialNumbers []int64) {
	for _, serialNumber := range serialNumbers {
		c.result.Nfts = append(c.result.Nfts, domain.Nft{
			Deleted:        boolPtr(true),
			SerialNumber:   serialNumber,
			TimestampRange: domain.NewTimestampRange(c.timestamp),
			TokenId:        tokenId,
		})
	}
}

func (p *Projector) newTokenAccount(c *itemContext, accountId, tokenId domain.EntityId) domain.TokenAccount {
	return domain.TokenAccount{
		AccountId:      accountId,
		TimestampRange: domain.NewTimestampRange(c.timestamp),
		TokenId:        tokenId,
	}
}
