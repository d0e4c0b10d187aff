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

// projectTransfers converts the hbar, token and nft transfer lists of the record. The lists are converted whatever
// the transaction result, a failed transaction still pays its fees
func (p *Projector) projectTransfers(c *itemContext) error {
	accountAmounts := c.item.Record.GetTransferList().GetAccountAmounts()
	for _, accountAmount := range accountAmounts {
		accountId, err := p.resolver.ResolveAccount(c.tx, accountAmount.GetAccountID(), c.timestamp)
		if err != nil {
			return err
		}

		p.addCryptoTransfer(c, accountId, accountAmount.GetAmount(), accountAmount.GetIsApproval())
	}

	if err := p.reconcileInitialBalance(c, accountAmounts); err != nil {
		return err
	}

	for _, tokenTransferList := range c.item.Record.GetTokenTransferLists() {
		if err := p.projectTokenTransferList(c, tokenTransferList); err != nil {
			return err
		}
	}

	return p.projectAutomaticAssociations(c)
}

// projectAutomaticAssociations records the token relationships the network created while applying the token transfers
func (p *Projector) projectAutomaticAssociations(c *itemContext) error {
	if !c.successful() {
		return nil
	}

	for _, association := range c.item.Record.GetAutomaticTokenAssociations() {
		tokenId, err := p.resolver.ResolveToken(c.tx, association.GetTokenId(), c.timestamp)
		if err != nil {
			return err
		}

		accountId, err := p.resolver.ResolveAccount(c.tx, association.GetAccountId(), c.timestamp)
		if err != nil {
			return err
		}

		if tokenId.IsZero() || accountId.IsZero() {
			continue
		}

		tokenAccount := p.newTokenAccount(c, accountId, tokenId)
		tokenAccount.Associated = boolPtr(true)
		tokenAccount.AutomaticAssociation = boolPtr(true)
		tokenAccount.CreatedTimestamp = int64Ptr(c.timestamp)
		c.result.TokenAccounts = append(c.result.TokenAccounts, tokenAccount)
	}

	return nil
}

// reconcileInitialBalance adds the initial balance movement of an account created in realm 0 of shard 0 when the
// transfer list of the record does not carry it, so the transfers of the transaction still sum up to zero
func (p *Projector) reconcileInitialBalance(c *itemContext, accountAmounts []*services.AccountAmount) error {
	body := c.item.TransactionBody.GetCryptoCreateAccount()
	if body == nil || !c.successful() {
		return nil
	}

	created := c.receipt().GetAccountID()
	if created == nil || created.GetShardNum() != 0 || created.GetRealmNum() != 0 {
		return nil
	}

	initialBalance := tools.SaturatingInt64(body.GetInitialBalance())
	for _, accountAmount := range accountAmounts {
		if accountAmount.GetAccountID().GetAccountNum() == created.GetAccountNum() &&
			accountAmount.GetAmount() == initialBalance {
			return nil
		}
	}

	createdId, err := p.resolver.ResolveAccount(c.tx, created, c.timestamp)
	if err != nil {
		return err
	}

	p.addCryptoTransfer(c, c.payer, -initialBalance, false)
	p.addCryptoTransfer(c, createdId, initialBalance, false)
	return nil
}

func (p *Projector) addCryptoTransfer(c *itemContext, accountId domain.EntityId, amount int64, isApproval bool) {
	c.result.CryptoTransfers = append(c.result.CryptoTransfers, domain.CryptoTransfer{
		Amount:             amount,
		ConsensusTimestamp: c.timestamp,
		EntityId:           accountId,
		IsApproval:         isApproval,
		PayerAccountId:     c.payer,
	})
}

func (p *Projector) projectTokenTransferList(c *itemContext, tokenTransferList *services.TokenTransferList) error {
	tokenId, err := p.resolver.ResolveToken(c.tx, tokenTransferList.GetToken(), c.timestamp)
	if err != nil {
		return err
	}

	for _, accountAmount := range tokenTransferList.GetTransfers() {
		accountId, err := p.resolver.ResolveAccount(c.tx, accountAmount.GetAccountID(), c.timestamp)
		if err != nil {
			return err
		}

		c.result.TokenTransfers = append(c.result.TokenTransfers, domain.TokenTransfer{
			AccountId:          accountId,
			Amount:             accountAmount.GetAmount(),
			ConsensusTimestamp: c.timestamp,
			IsApproval:         accountAmount.GetIsApproval(),
			PayerAccountId:     c.payer,
			TokenId:            tokenId,
		})
	}

	for _, nftTransfer := range tokenTransferList.GetNftTransfers() {
		receiver, err := p.resolver.ResolveAccount(c.tx, nftTransfer.GetReceiverAccountID(), c.timestamp)
		if err != nil {
			return err
		}

		sender, err := p.resolver.ResolveAccount(c.tx, nftTransfer.GetSenderAccountID(), c.timestamp)
		if err != nil {
			return err
		}

		c.result.NftTransfers = append(c.result.NftTransfers, domain.NftTransfer{
			ConsensusTimestamp: c.timestamp,
			IsApproval:         nftTransfer.GetIsApproval(),
			PayerAccountId:     c.payer,
			ReceiverAccountId:  receiver.Ptr(),
			SenderAccountId:    sender.Ptr(),
			SerialNumber:       nftTransfer.GetSerialNumber(),
			TokenId:            tokenId,
		})

		// a change of owner clears the spenders approved by the previous owner
		if c.successful() && !receiver.IsZero() {
			c.result.Nfts = append(c.result.Nfts, domain.Nft{
				AccountId:      receiver.Ptr(),
				SerialNumber:   nftTransfer.GetSerialNumber(),
				TimestampRange: domain.NewTimestampRange(c.timestamp),
				TokenId:        tokenId,
			})
		}
	}

	return nil
}
