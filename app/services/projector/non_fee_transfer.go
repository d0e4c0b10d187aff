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
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/tools"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	log "github.com/sirupsen/logrus"
)

// ExtractNonFeeTransfers returns the hbar movements the transaction body asked for, as opposed to the fees the ledger
// charged. Only crypto transfers, account creations, contract creations and contract calls carry any. Zero amounts
// are returned as is
func ExtractNonFeeTransfers(
	payer *services.AccountID,
	body *services.TransactionBody,
	record *services.TransactionRecord,
) []*services.AccountAmount {
	successful := domain.IsSuccessfulResult(int16(record.GetReceipt().GetStatus()))

	switch data := body.GetData().(type) {
	case *services.TransactionBody_CryptoTransfer:
		return data.CryptoTransfer.GetTransfers().GetAccountAmounts()
	case *services.TransactionBody_CryptoCreateAccount:
		initialBalance := tools.SaturatingInt64(data.CryptoCreateAccount.GetInitialBalance())
		transfers := []*services.AccountAmount{{AccountID: payer, Amount: -initialBalance}}
		if successful && record.GetReceipt().GetAccountID() != nil {
			transfers = append(transfers, &services.AccountAmount{
				AccountID: record.GetReceipt().GetAccountID(),
				Amount:    initialBalance,
			})
		}
		return transfers
	case *services.TransactionBody_ContractCreateInstance:
		initialBalance := data.ContractCreateInstance.GetInitialBalance()
		transfers := []*services.AccountAmount{{AccountID: payer, Amount: -initialBalance}}
		if contractId := record.GetReceipt().GetContractID(); successful && contractId != nil {
			transfers = append(transfers, &services.AccountAmount{
				AccountID: contractAccountId(contractId),
				Amount:    initialBalance,
			})
		}
		return transfers
	case *services.TransactionBody_ContractCall:
		amount := data.ContractCall.GetAmount()
		return []*services.AccountAmount{
			{AccountID: contractAccountId(data.ContractCall.GetContractID()), Amount: amount},
			{AccountID: payer, Amount: -amount},
		}
	default:
		return nil
	}
}

// contractAccountId addresses a contract as the account holding its balance
func contractAccountId(contractId *services.ContractID) *services.AccountID {
	if contractId == nil {
		return nil
	}

	accountId := &services.AccountID{ShardNum: contractId.GetShardNum(), RealmNum: contractId.GetRealmNum()}
	if evmAddress := contractId.GetEvmAddress(); len(evmAddress) != 0 {
		accountId.Account = &services.AccountID_Alias{Alias: evmAddress}
	} else {
		accountId.Account = &services.AccountID_AccountNum{AccountNum: contractId.GetContractNum()}
	}

	return accountId
}

func (p *Projector) projectNonFeeTransfers(c *itemContext) error {
	item := c.item
	for _, accountAmount := range ExtractNonFeeTransfers(item.PayerAccountId(), item.TransactionBody, item.Record) {
		accountId, err := p.resolver.ResolveAccount(c.tx, accountAmount.GetAccountID(), c.timestamp)
		if errors.Is(err, errors.ErrUnknownAlias) {
			log.Warnf("Skipping non fee transfer of transaction at %d: %s", c.timestamp, err)
			continue
		} else if err != nil {
			return err
		}

		if accountId.IsZero() {
			continue
		}

		c.result.NonFeeTransfers = append(c.result.NonFeeTransfers, domain.NonFeeTransfer{
			Amount:             accountAmount.GetAmount(),
			ConsensusTimestamp: c.timestamp,
			EntityId:           accountId,
			PayerAccountId:     c.payer,
		})
	}

	return nil
}
