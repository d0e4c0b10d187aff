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

package state

import (
	"bytes"
	"context"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
)

var longZeroPrefix = make([]byte, 12)

// Repositories are the read side repositories the Accessor reads through
type Repositories struct {
	AccountBalance interfaces.AccountBalanceRepository
	Allowance      interfaces.AllowanceRepository
	ContractState  interfaces.ContractStateRepository
	Entity         interfaces.EntityRepository
	Nft            interfaces.NftRepository
	RecordFile     interfaces.RecordFileRepository
	Token          interfaces.TokenRepository
	TokenAccount   interfaces.TokenAccountRepository
}

// Accessor reads ledger state for contract execution. Every method takes an optional consensus timestamp, nil reads
// the current state and a timestamp reads the state as of that instant. Missing data is a nil result with a nil
// error unless stated otherwise. The Accessor holds no state besides its repositories and is safe for concurrent
// use
type Accessor struct {
	realm int64
	repos Repositories
	shard int64
}

// NewAccessor creates an Accessor resolving long zero addresses in shard.realm
func NewAccessor(shard, realm int64, repos Repositories) *Accessor {
	return &Accessor{realm: realm, repos: repos, shard: shard}
}

// Account is an account or contract as seen by the EVM. The balance is read on first use
type Account struct {
	Entity     *domain.Entity
	EvmAddress common.Address
	balance    *Memo[int64]
}

// Balance returns the balance of the account at the timestamp it was read at, zero if it did not exist yet
func (a *Account) Balance() (int64, error) {
	return a.balance.Get()
}

// ReadEntity returns the entity with the id
func (a *Accessor) ReadEntity(ctx context.Context, id domain.EntityId, timestamp *int64) (*domain.Entity, error) {
	return a.repos.Entity.FindById(ctx, id, timestamp)
}

// ReadEntityByAlias returns the entity with the alias
func (a *Accessor) ReadEntityByAlias(ctx context.Context, alias []byte, timestamp *int64) (*domain.Entity, error) {
	return a.repos.Entity.FindByAlias(ctx, alias, timestamp)
}

// ReadEntityByAddress returns the entity a long zero address encodes the number of, or the entity with the evm
// address
func (a *Accessor) ReadEntityByAddress(ctx context.Context, address common.Address, timestamp *int64) (
	*domain.Entity,
	error,
) {
	if id, ok, err := a.longZeroId(address); ok {
		if err != nil {
			return nil, err
		}
		return a.repos.Entity.FindById(ctx, id, timestamp)
	}

	return a.repos.Entity.FindByEvmAddress(ctx, address.Bytes(), timestamp)
}

// ReadAccount returns the account or contract at the address
func (a *Accessor) ReadAccount(ctx context.Context, address common.Address, timestamp *int64) (*Account, error) {
	entity, err := a.ReadEntityByAddress(ctx, address, timestamp)
	if err != nil || entity == nil {
		return nil, err
	}

	return &Account{
		Entity:     entity,
		EvmAddress: address,
		balance: NewMemo(func() (int64, error) {
			if timestamp != nil && entity.CreatedTimestamp != nil && *entity.CreatedTimestamp > *timestamp {
				return 0, nil
			}
			return a.repos.AccountBalance.GetBalance(ctx, entity.Id, timestamp)
		}),
	}, nil
}

// ReadToken returns the token
func (a *Accessor) ReadToken(ctx context.Context, tokenId domain.EntityId, timestamp *int64) (*domain.Token, error) {
	return a.repos.Token.Find(ctx, tokenId, timestamp)
}

// ReadNft returns the nft
func (a *Accessor) ReadNft(ctx context.Context, tokenId domain.EntityId, serialNumber int64, timestamp *int64) (
	*domain.Nft,
	error,
) {
	return a.repos.Nft.Find(ctx, tokenId, serialNumber, timestamp)
}

// MustReadNft returns the nft, a missing nft is errors.ErrNftNotFound
func (a *Accessor) MustReadNft(ctx context.Context, tokenId domain.EntityId, serialNumber int64, timestamp *int64) (
	*domain.Nft,
	error,
) {
	nft, err := a.ReadNft(ctx, tokenId, serialNumber, timestamp)
	if err != nil {
		return nil, err
	}

	if nft == nil {
		return nil, errors.Wrapf(errors.ErrNftNotFound, "nft %s-%d", tokenId, serialNumber)
	}

	return nft, nil
}

// ReadTokenRelationship returns the association of the account with the token
func (a *Accessor) ReadTokenRelationship(ctx context.Context, accountId, tokenId domain.EntityId, timestamp *int64) (
	*domain.TokenAccount,
	error,
) {
	return a.repos.TokenAccount.Find(ctx, accountId, tokenId, timestamp)
}

// ReadTokenBalance returns the balance of the account in the fungible token, zero if it holds none
func (a *Accessor) ReadTokenBalance(ctx context.Context, accountId, tokenId domain.EntityId, timestamp *int64) (
	int64,
	error,
) {
	return a.repos.AccountBalance.GetTokenBalance(ctx, accountId, tokenId, timestamp)
}

// ReadContractStorage returns the value of the storage slot of the contract. A slot never written reads as the zero
// word
func (a *Accessor) ReadContractStorage(
	ctx context.Context,
	contractId domain.EntityId,
	slot common.Hash,
	timestamp *int64,
) (common.Hash, error) {
	value, err := a.repos.ContractState.FindSlotValue(ctx, contractId, slot.Bytes(), timestamp)
	if err != nil {
		return common.Hash{}, err
	}

	return common.BytesToHash(value), nil
}

// ReadCryptoAllowance returns the hbar allowance the owner granted the spender
func (a *Accessor) ReadCryptoAllowance(ctx context.Context, owner, spender domain.EntityId, timestamp *int64) (
	*domain.CryptoAllowance,
	error,
) {
	return a.repos.Allowance.FindCryptoAllowance(ctx, owner, spender, timestamp)
}

// ReadTokenAllowance returns the fungible token allowance the owner granted the spender
func (a *Accessor) ReadTokenAllowance(
	ctx context.Context,
	owner, spender, tokenId domain.EntityId,
	timestamp *int64,
) (*domain.TokenAllowance, error) {
	return a.repos.Allowance.FindTokenAllowance(ctx, owner, spender, tokenId, timestamp)
}

// ReadNftAllowance returns the approval for all serials of the token the owner granted the spender
func (a *Accessor) ReadNftAllowance(
	ctx context.Context,
	owner, spender, tokenId domain.EntityId,
	timestamp *int64,
) (*domain.NftAllowance, error) {
	return a.repos.Allowance.FindNftAllowance(ctx, owner, spender, tokenId, timestamp)
}

// ReadBlockContext returns the record file containing the timestamp, or the latest one for a nil timestamp. Unlike the
// other reads a missing record file is errors.ErrRecordFileNotFound, execution never falls back to another block
func (a *Accessor) ReadBlockContext(ctx context.Context, timestamp *int64) (*domain.RecordFile, error) {
	var recordFile *domain.RecordFile
	var err error
	if timestamp == nil {
		recordFile, err = a.repos.RecordFile.FindLatest(ctx)
	} else {
		recordFile, err = a.repos.RecordFile.FindByTimestamp(ctx, *timestamp)
	}

	if err != nil {
		return nil, err
	}

	if recordFile == nil {
		if timestamp == nil {
			return nil, errors.Wrap(errors.ErrRecordFileNotFound, "no record file")
		}
		return nil, errors.Wrapf(errors.ErrRecordFileNotFound, "no record file contains timestamp %d", *timestamp)
	}

	return recordFile, nil
}

// longZeroId decodes the entity number of a long zero address
func (a *Accessor) longZeroId(address common.Address) (domain.EntityId, bool, error) {
	if !bytes.HasPrefix(address.Bytes(), longZeroPrefix) {
		return domain.EntityId{}, false, nil
	}

	num := int64(binary.BigEndian.Uint64(address.Bytes()[12:]))
	id, err := domain.NewEntityId(a.shard, a.realm, num)
	if err != nil {
		return domain.EntityId{}, true, errors.Wrap(errors.ErrInvalidEntityId, err.Error())
	}

	return id, true, nil
}
