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

package interfaces

import (
	"context"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"gorm.io/gorm"
)

// A nil timestamp argument of the finder methods below selects the current state, otherwise the state as of the
// consensus timestamp. Missing data is reported as a nil result and a nil error.

// AccountBalanceRepository Interface that all AccountBalanceRepository structs must implement
type AccountBalanceRepository interface {
	GetBalance(ctx context.Context, accountId domain.EntityId, timestamp *int64) (int64, error)
	GetTokenBalance(ctx context.Context, accountId, tokenId domain.EntityId, timestamp *int64) (int64, error)
}

// AddressBookEntryRepository Interface that all AddressBookEntryRepository structs must implement
type AddressBookEntryRepository interface {
	Entries(ctx context.Context, fileId domain.EntityId) ([]domain.AddressBookEntry, error)
}

// AllowanceRepository Interface that all AllowanceRepository structs must implement
type AllowanceRepository interface {
	FindCryptoAllowance(ctx context.Context, owner, spender domain.EntityId, timestamp *int64) (
		*domain.CryptoAllowance,
		error,
	)
	FindNftAllowance(ctx context.Context, owner, spender, tokenId domain.EntityId, timestamp *int64) (
		*domain.NftAllowance,
		error,
	)
	FindTokenAllowance(ctx context.Context, owner, spender, tokenId domain.EntityId, timestamp *int64) (
		*domain.TokenAllowance,
		error,
	)
}

// ContractStateRepository Interface that all ContractStateRepository structs must implement
type ContractStateRepository interface {
	FindSlotValue(ctx context.Context, contractId domain.EntityId, slot []byte, timestamp *int64) ([]byte, error)
}

// EntityRepository Interface that all EntityRepository structs must implement
type EntityRepository interface {
	FindByAlias(ctx context.Context, alias []byte, timestamp *int64) (*domain.Entity, error)
	FindByEvmAddress(ctx context.Context, evmAddress []byte, timestamp *int64) (*domain.Entity, error)
	FindById(ctx context.Context, id domain.EntityId, timestamp *int64) (*domain.Entity, error)
}

// EntityStore is the ingestion side of the entity table, every method runs in the caller's transaction
type EntityStore interface {
	// FindIdByAlias returns the id of the entity with the alias, the zero id if there is none
	FindIdByAlias(tx *gorm.DB, alias []byte) (domain.EntityId, error)
	// FindIdByEvmAddress returns the id of the entity with the evm address, the zero id if there is none
	FindIdByEvmAddress(tx *gorm.DB, evmAddress []byte) (domain.EntityId, error)
	// InsertIfAbsent inserts the entity unless a row with the same id exists and returns the type of the stored row
	InsertIfAbsent(tx *gorm.DB, entity *domain.Entity) (int16, error)
}

// EntityTypeRepository Interface that all EntityTypeRepository structs must implement
type EntityTypeRepository interface {
	FindAll(ctx context.Context) ([]domain.EntityType, error)
}

// NftRepository Interface that all NftRepository structs must implement
type NftRepository interface {
	Find(ctx context.Context, tokenId domain.EntityId, serialNumber int64, timestamp *int64) (*domain.Nft, error)
}

// RecordFileRepository Interface that all RecordFileRepository structs must implement
type RecordFileRepository interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindByTimestamp(ctx context.Context, timestamp int64) (*domain.RecordFile, error)
	FindLatest(ctx context.Context) (*domain.RecordFile, error)
}

// AccountBalanceFileRepository Interface that all AccountBalanceFileRepository structs must implement
type AccountBalanceFileRepository interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// TokenRepository Interface that all TokenRepository structs must implement
type TokenRepository interface {
	Find(ctx context.Context, tokenId domain.EntityId, timestamp *int64) (*domain.Token, error)
}

// TokenAccountRepository Interface that all TokenAccountRepository structs must implement
type TokenAccountRepository interface {
	Find(ctx context.Context, accountId, tokenId domain.EntityId, timestamp *int64) (*domain.TokenAccount, error)
}
