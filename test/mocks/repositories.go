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

package mocks

import (
	"context"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockAccountBalanceRepository struct {
	mock.Mock
}

func (m *MockAccountBalanceRepository) GetBalance(ctx context.Context, accountId domain.EntityId, timestamp *int64) (
	int64,
	error,
) {
	args := m.Called(accountId, timestamp)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountBalanceRepository) GetTokenBalance(
	ctx context.Context,
	accountId domain.EntityId,
	tokenId domain.EntityId,
	timestamp *int64,
) (int64, error) {
	args := m.Called(accountId, tokenId, timestamp)
	return args.Get(0).(int64), args.Error(1)
}

type MockAllowanceRepository struct {
	mock.Mock
}

func (m *MockAllowanceRepository) FindCryptoAllowance(
	ctx context.Context,
	owner domain.EntityId,
	spender domain.EntityId,
	timestamp *int64,
) (*domain.CryptoAllowance, error) {
	args := m.Called(owner, spender, timestamp)
	return args.Get(0).(*domain.CryptoAllowance), args.Error(1)
}

func (m *MockAllowanceRepository) FindNftAllowance(
	ctx context.Context,
	owner domain.EntityId,
	spender domain.EntityId,
	tokenId domain.EntityId,
	timestamp *int64,
) (*domain.NftAllowance, error) {
	args := m.Called(owner, spender, tokenId, timestamp)
	return args.Get(0).(*domain.NftAllowance), args.Error(1)
}

func (m *MockAllowanceRepository) FindTokenAllowance(
	ctx context.Context,
	owner domain.EntityId,
	spender domain.EntityId,
	tokenId domain.EntityId,
	timestamp *int64,
) (*domain.TokenAllowance, error) {
	args := m.Called(owner, spender, tokenId, timestamp)
	return args.Get(0).(*domain.TokenAllowance), args.Error(1)
}

type MockContractStateRepository struct {
	mock.Mock
}

func (m *MockContractStateRepository) FindSlotValue(
	ctx context.Context,
	contractId domain.EntityId,
	slot []byte,
	timestamp *int64,
) ([]byte, error) {
	args := m.Called(contractId, slot, timestamp)
	return args.Get(0).([]byte), args.Error(1)
}

type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) FindByAlias(ctx context.Context, alias []byte, timestamp *int64) (
	*domain.Entity,
	error,
) {
	args := m.Called(alias, timestamp)
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) FindByEvmAddress(ctx context.Context, evmAddress []byte, timestamp *int64) (
	*domain.Entity,
	error,
) {
	args := m.Called(evmAddress, timestamp)
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) FindById(ctx context.Context, id domain.EntityId, timestamp *int64) (
	*domain.Entity,
	error,
) {
	args := m.Called(id, timestamp)
	return args.Get(0).(*domain.Entity), args.Error(1)
}

type MockEntityStore struct {
	mock.Mock
}

func (m *MockEntityStore) FindIdByAlias(tx *gorm.DB, alias []byte) (domain.EntityId, error) {
	args := m.Called(alias)
	return args.Get(0).(domain.EntityId), args.Error(1)
}

func (m *MockEntityStore) FindIdByEvmAddress(tx *gorm.DB, evmAddress []byte) (domain.EntityId, error) {
	args := m.Called(evmAddress)
	return args.Get(0).(domain.EntityId), args.Error(1)
}

func (m *MockEntityStore) InsertIfAbsent(tx *gorm.DB, entity *domain.Entity) (int16, error) {
	args := m.Called(entity.Id)
	return args.Get(0).(int16), args.Error(1)
}

type MockNftRepository struct {
	mock.Mock
}

func (m *MockNftRepository) Find(ctx context.Context, tokenId domain.EntityId, serialNumber int64, timestamp *int64) (
	*domain.Nft,
	error,
) {
	args := m.Called(tokenId, serialNumber, timestamp)
	return args.Get(0).(*domain.Nft), args.Error(1)
}

type MockRecordFileRepository struct {
	mock.Mock
}

func (m *MockRecordFileRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecordFileRepository) FindByTimestamp(ctx context.Context, timestamp int64) (*domain.RecordFile, error) {
	args := m.Called(timestamp)
	return args.Get(0).(*domain.RecordFile), args.Error(1)
}

func (m *MockRecordFileRepository) FindLatest(ctx context.Context) (*domain.RecordFile, error) {
	args := m.Called()
	return args.Get(0).(*domain.RecordFile), args.Error(1)
}

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Find(ctx context.Context, tokenId domain.EntityId, timestamp *int64) (
	*domain.Token,
	error,
) {
	args := m.Called(tokenId, timestamp)
	return args.Get(0).(*domain.Token), args.Error(1)
}

type MockTokenAccountRepository struct {
	mock.Mock
}

func (m *MockTokenAccountRepository) Find(
	ctx context.Context,
	accountId domain.EntityId,
	tokenId domain.EntityId,
	timestamp *int64,
) (*domain.TokenAccount, error) {
	args := m.Called(accountId, tokenId, timestamp)
	return args.Get(0).(*domain.TokenAccount), args.Error(1)
}
