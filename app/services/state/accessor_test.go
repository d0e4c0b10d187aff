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
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	tdomain "github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/test/domain"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	createdTimestamp int64 = 1656693000269913000
	laterTimestamp         = createdTimestamp + 100
)

var (
	accountId       = domain.MustDecodeEntityId(1001)
	evmAddress      = common.HexToAddress("0x5a081255a92b7c262bc2ea3ab7114b8a815345b3")
	longZeroAddress = common.HexToAddress("0x00000000000000000000000000000000000003e9")
	tokenId         = domain.MustDecodeEntityId(2001)
)

func TestAccessorSuite(t *testing.T) {
	suite.Run(t, new(accessorSuite))
}

type accessorSuite struct {
	suite.Suite
	accessor          *Accessor
	balanceRepo       *mocks.MockAccountBalanceRepository
	allowanceRepo     *mocks.MockAllowanceRepository
	contractStateRepo *mocks.MockContractStateRepository
	entityRepo        *mocks.MockEntityRepository
	nftRepo           *mocks.MockNftRepository
	recordFileRepo    *mocks.MockRecordFileRepository
	tokenAccountRepo  *mocks.MockTokenAccountRepository
	tokenRepo         *mocks.MockTokenRepository
}

func (suite *accessorSuite) SetupTest() {
	suite.allowanceRepo = &mocks.MockAllowanceRepository{}
	suite.balanceRepo = &mocks.MockAccountBalanceRepository{}
	suite.contractStateRepo = &mocks.MockContractStateRepository{}
	suite.entityRepo = &mocks.MockEntityRepository{}
	suite.nftRepo = &mocks.MockNftRepository{}
	suite.recordFileRepo = &mocks.MockRecordFileRepository{}
	suite.tokenAccountRepo = &mocks.MockTokenAccountRepository{}
	suite.tokenRepo = &mocks.MockTokenRepository{}
	suite.accessor = NewAccessor(0, 0, Repositories{
		AccountBalance: suite.balanceRepo,
		Allowance:      suite.allowanceRepo,
		ContractState:  suite.contractStateRepo,
		Entity:         suite.entityRepo,
		Nft:            suite.nftRepo,
		RecordFile:     suite.recordFileRepo,
		Token:          suite.tokenRepo,
		TokenAccount:   suite.tokenAccountRepo,
	})
}

func (suite *accessorSuite) TestReadAccountLongZero() {
	// given
	timestamp := laterTimestamp
	entity := account()
	suite.entityRepo.On("FindById", accountId, &timestamp).Return(entity, nil)
	suite.balanceRepo.On("GetBalance", accountId, &timestamp).Return(int64(500), nil).Once()

	// when
	actual, err := suite.accessor.ReadAccount(context.Background(), longZeroAddress, &timestamp)

	// then
	suite.Require().NoError(err)
	suite.Equal(entity, actual.Entity)
	suite.Equal(longZeroAddress, actual.EvmAddress)
	suite.balanceRepo.AssertNotCalled(suite.T(), "GetBalance", mock.Anything, mock.Anything)

	for i := 0; i < 2; i++ {
		balance, err := actual.Balance()
		suite.NoError(err)
		suite.Equal(int64(500), balance)
	}
	suite.balanceRepo.AssertNumberOfCalls(suite.T(), "GetBalance", 1)
}

func (suite *accessorSuite) TestReadAccountEvmAddress() {
	// given
	entity := account()
	suite.entityRepo.On("FindByEvmAddress", evmAddress.Bytes(), (*int64)(nil)).Return(entity, nil)
	suite.balanceRepo.On("GetBalance", accountId, (*int64)(nil)).Return(int64(10), nil)

	// when
	actual, err := suite.accessor.ReadAccount(context.Background(), evmAddress, nil)

	// then
	suite.Require().NoError(err)
	balance, err := actual.Balance()
	suite.NoError(err)
	suite.Equal(int64(10), balance)
	suite.entityRepo.AssertNotCalled(suite.T(), "FindById", mock.Anything, mock.Anything)
}

func (suite *accessorSuite) TestReadAccountNotYetCreated() {
	// given
	timestamp := createdTimestamp - 1
	suite.entityRepo.On("FindById", accountId, &timestamp).Return(account(), nil)

	// when
	actual, err := suite.accessor.ReadAccount(context.Background(), longZeroAddress, &timestamp)

	// then
	suite.Require().NoError(err)
	balance, err := actual.Balance()
	suite.NoError(err)
	suite.Zero(balance)
	suite.balanceRepo.AssertNotCalled(suite.T(), "GetBalance", mock.Anything, mock.Anything)
}

func (suite *accessorSuite) TestReadAccountNotFound() {
	suite.entityRepo.On("FindByEvmAddress", evmAddress.Bytes(), (*int64)(nil)).Return((*domain.Entity)(nil), nil)

	actual, err := suite.accessor.ReadAccount(context.Background(), evmAddress, nil)

	suite.NoError(err)
	suite.Nil(actual)
}

func (suite *accessorSuite) TestReadAccountError() {
	suite.entityRepo.On("FindById", accountId, (*int64)(nil)).Return((*domain.Entity)(nil), errors.ErrDatabaseError)

	actual, err := suite.accessor.ReadAccount(context.Background(), longZeroAddress, nil)

	suite.ErrorIs(err, errors.ErrDatabaseError)
	suite.Nil(actual)
}

func (suite *accessorSuite) TestReadEntityByAddressOtherShard() {
	// given
	accessor := NewAccessor(1, 2, Repositories{Entity: suite.entityRepo})
	id := domain.MustEntityIdFromString("1.2.1001")
	suite.entityRepo.On("FindById", id, (*int64)(nil)).Return(&domain.Entity{Id: id}, nil)

	// when
	actual, err := accessor.ReadEntityByAddress(context.Background(), longZeroAddress, nil)

	// then
	suite.Require().NoError(err)
	suite.Equal(id, actual.Id)
}

func (suite *accessorSuite) TestReadEntityByAddressInvalidNumber() {
	address := common.HexToAddress("0x000000000000000000000000ffffffffffffffff")

	actual, err := suite.accessor.ReadEntityByAddress(context.Background(), address, nil)

	suite.ErrorIs(err, errors.ErrInvalidEntityId)
	suite.Nil(actual)
}

func (suite *accessorSuite) TestMustReadNft() {
	// given
	timestamp := laterTimestamp
	nft := &domain.Nft{SerialNumber: 1, TokenId: tokenId}
	suite.nftRepo.On("Find", tokenId, int64(1), &timestamp).Return(nft, nil)
	suite.nftRepo.On("Find", tokenId, int64(2), &timestamp).Return((*domain.Nft)(nil), nil)

	// when
	actual, err := suite.accessor.MustReadNft(context.Background(), tokenId, 1, &timestamp)

	// then
	suite.NoError(err)
	suite.Equal(nft, actual)

	// when
	actual, err = suite.accessor.MustReadNft(context.Background(), tokenId, 2, &timestamp)

	// then
	suite.ErrorIs(err, errors.ErrNftNotFound)
	suite.Nil(actual)

	// when
	actual, err = suite.accessor.ReadNft(context.Background(), tokenId, 2, &timestamp)

	// then
	suite.NoError(err)
	suite.Nil(actual)
}

func (suite *accessorSuite) TestReadContractStorage() {
	// given
	contractId := domain.MustDecodeEntityId(5001)
	slot := common.HexToHash("0x01")
	missing := common.HexToHash("0x02")
	suite.contractStateRepo.On("FindSlotValue", contractId, slot.Bytes(), (*int64)(nil)).Return([]byte{0xab}, nil)
	suite.contractStateRepo.On("FindSlotValue", contractId, missing.Bytes(), (*int64)(nil)).Return([]byte(nil), nil)

	// when
	value, err := suite.accessor.ReadContractStorage(context.Background(), contractId, slot, nil)

	// then
	suite.NoError(err)
	suite.Equal(common.HexToHash("0xab"), value)

	// when
	value, err = suite.accessor.ReadContractStorage(context.Background(), contractId, missing, nil)

	// then
	suite.NoError(err)
	suite.Equal(common.Hash{}, value)
}

func (suite *accessorSuite) TestReadTokenBalance() {
	timestamp := laterTimestamp
	suite.balanceRepo.On("GetTokenBalance", accountId, tokenId, &timestamp).Return(int64(7), nil)

	balance, err := suite.accessor.ReadTokenBalance(context.Background(), accountId, tokenId, &timestamp)

	suite.NoError(err)
	suite.Equal(int64(7), balance)
}

func (suite *accessorSuite) TestReadTokenAndRelationship() {
	token := &domain.Token{TokenId: tokenId}
	tokenAccount := &domain.TokenAccount{AccountId: accountId, TokenId: tokenId}
	suite.tokenRepo.On("Find", tokenId, (*int64)(nil)).Return(token, nil)
	suite.tokenAccountRepo.On("Find", accountId, tokenId, (*int64)(nil)).Return(tokenAccount, nil)

	actualToken, err := suite.accessor.ReadToken(context.Background(), tokenId, nil)
	suite.NoError(err)
	suite.Equal(token, actualToken)

	actualTokenAccount, err := suite.accessor.ReadTokenRelationship(context.Background(), accountId, tokenId, nil)
	suite.NoError(err)
	suite.Equal(tokenAccount, actualTokenAccount)
}

func (suite *accessorSuite) TestReadAllowances() {
	spender := domain.MustDecodeEntityId(1002)
	cryptoAllowance := &domain.CryptoAllowance{Amount: 10, Owner: accountId, Spender: spender}
	nftAllowance := &domain.NftAllowance{ApprovedForAll: true, Owner: accountId, Spender: spender, TokenId: tokenId}
	tokenAllowance := &domain.TokenAllowance{Amount: 5, Owner: accountId, Spender: spender, TokenId: tokenId}
	suite.allowanceRepo.On("FindCryptoAllowance", accountId, spender, (*int64)(nil)).Return(cryptoAllowance, nil)
	suite.allowanceRepo.On("FindNftAllowance", accountId, spender, tokenId, (*int64)(nil)).Return(nftAllowance, nil)
	suite.allowanceRepo.On("FindTokenAllowance", accountId, spender, tokenId, (*int64)(nil)).
		Return(tokenAllowance, nil)

	actualCrypto, err := suite.accessor.ReadCryptoAllowance(context.Background(), accountId, spender, nil)
	suite.NoError(err)
	suite.Equal(cryptoAllowance, actualCrypto)

	actualNft, err := suite.accessor.ReadNftAllowance(context.Background(), accountId, spender, tokenId, nil)
	suite.NoError(err)
	suite.Equal(nftAllowance, actualNft)

	actualToken, err := suite.accessor.ReadTokenAllowance(context.Background(), accountId, spender, tokenId, nil)
	suite.NoError(err)
	suite.Equal(tokenAllowance, actualToken)
}

func (suite *accessorSuite) TestReadBlockContext() {
	// given
	timestamp := laterTimestamp
	recordFile := &domain.RecordFile{ConsensusEnd: laterTimestamp + 10, Index: 5}
	latest := &domain.RecordFile{ConsensusEnd: laterTimestamp + 100, Index: 6}
	suite.recordFileRepo.On("FindByTimestamp", timestamp).Return(recordFile, nil)
	suite.recordFileRepo.On("FindLatest").Return(latest, nil)

	// when
	actual, err := suite.accessor.ReadBlockContext(context.Background(), &timestamp)

	// then
	suite.NoError(err)
	suite.Equal(recordFile, actual)

	// when
	actual, err = suite.accessor.ReadBlockContext(context.Background(), nil)

	// then
	suite.NoError(err)
	suite.Equal(latest, actual)
}

func (suite *accessorSuite) TestReadBlockContextNotFound() {
	timestamp := laterTimestamp
	suite.recordFileRepo.On("FindByTimestamp", timestamp).Return((*domain.RecordFile)(nil), nil)
	suite.recordFileRepo.On("FindLatest").Return((*domain.RecordFile)(nil), nil)

	actual, err := suite.accessor.ReadBlockContext(context.Background(), &timestamp)
	suite.ErrorIs(err, errors.ErrRecordFileNotFound)
	suite.Nil(actual)

	actual, err = suite.accessor.ReadBlockContext(context.Background(), nil)
	suite.ErrorIs(err, errors.ErrRecordFileNotFound)
	suite.Nil(actual)
}

func TestReadBlockContextDatabaseError(t *testing.T) {
	recordFileRepo := &mocks.MockRecordFileRepository{}
	recordFileRepo.On("FindLatest").Return((*domain.RecordFile)(nil), errors.ErrDatabaseError)
	accessor := NewAccessor(0, 0, Repositories{RecordFile: recordFileRepo})

	actual, err := accessor.ReadBlockContext(context.Background(), nil)

	require.Error(t, err)
	assert.Equal(t, errors.ErrDatabaseError, err)
	assert.Nil(t, actual)
}

func account() *domain.Entity {
	created := createdTimestamp
	return &domain.Entity{
		CreatedTimestamp: &created,
		EvmAddress:       evmAddress.Bytes(),
		Id:               accountId,
		Num:              accountId.EntityNum,
		Type:             tdomain.AccountType,
	}
}
