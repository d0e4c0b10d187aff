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

package persistence

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	tdomain "github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/test/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const (
	slotWrittenTimestamp   int64 = 1656693000269913000
	slotReadTimestamp            = slotWrittenTimestamp + 10
	slotRewrittenTimestamp       = slotWrittenTimestamp + 20
)

var (
	slot1       = common.LeftPadBytes([]byte{1}, 32)
	slotValue1  = common.LeftPadBytes([]byte{0xaa}, 32)
	slotValue2  = common.LeftPadBytes([]byte{0xbb}, 32)
	unknownSlot = common.LeftPadBytes([]byte{2}, 32)
)

// run the suite
func TestContractStateRepositorySuite(t *testing.T) {
	suite.Run(t, new(contractStateRepositorySuite))
}

type contractStateRepositorySuite struct {
	integrationTest
	suite.Suite
	contractId domain.EntityId
	repo       *contractStateRepository
}

func (suite *contractStateRepositorySuite) SetupSuite() {
	suite.contractId = domain.MustDecodeEntityId(contract1)
	suite.repo = NewContractStateRepository(dbClient).(*contractStateRepository)
}

func (suite *contractStateRepositorySuite) SetupTest() {
	suite.integrationTest.SetupTest()

	tdomain.NewContractStateChangeBuilder(dbClient, contract1, slot1, slotWrittenTimestamp).
		ValueWritten(slotValue1).
		Persist()
	tdomain.NewContractStateChangeBuilder(dbClient, contract1, slot1, slotReadTimestamp).
		ValueRead(slotValue1).
		Persist()
	tdomain.NewContractStateChangeBuilder(dbClient, contract1, slot1, slotRewrittenTimestamp).
		ValueRead(slotValue1).
		ValueWritten(slotValue2).
		Persist()
}

func (suite *contractStateRepositorySuite) TestFindSlotValue() {
	tests := []struct {
		name      string
		slot      []byte
		timestamp *int64
		expected  []byte
	}{
		{name: "current", slot: slot1, expected: slotValue2},
		{name: "before first write", slot: slot1, timestamp: int64Ptr(slotWrittenTimestamp - 1)},
		{name: "at first write", slot: slot1, timestamp: int64Ptr(slotWrittenTimestamp), expected: slotValue1},
		{name: "read only access", slot: slot1, timestamp: int64Ptr(slotReadTimestamp), expected: slotValue1},
		{name: "rewritten", slot: slot1, timestamp: int64Ptr(slotRewrittenTimestamp), expected: slotValue2},
		{name: "unknown slot", slot: unknownSlot},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			actual, err := suite.repo.FindSlotValue(defaultContext, suite.contractId, tt.slot, tt.timestamp)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}
