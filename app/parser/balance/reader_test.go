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

package balance

import (
	"encoding/base64"
	"testing"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/parser"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	tdomain "github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/test/domain"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fileName                 = "2022-07-01T16_30_00.269913000Z_Balances.csv"
	consensusTimestamp int64 = 1656693000269913000
	v1Content                = `TimeStamp:2022-07-01T16:30:00.269913000Z
shard,realm,number,balance
0,0,2,5000000000000000000
0,0,98,1500
`
)

func TestParseV1(t *testing.T) {
	snapshot, err := Parse(&parser.StreamFile{Bytes: []byte(v1Content), Name: fileName})

	require.NoError(t, err)
	assert.Equal(t, consensusTimestamp, snapshot.File.ConsensusTimestamp)
	assert.Equal(t, int64(2), snapshot.File.Count)
	assert.Equal(t, fileName, snapshot.File.Name)
	assert.Len(t, snapshot.File.FileHash, 96)
	assert.Equal(t, []domain.AccountBalance{
		{AccountId: domain.MustDecodeEntityId(2), Balance: 5000000000000000000, ConsensusTimestamp: consensusTimestamp},
		{AccountId: domain.MustDecodeEntityId(98), Balance: 1500, ConsensusTimestamp: consensusTimestamp},
	}, snapshot.AccountBalances)
	assert.Empty(t, snapshot.TokenBalances)
}

func TestParseV2(t *testing.T) {
	tokenBalances := &services.TokenBalances{TokenBalances: []*services.TokenBalance{
		{TokenId: tdomain.TokenId(1500), Balance: 25},
		{TokenId: tdomain.TokenId(1501), Balance: 7},
	}}
	encoded := base64.StdEncoding.EncodeToString(tdomain.MustMarshal(tokenBalances))
	content := "# version:2\n# TimeStamp:2022-07-01T16:30:00.269913000Z\n" +
		"shard,realm,number,balance,tokenBalances\n" +
		"0,0,1001,300," + encoded + "\n" +
		"0,0,1002,400,\n"

	snapshot, err := Parse(&parser.StreamFile{Bytes: []byte(content), Name: fileName})

	require.NoError(t, err)
	assert.Equal(t, int64(2), snapshot.File.Count)
	assert.Equal(t, []domain.TokenBalance{
		{
			AccountId:          domain.MustDecodeEntityId(1001),
			Balance:            25,
			ConsensusTimestamp: consensusTimestamp,
			TokenId:            domain.MustDecodeEntityId(1500),
		},
		{
			AccountId:          domain.MustDecodeEntityId(1001),
			Balance:            7,
			ConsensusTimestamp: consensusTimestamp,
			TokenId:            domain.MustDecodeEntityId(1501),
		},
	}, snapshot.TokenBalances)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		file    string
	}{
		{name: "no header", content: "0,0,2,100\n", file: fileName},
		{name: "too few columns", content: "shard,realm,number,balance\n0,0,2\n", file: fileName},
		{name: "not a number", content: "shard,realm,number,balance\n0,0,x,100\n", file: fileName},
		{name: "invalid entity", content: "shard,realm,number,balance\n-1,0,2,100\n", file: fileName},
		{name: "invalid token balances", content: "shard,realm,number,balance,tokenBalances\n0,0,2,100,!!\n", file: fileName},
		{name: "invalid file name", content: v1Content, file: "balances.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, err := Parse(&parser.StreamFile{Bytes: []byte(tt.content), Name: tt.file})

			assert.True(t, errors.IsParseError(err))
			assert.Nil(t, snapshot)
		})
	}
}
