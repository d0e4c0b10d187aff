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
	"bytes"
	"crypto/sha512"
	"encoding/base64"
	"encoding/csv"
	"encoding/hex"
	"io"
	"strconv"
	"strings"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/parser"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"google.golang.org/protobuf/proto"
)

const (
	columnShard         = "shard"
	minColumns          = 4
	tokenBalancesColumn = 4
)

// Snapshot is the content of one account balance file
type Snapshot struct {
	AccountBalances []domain.AccountBalance
	File            domain.AccountBalanceFile
	TokenBalances   []domain.TokenBalance
}

// Parse reads a v1 or v2 account balance CSV file. Lines before the shard,realm,number,balance header are
// metadata, the consensus timestamp comes from the file name. A v2 file carries a fifth column with the base64
// encoded TokenBalances of the account
func Parse(file *parser.StreamFile) (*Snapshot, error) {
	consensusTimestamp, err := file.Timestamp()
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(file.Bytes))
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if err = skipHeader(reader); err != nil {
		return nil, errors.NewParserError(file.Name, err)
	}

	hash := sha512.Sum384(file.Bytes)
	snapshot := &Snapshot{
		AccountBalances: make([]domain.AccountBalance, 0),
		File: domain.AccountBalanceFile{
			ConsensusTimestamp: consensusTimestamp,
			FileHash:           hex.EncodeToString(hash[:]),
			Name:               file.Name,
		},
		TokenBalances: make([]domain.TokenBalance, 0),
	}

	for {
		line, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParserError(file.Name, err)
		}

		if err = snapshot.addLine(line); err != nil {
			return nil, errors.NewParserError(file.Name, err)
		}
	}

	snapshot.File.Count = int64(len(snapshot.AccountBalances))
	return snapshot, nil
}

func (s *Snapshot) addLine(line []string) error {
	if len(line) < minColumns {
		return errors.Errorf("expected at least %d columns, got %d", minColumns, len(line))
	}

	values := make([]int64, minColumns)
	for i := 0; i < minColumns; i++ {
		value, err := strconv.ParseInt(strings.TrimSpace(line[i]), 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid value in line %v", line)
		}
		values[i] = value
	}

	accountId, err := domain.NewEntityId(values[0], values[1], values[2])
	if err != nil {
		return err
	}

	timestamp := s.File.ConsensusTimestamp
	s.AccountBalances = append(s.AccountBalances, domain.AccountBalance{
		AccountId:          accountId,
		Balance:            values[3],
		ConsensusTimestamp: timestamp,
	})

	if len(line) <= tokenBalancesColumn || line[tokenBalancesColumn] == "" {
		return nil
	}

	tokenBalances, err := decodeTokenBalances(line[tokenBalancesColumn])
	if err != nil {
		return err
	}

	for _, tokenBalance := range tokenBalances.GetTokenBalances() {
		tokenId := tokenBalance.GetTokenId()
		token, err := domain.NewEntityId(tokenId.GetShardNum(), tokenId.GetRealmNum(), tokenId.GetTokenNum())
		if err != nil {
			return err
		}

		s.TokenBalances = append(s.TokenBalances, domain.TokenBalance{
			AccountId:          accountId,
			Balance:            int64(tokenBalance.GetBalance()),
			ConsensusTimestamp: timestamp,
			TokenId:            token,
		})
	}

	return nil
}

func decodeTokenBalances(encoded string) (*services.TokenBalances, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "invalid token balances encoding")
	}

	tokenBalances := &services.TokenBalances{}
	if err = proto.Unmarshal(data, tokenBalances); err != nil {
		return nil, errors.Wrap(err, "invalid token balances")
	}

	return tokenBalances, nil
}

// skipHeader consumes the metadata lines up to and including the column header
func skipHeader(reader *csv.Reader) error {
	for {
		line, err := reader.Read()
		if err == io.EOF {
			return errors.New("column header not found")
		}
		if err != nil {
			return err
		}

		if strings.EqualFold(strings.TrimSpace(line[0]), columnShard) {
			return nil
		}
	}
}
