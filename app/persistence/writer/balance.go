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

package writer

import (
	"fmt"
	"strings"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const (
	// updateEntityBalance - Applies the aggregated deltas of the batch to the entity balances in one statement
	updateEntityBalance = `update entity e
                           set balance = coalesce(e.balance, 0) + v.delta, balance_timestamp = v.timestamp
                           from (values %s) as v(id, delta, timestamp)
                           where e.id = v.id`
	entityBalanceValue = "(?::bigint, ?::bigint, ?::bigint)"
	// upsertTokenBalance - Applies the aggregated deltas of the batch to the token relationship balances, a missing
	// relationship is created with the delta as its balance, effective from the first transfer of the batch
	upsertTokenBalance = `insert into token_account (account_id, token_id, balance, timestamp_range)
                          values %s
                          on conflict (account_id, token_id) do update
                          set balance = token_account.balance + excluded.balance`
	tokenBalanceValue = "(?::bigint, ?::bigint, ?::bigint, int8range(?::bigint, null))"
)

type balanceChange struct {
	delta          int64
	firstTimestamp int64
	timestamp      int64
}

func (b *balanceChange) add(amount, timestamp int64) {
	b.delta += amount
	if b.firstTimestamp == 0 || timestamp < b.firstTimestamp {
		b.firstTimestamp = timestamp
	}
	if timestamp > b.timestamp {
		b.timestamp = timestamp
	}
}

type tokenAccountKey struct {
	accountId int64
	tokenId   int64
}

func writeEntityBalances(tx *gorm.DB, balances map[int64]*balanceChange) error {
	if len(balances) == 0 {
		return nil
	}

	ids := sortedKeys(balances, func(a, b int64) int { return compareInt64(a, b) })
	args := make([]interface{}, 0, len(ids)*3)
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		change := balances[id]
		args = append(args, id, change.delta, change.timestamp)
		values = append(values, entityBalanceValue)
	}

	return tx.Exec(fmt.Sprintf(updateEntityBalance, strings.Join(values, ", ")), args...).Error
}

func writeTokenBalances(tx *gorm.DB, balances map[tokenAccountKey]*balanceChange) error {
	if len(balances) == 0 {
		return nil
	}

	keys := sortedKeys(balances, func(a, b tokenAccountKey) int {
		if a.accountId != b.accountId {
			return compareInt64(a.accountId, b.accountId)
		}
		return compareInt64(a.tokenId, b.tokenId)
	})
	args := make([]interface{}, 0, len(keys)*4)
	values := make([]string, 0, len(keys))
	for _, key := range keys {
		change := balances[key]
		args = append(args, key.accountId, key.tokenId, change.delta, change.firstTimestamp)
		values = append(values, tokenBalanceValue)
	}

	return tx.Exec(fmt.Sprintf(upsertTokenBalance, strings.Join(values, ", ")), args...).Error
}

func addEntityBalance(balances map[int64]*balanceChange, entityId domain.EntityId, amount, timestamp int64) {
	change, ok := balances[entityId.EncodedId]
	if !ok {
		change = &balanceChange{}
		balances[entityId.EncodedId] = change
	}
	change.add(amount, timestamp)
}

func addTokenBalance(
	balances map[tokenAccountKey]*balanceChange,
	accountId domain.EntityId,
	tokenId domain.EntityId,
	amount int64,
	timestamp int64,
) {
	key := tokenAccountKey{accountId: accountId.EncodedId, tokenId: tokenId.EncodedId}
	change, ok := balances[key]
	if !ok {
		change = &balanceChange{}
		balances[key] = change
	}
	change.add(amount, timestamp)
}

// sortedKeys returns the keys in a stable order so concurrent writers lock rows in the same order
func sortedKeys[K comparable, V any](m map[K]V, cmp func(a, b K) int) []K {
	keys := make([]K, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, cmp)
	return keys
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
