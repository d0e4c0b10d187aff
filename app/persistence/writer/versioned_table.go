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
	"reflect"
	"strings"
	"sync"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const (
	timestampArgName = "timestamp"

	// upsertVersion - Copies the current version of the row into the history table closing its range at @timestamp,
	// then inserts or merges the new version. Both statements see the same snapshot, so the history row is the
	// version before the merge
	upsertVersion = `with history as (
                       insert into %[1]s_history (%[2]s, timestamp_range)
                       select %[2]s, int8range(lower(timestamp_range), cast(@timestamp as bigint))
                       from %[1]s
                       where %[3]s and lower(timestamp_range) < cast(@timestamp as bigint)
                     )
                     insert into %[1]s (%[2]s, timestamp_range)
                     values (%[4]s, int8range(cast(@timestamp as bigint), null))
                     on conflict (%[5]s) do update
                     set %[6]s, timestamp_range = excluded.timestamp_range`
)

var schemaCache = &sync.Map{}

type mergeMode int

const (
	// coalesce keeps the stored value when the new version leaves the column unset
	coalesce mergeMode = iota
	// keepFirst never overwrites a stored value
	keepFirst
	// replace always takes the value of the new version
	replace
)

// versionedTable describes a table whose superseded rows are kept in <name>_history
type versionedTable struct {
	columns []string
	name    string
	sql     string
}

func newVersionedTable(name string, keys []string, columns []string, modes map[string]mergeMode) *versionedTable {
	isKey := make(map[string]bool, len(keys))
	filters := make([]string, 0, len(keys))
	for _, key := range keys {
		isKey[key] = true
		filters = append(filters, fmt.Sprintf("%s = @%s", key, key))
	}

	params := make([]string, 0, len(columns))
	updates := make([]string, 0, len(columns))
	for _, column := range columns {
		params = append(params, "@"+column)
		if isKey[column] {
			continue
		}

		switch modes[column] {
		case keepFirst:
			updates = append(updates, fmt.Sprintf("%[1]s = coalesce(%[2]s.%[1]s, excluded.%[1]s)", column, name))
		case replace:
			updates = append(updates, fmt.Sprintf("%[1]s = excluded.%[1]s", column))
		default:
			updates = append(updates, fmt.Sprintf("%[1]s = coalesce(excluded.%[1]s, %[2]s.%[1]s)", column, name))
		}
	}

	return &versionedTable{
		columns: columns,
		name:    name,
		sql: fmt.Sprintf(
			upsertVersion,
			name,
			strings.Join(columns, ", "),
			strings.Join(filters, " and "),
			strings.Join(params, ", "),
			strings.Join(keys, ", "),
			strings.Join(updates, ", "),
		),
	}
}

// upsert applies model as the version of its row effective at timestamp
func (v *versionedTable) upsert(tx *gorm.DB, model interface{}, timestamp int64) error {
	modelSchema, err := schema.Parse(model, schemaCache, tx.NamingStrategy)
	if err != nil {
		return errors.Wrapf(err, "Failed to parse the schema of %s", v.name)
	}

	value := reflect.Indirect(reflect.ValueOf(model))
	args := make(map[string]interface{}, len(v.columns)+1)
	for _, column := range v.columns {
		field := modelSchema.LookUpField(column)
		if field == nil {
			return errors.Wrapf(errors.ErrIllegalState, "Column %s is not mapped by %T", column, model)
		}

		fieldValue, _ := field.ValueOf(tx.Statement.Context, value)
		args[column] = toDriverValue(fieldValue)
	}
	args[timestampArgName] = timestamp

	return tx.Exec(v.sql, args).Error
}

// toDriverValue dereferences pointers, nil pointers become NULL
func toDriverValue(value interface{}) interface{} {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return nil
	}

	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.String:
		return rv.String()
	default:
		return rv.Interface()
	}
}

var (
	entityTable = newVersionedTable(
		"entity",
		[]string{"id"},
		[]string{
			"alias",
			"auto_renew_account_id",
			"auto_renew_period",
			"created_timestamp",
			"deleted",
			"evm_address",
			"expiration_timestamp",
			"id",
			"key",
			"memo",
			"num",
			"proxy_account_id",
			"public_key",
			"realm",
			"shard",
			"submit_key",
			"type",
		},
		map[string]mergeMode{"created_timestamp": keepFirst},
	)
	nftTable = newVersionedTable(
		"nft",
		[]string{"token_id", "serial_number"},
		[]string{
			"account_id",
			"created_timestamp",
			"delegating_spender",
			"deleted",
			"metadata",
			"serial_number",
			"spender",
			"token_id",
		},
		map[string]mergeMode{
			"created_timestamp":  keepFirst,
			"delegating_spender": replace,
			"spender":            replace,
		},
	)
	tokenTable = newVersionedTable(
		"token",
		[]string{"token_id"},
		[]string{
			"created_timestamp",
			"decimals",
			"fee_schedule_key",
			"freeze_default",
			"freeze_key",
			"initial_supply",
			"kyc_key",
			"max_supply",
			"name",
			"pause_key",
			"supply_key",
			"supply_type",
			"symbol",
			"token_id",
			"total_supply",
			"treasury_account_id",
			"type",
			"wipe_key",
		},
		map[string]mergeMode{"created_timestamp": keepFirst},
	)
	// balance is maintained by the aggregated transfer deltas
	tokenAccountTable = newVersionedTable(
		"token_account",
		[]string{"account_id", "token_id"},
		[]string{
			"account_id",
			"associated",
			"automatic_association",
			"created_timestamp",
			"freeze_status",
			"kyc_status",
			"token_id",
		},
		map[string]mergeMode{"created_timestamp": keepFirst},
	)
	cryptoAllowanceTable = newVersionedTable(
		"crypto_allowance",
		[]string{"owner", "spender"},
		[]string{"amount", "amount_granted", "owner", "payer_account_id", "spender"},
		map[string]mergeMode{"amount": replace, "amount_granted": replace, "payer_account_id": replace},
	)
	nftAllowanceTable = newVersionedTable(
		"nft_allowance",
		[]string{"owner", "spender", "token_id"},
		[]string{"approved_for_all", "owner", "payer_account_id", "spender", "token_id"},
		map[string]mergeMode{"approved_for_all": replace, "payer_account_id": replace},
	)
	tokenAllowanceTable = newVersionedTable(
		"token_allowance",
		[]string{"owner", "spender", "token_id"},
		[]string{"amount", "amount_granted", "owner", "payer_account_id", "spender", "token_id"},
		map[string]mergeMode{"amount": replace, "amount_granted": replace, "payer_account_id": replace},
	)
)
