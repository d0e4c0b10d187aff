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

package domain

import "github.com/jackc/pgtype"

// NewTimestampRange returns the open ended range [lower, ) of a current row
func NewTimestampRange(lower int64) pgtype.Int8range {
	return pgtype.Int8range{
		Lower:     pgtype.Int8{Int: lower, Status: pgtype.Present},
		Upper:     pgtype.Int8{Status: pgtype.Null},
		LowerType: pgtype.Inclusive,
		UpperType: pgtype.Unbounded,
		Status:    pgtype.Present,
	}
}

// NewClosedTimestampRange returns the range [lower, upper) of a superseded row
func NewClosedTimestampRange(lower, upper int64) pgtype.Int8range {
	return pgtype.Int8range{
		Lower:     pgtype.Int8{Int: lower, Status: pgtype.Present},
		Upper:     pgtype.Int8{Int: upper, Status: pgtype.Present},
		LowerType: pgtype.Inclusive,
		UpperType: pgtype.Exclusive,
		Status:    pgtype.Present,
	}
}

// GetTimestampRangeLower returns the inclusive lower bound, 0 when the range has none
func GetTimestampRangeLower(timestampRange pgtype.Int8range) int64 {
	if timestampRange.Status != pgtype.Present || timestampRange.Lower.Status != pgtype.Present {
		return 0
	}

	return timestampRange.Lower.Int
}

// GetTimestampRangeUpper returns the exclusive upper bound, nil for a current row
func GetTimestampRangeUpper(timestampRange pgtype.Int8range) *int64 {
	if timestampRange.Status != pgtype.Present || timestampRange.UpperType == pgtype.Unbounded ||
		timestampRange.Upper.Status != pgtype.Present {
		return nil
	}

	upper := timestampRange.Upper.Int
	if timestampRange.UpperType == pgtype.Inclusive {
		upper++
	}
	return &upper
}
