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
	"testing"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/stretchr/testify/assert"
)

func TestMemo(t *testing.T) {
	calls := 0
	memo := NewMemo(func() (int64, error) {
		calls++
		return 10, nil
	})

	for i := 0; i < 3; i++ {
		value, err := memo.Get()
		assert.NoError(t, err)
		assert.Equal(t, int64(10), value)
	}
	assert.Equal(t, 1, calls)
}

func TestMemoError(t *testing.T) {
	calls := 0
	memo := NewMemo(func() (string, error) {
		calls++
		return "", errors.ErrDatabaseError
	})

	_, err := memo.Get()
	assert.ErrorIs(t, err, errors.ErrDatabaseError)
	_, err = memo.Get()
	assert.ErrorIs(t, err, errors.ErrDatabaseError)
	assert.Equal(t, 1, calls)
}
