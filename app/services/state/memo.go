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

// Memo computes its value on first use and returns the same value, or error, afterwards. A Memo belongs to one
// request and is not safe for concurrent use
type Memo[T any] struct {
	done   bool
	err    error
	supply func() (T, error)
	value  T
}

func NewMemo[T any](supply func() (T, error)) *Memo[T] {
	return &Memo[T]{supply: supply}
}

func (m *Memo[T]) Get() (T, error) {
	if !m.done {
		m.value, m.err = m.supply()
		m.done = true
		m.supply = nil
	}

	return m.value, m.err
}
