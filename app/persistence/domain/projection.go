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

// ProjectionResult bundles every row derived from one transaction. Entity, token, token relationship, nft and
// allowance entries are sparse mutations: nil fields leave the stored value untouched
type ProjectionResult struct {
	ContractResult       *ContractResult
	ContractStateChanges []ContractStateChange
	CryptoAllowances     []CryptoAllowance
	CryptoTransfers      []CryptoTransfer
	Entities             []Entity
	FileData             *FileData
	LiveHash             *LiveHash
	NftAllowances        []NftAllowance
	NftTransfers         []NftTransfer
	Nfts                 []Nft
	NonFeeTransfers      []NonFeeTransfer
	TokenAccounts        []TokenAccount
	TokenAllowances      []TokenAllowance
	TokenTransfers       []TokenTransfer
	Tokens               []Token
	TopicMessage         *TopicMessage
	Transaction          Transaction
}

// NewProjectionResult creates an empty result for the transaction
func NewProjectionResult(transaction Transaction) *ProjectionResult {
	return &ProjectionResult{Transaction: transaction}
}

// AddEntity stages an entity mutation, the mutations of one transaction are applied in the order they are added
func (p *ProjectionResult) AddEntity(entity *Entity) {
	p.Entities = append(p.Entities, *entity)
}

// IsSuccessful reports whether the transaction result allows state mutations
func (p *ProjectionResult) IsSuccessful() bool {
	return IsSuccessfulResult(p.Transaction.Result)
}
