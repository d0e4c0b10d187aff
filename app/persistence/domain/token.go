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

const (
	tableNameToken        = "token"
	tableNameTokenAccount = "token_account"
)

const (
	TokenSupplyTypeUnknown  string = ""
	TokenSupplyTypeFinite   string = "FINITE"
	TokenSupplyTypeInfinite string = "INFINITE"

	TokenTypeUnknown           string = ""
	TokenTypeFungibleCommon    string = "FUNGIBLE_COMMON"     // #nosec
	TokenTypeNonFungibleUnique string = "NON_FUNGIBLE_UNIQUE" // #nosec
)

type TokenFreezeStatus int16

const (
	TokenFreezeStatusNotApplicable TokenFreezeStatus = 0
	TokenFreezeStatusFrozen        TokenFreezeStatus = 1
	TokenFreezeStatusUnfrozen      TokenFreezeStatus = 2
)

type TokenKycStatus int16

const (
	TokenKycStatusNotApplicable TokenKycStatus = 0
	TokenKycStatusGranted       TokenKycStatus = 1
	TokenKycStatusRevoked       TokenKycStatus = 2
)

// Token holds the token specific attributes, the shared ones (admin key, memo, expiry) live on its entity row. Nil
// fields are unset
type Token struct {
	CreatedTimestamp  *int64
	Decimals          *int64
	FeeScheduleKey    []byte
	FreezeDefault     *bool
	FreezeKey         []byte
	InitialSupply     *int64
	KycKey            []byte
	MaxSupply         *int64
	Name              *string
	PauseKey          []byte
	SupplyKey         []byte
	SupplyType        *string
	Symbol            *string
	TimestampRange    pgtype.Int8range `gorm:"type:int8range"`
	TokenId           EntityId         `gorm:"primaryKey"`
	TotalSupply       *int64
	TreasuryAccountId *EntityId
	Type              *string
	WipeKey           []byte
}

// TableName returns token table name
func (Token) TableName() string {
	return tableNameToken
}

// DefaultFreezeStatus is the freeze status of a new relationship with the token
func (t *Token) DefaultFreezeStatus() TokenFreezeStatus {
	if len(t.FreezeKey) == 0 {
		return TokenFreezeStatusNotApplicable
	}

	if t.FreezeDefault != nil && *t.FreezeDefault {
		return TokenFreezeStatusFrozen
	}

	return TokenFreezeStatusUnfrozen
}

// DefaultKycStatus is the kyc status of a new relationship with the token
func (t *Token) DefaultKycStatus() TokenKycStatus {
	if len(t.KycKey) == 0 {
		return TokenKycStatusNotApplicable
	}

	return TokenKycStatusRevoked
}

// TokenAccount is the relationship between an account and a token. Balance is maintained by aggregated transfer
// deltas and is not versioned
type TokenAccount struct {
	AccountId            EntityId `gorm:"primaryKey"`
	Associated           *bool
	AutomaticAssociation *bool
	Balance              int64
	CreatedTimestamp     *int64
	FreezeStatus         *TokenFreezeStatus
	KycStatus            *TokenKycStatus
	TimestampRange       pgtype.Int8range `gorm:"type:int8range"`
	TokenId              EntityId         `gorm:"primaryKey"`
}

func (TokenAccount) TableName() string {
	return tableNameTokenAccount
}
