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

import (
	"encoding/hex"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"google.golang.org/protobuf/proto"
)

func GenEd25519KeyPair() (hedera.PrivateKey, hedera.PublicKey) {
	sk, err := hedera.PrivateKeyGenerateEd25519()
	if err != nil {
		panic(err)
	}
	return sk, sk.PublicKey()
}

// GenEd25519Key returns a new ed25519 protobuf key and the hex encoded raw public key
func GenEd25519Key() (*services.Key, string) {
	_, publicKey := GenEd25519KeyPair()
	rawKey := publicKey.BytesRaw()
	return &services.Key{Key: &services.Key_Ed25519{Ed25519: rawKey}}, hex.EncodeToString(rawKey)
}

func MustMarshal(message proto.Message) []byte {
	data, err := proto.Marshal(message)
	if err != nil {
		panic(err)
	}
	return data
}

// EntityTypes returns the entity type codes seeded by the schema migration
func EntityTypes() domain.EntityTypes {
	entityTypes, err := domain.NewEntityTypes([]domain.EntityType{
		{Id: AccountType, Name: domain.EntityTypeAccount},
		{Id: ContractType, Name: domain.EntityTypeContract},
		{Id: FileType, Name: domain.EntityTypeFile},
		{Id: TopicType, Name: domain.EntityTypeTopic},
		{Id: TokenType, Name: domain.EntityTypeToken},
		{Id: ScheduleType, Name: domain.EntityTypeSchedule},
	})
	if err != nil {
		panic(err)
	}
	return entityTypes
}
