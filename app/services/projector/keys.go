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

package projector

import (
	"encoding/hex"

	"github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	log "github.com/sirupsen/logrus"
)

// publicKeyHex returns the hex encoded raw ed25519 public key of a simple key, following single element key lists and
// threshold keys. Any other key shape has no public key
func publicKeyHex(key *services.Key, timestamp int64) *string {
	for key != nil {
		switch k := key.GetKey().(type) {
		case *services.Key_Ed25519:
			publicKey, err := hedera.PublicKeyFromBytesEd25519(k.Ed25519)
			if err != nil {
				log.Warnf("Unable to parse ed25519 key of transaction at %d: %s", timestamp, err)
				return nil
			}

			encoded := hex.EncodeToString(publicKey.BytesRaw())
			return &encoded
		case *services.Key_KeyList:
			key = singleKey(k.KeyList)
		case *services.Key_ThresholdKey:
			key = singleKey(k.ThresholdKey.GetKeys())
		default:
			return nil
		}
	}

	return nil
}

func singleKey(keys *services.KeyList) *services.Key {
	if len(keys.GetKeys()) != 1 {
		return nil
	}

	return keys.GetKeys()[0]
}
