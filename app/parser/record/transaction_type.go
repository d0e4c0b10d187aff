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

package record

import (
	"math"
	"strings"

	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/reflect/protoreflect"
)

const (
	// TransactionTypeUnknown is recorded when the body carries no recognizable data field
	TransactionTypeUnknown int16 = 0

	dataOneofName          = "data"
	unknownTransactionType = "UNKNOWN"
)

var (
	dataOneof        protoreflect.OneofDescriptor
	transactionTypes map[int16]string
)

// GetTransactionType returns the transaction type code of the body, the field number of the data oneof variant. A
// variant unknown to the compiled protobuf schema is recovered from the unknown fields, in which case known is false
func GetTransactionType(body *services.TransactionBody) (code int16, known bool) {
	message := body.ProtoReflect()
	if field := message.WhichOneof(dataOneof); field != nil {
		return int16(field.Number()), true
	}

	return unknownFieldNumber(message.GetUnknown()), false
}

// GetTransactionTypeName returns the upper case name of the transaction type code
func GetTransactionTypeName(code int16) string {
	if name, ok := transactionTypes[code]; ok {
		return name
	}
	return unknownTransactionType
}

// GetTransactionTypes returns the known transaction types keyed by type code
func GetTransactionTypes() map[int16]string {
	return transactionTypes
}

// unknownFieldNumber returns the number of the first well-formed unknown field that fits a type code, 0 if there is
// none
func unknownFieldNumber(raw protoreflect.RawFields) int16 {
	for len(raw) > 0 {
		number, _, length := protowire.ConsumeField(raw)
		if length < 0 {
			break
		}

		if number > 0 && number <= math.MaxInt16 {
			return int16(number)
		}
		raw = raw[length:]
	}

	return TransactionTypeUnknown
}

func init() {
	body := services.TransactionBody{}
	dataOneof = body.ProtoReflect().Descriptor().Oneofs().ByName(dataOneofName)

	transactionTypes = make(map[int16]string)
	transactionTypes[TransactionTypeUnknown] = unknownTransactionType
	dataFields := dataOneof.Fields()
	for i := 0; i < dataFields.Len(); i++ {
		dataField := dataFields.Get(i)
		name := strings.ToUpper(string(dataField.Name()))
		transactionTypes[int16(dataField.Number())] = strings.ReplaceAll(name, "_", "")
	}
}
