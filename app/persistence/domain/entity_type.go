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

import "github.com/pkg/errors"

const (
	EntityTypeAccount  = "ACCOUNT"
	EntityTypeContract = "CONTRACT"
	EntityTypeFile     = "FILE"
	EntityTypeSchedule = "SCHEDULE"
	EntityTypeToken    = "TOKEN"
	EntityTypeTopic    = "TOPIC"

	entityTypeTableName = "entity_type"
)

var requiredEntityTypes = []string{
	EntityTypeAccount,
	EntityTypeContract,
	EntityTypeFile,
	EntityTypeSchedule,
	EntityTypeToken,
	EntityTypeTopic,
}

// EntityType is a row of the entity type reference table
type EntityType struct {
	Id   int16 `gorm:"primaryKey"`
	Name string
}

func (EntityType) TableName() string {
	return entityTypeTableName
}

// EntityTypes is the immutable set of entity type codes loaded from the reference table at startup
type EntityTypes struct {
	ids   map[string]int16
	names map[int16]string
}

// NewEntityTypes builds EntityTypes from the reference rows, every known type must be present
func NewEntityTypes(rows []EntityType) (EntityTypes, error) {
	ids := make(map[string]int16, len(rows))
	names := make(map[int16]string, len(rows))
	for _, row := range rows {
		ids[row.Name] = row.Id
		names[row.Id] = row.Name
	}

	for _, name := range requiredEntityTypes {
		if _, ok := ids[name]; !ok {
			return EntityTypes{}, errors.Errorf("Entity type %s is missing from the reference table", name)
		}
	}

	return EntityTypes{ids: ids, names: names}, nil
}

func (e EntityTypes) Account() int16 {
	return e.ids[EntityTypeAccount]
}

func (e EntityTypes) Contract() int16 {
	return e.ids[EntityTypeContract]
}

func (e EntityTypes) File() int16 {
	return e.ids[EntityTypeFile]
}

func (e EntityTypes) Schedule() int16 {
	return e.ids[EntityTypeSchedule]
}

func (e EntityTypes) Token() int16 {
	return e.ids[EntityTypeToken]
}

func (e EntityTypes) Topic() int16 {
	return e.ids[EntityTypeTopic]
}

// Name returns the name of the type code, empty if unknown
func (e EntityTypes) Name(id int16) string {
	return e.names[id]
}
