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

package persistence

import (
	"testing"

	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	tdomain "github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/test/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// run the suite
func TestEntityTypeRepositorySuite(t *testing.T) {
	suite.Run(t, new(entityTypeRepositorySuite))
}

type entityTypeRepositorySuite struct {
	integrationTest
	suite.Suite
}

func (suite *entityTypeRepositorySuite) TestFindAll() {
	rows, err := NewEntityTypeRepository(dbClient).FindAll(defaultContext)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), rows, 6)

	entityTypes, err := domain.NewEntityTypes(rows)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), tdomain.AccountType, entityTypes.Account())
	assert.Equal(suite.T(), tdomain.ContractType, entityTypes.Contract())
	assert.Equal(suite.T(), tdomain.FileType, entityTypes.File())
	assert.Equal(suite.T(), tdomain.ScheduleType, entityTypes.Schedule())
	assert.Equal(suite.T(), tdomain.TokenType, entityTypes.Token())
	assert.Equal(suite.T(), tdomain.TopicType, entityTypes.Topic())
	assert.Equal(suite.T(), domain.EntityTypeTopic, entityTypes.Name(tdomain.TopicType))
}

func (suite *entityTypeRepositorySuite) TestFindAllDbConnectionError() {
	rows, err := NewEntityTypeRepository(invalidDbClient).FindAll(defaultContext)

	assert.Equal(suite.T(), errors.ErrDatabaseError, err)
	assert.Nil(suite.T(), rows)
}
