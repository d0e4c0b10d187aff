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

package addressbook

import (
	"os"
	"testing"

	adb "github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/db"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/test/db"
)

var (
	dbClient   interfaces.DbClient
	dbResource db.DbResource
)

type integrationTest struct{}

func (*integrationTest) SetupTest() {
	db.CleanupDb(dbResource.GetDb())
}

func TestMain(m *testing.M) {
	code := 0

	dbResource = db.SetupDb(true)
	dbClient = adb.NewDbClient(dbResource.GetGormDb(), 0)
	defer func() {
		db.TearDownDb(dbResource)
		os.Exit(code)
	}()

	code = m.Run()
}
