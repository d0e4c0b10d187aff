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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

const (
	invalidYaml          = "this is invalid"
	invalidYamlBatchSize = `
hedera:
  mirror:
    importer:
      parser:
        record:
          batchSize: 0`
	testConfigFilename = "application.yml"
	yml1               = `
hedera:
  mirror:
    importer:
      db:
        port: 5431
        username: foobar
      parser:
        record:
          batchSize: 250
          transactionTimeout: 30m`
	yml2 = `
hedera:
  mirror:
    importer:
      db:
        host: 192.168.120.51
        port: 12000
      network: TESTNET`
)

var expectedTransactionTimeout = 30 * time.Minute

func TestLoadDefaultConfig(t *testing.T) {
	config, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, getDefaultConfig(), config)
	assert.Equal(t, 100, config.Parser.Record.BatchSize)
	assert.Equal(t, 200000, config.Cache[EntityCacheKey].MaxSize)
}

func TestLoadDefaultConfigInvalidYamlString(t *testing.T) {
	original := defaultConfig
	defaultConfig = "foobar"

	config, err := LoadConfig()

	defaultConfig = original
	assert.Error(t, err)
	assert.Nil(t, config)
}

func TestLoadCustomConfig(t *testing.T) {
	tests := []struct {
		name     string
		fromCwd  bool
		fromFlag bool
	}{
		{name: "from current directory", fromCwd: true},
		{name: "from env var"},
		{name: "from flag", fromFlag: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir, filePath := createYamlConfigFile(yml1, t)
			defer os.RemoveAll(tempDir)

			if tt.fromCwd {
				chdir(t, tempDir)
			} else if tt.fromFlag {
				SetConfigFile(filePath)
				t.Cleanup(func() { SetConfigFile("") })
			} else {
				em := envManager{}
				em.SetEnv(importerConfigEnvKey, filePath)
				t.Cleanup(em.Cleanup)
			}

			config, err := LoadConfig()

			assert.NoError(t, err)
			assert.NotNil(t, config)
			assert.True(t, config.Parser.Record.Enabled)
			assert.Equal(t, uint16(5431), config.Db.Port)
			assert.Equal(t, "foobar", config.Db.Username)
			assert.Equal(t, 250, config.Parser.Record.BatchSize)
			assert.Equal(t, expectedTransactionTimeout, config.Parser.Record.TransactionTimeout)
		})
	}
}

func TestLoadCustomConfigFromCwdAndEnvVar(t *testing.T) {
	// given
	tempDir1, _ := createYamlConfigFile(yml1, t)
	defer os.RemoveAll(tempDir1)
	chdir(t, tempDir1)

	tempDir2, filePath2 := createYamlConfigFile(yml2, t)
	defer os.RemoveAll(tempDir2)

	em := envManager{}
	em.SetEnv(importerConfigEnvKey, filePath2)
	t.Cleanup(em.Cleanup)

	// when
	config, err := LoadConfig()

	// then
	expected := getDefaultConfig()
	expected.Db.Host = "192.168.120.51"
	expected.Db.Port = 12000
	expected.Db.Username = "foobar"
	expected.Network = "testnet"
	expected.Parser.Record.BatchSize = 250
	expected.Parser.Record.TransactionTimeout = expectedTransactionTimeout
	assert.NoError(t, err)
	assert.Equal(t, expected, config)
}

func TestLoadCustomConfigFromEnvVar(t *testing.T) {
	// given
	dbHost := "192.168.100.200"
	em := envManager{}
	em.SetEnv("HEDERA_MIRROR_IMPORTER_DB_HOST", dbHost)
	em.SetEnv("HEDERA_MIRROR_IMPORTER_PARSER_RECORD_PERSIST_NONFEETRANSFERS", "true")
	t.Cleanup(em.Cleanup)

	// when
	config, err := LoadConfig()

	// then
	expected := getDefaultConfig()
	expected.Db.Host = dbHost
	expected.Parser.Record.Persist.NonFeeTransfers = true
	assert.NoError(t, err)
	assert.Equal(t, expected, config)
}

func TestLoadCustomConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		fromCwd bool
	}{
		{name: "invalid yaml", content: invalidYaml},
		{name: "invalid yaml from cwd", content: invalidYaml, fromCwd: true},
		{name: "invalid batch size", content: invalidYamlBatchSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir, filePath := createYamlConfigFile(tt.content, t)
			defer os.RemoveAll(tempDir)

			if tt.fromCwd {
				chdir(t, tempDir)
			}

			em := envManager{}
			em.SetEnv(importerConfigEnvKey, filePath)
			t.Cleanup(em.Cleanup)

			config, err := LoadConfig()

			assert.Error(t, err)
			assert.Nil(t, config)
		})
	}
}

func TestLoadCustomConfigByEnvVarFileNotFound(t *testing.T) {
	// given
	em := envManager{}
	em.SetEnv(importerConfigEnvKey, "/foo/bar/not_found.yml")
	t.Cleanup(em.Cleanup)

	// when
	config, err := LoadConfig()

	// then
	assert.Error(t, err)
	assert.Nil(t, config)
}

func createYamlConfigFile(content string, t *testing.T) (string, string) {
	tempDir, err := os.MkdirTemp("", "importer")
	if err != nil {
		assert.Fail(t, "Unable to create temp dir", err)
	}

	customConfig := filepath.Join(tempDir, testConfigFilename)

	if err = os.WriteFile(customConfig, []byte(content), 0644); err != nil {
		assert.Fail(t, "Unable to create custom config", err)
	}

	return tempDir, customConfig
}

func chdir(t *testing.T, dir string) {
	cwd, _ := os.Getwd()
	os.Chdir(dir)
	t.Cleanup(func() { os.Chdir(cwd) })
}

type envManager struct {
	keys []string
}

func (e *envManager) SetEnv(key, value string) {
	os.Setenv(key, value)
	e.keys = append(e.keys, key)
}

func (e *envManager) Cleanup() {
	for _, key := range e.keys {
		os.Unsetenv(key)
	}
}

func getDefaultConfig() *Config {
	config := fullConfig{}
	yaml.Unmarshal([]byte(defaultConfig), &config)
	return &config.Hedera.Mirror.Importer
}
