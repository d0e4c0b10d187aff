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
	"bytes"
	_ "embed"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

//go:embed application.yml
var defaultConfig string

const (
	configName           = "application"
	configTypeYaml       = "yml"
	envKeyDelimiter      = "_"
	importerConfigEnvKey = "HEDERA_MIRROR_IMPORTER_CONFIG"
	keyDelimiter         = "::"
)

type fullConfig struct {
	Hedera struct {
		Mirror struct {
			Importer Config
		}
	}
}

// LoadConfig loads configuration from yaml files and env variables
func LoadConfig() (*Config, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetConfigType(configTypeYaml)

	// read the default
	if err := v.ReadConfig(bytes.NewBuffer([]byte(defaultConfig))); err != nil {
		return nil, err
	}

	// load configuration file from current directory
	v.SetConfigName(configName)
	v.AddConfigPath(".")
	if err := mergeExternalConfigFile(v); err != nil {
		return nil, err
	}

	if envConfigFile, ok := lookupConfigFile(); ok {
		v.SetConfigFile(envConfigFile)
		if err := mergeExternalConfigFile(v); err != nil {
			return nil, err
		}
	}

	// enable parsing env variables after the configuration files are loaded so viper knows all configuration keys
	// and can override the config accordingly
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, envKeyDelimiter))

	var config fullConfig
	compositeDecodeHookFunc := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(&config, viper.DecodeHook(compositeDecodeHookFunc)); err != nil {
		return nil, err
	}

	importerConfig := &config.Hedera.Mirror.Importer
	importerConfig.Network = strings.ToLower(importerConfig.Network)
	if err := validator.New().Struct(importerConfig); err != nil {
		return nil, errors.Wrap(err, "Invalid configuration")
	}

	var password = importerConfig.Db.Password
	importerConfig.Db.Password = "" // Don't print password
	log.Infof("Using configuration: %+v", importerConfig)
	importerConfig.Db.Password = password

	return importerConfig, nil
}

// SetConfigFile points LoadConfig at an external configuration file, overriding the environment variable
func SetConfigFile(path string) {
	configFileOverride = path
}

var configFileOverride string

func lookupConfigFile() (string, bool) {
	if configFileOverride != "" {
		return configFileOverride, true
	}

	return os.LookupEnv(importerConfigEnvKey)
}

func mergeExternalConfigFile(v *viper.Viper) error {
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}

		log.Info("External configuration file not found")
		return nil
	}

	log.Infof("Loaded external config file: %s", v.ConfigFileUsed())
	return nil
}
