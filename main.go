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

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/coinbase/rosetta-sdk-go/server"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/config"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/db"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/middleware"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/parser"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/writer"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/services/addressbook"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/services/entity"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/services/importer"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/services/projector"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func configLogger(level string) {
	var err error
	var logLevel log.Level

	if logLevel, err = log.ParseLevel(strings.ToLower(level)); err != nil {
		logLevel = log.InfoLevel
	}

	log.SetLevel(logLevel)
	log.SetFormatter(&log.TextFormatter{ // Use logfmt for easy parsing by Loki
		DisableColors: true,
		FullTimestamp: true,
	})
	log.SetOutput(os.Stdout)
}

// newPollers creates a poller per enabled stream type
func newPollers(
	ctx context.Context,
	importerConfig *config.Config,
	dbClient interfaces.DbClient,
	streamMetrics *middleware.StreamMetrics,
) ([]*importer.Poller, error) {
	var pollers []*importer.Poller
	recordParser := importerConfig.Parser.Record

	if recordParser.Enabled {
		rows, err := persistence.NewEntityTypeRepository(dbClient).FindAll(ctx)
		if err != nil {
			return nil, err
		}

		entityTypes, err := domain.NewEntityTypes(rows)
		if err != nil {
			return nil, err
		}

		addressBook, err := addressbook.NewService(importerConfig.Shard, importerConfig.Realm)
		if err != nil {
			return nil, err
		}

		cacheSize := importerConfig.Cache[config.EntityCacheKey].MaxSize
		resolver := entity.NewResolver(persistence.NewEntityStore(), entityTypes, cacheSize)
		batchWriter := writer.NewBatchWriter(recordParser.BatchSize, recordParser.Persist.CryptoTransferAmounts)
		batchWriter.OnFlush(streamMetrics.OnFlush)

		processor := importer.NewRecordFileProcessor(
			recordParser,
			dbClient,
			persistence.NewRecordFileRepository(dbClient),
			resolver,
			projector.NewProjector(resolver, recordParser.Persist, addressBook),
			batchWriter,
			streamMetrics,
		)
		pollers = append(pollers, importer.NewPoller(
			recordParser.Path,
			parser.RecordFileSuffix,
			recordParser.Frequency,
			recordParser.Retry,
			processor,
		))
	}

	balanceParser := importerConfig.Parser.Balance
	if balanceParser.Enabled {
		processor := importer.NewBalanceFileProcessor(
			dbClient,
			persistence.NewAccountBalanceFileRepository(dbClient),
		)
		pollers = append(pollers, importer.NewPoller(
			balanceParser.Path,
			parser.BalanceFileSuffix,
			balanceParser.Frequency,
			recordParser.Retry,
			processor,
		))
	}

	return pollers, nil
}

func newRouter(importerConfig *config.Config, streamMetrics *middleware.StreamMetrics) (http.Handler, error) {
	healthController, err := middleware.NewHealthController(importerConfig.Db, streamMetrics.Check)
	if err != nil {
		return nil, err
	}

	metricsController := middleware.NewMetricsController()
	router := server.NewRouter(healthController, metricsController)
	metricsMiddleware := middleware.MetricsMiddleware(router)
	return middleware.TracingMiddleware(metricsMiddleware), nil
}

func main() {
	configFile := pflag.String("config", "", "path to an external application.yml")
	pflag.Parse()
	config.SetConfigFile(*configFile)

	importerConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}

	configLogger(importerConfig.Log.Level)
	log.Infof("Starting importer for network %s", importerConfig.Network)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.ConnectToDb(ctx, importerConfig.Db)
	if err != nil {
		log.Fatal(err)
	}

	if err = db.Migrate(dbClient); err != nil {
		log.Fatalf("Failed to migrate database: %s", err)
	}

	streamMetrics := middleware.NewStreamMetrics()
	pollers, err := newPollers(ctx, importerConfig, dbClient, streamMetrics)
	if err != nil {
		log.Fatalf("Failed to create importer: %s", err)
	}

	router, err := newRouter(importerConfig, streamMetrics)
	if err != nil {
		log.Fatal(err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", importerConfig.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("Listening on port %d", importerConfig.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("Error http listen and serve: %v", err)
			stop()
		}
	}()

	var wg sync.WaitGroup
	for _, poller := range pollers {
		wg.Add(1)
		go func(poller *importer.Poller) {
			defer wg.Done()
			if err := poller.Run(ctx); err != nil {
				log.Errorf("Importer stopped: %v", err)
				stop()
			}
		}(poller)
	}

	<-ctx.Done()
	log.Info("Shutting down importer")
	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), importerConfig.ShutdownTimeout)
	defer cancel()

	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Failed to shutdown http server: %v", err)
	}

	log.Info("Importer stopped")
}
