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

package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/config"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/parser"
	log "github.com/sirupsen/logrus"
)

// FileProcessor processes one stream file
type FileProcessor interface {
	Process(ctx context.Context, file *parser.StreamFile) (State, error)
}

// Poller feeds the stream files of a directory to a FileProcessor in name order, which is consensus order. A failed
// file is retried with exponential backoff and the poller stops once a file exhausts its attempts
type Poller struct {
	frequency time.Duration
	last      string
	path      string
	processor FileProcessor
	retry     config.Retry
	suffix    string
}

// NewPoller creates a Poller for the files with the suffix under path
func NewPoller(path, suffix string, frequency time.Duration, retry config.Retry, processor FileProcessor) *Poller {
	return &Poller{
		frequency: frequency,
		path:      path,
		processor: processor,
		retry:     retry,
		suffix:    suffix,
	}
}

// Run polls the directory every frequency until ctx is done. It returns the error of a file that could not be
// processed
func (p *Poller) Run(ctx context.Context) error {
	log.Infof("Polling %s for %s files every %s", p.path, p.suffix, p.frequency)
	ticker := time.NewTicker(p.frequency)
	defer ticker.Stop()

	for {
		if err := p.Poll(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			log.Infof("Stopped polling %s", p.path)
			return nil
		case <-ticker.C:
		}
	}
}

// Poll processes the files added since the last poll
func (p *Poller) Poll(ctx context.Context) error {
	names, err := p.pending()
	if err != nil {
		return err
	}

	for _, name := range names {
		if ctx.Err() != nil {
			return nil
		}

		if err = p.process(ctx, name); err != nil {
			return err
		}
		p.last = name
	}

	return nil
}

func (p *Poller) pending() ([]string, error) {
	entries, err := os.ReadDir(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Directory %s does not exist", p.path)
			return nil, nil
		}
		return nil, errors.Wrapf(err, "Failed to list %s", p.path)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, p.suffix) || name <= p.last {
			continue
		}
		names = append(names, name)
	}

	return names, nil
}

func (p *Poller) process(ctx context.Context, name string) error {
	file, err := parser.ReadStreamFile(filepath.Join(p.path, name))
	if err != nil {
		return err
	}

	attempts := 0
	operation := func() error {
		attempts++
		_, err := p.processor.Process(ctx, file)
		if err != nil && !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		log.Warnf("Attempt %d to process %s failed, retrying in %s: %s", attempts, name, next, err)
	}

	if err = backoff.RetryNotify(operation, p.newBackOff(ctx), notify); err != nil {
		log.Errorf("Giving up on %s after %d attempts: %s", name, attempts, err)
		return err
	}

	return nil
}

func (p *Poller) newBackOff(ctx context.Context) backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = p.retry.MinBackoff
	policy.MaxElapsedTime = 0
	policy.MaxInterval = p.retry.MaxBackoff

	retries := 0
	if p.retry.MaxAttempts > 1 {
		retries = p.retry.MaxAttempts - 1
	}

	return backoff.WithContext(backoff.WithMaxRetries(policy, uint64(retries)), ctx)
}

// isRetryable reports whether processing the file again may succeed
func isRetryable(err error) bool {
	return !errors.IsParseError(err) &&
		!errors.Is(err, errors.ErrHashMismatch) &&
		!errors.Is(err, errors.ErrEntityTypeMismatch)
}
