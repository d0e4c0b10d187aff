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

package entity

import (
	"bytes"
	"encoding/binary"
	"sync"

	cache "github.com/Code-Hex/go-generics-cache"
	"github.com/Code-Hex/go-generics-cache/policy/lru"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/interfaces"
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const evmAddressLength = 20

var longZeroPrefix = make([]byte, 12)

// staged holds the mappings learned inside the database transaction of the file being processed
type staged struct {
	aliases map[string]domain.EntityId
	types   map[int64]int16
}

func newStaged() staged {
	return staged{aliases: make(map[string]domain.EntityId), types: make(map[int64]int16)}
}

// Resolver maps natural keys, aliases and evm addresses to entity ids, creating the entity row on first reference.
// Mappings learned inside a database transaction stay private to it until Commit, so a rolled back file never leaves
// an id without a row in the shared cache
type Resolver struct {
	aliases     *cache.Cache[string, domain.EntityId]
	entityTypes domain.EntityTypes
	mutex       sync.Mutex
	pending     staged
	store       interfaces.EntityStore
	types       *cache.Cache[int64, int16]
}

// NewResolver creates a Resolver whose shared caches hold at most maxSize mappings each
func NewResolver(store interfaces.EntityStore, entityTypes domain.EntityTypes, maxSize int) *Resolver {
	return &Resolver{
		aliases:     cache.New(cache.AsLRU[string, domain.EntityId](lru.WithCapacity(maxSize))),
		entityTypes: entityTypes,
		pending:     newStaged(),
		store:       store,
		types:       cache.New(cache.AsLRU[int64, int16](lru.WithCapacity(maxSize))),
	}
}

// EntityTypes returns the entity type codes the resolver was created with
func (r *Resolver) EntityTypes() domain.EntityTypes {
	return r.entityTypes
}

// Resolve returns the id of shard.realm.num, inserting an empty entity of expectedType effective at timestamp if no
// row exists yet. The zero triple resolves to the zero id without touching the store. A stored entity of another
// type is an illegal state, except that a contract satisfies an expected account
func (r *Resolver) Resolve(
	tx *gorm.DB,
	shard, realm, num int64,
	expectedType int16,
	timestamp int64,
) (domain.EntityId, error) {
	if shard == 0 && realm == 0 && num == 0 {
		return domain.EntityId{}, nil
	}

	id, err := domain.NewEntityId(shard, realm, num)
	if err != nil {
		return domain.EntityId{}, errors.Wrap(errors.ErrInvalidEntityId, err.Error())
	}

	storedType, ok := r.lookupType(id.EncodedId)
	if !ok {
		if storedType, err = r.store.InsertIfAbsent(tx, domain.NewEntity(id, expectedType, timestamp)); err != nil {
			return domain.EntityId{}, err
		}
		r.stageType(id.EncodedId, storedType)
	}

	if !r.isCompatible(expectedType, storedType) {
		return domain.EntityId{}, errors.NewTypeMismatch(id.String(), expectedType, storedType)
	}

	return id, nil
}

// ResolveAccount resolves an account id given by number, alias or evm address. A nil id resolves to the zero id
func (r *Resolver) ResolveAccount(tx *gorm.DB, accountId *services.AccountID, timestamp int64) (
	domain.EntityId,
	error,
) {
	if accountId == nil {
		return domain.EntityId{}, nil
	}

	if alias := accountId.GetAlias(); len(alias) != 0 {
		if len(alias) == evmAddressLength {
			return r.resolveEvmAddress(
				tx,
				accountId.GetShardNum(),
				accountId.GetRealmNum(),
				alias,
				r.entityTypes.Account(),
				timestamp,
			)
		}
		return r.resolveAlias(tx, alias)
	}

	return r.Resolve(
		tx,
		accountId.GetShardNum(),
		accountId.GetRealmNum(),
		accountId.GetAccountNum(),
		r.entityTypes.Account(),
		timestamp,
	)
}

// ResolveContract resolves a contract id given by number or evm address. A nil id resolves to the zero id
func (r *Resolver) ResolveContract(tx *gorm.DB, contractId *services.ContractID, timestamp int64) (
	domain.EntityId,
	error,
) {
	if contractId == nil {
		return domain.EntityId{}, nil
	}

	if evmAddress := contractId.GetEvmAddress(); len(evmAddress) != 0 {
		return r.resolveEvmAddress(
			tx,
			contractId.GetShardNum(),
			contractId.GetRealmNum(),
			evmAddress,
			r.entityTypes.Contract(),
			timestamp,
		)
	}

	return r.Resolve(
		tx,
		contractId.GetShardNum(),
		contractId.GetRealmNum(),
		contractId.GetContractNum(),
		r.entityTypes.Contract(),
		timestamp,
	)
}

func (r *Resolver) ResolveFile(tx *gorm.DB, fileId *services.FileID, timestamp int64) (domain.EntityId, error) {
	if fileId == nil {
		return domain.EntityId{}, nil
	}
	return r.Resolve(tx, fileId.GetShardNum(), fileId.GetRealmNum(), fileId.GetFileNum(), r.entityTypes.File(), timestamp)
}

func (r *Resolver) ResolveSchedule(tx *gorm.DB, scheduleId *services.ScheduleID, timestamp int64) (
	domain.EntityId,
	error,
) {
	if scheduleId == nil {
		return domain.EntityId{}, nil
	}
	return r.Resolve(
		tx,
		scheduleId.GetShardNum(),
		scheduleId.GetRealmNum(),
		scheduleId.GetScheduleNum(),
		r.entityTypes.Schedule(),
		timestamp,
	)
}

func (r *Resolver) ResolveToken(tx *gorm.DB, tokenId *services.TokenID, timestamp int64) (domain.EntityId, error) {
	if tokenId == nil {
		return domain.EntityId{}, nil
	}
	return r.Resolve(
		tx,
		tokenId.GetShardNum(),
		tokenId.GetRealmNum(),
		tokenId.GetTokenNum(),
		r.entityTypes.Token(),
		timestamp,
	)
}

func (r *Resolver) ResolveTopic(tx *gorm.DB, topicId *services.TopicID, timestamp int64) (domain.EntityId, error) {
	if topicId == nil {
		return domain.EntityId{}, nil
	}
	return r.Resolve(
		tx,
		topicId.GetShardNum(),
		topicId.GetRealmNum(),
		topicId.GetTopicNum(),
		r.entityTypes.Topic(),
		timestamp,
	)
}

// RegisterAlias makes an alias or evm address assigned by a transaction of the current file resolvable before the
// entity mutation carrying it is flushed
func (r *Resolver) RegisterAlias(alias []byte, id domain.EntityId) {
	if len(alias) == 0 || id.IsZero() {
		return
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.pending.aliases[string(alias)] = id
}

// Commit promotes the mappings staged since the last Commit or Rollback into the shared cache. It must be called
// after the database transaction they were learned in committed
func (r *Resolver) Commit() {
	r.mutex.Lock()
	pending := r.pending
	r.pending = newStaged()
	r.mutex.Unlock()

	for id, entityType := range pending.types {
		r.types.Set(id, entityType)
	}
	for alias, id := range pending.aliases {
		r.aliases.Set(alias, id)
	}
}

// Rollback discards the mappings staged since the last Commit or Rollback
func (r *Resolver) Rollback() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if count := len(r.pending.types) + len(r.pending.aliases); count != 0 {
		log.Debugf("Discarding %d entity mappings of the rolled back transaction", count)
	}
	r.pending = newStaged()
}

func (r *Resolver) isCompatible(expectedType, storedType int16) bool {
	return expectedType == storedType ||
		(expectedType == r.entityTypes.Account() && storedType == r.entityTypes.Contract())
}

func (r *Resolver) lookupAlias(alias []byte) (domain.EntityId, bool) {
	r.mutex.Lock()
	id, ok := r.pending.aliases[string(alias)]
	r.mutex.Unlock()
	if ok {
		return id, true
	}

	return r.aliases.Get(string(alias))
}

func (r *Resolver) lookupType(id int64) (int16, bool) {
	r.mutex.Lock()
	entityType, ok := r.pending.types[id]
	r.mutex.Unlock()
	if ok {
		return entityType, true
	}

	return r.types.Get(id)
}

func (r *Resolver) resolveAlias(tx *gorm.DB, alias []byte) (domain.EntityId, error) {
	if id, ok := r.lookupAlias(alias); ok {
		return id, nil
	}

	id, err := r.store.FindIdByAlias(tx, alias)
	if err != nil {
		return domain.EntityId{}, err
	}

	if id.IsZero() {
		return domain.EntityId{}, errors.Wrapf(errors.ErrUnknownAlias, "alias %x", alias)
	}

	r.RegisterAlias(alias, id)
	return id, nil
}

// resolveEvmAddress decodes a long zero address to its entity number, any other address must belong to a known entity
func (r *Resolver) resolveEvmAddress(
	tx *gorm.DB,
	shard, realm int64,
	evmAddress []byte,
	expectedType int16,
	timestamp int64,
) (domain.EntityId, error) {
	if len(evmAddress) != evmAddressLength {
		return domain.EntityId{}, errors.Wrapf(errors.ErrInvalidEntityId, "invalid evm address %x", evmAddress)
	}

	if bytes.HasPrefix(evmAddress, longZeroPrefix) {
		num := int64(binary.BigEndian.Uint64(evmAddress[12:]))
		return r.Resolve(tx, shard, realm, num, expectedType, timestamp)
	}

	if id, ok := r.lookupAlias(evmAddress); ok {
		return id, nil
	}

	id, err := r.store.FindIdByEvmAddress(tx, evmAddress)
	if err != nil {
		return domain.EntityId{}, err
	}

	if id.IsZero() {
		return domain.EntityId{}, errors.Wrapf(errors.ErrUnknownAlias, "evm address %x", evmAddress)
	}

	r.RegisterAlias(evmAddress, id)
	return id, nil
}
