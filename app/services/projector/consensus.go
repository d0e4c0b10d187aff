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
	"github.com/hashgraph/hedera-mirror-node/hedera-mirror-importer/app/persistence/domain"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	log "github.com/sirupsen/logrus"
	"google.golang.org/protobuf/proto"
)

func (p *Projector) onConsensusCreateTopic(c *itemContext, body *services.ConsensusCreateTopicTransactionBody) error {
	topicId, err := p.resolver.ResolveTopic(c.tx, c.receipt().GetTopicID(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(topicId)
	if !c.successful() || topicId.IsZero() {
		return nil
	}

	entity := p.newEntity(c, topicId, p.entityTypes.Topic())
	entity.AutoRenewPeriod = durationSeconds(body.GetAutoRenewPeriod())
	entity.CreatedTimestamp = int64Ptr(c.timestamp)
	entity.Deleted = boolPtr(false)
	entity.Key = marshalKey(body.GetAdminKey())
	entity.Memo = stringPtr(body.GetMemo())
	entity.SubmitKey = marshalKey(body.GetSubmitKey())

	if entity.AutoRenewAccountId, err = p.resolveOptionalAccount(c, body.GetAutoRenewAccount()); err != nil {
		return err
	}

	c.result.AddEntity(entity)
	return nil
}

func (p *Projector) onConsensusUpdateTopic(c *itemContext, body *services.ConsensusUpdateTopicTransactionBody) error {
	topicId, err := p.resolver.ResolveTopic(c.tx, body.GetTopicID(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(topicId)
	if !c.successful() || topicId.IsZero() {
		return nil
	}

	entity := p.newEntity(c, topicId, p.entityTypes.Topic())
	entity.AutoRenewPeriod = durationSeconds(body.GetAutoRenewPeriod())
	entity.ExpirationTimestamp = timestampNanos(body.GetExpirationTime())
	entity.Key = marshalKey(body.GetAdminKey())
	entity.Memo = stringValue(body.GetMemo())
	entity.SubmitKey = marshalKey(body.GetSubmitKey())

	if entity.AutoRenewAccountId, err = p.resolveOptionalAccount(c, body.GetAutoRenewAccount()); err != nil {
		return err
	}

	c.result.AddEntity(entity)
	return nil
}

func (p *Projector) onConsensusDeleteTopic(c *itemContext, body *services.ConsensusDeleteTopicTransactionBody) error {
	topicId, err := p.resolver.ResolveTopic(c.tx, body.GetTopicID(), c.timestamp)
	if err != nil {
		return err
	}

	p.addDeleted(c, topicId, p.entityTypes.Topic(), true)
	return nil
}

// onConsensusSubmitMessage stores the message with the sequence number and running hash the receipt carries, the
// topic itself is left untouched
func (p *Projector) onConsensusSubmitMessage(
	c *itemContext,
	body *services.ConsensusSubmitMessageTransactionBody,
) error {
	topicId, err := p.resolver.ResolveTopic(c.tx, body.GetTopicID(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(topicId)
	if !c.successful() || topicId.IsZero() {
		return nil
	}

	receipt := c.receipt()
	message := body.GetMessage()
	if message == nil {
		message = []byte{}
	}

	topicMessage := &domain.TopicMessage{
		ConsensusTimestamp: c.timestamp,
		Message:            message,
		PayerAccountId:     c.payer,
		RealmNum:           topicId.RealmNum,
		RunningHash:        receipt.GetTopicRunningHash(),
		RunningHashVersion: int32(receipt.GetTopicRunningHashVersion()),
		SequenceNumber:     int64(receipt.GetTopicSequenceNumber()),
		TopicId:            topicId,
		TopicNum:           topicId.EntityNum,
	}

	if chunkInfo := body.GetChunkInfo(); chunkInfo != nil {
		chunkNum := chunkInfo.GetNumber()
		chunkTotal := chunkInfo.GetTotal()
		topicMessage.ChunkNum = &chunkNum
		topicMessage.ChunkTotal = &chunkTotal

		if initialTransactionId := chunkInfo.GetInitialTransactionID(); initialTransactionId != nil {
			topicMessage.ValidStartTimestamp = timestampNanos(initialTransactionId.GetTransactionValidStart())
			if topicMessage.InitialTransactionId, err = proto.Marshal(initialTransactionId); err != nil {
				log.Warnf("Failed to serialize initial transaction id of topic message at %d: %s", c.timestamp, err)
				topicMessage.InitialTransactionId = nil
			}
		}
	}

	c.result.TopicMessage = topicMessage
	return nil
}
