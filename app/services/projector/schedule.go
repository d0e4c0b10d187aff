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
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

func (p *Projector) onScheduleCreate(c *itemContext, body *services.ScheduleCreateTransactionBody) error {
	scheduleId, err := p.resolver.ResolveSchedule(c.tx, c.receipt().GetScheduleID(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(scheduleId)
	if !c.successful() || scheduleId.IsZero() {
		return nil
	}

	entity := p.newEntity(c, scheduleId, p.entityTypes.Schedule())
	entity.CreatedTimestamp = int64Ptr(c.timestamp)
	entity.Deleted = boolPtr(false)
	entity.ExpirationTimestamp = timestampNanos(body.GetExpirationTime())
	entity.Key = marshalKey(body.GetAdminKey())
	entity.Memo = stringPtr(body.GetMemo())
	c.result.AddEntity(entity)
	return nil
}

func (p *Projector) onScheduleDelete(c *itemContext, body *services.ScheduleDeleteTransactionBody) error {
	scheduleId, err := p.resolver.ResolveSchedule(c.tx, body.GetScheduleID(), c.timestamp)
	if err != nil {
		return err
	}

	p.addDeleted(c, scheduleId, p.entityTypes.Schedule(), true)
	return nil
}

func (p *Projector) onScheduleSign(c *itemContext, body *services.ScheduleSignTransactionBody) error {
	scheduleId, err := p.resolver.ResolveSchedule(c.tx, body.GetScheduleID(), c.timestamp)
	if err != nil {
		return err
	}

	c.setEntityId(scheduleId)
	return nil
}
