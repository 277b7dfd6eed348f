package storage

import (
	"encoding/json"

	"roomchat/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// Room channel naming: one durable events channel and one ephemeral signals
// channel per room. The hub pattern-subscribes to both.
const roomChannelPattern = "chat:room:*"

// RoomEventsChannel is the durable channel for ledger-derived events.
func RoomEventsChannel(roomID string) string {
	return "chat:room:" + roomID + ":events"
}

// RoomSignalsChannel is the ephemeral channel for typing/presence signals.
func RoomSignalsChannel(roomID string) string {
	return "chat:room:" + roomID + ":signals"
}

// PublishEvent serializes the event and publishes it to the given channel.
// Delivery is best effort: with no subscriber connected the event is simply
// lost, which is the accepted behavior for ephemeral signals.
func (s *Service) PublishEvent(channel string, event models.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, channel, payload).Err()
}

// SubscribeRoomEvents pattern-subscribes to every room channel, durable and
// ephemeral alike.
func (s *Service) SubscribeRoomEvents() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, roomChannelPattern)
}
