package chathub

import (
	"encoding/json"
	"log"

	"roomchat/backend/internal/models"
)

// StartPubSubListener subscribes to every room channel on the Redis bus and
// feeds decoded events into the hub's dispatch loop. Durable events and
// ephemeral signals travel the same way; only persistence differs upstream.
func (m *ManagerService) StartPubSubListener() {
	pubsub := m.Storage.SubscribeRoomEvents()

	go func() {
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var event models.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("Error unmarshalling bus event on %s: %v", msg.Channel, err)
				continue
			}
			m.PubSubCh <- event
		}
	}()
}
