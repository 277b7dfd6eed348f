// Package chathub is the broadcast fabric: it tracks live connections and
// their room subscriptions, and fans events arriving over Redis pub/sub out
// to every subscriber of the event's room.
package chathub

import (
	"log"

	"roomchat/backend/internal/models"
	"roomchat/backend/internal/storage"
)

// Ledger is the slice of the message ledger the fabric needs: persisting an
// inbound WebSocket message takes the same path as a REST send.
type Ledger interface {
	Create(senderID, roomID, content, kind string) (*models.Message, error)
}

// ManagerService is the hub. Its Run loop is the only goroutine touching
// the connection and subscription maps; everything reaches it over
// channels. Database and Redis work stays on the connection goroutines.
type ManagerService struct {
	// Clients holds every live connection by connection id.
	Clients map[string]Client
	// Rooms maps roomID to the connections currently joined to it.
	Rooms map[string]map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	JoinCh       chan Subscription
	LeaveCh      chan Subscription
	PubSubCh     chan models.Event

	Storage storage.Storage
	Ledger  Ledger
}

// NewManagerService creates the hub.
func NewManagerService(s storage.Storage, ledger Ledger) *ManagerService {
	return &ManagerService{
		Clients:      make(map[string]Client),
		Rooms:        make(map[string]map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		JoinCh:       make(chan Subscription),
		LeaveCh:      make(chan Subscription),
		PubSubCh:     make(chan models.Event, 64),
		Storage:      s,
		Ledger:       ledger,
	}
}

// Run is the hub's main dispatch loop. The Redis listener is started
// separately via StartPubSubListener.
func (m *ManagerService) Run() {
	for {
		select {
		case client := <-m.RegisterCh:
			m.Clients[client.GetConnID()] = client
			log.Printf("Client connected: conn=%s user=%s", client.GetConnID(), client.GetUserID())

		case client := <-m.UnregisterCh:
			m.removeClient(client)

		case sub := <-m.JoinCh:
			room, ok := m.Rooms[sub.RoomID]
			if !ok {
				room = make(map[string]Client)
				m.Rooms[sub.RoomID] = room
			}
			room[sub.Client.GetConnID()] = sub.Client

		case sub := <-m.LeaveCh:
			if room, ok := m.Rooms[sub.RoomID]; ok {
				delete(room, sub.Client.GetConnID())
				if len(room) == 0 {
					delete(m.Rooms, sub.RoomID)
				}
			}

		case event := <-m.PubSubCh:
			m.fanOut(event)
		}
	}
}

// fanOut delivers an event to every connection joined to its room. A client
// whose send buffer is full is evicted rather than allowed to stall the
// loop; its connection will re-register and recover by re-listing the room.
func (m *ManagerService) fanOut(event models.Event) {
	room, ok := m.Rooms[event.RoomID]
	if !ok {
		return
	}

	for _, client := range room {
		select {
		case client.GetSendChannel() <- event:
		default:
			log.Printf("Client %s too slow, evicting", client.GetConnID())
			m.removeClient(client)
		}
	}
}

// removeClient drops the connection from every room and closes it.
func (m *ManagerService) removeClient(client Client) {
	connID := client.GetConnID()
	if _, ok := m.Clients[connID]; !ok {
		return
	}
	delete(m.Clients, connID)

	for roomID, room := range m.Rooms {
		delete(room, connID)
		if len(room) == 0 {
			delete(m.Rooms, roomID)
		}
	}

	client.Close()
	log.Printf("Client disconnected: conn=%s user=%s", connID, client.GetUserID())
}
