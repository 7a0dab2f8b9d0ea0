package ws

import (
	"encoding/json"
	"log"
)

// Hub manages all active WebSocket clients and routes event-feed messages.
type Hub struct {
	// clients maps snowflake → client.
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMsg

	// countdown renders the current countdown string for clients that ask.
	countdown func() string
}

type broadcastMsg struct {
	data []byte
	// target limits delivery to one snowflake; empty means everyone.
	target string
}

func NewHub(countdown func() string) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *broadcastMsg, 256),
		countdown:  countdown,
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			// A reconnect replaces the previous client for the snowflake;
			// shut the old one down so its pumps exit.
			if old, ok := h.clients[client.snowflake]; ok {
				close(old.send)
				close(old.done)
			}
			h.clients[client.snowflake] = client
			log.Printf("ws hub: %s connected (%d total)", client.snowflake, len(h.clients))

		case client := <-h.unregister:
			// Only the currently registered client may tear down the map
			// entry; a replaced client's late unregister must not close the
			// channels of its successor.
			if current, ok := h.clients[client.snowflake]; ok && current == client {
				delete(h.clients, client.snowflake)
				close(client.send)
				close(client.done)
				log.Printf("ws hub: %s disconnected (%d total)", client.snowflake, len(h.clients))
			}

		case msg := <-h.broadcast:
			for _, client := range h.clients {
				if msg.target != "" && client.snowflake != msg.target {
					continue
				}
				select {
				case client.send <- msg.data:
				default:
					// Client buffer full - disconnect
					delete(h.clients, client.snowflake)
					close(client.send)
					close(client.done)
				}
			}
		}
	}
}

// BroadcastAll sends an event to every connected client.
func (h *Hub) BroadcastAll(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws hub: marshal error: %v", err)
		return
	}
	h.broadcast <- &broadcastMsg{data: data}
}

// SendToUser sends an event to one connected snowflake, if present.
func (h *Hub) SendToUser(snowflake string, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.broadcast <- &broadcastMsg{data: data, target: snowflake}
}
