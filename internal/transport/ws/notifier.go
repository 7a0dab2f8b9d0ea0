package ws

import (
	"log"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) EventStarted(startedBy string) {
	evt, err := NewEvent(EventTypeEventStarted, EventStartedPayload{StartedBy: startedBy})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastAll(evt)
}

func (n *HubNotifier) PartnerAssigned(snowflake string) {
	evt, err := NewEvent(EventTypePartnerAssigned, PartnerAssignedPayload{Snowflake: snowflake})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.SendToUser(snowflake, evt)
}
