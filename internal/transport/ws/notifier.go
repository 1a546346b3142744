package ws

import (
	"github.com/sirupsen/logrus"

	"github.com/dmarkovic/chirp/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyFollow(notification *domain.Notification) {
	evt, err := NewEvent(EventTypeNotificationNew, NotificationPayload{Notification: *notification})
	if err != nil {
		logrus.Errorf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToUser(notification.To, evt)
}
