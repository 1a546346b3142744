package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/dmarkovic/chirp/internal/service"
	"github.com/dmarkovic/chirp/internal/transport/http/middleware"
)

type NotificationHandler struct {
	notifService *service.NotificationService
}

func NewNotificationHandler(notifService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	notifications, err := h.notifService.List(r.Context(), user.ID)
	if err != nil {
		logrus.Errorf("list notifications: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}
