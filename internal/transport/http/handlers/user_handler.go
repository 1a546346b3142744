package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dmarkovic/chirp/internal/metrics"
	"github.com/dmarkovic/chirp/internal/service"
	"github.com/dmarkovic/chirp/internal/transport/http/middleware"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	user, err := h.userService.GetProfile(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			logrus.Errorf("get profile: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFrom(r.Context())

	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	followed, err := h.userService.ToggleFollow(r.Context(), actor.ID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			writeError(w, http.StatusBadRequest, "CANNOT_FOLLOW_SELF", "You cannot follow/unfollow yourself")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			logrus.Errorf("toggle follow: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	if followed {
		metrics.FollowToggles.WithLabelValues("followed").Inc()
		writeJSON(w, http.StatusOK, map[string]string{"message": "Followed successfully"})
	} else {
		metrics.FollowToggles.WithLabelValues("unfollowed").Inc()
		writeJSON(w, http.StatusOK, map[string]string{"message": "Unfollowed successfully"})
	}
}

func (h *UserHandler) Suggested(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	suggested, err := h.userService.SuggestUsers(r.Context(), user.ID)
	if err != nil {
		logrus.Errorf("suggested users: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, suggested)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), user.ID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordPair):
			writeError(w, http.StatusBadRequest, "PASSWORD_PAIR", "Please provide both current password and new password")
		case errors.Is(err, service.ErrWrongPassword):
			writeError(w, http.StatusBadRequest, "WRONG_PASSWORD", "Current password is incorrect")
		case errors.Is(err, service.ErrPasswordShort):
			writeError(w, http.StatusBadRequest, "PASSWORD_TOO_SHORT", "Password must be at least 6 characters")
		case errors.Is(err, service.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "USERNAME_TAKEN", "Username is already taken")
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			logrus.Errorf("update profile: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
