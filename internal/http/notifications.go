package router

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Renal37/campus-eats/internal/middlewares"
	"github.com/Renal37/campus-eats/internal/models"
	"github.com/go-chi/chi/v5"
)

func GetNotifications(w http.ResponseWriter, r *http.Request) {
	notificationService := middlewares.GetServiceFromContext[models.NotificationService](w, r, middlewares.NotificationServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	notifications, err := (*notificationService).List(r.Context(), user.ID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error occurred during getting notifications: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	if len(notifications) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	middlewares.EncodeJSONResponse(w, notifications)
}

func MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	notificationService := middlewares.GetServiceFromContext[models.NotificationService](w, r, middlewares.NotificationServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Notification id is invalid", http.StatusBadRequest)
		return
	}

	if err := (*notificationService).MarkRead(r.Context(), id, user.ID); err != nil {
		http.Error(w, fmt.Sprintf("Error occurred during marking notification: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
