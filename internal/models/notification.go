package models

import (
	"github.com/Renal37/campus-eats/internal/utils"
)

// Типы уведомлений, отображаемых клиентом при опросе.
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationSuccess = "success"
)

type Notification struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Type      string            `json:"type"`
	IsRead    bool              `json:"is_read"`
	CreatedAt utils.RFC3339Date `json:"created_at"`
}
