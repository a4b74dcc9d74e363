package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Renal37/campus-eats/internal/database"
	"github.com/Renal37/campus-eats/internal/logger"
	"github.com/Renal37/campus-eats/internal/models"
	"github.com/Renal37/campus-eats/internal/utils"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// natsSubjectPrefix — префикс темы, в которую зеркалируются уведомления.
const natsSubjectPrefix = "campus-eats.notifications"

// NotificationService сохраняет уведомления для опроса клиентом и, если
// настроено подключение к NATS, зеркалирует их в шину. Ошибки публикации
// не прерывают основную операцию.
type NotificationService struct {
	storage notificationStorage
	nc      *nats.Conn
}

// notificationStorage определяет интерфейс для взаимодействия с хранилищем уведомлений
type notificationStorage interface {
	CreateNotification(ctx context.Context, userID int64, title, message, kind string) error
	FindNotifications(ctx context.Context, userID int64) ([]database.NotificationDB, error)
	MarkNotificationRead(ctx context.Context, id, userID int64) error
}

// NewNotificationService создает новый экземпляр NotificationService.
// Подключение к NATS может быть nil, тогда уведомления только сохраняются в базе.
func NewNotificationService(storage notificationStorage, nc *nats.Conn) *NotificationService {
	return &NotificationService{storage: storage, nc: nc}
}

// Notify сохраняет уведомление пользователя и публикует его в шину
func (n *NotificationService) Notify(ctx context.Context, userID int64, title, message, kind string) error {
	if err := n.storage.CreateNotification(ctx, userID, title, message, kind); err != nil {
		return fmt.Errorf("ошибка при сохранении уведомления: %w", err)
	}

	n.publish(userID, title, message, kind)

	return nil
}

// List возвращает последние уведомления пользователя
func (n *NotificationService) List(ctx context.Context, userID int64) ([]models.Notification, error) {
	found, err := n.storage.FindNotifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении уведомлений: %w", err)
	}

	notifications := make([]models.Notification, 0, len(found))
	for _, db := range found {
		notifications = append(notifications, models.Notification{
			ID:        db.ID,
			Title:     db.Title,
			Message:   db.Message,
			Type:      db.Type,
			IsRead:    db.IsRead,
			CreatedAt: utils.RFC3339Date{Time: db.CreatedAt},
		})
	}

	return notifications, nil
}

// MarkRead помечает уведомление пользователя прочитанным
func (n *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	if err := n.storage.MarkNotificationRead(ctx, id, userID); err != nil {
		return fmt.Errorf("ошибка при обновлении уведомления: %w", err)
	}
	return nil
}

// publish зеркалирует уведомление в NATS. Публикация выполняется по мере
// возможности: недоступность шины лишь логируется.
func (n *NotificationService) publish(userID int64, title, message, kind string) {
	if n.nc == nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"user_id": userID,
		"title":   title,
		"message": message,
		"type":    kind,
	})
	if err != nil {
		logger.Log.Warn("failed to encode notification", zap.Error(err))
		return
	}

	subject := fmt.Sprintf("%s.%s", natsSubjectPrefix, kind)
	if err := n.nc.Publish(subject, payload); err != nil {
		logger.Log.Warn("failed to publish notification",
			zap.String("subject", subject), zap.Error(err))
	}
}
