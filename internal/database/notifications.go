package database

import (
	"context"
	"fmt"
	"time"
)

const (
	InsertNotificationQuery = `
		INSERT INTO
			notifications (user_id, title, message, type)
		VALUES ($1, $2, $3, $4)
	`
	SelectNotificationsQuery = `
		SELECT
			id,
			title,
			message,
			type,
			is_read,
			created_at
		FROM
			notifications
		WHERE
			user_id = $1
		ORDER BY
			created_at DESC
		LIMIT 50
	`
	MarkNotificationReadQuery = `
		UPDATE
			notifications
		SET
			is_read = TRUE
		WHERE
			id = $1
			AND user_id = $2
	`
)

type NotificationDB struct {
	ID        int64
	Title     string
	Message   string
	Type      string
	IsRead    bool
	CreatedAt time.Time
}

// CreateNotification сохраняет уведомление для последующего опроса клиентом.
func (d *Database) CreateNotification(ctx context.Context, userID int64, title, message, kind string) error {
	if _, err := d.db.Exec(ctx, InsertNotificationQuery, userID, title, message, kind); err != nil {
		return fmt.Errorf("ошибка создания уведомления: %w", err)
	}
	return nil
}

// FindNotifications возвращает последние уведомления пользователя.
func (d *Database) FindNotifications(ctx context.Context, userID int64) ([]NotificationDB, error) {
	rows, err := d.db.Query(ctx, SelectNotificationsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска уведомлений: %w", err)
	}
	defer rows.Close()

	var result []NotificationDB
	for rows.Next() {
		var item NotificationDB
		if err := rows.Scan(&item.ID, &item.Title, &item.Message, &item.Type, &item.IsRead, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с уведомлением: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

// MarkNotificationRead помечает уведомление пользователя прочитанным.
func (d *Database) MarkNotificationRead(ctx context.Context, id, userID int64) error {
	if _, err := d.db.Exec(ctx, MarkNotificationReadQuery, id, userID); err != nil {
		return fmt.Errorf("ошибка обновления уведомления: %w", err)
	}
	return nil
}
