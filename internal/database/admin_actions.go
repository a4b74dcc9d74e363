package database

import (
	"context"
	"fmt"
)

const (
	InsertAdminActionQuery = `
		INSERT INTO
			admin_actions (admin_id, action_type, target_type, target_id, details)
		VALUES ($1, $2, $3, $4, $5)
	`
)

// RecordAdminAction пишет запись аудита административного действия.
func (d *Database) RecordAdminAction(ctx context.Context, adminID int64, actionType, targetType string, targetID int64, details string) error {
	if _, err := d.db.Exec(ctx, InsertAdminActionQuery, adminID, actionType, targetType, targetID, details); err != nil {
		return fmt.Errorf("ошибка записи действия администратора: %w", err)
	}
	return nil
}
