package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Renal37/campus-eats/internal/models"
	"github.com/jackc/pgx/v5"
)

// SQL-запросы для работы с кредитным рейтингом
const (
	// Блокировка строки пользователя сериализует конкурентные изменения
	// рейтинга одного студента: read-modify-write не может гоняться.
	SelectScoreForUpdateQuery = `
		SELECT
			credit_score
		FROM
			users
		WHERE
			id = $1
		FOR UPDATE
	`
	UpdateScoreQuery = `
		UPDATE
			users
		SET
			credit_score = $2,
			credit_status = $3,
			last_credit_update = now()
		WHERE
			id = $1
	`
	InsertCreditHistoryQuery = `
		INSERT INTO
			credit_history (user_id, old_score, new_score, change_amount, reason, triggered_by, order_number)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
	`
	SelectCreditHistoryQuery = `
		SELECT
			old_score,
			new_score,
			change_amount,
			reason,
			triggered_by,
			COALESCE(order_number, ''),
			created_at
		FROM
			credit_history
		WHERE
			user_id = $1
		ORDER BY
			created_at DESC
		LIMIT $2
	`
	SelectUserOrderStatsQuery = `
		SELECT
			u.credit_score,
			u.credit_status,
			COUNT(o.id),
			COUNT(o.id) FILTER (WHERE o.status = 'DELIVERED'),
			COUNT(o.id) FILTER (WHERE o.status = 'CANCELLED'),
			COALESCE(AVG(cf.overall), 0)
		FROM
			users u
			LEFT JOIN orders o ON u.id = o.user_id
			LEFT JOIN customer_feedback cf ON o.id = cf.order_id
		WHERE
			u.id = $1
		GROUP BY
			u.id
	`
)

// CreditChangeDB представляет одну запись истории изменений рейтинга.
type CreditChangeDB struct {
	OldScore     int
	NewScore     int
	ChangeAmount int
	Reason       string
	TriggeredBy  string
	OrderNumber  string
	CreatedAt    time.Time
}

// ApplyCreditEvent применяет событие к рейтингу студента в одной транзакции:
// строка пользователя блокируется, новый рейтинг вычисляется и ограничивается
// диапазоном [0, 100], уровень доверия пересчитывается, в историю добавляется
// ровно одна запись.
func (d *Database) ApplyCreditEvent(ctx context.Context, userID int64, event models.CreditEvent) (*CreditChangeDB, error) {
	tx, err := d.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var current int
	if err := tx.QueryRow(ctx, SelectScoreForUpdateQuery, userID).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка чтения рейтинга: %w", err)
	}

	next, err := models.NextScore(current, event)
	if err != nil {
		return nil, err
	}

	tier := models.TierForScore(next)
	if _, err := tx.Exec(ctx, UpdateScoreQuery, userID, next, string(tier)); err != nil {
		return nil, fmt.Errorf("ошибка обновления рейтинга: %w", err)
	}

	change := &CreditChangeDB{
		OldScore:     current,
		NewScore:     next,
		ChangeAmount: next - current,
		Reason:       event.Reason,
		TriggeredBy:  event.Actor,
		OrderNumber:  event.OrderNumber,
		CreatedAt:    time.Now(),
	}

	if _, err := tx.Exec(ctx, InsertCreditHistoryQuery,
		userID,
		change.OldScore,
		change.NewScore,
		change.ChangeAmount,
		change.Reason,
		change.TriggeredBy,
		change.OrderNumber,
	); err != nil {
		return nil, fmt.Errorf("ошибка записи истории рейтинга: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return change, nil
}

// FindCreditHistory возвращает последние записи истории рейтинга студента.
func (d *Database) FindCreditHistory(ctx context.Context, userID int64, limit int) ([]CreditChangeDB, error) {
	rows, err := d.db.Query(ctx, SelectCreditHistoryQuery, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска истории рейтинга: %w", err)
	}
	defer rows.Close()

	var result []CreditChangeDB
	for rows.Next() {
		var item CreditChangeDB
		if err := rows.Scan(
			&item.OldScore,
			&item.NewScore,
			&item.ChangeAmount,
			&item.Reason,
			&item.TriggeredBy,
			&item.OrderNumber,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки истории: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

// UserOrderStatsDB объединяет рейтинг и агрегаты по заказам студента.
type UserOrderStatsDB struct {
	CreditScore     int
	CreditStatus    string
	TotalOrders     int
	DeliveredOrders int
	CancelledOrders int
	AvgFeedback     float64
}

// FindUserOrderStats возвращает рейтинг и статистику заказов студента.
func (d *Database) FindUserOrderStats(ctx context.Context, userID int64) (*UserOrderStatsDB, error) {
	stats := &UserOrderStatsDB{}

	err := d.db.QueryRow(ctx, SelectUserOrderStatsQuery, userID).Scan(
		&stats.CreditScore,
		&stats.CreditStatus,
		&stats.TotalOrders,
		&stats.DeliveredOrders,
		&stats.CancelledOrders,
		&stats.AvgFeedback,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения статистики пользователя: %w", err)
	}

	return stats, nil
}
