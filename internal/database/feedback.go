package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDuplicateFeedback = errors.New("оценка по этому заказу уже оставлена")
)

const (
	InsertFeedbackQuery = `
		INSERT INTO
			customer_feedback (restaurant_id, user_id, order_id, politeness, punctuality, authenticity, overall, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	SelectFeedbackHistoryQuery = `
		SELECT
			cf.id,
			o.number,
			u.name,
			cf.politeness,
			cf.punctuality,
			cf.authenticity,
			cf.overall,
			cf.comments,
			COALESCE(ch.change_amount, 0),
			cf.created_at
		FROM
			customer_feedback cf
			JOIN orders o ON cf.order_id = o.id
			JOIN users u ON cf.user_id = u.id
			LEFT JOIN credit_history ch
				ON ch.order_number = o.number AND ch.triggered_by = 'restaurant'
		WHERE
			cf.restaurant_id = $1
		ORDER BY
			cf.created_at DESC
		LIMIT 20
	`
	SelectFeedbackStatsQuery = `
		SELECT
			COALESCE(AVG(overall), 0),
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= now() - INTERVAL '30 days')
		FROM
			customer_feedback
		WHERE
			restaurant_id = $1
	`
	CountDeliveredOrdersQuery = `
		SELECT
			COUNT(*)
		FROM
			orders
		WHERE
			restaurant_id = $1
			AND status = 'DELIVERED'
	`
)

type FeedbackDB struct {
	ID           int64
	OrderNumber  string
	CustomerName string
	Politeness   int
	Punctuality  int
	Authenticity int
	Overall      float64
	Comments     string
	CreditChange int
	CreatedAt    time.Time
}

// CreateFeedback сохраняет оценку студента. По одному заказу допускается
// ровно одна оценка, повторная попытка возвращает ErrDuplicateFeedback.
func (d *Database) CreateFeedback(ctx context.Context, restaurantID, userID, orderID int64, politeness, punctuality, authenticity int, overall float64, comments string) error {
	_, err := d.db.Exec(ctx, InsertFeedbackQuery,
		restaurantID, userID, orderID, politeness, punctuality, authenticity, overall, comments)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateFeedback
		}
		return fmt.Errorf("ошибка сохранения оценки: %w", err)
	}

	return nil
}

// FindFeedbackHistory возвращает последние оценки точки питания вместе с
// изменением рейтинга, которое они вызвали.
func (d *Database) FindFeedbackHistory(ctx context.Context, restaurantID int64) ([]FeedbackDB, error) {
	rows, err := d.db.Query(ctx, SelectFeedbackHistoryQuery, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска истории оценок: %w", err)
	}
	defer rows.Close()

	var result []FeedbackDB
	for rows.Next() {
		var item FeedbackDB
		if err := rows.Scan(
			&item.ID,
			&item.OrderNumber,
			&item.CustomerName,
			&item.Politeness,
			&item.Punctuality,
			&item.Authenticity,
			&item.Overall,
			&item.Comments,
			&item.CreditChange,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с оценкой: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

// FeedbackStatsDB — агрегаты обратной связи точки питания.
type FeedbackStatsDB struct {
	AverageRating   float64
	TotalFeedback   int
	MonthlyFeedback int
	DeliveredOrders int
}

// FindFeedbackStats возвращает агрегаты обратной связи точки питания.
func (d *Database) FindFeedbackStats(ctx context.Context, restaurantID int64) (*FeedbackStatsDB, error) {
	stats := &FeedbackStatsDB{}

	err := d.db.QueryRow(ctx, SelectFeedbackStatsQuery, restaurantID).Scan(
		&stats.AverageRating,
		&stats.TotalFeedback,
		&stats.MonthlyFeedback,
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("ошибка получения статистики оценок: %w", err)
	}

	if err := d.db.QueryRow(ctx, CountDeliveredOrdersQuery, restaurantID).Scan(&stats.DeliveredOrders); err != nil {
		return nil, fmt.Errorf("ошибка подсчета выданных заказов: %w", err)
	}

	return stats, nil
}
