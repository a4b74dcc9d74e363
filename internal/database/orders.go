package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/Renal37/campus-eats/internal/models"
	"github.com/jackc/pgx/v5"
)

var (
	ErrOrderNotFound = errors.New("заказ не найден")
)

// SQL-запросы для работы с заказами
const (
	InsertOrderQuery = `
		INSERT INTO
			orders (number, user_id, restaurant_id, time_slot, total_amount,
			        delivery_fee, discount_amount, final_amount, delivery_address,
			        payment_method, customer_credit_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	InsertOrderItemQuery = `
		INSERT INTO
			order_items (order_id, menu_item_id, name, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
	`
	SelectOrderQuery = `
		SELECT
			id,
			number,
			user_id,
			restaurant_id,
			status,
			time_slot,
			total_amount,
			delivery_fee,
			discount_amount,
			final_amount,
			delivery_address,
			payment_method,
			customer_credit_score,
			COALESCE(cancelled_by, ''),
			COALESCE(cancellation_reason, ''),
			created_at
		FROM
			orders
		WHERE
			number = $1
	`
	SelectOrderItemsQuery = `
		SELECT
			menu_item_id,
			name,
			quantity,
			price
		FROM
			order_items
		WHERE
			order_id = $1
		ORDER BY
			id
	`
	SelectOrdersByUserQuery = `
		SELECT
			o.id,
			o.number,
			o.user_id,
			o.restaurant_id,
			o.status,
			o.time_slot,
			o.total_amount,
			o.delivery_fee,
			o.discount_amount,
			o.final_amount,
			o.delivery_address,
			o.payment_method,
			o.customer_credit_score,
			COALESCE(o.cancelled_by, ''),
			COALESCE(o.cancellation_reason, ''),
			o.created_at
		FROM
			orders o
		WHERE
			o.user_id = $1
	`
	SelectOrdersByRestaurantQuery = `
		SELECT
			o.id,
			o.number,
			o.user_id,
			o.restaurant_id,
			o.status,
			o.time_slot,
			o.total_amount,
			o.delivery_fee,
			o.discount_amount,
			o.final_amount,
			o.delivery_address,
			o.payment_method,
			o.customer_credit_score,
			COALESCE(o.cancelled_by, ''),
			COALESCE(o.cancellation_reason, ''),
			o.created_at
		FROM
			orders o
		WHERE
			o.restaurant_id = $1
	`
	// Перевод статуса выполняется по принципу compare-and-swap: строка
	// обновляется только если статус все еще равен ожидаемому. Ноль
	// затронутых строк означает, что параллельный запрос успел раньше.
	TransitionOrderStatusQuery = `
		UPDATE
			orders
		SET
			status = $3,
			updated_at = now()
		WHERE
			number = $1
			AND status = $2
	`
	CancelOrderQuery = `
		UPDATE
			orders
		SET
			status = $3,
			cancelled_by = $4,
			cancellation_reason = $5,
			updated_at = now()
		WHERE
			number = $1
			AND status = $2
	`
	SelectOrdersPendingFeedbackQuery = `
		SELECT
			o.id,
			o.number,
			o.user_id,
			o.restaurant_id,
			o.status,
			o.time_slot,
			o.total_amount,
			o.delivery_fee,
			o.discount_amount,
			o.final_amount,
			o.delivery_address,
			o.payment_method,
			o.customer_credit_score,
			COALESCE(o.cancelled_by, ''),
			COALESCE(o.cancellation_reason, ''),
			o.created_at,
			u.name
		FROM
			orders o
			JOIN users u ON o.user_id = u.id
			LEFT JOIN customer_feedback cf ON o.id = cf.order_id
		WHERE
			o.restaurant_id = $1
			AND o.status = 'DELIVERED'
			AND cf.id IS NULL
		ORDER BY
			o.created_at DESC
		LIMIT 10
	`
)

// OrderDB хранит строку заказа вместе с внутренним идентификатором.
type OrderDB struct {
	DBID         int64
	Number       string
	UserID       int64
	Restaurant   int64
	Status       OrderStatusDB
	TimeSlot     string
	Total        float64
	Fee          float64
	Discount     float64
	Final        float64
	Address      string
	Payment      string
	Score        int
	CancelledBy  string
	CancelReason string
	CustomerName string
	Items        []models.OrderItem
	CreatedAt    time.Time
}

// OrderStatusDB оборачивает статус заказа для чтения и записи в базу данных.
type OrderStatusDB struct {
	models.OrderStatus
}

func (s *OrderStatusDB) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		return fmt.Errorf("статус заказа должен быть строкой, а не %T", value)
	}

	*s = OrderStatusDB{models.OrderStatus(strVal)}
	return nil
}

func (s OrderStatusDB) Value() (driver.Value, error) {
	return string(s.OrderStatus), nil
}

// CreateOrder атомарно создает заказ вместе с позициями.
// Либо сохраняется заказ целиком, либо ничего.
func (d *Database) CreateOrder(ctx context.Context, order OrderDB) error {
	tx, err := d.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var orderID int64
	err = tx.QueryRow(ctx, InsertOrderQuery,
		order.Number,
		order.UserID,
		order.Restaurant,
		order.TimeSlot,
		order.Total,
		order.Fee,
		order.Discount,
		order.Final,
		order.Address,
		order.Payment,
		order.Score,
	).Scan(&orderID)
	if err != nil {
		return fmt.Errorf("ошибка создания заказа: %w", err)
	}

	for _, item := range order.Items {
		if _, err := tx.Exec(ctx, InsertOrderItemQuery,
			orderID, item.MenuItemID, item.Name, item.Quantity, item.Price); err != nil {
			return fmt.Errorf("ошибка сохранения позиции заказа: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

// FindOrder находит заказ по номеру вместе с позициями.
// Если заказ не найден, возвращает nil без ошибки.
func (d *Database) FindOrder(ctx context.Context, number string) (*OrderDB, error) {
	order := &OrderDB{}

	err := d.db.QueryRow(ctx, SelectOrderQuery, number).Scan(
		&order.DBID,
		&order.Number,
		&order.UserID,
		&order.Restaurant,
		&order.Status,
		&order.TimeSlot,
		&order.Total,
		&order.Fee,
		&order.Discount,
		&order.Final,
		&order.Address,
		&order.Payment,
		&order.Score,
		&order.CancelledBy,
		&order.CancelReason,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка поиска заказа: %w", err)
	}

	items, err := d.findOrderItems(ctx, order.DBID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (d *Database) findOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := d.db.Query(ctx, SelectOrderItemsQuery, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска позиций заказа: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с позицией заказа: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return items, nil
}

// FindOrdersByUser возвращает заказы студента без позиций.
func (d *Database) FindOrdersByUser(ctx context.Context, userID int64) ([]OrderDB, error) {
	return d.findOrders(ctx, SelectOrdersByUserQuery, userID)
}

// FindOrdersByRestaurant возвращает заказы точки питания без позиций.
func (d *Database) FindOrdersByRestaurant(ctx context.Context, restaurantID int64) ([]OrderDB, error) {
	return d.findOrders(ctx, SelectOrdersByRestaurantQuery, restaurantID)
}

// FindOrdersPendingFeedback возвращает выданные заказы точки, по которым
// владелец еще не оставил оценку студента.
func (d *Database) FindOrdersPendingFeedback(ctx context.Context, restaurantID int64) ([]OrderDB, error) {
	rows, err := d.db.Query(ctx, SelectOrdersPendingFeedbackQuery, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска заказов без оценки: %w", err)
	}
	defer rows.Close()

	var result []OrderDB
	for rows.Next() {
		var item OrderDB
		if err := rows.Scan(
			&item.DBID,
			&item.Number,
			&item.UserID,
			&item.Restaurant,
			&item.Status,
			&item.TimeSlot,
			&item.Total,
			&item.Fee,
			&item.Discount,
			&item.Final,
			&item.Address,
			&item.Payment,
			&item.Score,
			&item.CancelledBy,
			&item.CancelReason,
			&item.CreatedAt,
			&item.CustomerName,
		); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с заказом: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

func (d *Database) findOrders(ctx context.Context, query string, arg interface{}) ([]OrderDB, error) {
	rows, err := d.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска заказов: %w", err)
	}
	defer rows.Close()

	var result []OrderDB
	for rows.Next() {
		var item OrderDB
		if err := rows.Scan(
			&item.DBID,
			&item.Number,
			&item.UserID,
			&item.Restaurant,
			&item.Status,
			&item.TimeSlot,
			&item.Total,
			&item.Fee,
			&item.Discount,
			&item.Final,
			&item.Address,
			&item.Payment,
			&item.Score,
			&item.CancelledBy,
			&item.CancelReason,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с заказом: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

// TransitionOrderStatus переводит заказ из ожидаемого статуса в новый.
// Возвращает false, если заказ уже не находится в ожидаемом статусе:
// выиграла параллельная мутация, вызывающая сторона решает, что делать.
func (d *Database) TransitionOrderStatus(ctx context.Context, number string, from, to OrderStatusDB) (bool, error) {
	tag, err := d.db.Exec(ctx, TransitionOrderStatusQuery, number, from, to)
	if err != nil {
		return false, fmt.Errorf("ошибка обновления статуса заказа: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// CancelOrder переводит заказ в CANCELLED с указанием инициатора и причины.
// Семантика compare-and-swap та же, что и у TransitionOrderStatus.
func (d *Database) CancelOrder(ctx context.Context, number string, from OrderStatusDB, cancelledBy, reason string) (bool, error) {
	tag, err := d.db.Exec(ctx, CancelOrderQuery,
		number, from, OrderStatusDB{models.StatusCancelled}, cancelledBy, reason)
	if err != nil {
		return false, fmt.Errorf("ошибка отмены заказа: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
