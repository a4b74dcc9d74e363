package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Renal37/campus-eats/internal/models"
	"github.com/jackc/pgx/v5"
)

var (
	ErrMenuItemNotFound = errors.New("позиция меню не найдена")
)

const (
	InsertMenuItemQuery = `
		INSERT INTO
			menu_items (restaurant_id, name, description, price, category, is_available, prep_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	SelectAvailableMenuQuery = `
		SELECT
			id,
			restaurant_id,
			name,
			description,
			price,
			category,
			is_available,
			prep_time
		FROM
			menu_items
		WHERE
			restaurant_id = $1
			AND is_available = TRUE
		ORDER BY
			category,
			name
	`
	SelectMenuItemQuery = `
		SELECT
			id,
			restaurant_id,
			name,
			description,
			price,
			category,
			is_available,
			prep_time
		FROM
			menu_items
		WHERE
			id = $1
	`
	UpdateMenuItemQuery = `
		UPDATE
			menu_items
		SET
			name = COALESCE($3, name),
			description = COALESCE($4, description),
			price = COALESCE($5, price),
			category = COALESCE($6, category),
			is_available = COALESCE($7, is_available),
			prep_time = COALESCE($8, prep_time)
		WHERE
			id = $1
			AND restaurant_id = $2
	`
	ToggleMenuItemQuery = `
		UPDATE
			menu_items
		SET
			is_available = NOT is_available
		WHERE
			id = $1
			AND restaurant_id = $2
		RETURNING is_available
	`
)

type MenuItemDB struct {
	models.MenuItem
}

// CreateMenuItem добавляет позицию меню и возвращает её идентификатор.
func (d *Database) CreateMenuItem(ctx context.Context, item MenuItemDB) (int64, error) {
	var id int64

	err := d.db.QueryRow(ctx, InsertMenuItemQuery,
		item.RestaurantID,
		item.Name,
		item.Description,
		item.Price,
		item.Category,
		item.IsAvailable,
		item.PrepTime,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания позиции меню: %w", err)
	}

	return id, nil
}

// FindAvailableMenu возвращает доступные позиции меню точки питания,
// отсортированные по категории и названию.
func (d *Database) FindAvailableMenu(ctx context.Context, restaurantID int64) ([]MenuItemDB, error) {
	rows, err := d.db.Query(ctx, SelectAvailableMenuQuery, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска меню: %w", err)
	}
	defer rows.Close()

	var result []MenuItemDB
	for rows.Next() {
		var item MenuItemDB
		if err := rows.Scan(
			&item.ID,
			&item.RestaurantID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.Category,
			&item.IsAvailable,
			&item.PrepTime,
		); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с позицией меню: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

// FindMenuItem находит позицию меню по идентификатору.
// Если позиция не найдена, возвращает nil без ошибки.
func (d *Database) FindMenuItem(ctx context.Context, id int64) (*MenuItemDB, error) {
	item := &MenuItemDB{}

	err := d.db.QueryRow(ctx, SelectMenuItemQuery, id).Scan(
		&item.ID,
		&item.RestaurantID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Category,
		&item.IsAvailable,
		&item.PrepTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка поиска позиции меню: %w", err)
	}

	return item, nil
}

// UpdateMenuItem частично обновляет позицию меню в пределах точки владельца.
func (d *Database) UpdateMenuItem(ctx context.Context, id, restaurantID int64, upd models.MenuItemUpdate) error {
	tag, err := d.db.Exec(ctx, UpdateMenuItemQuery,
		id,
		restaurantID,
		upd.Name,
		upd.Description,
		upd.Price,
		upd.Category,
		upd.IsAvailable,
		upd.PrepTime,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления позиции меню: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}

	return nil
}

// ToggleMenuItem переключает доступность позиции и возвращает новое значение.
func (d *Database) ToggleMenuItem(ctx context.Context, id, restaurantID int64) (bool, error) {
	var available bool

	err := d.db.QueryRow(ctx, ToggleMenuItemQuery, id, restaurantID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrMenuItemNotFound
		}
		return false, fmt.Errorf("ошибка переключения доступности позиции: %w", err)
	}

	return available, nil
}
