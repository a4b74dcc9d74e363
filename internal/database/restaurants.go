package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Renal37/campus-eats/internal/models"
	"github.com/jackc/pgx/v5"
)

var (
	ErrRestaurantNotFound = errors.New("точка питания не найдена")
)

const (
	SelectRestaurantByOwnerQuery = `
		SELECT
			id,
			name,
			description,
			address,
			phone,
			cuisine_type,
			is_open,
			avg_prep_time,
			rating,
			trust_badge,
			latitude,
			longitude
		FROM
			restaurants
		WHERE
			user_id = $1
	`
	SearchRestaurantsQuery = `
		SELECT
			id,
			name,
			description,
			address,
			phone,
			cuisine_type,
			is_open,
			avg_prep_time,
			rating,
			trust_badge,
			latitude,
			longitude
		FROM
			restaurants
		WHERE
			is_open = TRUE
			AND ($1 = '' OR name ILIKE '%' || $1 || '%'
			     OR description ILIKE '%' || $1 || '%'
			     OR cuisine_type ILIKE '%' || $1 || '%')
			AND ($2 = '' OR cuisine_type = $2)
			AND rating >= $3
		ORDER BY
			trust_badge DESC,
			rating DESC
	`
	SetRestaurantOpenQuery = `
		UPDATE
			restaurants
		SET
			is_open = $2
		WHERE
			user_id = $1
	`
	SelectRestaurantOwnerQuery = `
		SELECT
			user_id
		FROM
			restaurants
		WHERE
			id = $1
	`
	ToggleTrustBadgeQuery = `
		UPDATE
			restaurants
		SET
			trust_badge = NOT trust_badge
		WHERE
			id = $1
		RETURNING trust_badge
	`
)

type RestaurantDB struct {
	models.Restaurant
}

// FindRestaurantByOwner находит точку питания по владельцу.
// Если точка не найдена, возвращает nil без ошибки.
func (d *Database) FindRestaurantByOwner(ctx context.Context, ownerID int64) (*RestaurantDB, error) {
	r := &RestaurantDB{}

	err := d.db.QueryRow(ctx, SelectRestaurantByOwnerQuery, ownerID).Scan(
		&r.ID,
		&r.Name,
		&r.Description,
		&r.Address,
		&r.Phone,
		&r.CuisineType,
		&r.IsOpen,
		&r.AvgPrepTime,
		&r.Rating,
		&r.TrustBadge,
		&r.Latitude,
		&r.Longitude,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка поиска точки питания: %w", err)
	}

	return r, nil
}

// SearchRestaurants возвращает открытые точки питания по фильтру. Фильтрация
// выполняется прямо в SQL, точки с бейджем доверия идут первыми.
func (d *Database) SearchRestaurants(ctx context.Context, query, cuisine string, minRating float64) ([]RestaurantDB, error) {
	rows, err := d.db.Query(ctx, SearchRestaurantsQuery, query, cuisine, minRating)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска точек питания: %w", err)
	}
	defer rows.Close()

	var result []RestaurantDB
	for rows.Next() {
		var r RestaurantDB
		if err := rows.Scan(
			&r.ID,
			&r.Name,
			&r.Description,
			&r.Address,
			&r.Phone,
			&r.CuisineType,
			&r.IsOpen,
			&r.AvgPrepTime,
			&r.Rating,
			&r.TrustBadge,
			&r.Latitude,
			&r.Longitude,
		); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с точкой питания: %w", err)
		}
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

// FindRestaurantOwner возвращает идентификатор владельца точки питания.
func (d *Database) FindRestaurantOwner(ctx context.Context, restaurantID int64) (int64, error) {
	var ownerID int64

	err := d.db.QueryRow(ctx, SelectRestaurantOwnerQuery, restaurantID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrRestaurantNotFound
		}
		return 0, fmt.Errorf("ошибка поиска владельца точки питания: %w", err)
	}

	return ownerID, nil
}

// SetRestaurantOpen открывает или закрывает точку питания владельца.
func (d *Database) SetRestaurantOpen(ctx context.Context, ownerID int64, open bool) error {
	tag, err := d.db.Exec(ctx, SetRestaurantOpenQuery, ownerID, open)
	if err != nil {
		return fmt.Errorf("ошибка изменения статуса точки питания: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRestaurantNotFound
	}

	return nil
}

// ToggleTrustBadge переключает бейдж доверия и возвращает новое значение.
func (d *Database) ToggleTrustBadge(ctx context.Context, restaurantID int64) (bool, error) {
	var badge bool

	err := d.db.QueryRow(ctx, ToggleTrustBadgeQuery, restaurantID).Scan(&badge)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrRestaurantNotFound
		}
		return false, fmt.Errorf("ошибка переключения бейджа доверия: %w", err)
	}

	return badge, nil
}
