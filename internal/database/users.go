package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Renal37/campus-eats/internal/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDuplicateUser = errors.New("пользователь уже существует")
	ErrUserNotFound  = errors.New("пользователь не найден")
)

const (
	InsertUserQuery = `
		INSERT INTO
			users (email, hash, name, phone, role, credit_score, credit_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	SelectUserByEmailQuery = `
		SELECT
			id,
			email,
			hash,
			name,
			phone,
			role,
			credit_score,
			credit_status,
			is_active
		FROM
			users
		WHERE
			email = $1
	`
	SelectUserByIDQuery = `
		SELECT
			id,
			email,
			hash,
			name,
			phone,
			role,
			credit_score,
			credit_status,
			is_active
		FROM
			users
		WHERE
			id = $1
	`
	ToggleUserActiveQuery = `
		UPDATE
			users
		SET
			is_active = NOT is_active
		WHERE
			id = $1
		RETURNING is_active
	`
)

type UserDB struct {
	models.User
}

// CreateUser создает нового пользователя. Новому студенту сразу назначается
// рейтинг по умолчанию и соответствующий ему уровень доверия.
func (d *Database) CreateUser(ctx context.Context, user UserDB) (int64, error) {
	var id int64

	err := d.db.QueryRow(ctx, InsertUserQuery,
		user.Email,
		user.Hash,
		user.Name,
		user.Phone,
		string(user.Role),
		user.CreditScore,
		string(user.CreditStatus),
	).Scan(&id)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return 0, ErrDuplicateUser
		}
		return 0, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return id, nil
}

// FindUser находит пользователя по email. Если пользователь не найден,
// возвращает nil без ошибки.
func (d *Database) FindUser(ctx context.Context, email string) (*UserDB, error) {
	return d.scanUser(d.db.QueryRow(ctx, SelectUserByEmailQuery, email))
}

// FindUserByID находит пользователя по идентификатору.
func (d *Database) FindUserByID(ctx context.Context, id int64) (*UserDB, error) {
	return d.scanUser(d.db.QueryRow(ctx, SelectUserByIDQuery, id))
}

func (d *Database) scanUser(row pgx.Row) (*UserDB, error) {
	user := &UserDB{}

	var role, status string
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Hash,
		&user.Name,
		&user.Phone,
		&role,
		&user.CreditScore,
		&status,
		&user.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	user.Role = models.Role(role)
	user.CreditStatus = models.CreditTier(status)

	return user, nil
}

// ToggleUserActive переключает флаг активности пользователя и возвращает
// новое значение.
func (d *Database) ToggleUserActive(ctx context.Context, id int64) (bool, error) {
	var active bool

	err := d.db.QueryRow(ctx, ToggleUserActiveQuery, id).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("ошибка при изменении статуса пользователя: %w", err)
	}

	return active, nil
}
