package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Renal37/campus-eats/internal/database"
	"github.com/Renal37/campus-eats/internal/models"
)

// AdminService представляет сервис административных операций.
// Каждое действие администратора фиксируется в журнале.
type AdminService struct {
	storage adminStorage
	credit  feedbackCreditService
}

// adminStorage определяет интерфейс для взаимодействия с хранилищем
type adminStorage interface {
	FindUserByID(ctx context.Context, id int64) (*database.UserDB, error)
	ToggleUserActive(ctx context.Context, id int64) (bool, error)
	ToggleTrustBadge(ctx context.Context, restaurantID int64) (bool, error)
	RecordAdminAction(ctx context.Context, adminID int64, actionType, targetType string, targetID int64, details string) error
}

// NewAdminService создает новый экземпляр AdminService
func NewAdminService(storage adminStorage, credit feedbackCreditService) *AdminService {
	return &AdminService{storage: storage, credit: credit}
}

// OverrideCreditScore напрямую устанавливает кредитный рейтинг студента.
// Обязательна причина; новое значение должно лежать в допустимых границах.
func (a *AdminService) OverrideCreditScore(ctx context.Context, adminID, userID int64, newScore int, reason string) (*models.CreditChange, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: причина изменения рейтинга обязательна", ErrValidation)
	}
	if newScore < models.MinCreditScore || newScore > models.MaxCreditScore {
		return nil, fmt.Errorf("%w: рейтинг должен быть от %d до %d",
			ErrValidation, models.MinCreditScore, models.MaxCreditScore)
	}

	user, err := a.storage.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователя: %w", err)
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}

	change, err := a.credit.ApplyEvent(ctx, userID, models.CreditEvent{
		Kind:     models.EventAdminOverride,
		Override: &newScore,
		Reason:   reason,
		Actor:    "admin",
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при изменении рейтинга: %w", err)
	}

	if err := a.storage.RecordAdminAction(ctx, adminID, "CREDIT_OVERRIDE", "user", userID, reason); err != nil {
		return nil, fmt.Errorf("ошибка при записи действия администратора: %w", err)
	}

	return change, nil
}

// ToggleUserActive блокирует или разблокирует учетную запись пользователя
// и возвращает новое состояние
func (a *AdminService) ToggleUserActive(ctx context.Context, adminID, userID int64) (bool, error) {
	active, err := a.storage.ToggleUserActive(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return false, ErrProfileNotFound
		}
		return false, fmt.Errorf("ошибка при переключении учетной записи: %w", err)
	}

	action := "DEACTIVATE_USER"
	if active {
		action = "ACTIVATE_USER"
	}
	if err := a.storage.RecordAdminAction(ctx, adminID, action, "user", userID, ""); err != nil {
		return active, fmt.Errorf("ошибка при записи действия администратора: %w", err)
	}

	return active, nil
}

// ToggleTrustBadge переключает знак доверия точки питания и возвращает
// новое состояние
func (a *AdminService) ToggleTrustBadge(ctx context.Context, adminID, restaurantID int64) (bool, error) {
	badge, err := a.storage.ToggleTrustBadge(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, database.ErrRestaurantNotFound) {
			return false, ErrRestaurantNotFound
		}
		return false, fmt.Errorf("ошибка при переключении знака доверия: %w", err)
	}

	action := "REVOKE_TRUST_BADGE"
	if badge {
		action = "GRANT_TRUST_BADGE"
	}
	if err := a.storage.RecordAdminAction(ctx, adminID, action, "restaurant", restaurantID, ""); err != nil {
		return badge, fmt.Errorf("ошибка при записи действия администратора: %w", err)
	}

	return badge, nil
}
