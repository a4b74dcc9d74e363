package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Renal37/campus-eats/internal/database"
	"github.com/Renal37/campus-eats/internal/logger"
	"github.com/Renal37/campus-eats/internal/models"
	"github.com/Renal37/campus-eats/internal/utils"
	"go.uber.org/zap"
)

// Определение пользовательских ошибок
var (
	ErrValidation      = errors.New("некорректные входные данные")
	ErrProfileNotFound = errors.New("кредитный профиль не найден")
)

const creditHistoryLimit = 10

// CreditService применяет события к кредитному рейтингу студентов.
// Сами правила начисления (дельты, ограничение диапазона, уровни доверия)
// являются чистыми функциями пакета models; сервис отвечает за проверку
// входных данных, сериализацию изменений через хранилище и уведомления.
type CreditService struct {
	storage  creditStorage
	notifier creditNotifier
}

// Интерфейс хранилища для работы с кредитным рейтингом
type creditStorage interface {
	ApplyCreditEvent(ctx context.Context, userID int64, event models.CreditEvent) (*database.CreditChangeDB, error)
	FindCreditHistory(ctx context.Context, userID int64, limit int) ([]database.CreditChangeDB, error)
	FindUserOrderStats(ctx context.Context, userID int64) (*database.UserOrderStatsDB, error)
}

type creditNotifier interface {
	Notify(ctx context.Context, userID int64, title, message, kind string) error
}

// NewCreditService создает новый экземпляр CreditService
func NewCreditService(storage creditStorage, notifier creditNotifier) *CreditService {
	return &CreditService{storage: storage, notifier: notifier}
}

// ApplyEvent применяет событие к рейтингу студента и возвращает запись
// истории. Ошибка проверки входных данных никогда не приводит к частичному
// изменению: либо рейтинг и история меняются вместе, либо ничего.
func (c *CreditService) ApplyEvent(ctx context.Context, studentID int64, event models.CreditEvent) (*models.CreditChange, error) {
	if err := validateCreditEvent(event); err != nil {
		return nil, err
	}

	change, err := c.storage.ApplyCreditEvent(ctx, studentID, event)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("не удалось применить событие рейтинга: %w", err)
	}

	if change.ChangeAmount < 0 {
		err := c.notifier.Notify(ctx, studentID,
			"Credit Score Impact",
			fmt.Sprintf("Your credit score changed from %d to %d. Reason: %s", change.OldScore, change.NewScore, change.Reason),
			models.NotificationWarning,
		)
		if err != nil {
			logger.Log.Warn("failed to notify about credit change", zap.Error(err))
		}
	}

	return creditChangeFromDB(*change), nil
}

// GetUserStats возвращает рейтинг, статистику заказов и последние записи
// истории изменений рейтинга.
func (c *CreditService) GetUserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	stats, err := c.storage.FindUserOrderStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить статистику: %w", err)
	}

	if stats == nil {
		return nil, ErrProfileNotFound
	}

	history, err := c.storage.FindCreditHistory(ctx, userID, creditHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить историю рейтинга: %w", err)
	}

	result := &models.UserStats{
		CreditScore:     stats.CreditScore,
		CreditStatus:    models.CreditTier(stats.CreditStatus),
		TotalOrders:     stats.TotalOrders,
		DeliveredOrders: stats.DeliveredOrders,
		CancelledOrders: stats.CancelledOrders,
		AvgFeedback:     stats.AvgFeedback,
		History:         make([]models.CreditChange, len(history)),
	}
	for i, item := range history {
		result.History[i] = *creditChangeFromDB(item)
	}

	return result, nil
}

// validateCreditEvent проверяет событие до обращения к хранилищу.
func validateCreditEvent(event models.CreditEvent) error {
	if event.Kind == models.EventAdminOverride {
		if event.Override == nil {
			return fmt.Errorf("%w: не указано новое значение рейтинга", ErrValidation)
		}
		if *event.Override < models.MinCreditScore || *event.Override > models.MaxCreditScore {
			return fmt.Errorf("%w: значение рейтинга должно быть в диапазоне [%d, %d]",
				ErrValidation, models.MinCreditScore, models.MaxCreditScore)
		}
		if event.Reason == "" {
			return fmt.Errorf("%w: требуется причина изменения рейтинга", ErrValidation)
		}
		return nil
	}

	if _, ok := event.Kind.Delta(); !ok {
		return fmt.Errorf("%w: неизвестное событие рейтинга %q", ErrValidation, event.Kind)
	}

	return nil
}

func creditChangeFromDB(change database.CreditChangeDB) *models.CreditChange {
	return &models.CreditChange{
		OldScore:     change.OldScore,
		NewScore:     change.NewScore,
		ChangeAmount: change.ChangeAmount,
		Reason:       change.Reason,
		TriggeredBy:  change.TriggeredBy,
		OrderNumber:  change.OrderNumber,
		CreatedAt:    utils.RFC3339Date{Time: change.CreatedAt},
	}
}
