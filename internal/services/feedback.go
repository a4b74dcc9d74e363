package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Renal37/campus-eats/internal/database"
	"github.com/Renal37/campus-eats/internal/models"
	"github.com/Renal37/campus-eats/internal/utils"
)

// Определение пользовательских ошибок
var (
	ErrFeedbackAlreadyLeft = errors.New("оценка по этому заказу уже оставлена")
	ErrOrderNotDelivered   = errors.New("оценить можно только выданный заказ")
)

// FeedbackService представляет сервис обратной связи о студентах.
// Положительная или отрицательная оценка меняет кредитный рейтинг студента.
type FeedbackService struct {
	storage feedbackStorage
	credit  feedbackCreditService
}

// feedbackStorage определяет интерфейс для взаимодействия с хранилищем оценок
type feedbackStorage interface {
	FindOrder(ctx context.Context, number string) (*database.OrderDB, error)
	FindRestaurantByOwner(ctx context.Context, ownerID int64) (*database.RestaurantDB, error)
	FindOrdersPendingFeedback(ctx context.Context, restaurantID int64) ([]database.OrderDB, error)
	CreateFeedback(ctx context.Context, restaurantID, userID, orderID int64, politeness, punctuality, authenticity int, overall float64, comments string) error
	FindFeedbackHistory(ctx context.Context, restaurantID int64) ([]database.FeedbackDB, error)
	FindFeedbackStats(ctx context.Context, restaurantID int64) (*database.FeedbackStatsDB, error)
}

// feedbackCreditService применяет кредитные события, порождаемые оценками
type feedbackCreditService interface {
	ApplyEvent(ctx context.Context, studentID int64, event models.CreditEvent) (*models.CreditChange, error)
}

// NewFeedbackService создает новый экземпляр FeedbackService
func NewFeedbackService(storage feedbackStorage, credit feedbackCreditService) *FeedbackService {
	return &FeedbackService{storage: storage, credit: credit}
}

// Submit сохраняет оценку студента по выданному заказу и применяет
// соответствующее кредитное событие. Средняя оценка от 4.0 повышает рейтинг,
// ниже — понижает.
func (f *FeedbackService) Submit(ctx context.Context, ownerID int64, feedback models.NewFeedback) error {
	if err := validateFeedback(feedback); err != nil {
		return err
	}

	restaurant, err := f.ownRestaurant(ctx, ownerID)
	if err != nil {
		return err
	}

	order, err := f.storage.FindOrder(ctx, feedback.OrderNumber)
	if err != nil {
		return fmt.Errorf("ошибка при поиске заказа: %w", err)
	}
	if order == nil || order.Restaurant != restaurant.ID {
		return ErrOrderNotFound
	}
	if order.Status.OrderStatus != models.StatusDelivered {
		return ErrOrderNotDelivered
	}

	kind := models.EventNegativeFeedback
	if feedback.Overall() >= models.PositiveFeedbackThreshold {
		kind = models.EventPositiveFeedback
	}

	// Кредитное событие пишется в историю с номером заказа, поэтому оценку
	// сохраняем первой: уникальный индекс по заказу защищает от повторного
	// изменения рейтинга.
	err = f.storage.CreateFeedback(ctx, restaurant.ID, order.UserID, order.DBID,
		feedback.Politeness, feedback.Punctuality, feedback.Authenticity,
		feedback.Overall(), feedback.Comments)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateFeedback) {
			return ErrFeedbackAlreadyLeft
		}
		return fmt.Errorf("ошибка при сохранении оценки: %w", err)
	}

	_, err = f.credit.ApplyEvent(ctx, order.UserID, models.CreditEvent{
		Kind:        kind,
		Reason:      fmt.Sprintf("feedback on order %s", order.Number),
		Actor:       "restaurant",
		OrderNumber: order.Number,
	})
	if err != nil {
		return fmt.Errorf("ошибка при применении кредитного события: %w", err)
	}

	return nil
}

// PendingOrders возвращает выданные заказы точки питания, по которым еще
// не оставлена оценка
func (f *FeedbackService) PendingOrders(ctx context.Context, ownerID int64) ([]models.Order, error) {
	restaurant, err := f.ownRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	found, err := f.storage.FindOrdersPendingFeedback(ctx, restaurant.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске заказов без оценки: %w", err)
	}

	orders := make([]models.Order, 0, len(found))
	for _, db := range found {
		orders = append(orders, orderFromDB(db))
	}

	return orders, nil
}

// History возвращает последние оценки, оставленные точкой питания
func (f *FeedbackService) History(ctx context.Context, ownerID int64) ([]models.Feedback, error) {
	restaurant, err := f.ownRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	found, err := f.storage.FindFeedbackHistory(ctx, restaurant.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении истории оценок: %w", err)
	}

	history := make([]models.Feedback, 0, len(found))
	for _, db := range found {
		history = append(history, models.Feedback{
			ID:           db.ID,
			OrderNumber:  db.OrderNumber,
			CustomerName: db.CustomerName,
			Politeness:   db.Politeness,
			Punctuality:  db.Punctuality,
			Authenticity: db.Authenticity,
			Overall:      db.Overall,
			Comments:     db.Comments,
			CreditChange: db.CreditChange,
			CreatedAt:    utils.RFC3339Date{Time: db.CreatedAt},
		})
	}

	return history, nil
}

// Stats возвращает сводку обратной связи точки питания
func (f *FeedbackService) Stats(ctx context.Context, ownerID int64) (*models.FeedbackStats, error) {
	restaurant, err := f.ownRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats, err := f.storage.FindFeedbackStats(ctx, restaurant.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статистики оценок: %w", err)
	}

	result := &models.FeedbackStats{
		AverageRating:   stats.AverageRating,
		TotalFeedback:   stats.TotalFeedback,
		MonthlyFeedback: stats.MonthlyFeedback,
	}
	if stats.DeliveredOrders > 0 {
		result.ResponseRate = float64(stats.TotalFeedback) / float64(stats.DeliveredOrders)
	}

	return result, nil
}

func (f *FeedbackService) ownRestaurant(ctx context.Context, ownerID int64) (*database.RestaurantDB, error) {
	restaurant, err := f.storage.FindRestaurantByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске точки питания: %w", err)
	}

	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}

	return restaurant, nil
}

// validateFeedback проверяет номер заказа и границы оценок
func validateFeedback(feedback models.NewFeedback) error {
	if feedback.OrderNumber == "" {
		return fmt.Errorf("%w: номер заказа не может быть пустым", ErrValidation)
	}

	for _, rating := range []int{feedback.Politeness, feedback.Punctuality, feedback.Authenticity} {
		if rating < models.MinFeedbackRating || rating > models.MaxFeedbackRating {
			return fmt.Errorf("%w: оценка должна быть от %d до %d",
				ErrValidation, models.MinFeedbackRating, models.MaxFeedbackRating)
		}
	}

	return nil
}
