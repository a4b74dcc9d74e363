package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Renal37/campus-eats/internal/database"
	"github.com/Renal37/campus-eats/internal/logger"
	"github.com/Renal37/campus-eats/internal/models"
	"github.com/Renal37/campus-eats/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Определяем ошибки, связанные с заказами
var (
	ErrOrderNotFound     = errors.New("заказ не найден")
	ErrIllegalTransition = errors.New("недопустимый переход статуса заказа")
	ErrConflict          = errors.New("заказ был изменен параллельным запросом")
	ErrAccountBlocked    = errors.New("оформление заказов заблокировано из-за низкого кредитного рейтинга")
	ErrNotPermitted      = errors.New("действие недоступно для этого пользователя")
)

// Фиксированная стоимость доставки по кампусу.
const deliveryFee = 30.0

const riskyTierWarning = "Credit score is low: further cancellations may block ordering"

// OrderService управляет жизненным циклом заказа: оформление из корзины,
// продвижение по цепочке статусов и отмена. Терминальный статус достигается
// ровно один раз и вызывает ровно одно изменение кредитного рейтинга.
type OrderService struct {
	storage  orderStorage
	credit   orderCreditService
	notifier orderNotifier
}

// Интерфейс хранилища для работы с заказами
type orderStorage interface {
	CreateOrder(ctx context.Context, order database.OrderDB) error
	FindOrder(ctx context.Context, number string) (*database.OrderDB, error)
	FindOrdersByUser(ctx context.Context, userID int64) ([]database.OrderDB, error)
	FindOrdersByRestaurant(ctx context.Context, restaurantID int64) ([]database.OrderDB, error)
	TransitionOrderStatus(ctx context.Context, number string, from, to database.OrderStatusDB) (bool, error)
	CancelOrder(ctx context.Context, number string, from database.OrderStatusDB, cancelledBy, reason string) (bool, error)
	FindMenuItem(ctx context.Context, id int64) (*database.MenuItemDB, error)
	FindUserByID(ctx context.Context, id int64) (*database.UserDB, error)
	FindRestaurantByOwner(ctx context.Context, ownerID int64) (*database.RestaurantDB, error)
	FindRestaurantOwner(ctx context.Context, restaurantID int64) (int64, error)
}

type orderCreditService interface {
	ApplyEvent(ctx context.Context, studentID int64, event models.CreditEvent) (*models.CreditChange, error)
}

type orderNotifier interface {
	Notify(ctx context.Context, userID int64, title, message, kind string) error
}

// NewOrderService создает новый экземпляр OrderService
func NewOrderService(storage orderStorage, credit orderCreditService, notifier orderNotifier) *OrderService {
	return &OrderService{storage: storage, credit: credit, notifier: notifier}
}

// Checkout оформляет заказ из корзины студента. Скидка вычисляется из
// текущего уровня доверия один раз и фиксируется в заказе навсегда.
func (o *OrderService) Checkout(ctx context.Context, studentID int64, cart models.Cart, req models.NewOrder) (*models.CreatedOrder, error) {
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("%w: корзина пуста", ErrValidation)
	}
	if req.Address == "" {
		return nil, fmt.Errorf("%w: не указан адрес доставки", ErrValidation)
	}
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: не выбран способ оплаты", ErrValidation)
	}
	if req.TimeSlot == "" {
		return nil, fmt.Errorf("%w: не выбран временной интервал", ErrValidation)
	}

	// Рейтинг читается из базы, а не из сессии: скидка должна считаться
	// от актуального значения.
	student, err := o.storage.FindUserByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrProfileNotFound
	}

	tier := models.TierForScore(student.CreditScore)
	if tier == models.TierBlocked {
		return nil, ErrAccountBlocked
	}

	items, total, err := o.snapshotItems(ctx, cart, req.RestaurantID)
	if err != nil {
		return nil, err
	}

	discount := total * float64(tier.DiscountPercent()) / 100
	final := total + deliveryFee - discount

	order := database.OrderDB{
		Number:     uuid.NewString(),
		UserID:     studentID,
		Restaurant: req.RestaurantID,
		TimeSlot:   req.TimeSlot,
		Total:      total,
		Fee:        deliveryFee,
		Discount:   discount,
		Final:      final,
		Address:    req.Address,
		Payment:    req.PaymentMethod,
		Score:      student.CreditScore,
		Items:      items,
	}

	if err := o.storage.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if ownerID, err := o.storage.FindRestaurantOwner(ctx, req.RestaurantID); err == nil {
		err := o.notifier.Notify(ctx, ownerID,
			"New Order",
			fmt.Sprintf("You have a new order #%s", order.Number),
			models.NotificationInfo,
		)
		if err != nil {
			logger.Log.Warn("failed to notify restaurant about new order", zap.Error(err))
		}
	}

	result := &models.CreatedOrder{
		Number:          order.Number,
		TotalAmount:     total,
		DiscountApplied: discount,
		FinalAmount:     final,
	}
	if tier == models.TierRisky {
		result.Warning = riskyTierWarning
	}

	return result, nil
}

// snapshotItems фиксирует цены позиций меню на момент оформления заказа.
func (o *OrderService) snapshotItems(ctx context.Context, cart models.Cart, restaurantID int64) ([]models.OrderItem, float64, error) {
	items := make([]models.OrderItem, 0, len(cart.Items))
	var total float64

	for _, cartItem := range cart.Items {
		if cartItem.Quantity < 1 {
			return nil, 0, fmt.Errorf("%w: количество должно быть не меньше 1", ErrValidation)
		}

		menuItem, err := o.storage.FindMenuItem(ctx, cartItem.MenuItemID)
		if err != nil {
			return nil, 0, err
		}
		if menuItem == nil || menuItem.RestaurantID != restaurantID {
			return nil, 0, fmt.Errorf("%w: позиция меню %d недоступна", ErrValidation, cartItem.MenuItemID)
		}
		if !menuItem.IsAvailable {
			return nil, 0, fmt.Errorf("%w: позиция %q сейчас недоступна", ErrValidation, menuItem.Name)
		}

		items = append(items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   cartItem.Quantity,
			Price:      menuItem.Price,
		})
		total += menuItem.Price * float64(cartItem.Quantity)
	}

	return items, total, nil
}

// Advance переводит заказ ровно на один шаг вперед по цепочке
// PLACED -> PREPARING -> READY -> DELIVERED. Переход разрешен только
// владельцу точки питания, которой принадлежит заказ.
func (o *OrderService) Advance(ctx context.Context, number string, next models.OrderStatus, actor *models.User) error {
	if !next.IsValid() || next == models.StatusCancelled {
		return fmt.Errorf("%w: неизвестный статус %q", ErrValidation, next)
	}

	order, err := o.storage.FindOrder(ctx, number)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	if err := o.requireOwner(ctx, actor, order.Restaurant); err != nil {
		return err
	}

	expected, ok := order.Status.Next()
	if !ok {
		return fmt.Errorf("%w: заказ уже в терминальном статусе %s", ErrIllegalTransition, order.Status.OrderStatus)
	}
	if next != expected {
		return fmt.Errorf("%w: из %s допустим только переход в %s", ErrIllegalTransition, order.Status.OrderStatus, expected)
	}

	updated, err := o.storage.TransitionOrderStatus(ctx, number, order.Status, database.OrderStatusDB{OrderStatus: next})
	if err != nil {
		return err
	}
	if !updated {
		// Параллельная мутация успела раньше: заказ уже не в ожидаемом
		// статусе. Победитель определился, проигравший получает ошибку.
		return ErrConflict
	}

	o.notifyStatus(ctx, order.UserID, next)

	// Терминальный статус достигается через compare-and-swap ровно один раз,
	// поэтому событие рейтинга не может сработать повторно.
	if next == models.StatusDelivered {
		_, err := o.credit.ApplyEvent(ctx, order.UserID, models.CreditEvent{
			Kind:        models.EventOnTimeDelivery,
			Reason:      "Order delivered on time",
			Actor:       "system",
			OrderNumber: number,
		})
		if err != nil {
			return fmt.Errorf("не удалось применить событие рейтинга: %w", err)
		}
	}

	return nil
}

// Cancel переводит заказ в CANCELLED из любого нетерминального статуса.
// Требуется непустая причина. NoShow принимается только от владельца точки
// и только для готового заказа, который студент не забрал.
func (o *OrderService) Cancel(ctx context.Context, number string, actor *models.User, cancellation models.Cancellation) error {
	if cancellation.Reason == "" {
		return fmt.Errorf("%w: требуется причина отмены", ErrValidation)
	}

	order, err := o.storage.FindOrder(ctx, number)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	if err := o.requireCancelPermission(ctx, actor, order); err != nil {
		return err
	}

	if order.Status.IsTerminal() {
		return fmt.Errorf("%w: заказ уже в терминальном статусе %s", ErrIllegalTransition, order.Status.OrderStatus)
	}

	if cancellation.NoShow && (actor.Role != models.RoleRestaurant || order.Status.OrderStatus != models.StatusReady) {
		return fmt.Errorf("%w: неявка отмечается владельцем точки для готового заказа", ErrValidation)
	}

	updated, err := o.storage.CancelOrder(ctx, number, order.Status, string(actor.Role), cancellation.Reason)
	if err != nil {
		return err
	}
	if !updated {
		return ErrConflict
	}

	o.notifyStatus(ctx, order.UserID, models.StatusCancelled)

	event := cancellationEvent(actor.Role, order.Status.OrderStatus, cancellation)
	event.OrderNumber = number
	if _, err := o.credit.ApplyEvent(ctx, order.UserID, event); err != nil {
		return fmt.Errorf("не удалось применить событие рейтинга: %w", err)
	}

	return nil
}

// cancellationEvent выбирает событие рейтинга для отмененного заказа.
// Отмена без вины студента (владельцем точки или администратором) попадает
// в историю с нулевой дельтой.
func cancellationEvent(role models.Role, status models.OrderStatus, cancellation models.Cancellation) models.CreditEvent {
	switch {
	case role == models.RoleRestaurant && cancellation.NoShow:
		return models.CreditEvent{
			Kind:   models.EventNoShow,
			Reason: fmt.Sprintf("Order not collected: %s", cancellation.Reason),
			Actor:  "restaurant",
		}
	case role == models.RoleCustomer && status == models.StatusPlaced:
		return models.CreditEvent{
			Kind:   models.EventEarlyCancellation,
			Reason: fmt.Sprintf("Order cancellation: %s", cancellation.Reason),
			Actor:  "system",
		}
	case role == models.RoleCustomer:
		return models.CreditEvent{
			Kind:   models.EventLateCancellation,
			Reason: fmt.Sprintf("Late order cancellation: %s", cancellation.Reason),
			Actor:  "system",
		}
	default:
		return models.CreditEvent{
			Kind:   models.EventNoFault,
			Reason: fmt.Sprintf("Order cancelled by %s: %s", role, cancellation.Reason),
			Actor:  string(role),
		}
	}
}

// GetOrders возвращает заказы пользователя: студенту — его собственные,
// владельцу точки — заказы его точки. Сортировка по дате оформления.
func (o *OrderService) GetOrders(ctx context.Context, user *models.User) ([]models.Order, error) {
	var (
		orders []database.OrderDB
		err    error
	)

	switch user.Role {
	case models.RoleRestaurant:
		restaurant, errFind := o.storage.FindRestaurantByOwner(ctx, user.ID)
		if errFind != nil {
			return nil, errFind
		}
		if restaurant == nil {
			return nil, ErrRestaurantNotFound
		}
		orders, err = o.storage.FindOrdersByRestaurant(ctx, restaurant.ID)
	default:
		orders, err = o.storage.FindOrdersByUser(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}

	result := make([]models.Order, len(orders))
	for i, order := range orders {
		result[i] = orderFromDB(order)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Time.Before(result[j].CreatedAt.Time)
	})

	return result, nil
}

// GetOrder возвращает заказ с позициями, проверяя право доступа.
func (o *OrderService) GetOrder(ctx context.Context, number string, user *models.User) (*models.Order, error) {
	order, err := o.storage.FindOrder(ctx, number)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	switch user.Role {
	case models.RoleAdmin:
	case models.RoleRestaurant:
		if err := o.requireOwner(ctx, user, order.Restaurant); err != nil {
			return nil, err
		}
	default:
		if order.UserID != user.ID {
			return nil, ErrNotPermitted
		}
	}

	result := orderFromDB(*order)
	return &result, nil
}

// requireOwner проверяет, что actor владеет точкой питания заказа.
func (o *OrderService) requireOwner(ctx context.Context, actor *models.User, restaurantID int64) error {
	if actor.Role != models.RoleRestaurant {
		return ErrNotPermitted
	}

	restaurant, err := o.storage.FindRestaurantByOwner(ctx, actor.ID)
	if err != nil {
		return err
	}
	if restaurant == nil || restaurant.ID != restaurantID {
		return ErrNotPermitted
	}

	return nil
}

// requireCancelPermission: студент отменяет свои заказы, владелец — заказы
// своей точки, администратор — любые.
func (o *OrderService) requireCancelPermission(ctx context.Context, actor *models.User, order *database.OrderDB) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleRestaurant:
		return o.requireOwner(ctx, actor, order.Restaurant)
	default:
		if order.UserID != actor.ID {
			return ErrNotPermitted
		}
		return nil
	}
}

func (o *OrderService) notifyStatus(ctx context.Context, userID int64, status models.OrderStatus) {
	messages := map[models.OrderStatus]string{
		models.StatusPreparing: "Your food is being prepared.",
		models.StatusReady:     "Your order is ready for pickup.",
		models.StatusDelivered: "Your order has been delivered. Bon appetit!",
		models.StatusCancelled: "Your order has been cancelled.",
	}

	if message, ok := messages[status]; ok {
		if err := o.notifier.Notify(ctx, userID, "Order Update", message, models.NotificationInfo); err != nil {
			logger.Log.Warn("failed to notify customer about order status", zap.Error(err))
		}
	}
}

func orderFromDB(order database.OrderDB) models.Order {
	return models.Order{
		Number:              order.Number,
		RestaurantID:        order.Restaurant,
		CustomerName:        order.CustomerName,
		Status:              order.Status.OrderStatus,
		TimeSlot:            order.TimeSlot,
		Items:               order.Items,
		TotalAmount:         order.Total,
		DeliveryFee:         order.Fee,
		DiscountAmount:      order.Discount,
		FinalAmount:         order.Final,
		DeliveryAddress:     order.Address,
		PaymentMethod:       order.Payment,
		CustomerCreditScore: order.Score,
		CancelledBy:         order.CancelledBy,
		CancellationReason:  order.CancelReason,
		CreatedAt:           utils.RFC3339Date{Time: order.CreatedAt},
	}
}
