package models

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

//go:generate mockgen -destination=mocks/mock_auth.go . AuthService
type AuthService interface {
	Register(ctx context.Context, user UnknownUser) error

	Login(ctx context.Context, user UnknownUser) error

	GetUser(ctx context.Context, email string) (*User, error)
}

//go:generate mockgen -destination=mocks/mock_jwt.go . JWTService
type JWTService interface {
	GenerateJWT(subject string) (string, error)

	ValidateToken(token string) (*jwt.Token, error)
}

//go:generate mockgen -destination=mocks/mock_order.go . OrderService
type OrderService interface {
	Checkout(ctx context.Context, studentID int64, cart Cart, req NewOrder) (*CreatedOrder, error)

	Advance(ctx context.Context, number string, next OrderStatus, actor *User) error

	Cancel(ctx context.Context, number string, actor *User, cancellation Cancellation) error

	GetOrders(ctx context.Context, user *User) ([]Order, error)

	GetOrder(ctx context.Context, number string, user *User) (*Order, error)
}

//go:generate mockgen -destination=mocks/mock_credit.go . CreditService
type CreditService interface {
	ApplyEvent(ctx context.Context, studentID int64, event CreditEvent) (*CreditChange, error)

	GetUserStats(ctx context.Context, userID int64) (*UserStats, error)
}

//go:generate mockgen -destination=mocks/mock_cart.go . CartService
type CartService interface {
	Add(ctx context.Context, userID, menuItemID int64, quantity int) (*Cart, error)

	Update(userID, menuItemID int64, quantity int) (*Cart, error)

	Get(userID int64) *Cart

	Clear(userID int64)
}

//go:generate mockgen -destination=mocks/mock_menu.go . MenuService
type MenuService interface {
	GetMenu(ctx context.Context, restaurantID int64) ([]MenuItem, error)

	Create(ctx context.Context, ownerID int64, item MenuItem) (int64, error)

	Update(ctx context.Context, ownerID, itemID int64, upd MenuItemUpdate) error

	Toggle(ctx context.Context, ownerID, itemID int64) (bool, error)
}

//go:generate mockgen -destination=mocks/mock_restaurant.go . RestaurantService
type RestaurantService interface {
	Search(ctx context.Context, filter RestaurantFilter) ([]Restaurant, error)

	GetOwn(ctx context.Context, ownerID int64) (*Restaurant, error)

	SetOpen(ctx context.Context, ownerID int64, open bool) error
}

//go:generate mockgen -destination=mocks/mock_feedback.go . FeedbackService
type FeedbackService interface {
	Submit(ctx context.Context, ownerID int64, feedback NewFeedback) error

	PendingOrders(ctx context.Context, ownerID int64) ([]Order, error)

	History(ctx context.Context, ownerID int64) ([]Feedback, error)

	Stats(ctx context.Context, ownerID int64) (*FeedbackStats, error)
}

//go:generate mockgen -destination=mocks/mock_admin.go . AdminService
type AdminService interface {
	OverrideCreditScore(ctx context.Context, adminID, userID int64, newScore int, reason string) (*CreditChange, error)

	ToggleUserActive(ctx context.Context, adminID, userID int64) (bool, error)

	ToggleTrustBadge(ctx context.Context, adminID, restaurantID int64) (bool, error)
}

//go:generate mockgen -destination=mocks/mock_notification.go . NotificationService
type NotificationService interface {
	Notify(ctx context.Context, userID int64, title, message, kind string) error

	List(ctx context.Context, userID int64) ([]Notification, error)

	MarkRead(ctx context.Context, id, userID int64) error
}
