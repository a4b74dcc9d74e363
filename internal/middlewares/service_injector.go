package middlewares

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Renal37/campus-eats/internal/models"
)

type key int

const (
	AuthServiceKey key = iota
	JwtServiceKey
	OrderServiceKey
	CreditServiceKey
	CartServiceKey
	MenuServiceKey
	RestaurantServiceKey
	FeedbackServiceKey
	AdminServiceKey
	NotificationServiceKey
)

func ServiceInjectorMiddleware(
	authService models.AuthService,
	jwtService models.JWTService,
	orderService models.OrderService,
	creditService models.CreditService,
	cartService models.CartService,
	menuService models.MenuService,
	restaurantService models.RestaurantService,
	feedbackService models.FeedbackService,
	adminService models.AdminService,
	notificationService models.NotificationService,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), AuthServiceKey, authService)
			ctx = context.WithValue(ctx, JwtServiceKey, jwtService)
			ctx = context.WithValue(ctx, OrderServiceKey, orderService)
			ctx = context.WithValue(ctx, CreditServiceKey, creditService)
			ctx = context.WithValue(ctx, CartServiceKey, cartService)
			ctx = context.WithValue(ctx, MenuServiceKey, menuService)
			ctx = context.WithValue(ctx, RestaurantServiceKey, restaurantService)
			ctx = context.WithValue(ctx, FeedbackServiceKey, feedbackService)
			ctx = context.WithValue(ctx, AdminServiceKey, adminService)
			ctx = context.WithValue(ctx, NotificationServiceKey, notificationService)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetServiceFromContext[Service interface{}](w http.ResponseWriter, r *http.Request, serviceKey key) *Service {
	foundService, ok := r.Context().Value(serviceKey).(Service)

	if !ok {
		http.Error(w, fmt.Sprintf("Service wasn't found in context by key %v", serviceKey), http.StatusInternalServerError)
		return nil
	}

	return &foundService
}
