package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Renal37/campus-eats/internal/middlewares"
	"github.com/Renal37/campus-eats/internal/models"
	"github.com/Renal37/campus-eats/internal/services"
	"github.com/go-chi/chi/v5"
)

// Checkout оформляет заказ из текущей корзины студента.
func Checkout(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.NewOrder](w, r)
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	cartService := middlewares.GetServiceFromContext[models.CartService](w, r, middlewares.CartServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	cart := (*cartService).Get(user.ID)
	if data.RestaurantID == 0 {
		data.RestaurantID = cart.RestaurantID
	}

	created, err := (*orderService).Checkout(r.Context(), user.ID, *cart, data)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if errors.Is(err, services.ErrAccountBlocked) {
			http.Error(w, "Ordering is blocked due to low credit score", http.StatusForbidden)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during creating order: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	(*cartService).Clear(user.ID)

	middlewares.EncodeJSONResponse(w, created)
}

func GetOrders(w http.ResponseWriter, r *http.Request) {
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	orders, err := (*orderService).GetOrders(r.Context(), user)

	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			http.Error(w, "Restaurant profile is not found", http.StatusNotFound)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during getting orders: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	middlewares.EncodeJSONResponse(w, orders)
}

func GetOrder(w http.ResponseWriter, r *http.Request) {
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	order, err := (*orderService).GetOrder(r.Context(), chi.URLParam(r, "number"), user)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			http.Error(w, "Order is not found", http.StatusNotFound)
			return
		}

		if errors.Is(err, services.ErrNotPermitted) {
			http.Error(w, "Access to this order is denied", http.StatusForbidden)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during getting order: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, order)
}

// UpdateOrderStatus продвигает заказ на следующий статус цепочки.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.StatusUpdate](w, r)
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	err := (*orderService).Advance(r.Context(), chi.URLParam(r, "number"), data.Status, user)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrOrderNotFound):
			http.Error(w, "Order is not found", http.StatusNotFound)
		case errors.Is(err, services.ErrNotPermitted):
			http.Error(w, "Order belongs to another restaurant", http.StatusForbidden)
		case errors.Is(err, services.ErrIllegalTransition):
			http.Error(w, "Status transition is not allowed", http.StatusConflict)
		case errors.Is(err, services.ErrConflict):
			http.Error(w, "Order was modified by a concurrent request", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Error occurred during updating order status: %s", err.Error()), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func CancelOrder(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.Cancellation](w, r)
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	err := (*orderService).Cancel(r.Context(), chi.URLParam(r, "number"), user, data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrOrderNotFound):
			http.Error(w, "Order is not found", http.StatusNotFound)
		case errors.Is(err, services.ErrNotPermitted):
			http.Error(w, "Cancellation is not permitted for this user", http.StatusForbidden)
		case errors.Is(err, services.ErrIllegalTransition):
			http.Error(w, "Order is already in a terminal status", http.StatusConflict)
		case errors.Is(err, services.ErrConflict):
			http.Error(w, "Order was modified by a concurrent request", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Error occurred during cancelling order: %s", err.Error()), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
