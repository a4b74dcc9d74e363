package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Renal37/campus-eats/internal/middlewares"
	"github.com/Renal37/campus-eats/internal/models"
	"github.com/Renal37/campus-eats/internal/services"
)

func GetCart(w http.ResponseWriter, r *http.Request) {
	cartService := middlewares.GetServiceFromContext[models.CartService](w, r, middlewares.CartServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	middlewares.EncodeJSONResponse(w, (*cartService).Get(user.ID))
}

func AddCartItem(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.CartUpdate](w, r)
	cartService := middlewares.GetServiceFromContext[models.CartService](w, r, middlewares.CartServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	cart, err := (*cartService).Add(r.Context(), user.ID, data.MenuItemID, data.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrMenuItemNotFound):
			http.Error(w, "Menu item is not found or unavailable", http.StatusNotFound)
		case errors.Is(err, services.ErrMixedRestaurants):
			http.Error(w, "Cart already contains items from another restaurant", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Error occurred during adding item to cart: %s", err.Error()), http.StatusInternalServerError)
		}
		return
	}

	middlewares.EncodeJSONResponse(w, cart)
}

func UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.CartUpdate](w, r)
	cartService := middlewares.GetServiceFromContext[models.CartService](w, r, middlewares.CartServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	cart, err := (*cartService).Update(user.ID, data.MenuItemID, data.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrCartItemNotInCart) {
			http.Error(w, "Item is not in the cart", http.StatusNotFound)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during updating cart: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, cart)
}

func ClearCart(w http.ResponseWriter, r *http.Request) {
	cartService := middlewares.GetServiceFromContext[models.CartService](w, r, middlewares.CartServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	(*cartService).Clear(user.ID)

	w.WriteHeader(http.StatusNoContent)
}
