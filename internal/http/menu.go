package router

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Renal37/campus-eats/internal/middlewares"
	"github.com/Renal37/campus-eats/internal/models"
	"github.com/Renal37/campus-eats/internal/services"
	"github.com/go-chi/chi/v5"
)

func GetOwnRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurantService := middlewares.GetServiceFromContext[models.RestaurantService](w, r, middlewares.RestaurantServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	restaurant, err := (*restaurantService).GetOwn(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			http.Error(w, "Restaurant profile is not found", http.StatusNotFound)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during getting restaurant: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, restaurant)
}

func SetRestaurantOpen(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.OpenState](w, r)
	restaurantService := middlewares.GetServiceFromContext[models.RestaurantService](w, r, middlewares.RestaurantServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	if err := (*restaurantService).SetOpen(r.Context(), user.ID, data.Open); err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			http.Error(w, "Restaurant profile is not found", http.StatusNotFound)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during changing restaurant state: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.MenuItem](w, r)
	menuService := middlewares.GetServiceFromContext[models.MenuService](w, r, middlewares.MenuServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	id, err := (*menuService).Create(r.Context(), user.ID, data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrRestaurantNotFound):
			http.Error(w, "Restaurant profile is not found", http.StatusNotFound)
		default:
			http.Error(w, fmt.Sprintf("Error occurred during creating menu item: %s", err.Error()), http.StatusInternalServerError)
		}
		return
	}

	data.ID = id
	middlewares.EncodeJSONResponse(w, data)
}

func UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.MenuItemUpdate](w, r)
	menuService := middlewares.GetServiceFromContext[models.MenuService](w, r, middlewares.MenuServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Menu item id is invalid", http.StatusBadRequest)
		return
	}

	if err := (*menuService).Update(r.Context(), user.ID, itemID, data); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrRestaurantNotFound):
			http.Error(w, "Restaurant profile is not found", http.StatusNotFound)
		case errors.Is(err, services.ErrMenuItemNotFound):
			http.Error(w, "Menu item is not found", http.StatusNotFound)
		default:
			http.Error(w, fmt.Sprintf("Error occurred during updating menu item: %s", err.Error()), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func ToggleMenuItem(w http.ResponseWriter, r *http.Request) {
	menuService := middlewares.GetServiceFromContext[models.MenuService](w, r, middlewares.MenuServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Menu item id is invalid", http.StatusBadRequest)
		return
	}

	available, err := (*menuService).Toggle(r.Context(), user.ID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRestaurantNotFound):
			http.Error(w, "Restaurant profile is not found", http.StatusNotFound)
		case errors.Is(err, services.ErrMenuItemNotFound):
			http.Error(w, "Menu item is not found", http.StatusNotFound)
		default:
			http.Error(w, fmt.Sprintf("Error occurred during toggling menu item: %s", err.Error()), http.StatusInternalServerError)
		}
		return
	}

	middlewares.EncodeJSONResponse(w, map[string]bool{"is_available": available})
}
