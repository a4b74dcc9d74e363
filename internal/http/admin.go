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

// OverrideCreditScore напрямую устанавливает кредитный рейтинг студента.
func OverrideCreditScore(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.CreditOverride](w, r)
	adminService := middlewares.GetServiceFromContext[models.AdminService](w, r, middlewares.AdminServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	if data.Score == nil {
		http.Error(w, "Request doesn't contain score", http.StatusBadRequest)
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "User id is invalid", http.StatusBadRequest)
		return
	}

	change, err := (*adminService).OverrideCreditScore(r.Context(), user.ID, userID, *data.Score, data.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrProfileNotFound):
			http.Error(w, "User is not found", http.StatusNotFound)
		default:
			http.Error(w, fmt.Sprintf("Error occurred during overriding credit score: %s", err.Error()), http.StatusInternalServerError)
		}
		return
	}

	middlewares.EncodeJSONResponse(w, change)
}

// ToggleUserActive блокирует или разблокирует учетную запись пользователя.
func ToggleUserActive(w http.ResponseWriter, r *http.Request) {
	adminService := middlewares.GetServiceFromContext[models.AdminService](w, r, middlewares.AdminServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "User id is invalid", http.StatusBadRequest)
		return
	}

	active, err := (*adminService).ToggleUserActive(r.Context(), user.ID, userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			http.Error(w, "User is not found", http.StatusNotFound)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during toggling user: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, map[string]bool{"is_active": active})
}

// ToggleTrustBadge переключает знак доверия точки питания.
func ToggleTrustBadge(w http.ResponseWriter, r *http.Request) {
	adminService := middlewares.GetServiceFromContext[models.AdminService](w, r, middlewares.AdminServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	restaurantID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Restaurant id is invalid", http.StatusBadRequest)
		return
	}

	badge, err := (*adminService).ToggleTrustBadge(r.Context(), user.ID, restaurantID)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			http.Error(w, "Restaurant is not found", http.StatusNotFound)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during toggling trust badge: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, map[string]bool{"trust_badge": badge})
}
