package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Renal37/campus-eats/internal/middlewares"
	"github.com/Renal37/campus-eats/internal/models"
	"github.com/Renal37/campus-eats/internal/services"
)

// GetUserStats возвращает кредитный рейтинг пользователя, статистику заказов
// и последние записи истории изменений рейтинга.
func GetUserStats(w http.ResponseWriter, r *http.Request) {
	creditService := middlewares.GetServiceFromContext[models.CreditService](w, r, middlewares.CreditServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	stats, err := (*creditService).GetUserStats(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			http.Error(w, "Credit profile is not found", http.StatusNotFound)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during getting user stats: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, stats)
}
