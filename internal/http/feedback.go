package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Renal37/campus-eats/internal/middlewares"
	"github.com/Renal37/campus-eats/internal/models"
	"github.com/Renal37/campus-eats/internal/services"
)

func SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.NewFeedback](w, r)
	feedbackService := middlewares.GetServiceFromContext[models.FeedbackService](w, r, middlewares.FeedbackServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	if err := (*feedbackService).Submit(r.Context(), user.ID, data); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrRestaurantNotFound):
			http.Error(w, "Restaurant profile is not found", http.StatusNotFound)
		case errors.Is(err, services.ErrOrderNotFound):
			http.Error(w, "Order is not found", http.StatusNotFound)
		case errors.Is(err, services.ErrOrderNotDelivered):
			http.Error(w, "Feedback is allowed only for delivered orders", http.StatusConflict)
		case errors.Is(err, services.ErrFeedbackAlreadyLeft):
			http.Error(w, "Feedback for this order already exists", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Error occurred during submitting feedback: %s", err.Error()), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func GetPendingFeedbackOrders(w http.ResponseWriter, r *http.Request) {
	feedbackService := middlewares.GetServiceFromContext[models.FeedbackService](w, r, middlewares.FeedbackServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	orders, err := (*feedbackService).PendingOrders(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			http.Error(w, "Restaurant profile is not found", http.StatusNotFound)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during getting pending orders: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	middlewares.EncodeJSONResponse(w, orders)
}

func GetFeedbackHistory(w http.ResponseWriter, r *http.Request) {
	feedbackService := middlewares.GetServiceFromContext[models.FeedbackService](w, r, middlewares.FeedbackServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	history, err := (*feedbackService).History(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			http.Error(w, "Restaurant profile is not found", http.StatusNotFound)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during getting feedback history: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	if len(history) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	middlewares.EncodeJSONResponse(w, history)
}

func GetFeedbackStats(w http.ResponseWriter, r *http.Request) {
	feedbackService := middlewares.GetServiceFromContext[models.FeedbackService](w, r, middlewares.FeedbackServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if user == nil {
		return
	}

	stats, err := (*feedbackService).Stats(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			http.Error(w, "Restaurant profile is not found", http.StatusNotFound)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during getting feedback stats: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, stats)
}
