package router

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Renal37/campus-eats/internal/middlewares"
	"github.com/Renal37/campus-eats/internal/models"
	"github.com/go-chi/chi/v5"
)

// SearchRestaurants ищет открытые точки питания по параметрам запроса.
func SearchRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurantService := middlewares.GetServiceFromContext[models.RestaurantService](w, r, middlewares.RestaurantServiceKey)

	filter := models.RestaurantFilter{
		Query:   r.URL.Query().Get("q"),
		Cuisine: r.URL.Query().Get("cuisine"),
	}

	if raw := r.URL.Query().Get("min_rating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "Parameter min_rating is not a number", http.StatusBadRequest)
			return
		}
		filter.MinRating = minRating
	}

	rawLat, rawLon := r.URL.Query().Get("lat"), r.URL.Query().Get("lon")
	if rawLat != "" && rawLon != "" {
		lat, errLat := strconv.ParseFloat(rawLat, 64)
		lon, errLon := strconv.ParseFloat(rawLon, 64)
		if errLat != nil || errLon != nil {
			http.Error(w, "Parameters lat and lon are not numbers", http.StatusBadRequest)
			return
		}
		filter.Lat, filter.Lon = &lat, &lon
	}

	restaurants, err := (*restaurantService).Search(r.Context(), filter)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error occurred during searching restaurants: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	if len(restaurants) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	middlewares.EncodeJSONResponse(w, restaurants)
}

// GetMenu возвращает доступные позиции меню точки питания.
func GetMenu(w http.ResponseWriter, r *http.Request) {
	menuService := middlewares.GetServiceFromContext[models.MenuService](w, r, middlewares.MenuServiceKey)

	restaurantID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Restaurant id is invalid", http.StatusBadRequest)
		return
	}

	menu, err := (*menuService).GetMenu(r.Context(), restaurantID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error occurred during getting menu: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	if len(menu) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	middlewares.EncodeJSONResponse(w, menu)
}
