package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Renal37/campus-eats/internal/database"
	"github.com/Renal37/campus-eats/internal/models"
)

// Определение пользовательских ошибок
var (
	ErrRestaurantNotFound = errors.New("точка питания не найдена")
)

// RestaurantService представляет сервис для поиска и управления точками питания
type RestaurantService struct {
	storage restaurantStorage
}

// restaurantStorage определяет интерфейс для взаимодействия с хранилищем точек питания
type restaurantStorage interface {
	SearchRestaurants(ctx context.Context, query, cuisine string, minRating float64) ([]database.RestaurantDB, error)
	FindRestaurantByOwner(ctx context.Context, ownerID int64) (*database.RestaurantDB, error)
	SetRestaurantOpen(ctx context.Context, ownerID int64, open bool) error
}

// NewRestaurantService создает новый экземпляр RestaurantService с заданным хранилищем
func NewRestaurantService(storage restaurantStorage) *RestaurantService {
	return &RestaurantService{storage: storage}
}

// Search возвращает открытые точки питания по фильтру. Если в фильтре заданы
// координаты, для каждой точки дополнительно считается расстояние по прямой.
func (r *RestaurantService) Search(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, error) {
	found, err := r.storage.SearchRestaurants(ctx, filter.Query, filter.Cuisine, filter.MinRating)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске точек питания: %w", err)
	}

	restaurants := make([]models.Restaurant, 0, len(found))
	for _, db := range found {
		restaurant := db.Restaurant
		if filter.Lat != nil && filter.Lon != nil {
			distance := models.HaversineKM(*filter.Lat, *filter.Lon, restaurant.Latitude, restaurant.Longitude)
			restaurant.DistanceKM = &distance
		}
		restaurants = append(restaurants, restaurant)
	}

	return restaurants, nil
}

// GetOwn возвращает точку питания, принадлежащую указанному владельцу
func (r *RestaurantService) GetOwn(ctx context.Context, ownerID int64) (*models.Restaurant, error) {
	restaurant, err := r.storage.FindRestaurantByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске точки питания: %w", err)
	}

	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}

	return &restaurant.Restaurant, nil
}

// SetOpen открывает или закрывает точку питания владельца для приёма заказов
func (r *RestaurantService) SetOpen(ctx context.Context, ownerID int64, open bool) error {
	if err := r.storage.SetRestaurantOpen(ctx, ownerID, open); err != nil {
		if errors.Is(err, database.ErrRestaurantNotFound) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("ошибка при изменении статуса точки питания: %w", err)
	}

	return nil
}
