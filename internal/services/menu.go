package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Renal37/campus-eats/internal/database"
	"github.com/Renal37/campus-eats/internal/models"
)

// MenuService представляет сервис для просмотра и управления меню точки питания
type MenuService struct {
	storage menuStorage
}

// menuStorage определяет интерфейс для взаимодействия с хранилищем меню.
// Реализация может прозрачно кэшировать списки позиций.
type menuStorage interface {
	FindRestaurantByOwner(ctx context.Context, ownerID int64) (*database.RestaurantDB, error)
	FindAvailableMenu(ctx context.Context, restaurantID int64) ([]database.MenuItemDB, error)
	CreateMenuItem(ctx context.Context, item database.MenuItemDB) (int64, error)
	UpdateMenuItem(ctx context.Context, id, restaurantID int64, upd models.MenuItemUpdate) error
	ToggleMenuItem(ctx context.Context, id, restaurantID int64) (bool, error)
}

// NewMenuService создает новый экземпляр MenuService с заданным хранилищем
func NewMenuService(storage menuStorage) *MenuService {
	return &MenuService{storage: storage}
}

// GetMenu возвращает доступные позиции меню указанной точки питания
func (m *MenuService) GetMenu(ctx context.Context, restaurantID int64) ([]models.MenuItem, error) {
	found, err := m.storage.FindAvailableMenu(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении меню: %w", err)
	}

	items := make([]models.MenuItem, 0, len(found))
	for _, db := range found {
		items = append(items, db.MenuItem)
	}

	return items, nil
}

// Create добавляет позицию в меню точки питания владельца
func (m *MenuService) Create(ctx context.Context, ownerID int64, item models.MenuItem) (int64, error) {
	if item.Name == "" {
		return 0, fmt.Errorf("%w: название позиции не может быть пустым", ErrValidation)
	}
	if item.Price <= 0 {
		return 0, fmt.Errorf("%w: цена должна быть положительной", ErrValidation)
	}

	restaurant, err := m.ownRestaurant(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	item.RestaurantID = restaurant.ID
	item.IsAvailable = true

	id, err := m.storage.CreateMenuItem(ctx, database.MenuItemDB{MenuItem: item})
	if err != nil {
		return 0, fmt.Errorf("ошибка при добавлении позиции меню: %w", err)
	}

	return id, nil
}

// Update частично обновляет позицию меню. Изменять можно только позиции
// собственной точки питания.
func (m *MenuService) Update(ctx context.Context, ownerID, itemID int64, upd models.MenuItemUpdate) error {
	if upd.Price != nil && *upd.Price <= 0 {
		return fmt.Errorf("%w: цена должна быть положительной", ErrValidation)
	}

	restaurant, err := m.ownRestaurant(ctx, ownerID)
	if err != nil {
		return err
	}

	if err := m.storage.UpdateMenuItem(ctx, itemID, restaurant.ID, upd); err != nil {
		if errors.Is(err, database.ErrMenuItemNotFound) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("ошибка при обновлении позиции меню: %w", err)
	}

	return nil
}

// Toggle переключает доступность позиции меню и возвращает новое состояние
func (m *MenuService) Toggle(ctx context.Context, ownerID, itemID int64) (bool, error) {
	restaurant, err := m.ownRestaurant(ctx, ownerID)
	if err != nil {
		return false, err
	}

	available, err := m.storage.ToggleMenuItem(ctx, itemID, restaurant.ID)
	if err != nil {
		if errors.Is(err, database.ErrMenuItemNotFound) {
			return false, ErrMenuItemNotFound
		}
		return false, fmt.Errorf("ошибка при переключении позиции меню: %w", err)
	}

	return available, nil
}

func (m *MenuService) ownRestaurant(ctx context.Context, ownerID int64) (*database.RestaurantDB, error) {
	restaurant, err := m.storage.FindRestaurantByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске точки питания: %w", err)
	}

	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}

	return restaurant, nil
}
