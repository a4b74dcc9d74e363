package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Renal37/campus-eats/internal/database"
	"github.com/Renal37/campus-eats/internal/logger"
	"github.com/Renal37/campus-eats/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// menuTTL — время жизни закэшированного меню.
const menuTTL = 5 * time.Minute

// MenuStore описывает хранилище меню, которое оборачивает кэш.
type MenuStore interface {
	FindRestaurantByOwner(ctx context.Context, ownerID int64) (*database.RestaurantDB, error)
	FindAvailableMenu(ctx context.Context, restaurantID int64) ([]database.MenuItemDB, error)
	CreateMenuItem(ctx context.Context, item database.MenuItemDB) (int64, error)
	UpdateMenuItem(ctx context.Context, id, restaurantID int64, upd models.MenuItemUpdate) error
	ToggleMenuItem(ctx context.Context, id, restaurantID int64) (bool, error)
}

// CachedMenuStore кэширует списки меню в Redis поверх базы данных.
// Чтение идет через кэш, любая мутация меню сбрасывает ключ точки питания.
// Недоступность Redis не мешает работе: запрос уходит в базу.
type CachedMenuStore struct {
	store MenuStore
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedMenuStore создает новый CachedMenuStore поверх заданного хранилища
func NewCachedMenuStore(store MenuStore, rdb *redis.Client) *CachedMenuStore {
	return &CachedMenuStore{
		store: store,
		redis: rdb,
		ttl:   menuTTL,
	}
}

// FindRestaurantByOwner проксирует запрос в базу без кэширования
func (c *CachedMenuStore) FindRestaurantByOwner(ctx context.Context, ownerID int64) (*database.RestaurantDB, error) {
	return c.store.FindRestaurantByOwner(ctx, ownerID)
}

// FindAvailableMenu возвращает меню точки питания, используя кэш
func (c *CachedMenuStore) FindAvailableMenu(ctx context.Context, restaurantID int64) ([]database.MenuItemDB, error) {
	key := menuKey(restaurantID)

	data, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var items []database.MenuItemDB
		if err := json.Unmarshal(data, &items); err == nil {
			return items, nil
		}
		logger.Log.Warn("failed to unmarshal cached menu, falling back to database",
			zap.String("key", key), zap.Error(err))
	} else if !errors.Is(err, redis.Nil) {
		logger.Log.Warn("redis error, falling back to database", zap.Error(err))
	}

	items, err := c.store.FindAvailableMenu(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(items)
	if err != nil {
		logger.Log.Warn("failed to marshal menu for cache", zap.Error(err))
		return items, nil
	}

	if err := c.redis.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.Log.Warn("failed to cache menu", zap.String("key", key), zap.Error(err))
	}

	return items, nil
}

// CreateMenuItem добавляет позицию меню и сбрасывает кэш точки питания
func (c *CachedMenuStore) CreateMenuItem(ctx context.Context, item database.MenuItemDB) (int64, error) {
	id, err := c.store.CreateMenuItem(ctx, item)
	if err != nil {
		return 0, err
	}

	c.invalidate(ctx, item.RestaurantID)

	return id, nil
}

// UpdateMenuItem обновляет позицию меню и сбрасывает кэш точки питания
func (c *CachedMenuStore) UpdateMenuItem(ctx context.Context, id, restaurantID int64, upd models.MenuItemUpdate) error {
	if err := c.store.UpdateMenuItem(ctx, id, restaurantID, upd); err != nil {
		return err
	}

	c.invalidate(ctx, restaurantID)

	return nil
}

// ToggleMenuItem переключает доступность позиции и сбрасывает кэш точки питания
func (c *CachedMenuStore) ToggleMenuItem(ctx context.Context, id, restaurantID int64) (bool, error) {
	available, err := c.store.ToggleMenuItem(ctx, id, restaurantID)
	if err != nil {
		return false, err
	}

	c.invalidate(ctx, restaurantID)

	return available, nil
}

func (c *CachedMenuStore) invalidate(ctx context.Context, restaurantID int64) {
	key := menuKey(restaurantID)
	if err := c.redis.Del(ctx, key).Err(); err != nil {
		logger.Log.Warn("failed to invalidate menu cache", zap.String("key", key), zap.Error(err))
	}
}

func menuKey(restaurantID int64) string {
	return fmt.Sprintf("menu:%d", restaurantID)
}
