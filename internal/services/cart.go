package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Renal37/campus-eats/internal/database"
	"github.com/Renal37/campus-eats/internal/models"
)

// Определение пользовательских ошибок
var (
	ErrMenuItemNotFound  = errors.New("позиция меню не найдена")
	ErrMixedRestaurants  = errors.New("корзина уже содержит позиции другой точки питания")
	ErrCartItemNotInCart = errors.New("позиция отсутствует в корзине")
)

// CartService хранит корзины пользователей в памяти процесса.
// Корзина привязана к одной точке питания и живёт до оформления заказа.
type CartService struct {
	mu      sync.Mutex
	carts   map[int64]*models.Cart
	storage cartStorage
}

// cartStorage определяет интерфейс для проверки позиций меню
type cartStorage interface {
	FindMenuItem(ctx context.Context, id int64) (*database.MenuItemDB, error)
}

// NewCartService создает новый экземпляр CartService с заданным хранилищем
func NewCartService(storage cartStorage) *CartService {
	return &CartService{
		carts:   make(map[int64]*models.Cart),
		storage: storage,
	}
}

// Add добавляет позицию меню в корзину пользователя. Повторное добавление
// той же позиции увеличивает количество. Все позиции корзины должны
// принадлежать одной точке питания.
func (c *CartService) Add(ctx context.Context, userID, menuItemID int64, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: количество должно быть не меньше 1", ErrValidation)
	}

	item, err := c.storage.FindMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске позиции меню: %w", err)
	}
	if item == nil || !item.IsAvailable {
		return nil, ErrMenuItemNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cart, ok := c.carts[userID]
	if !ok {
		cart = &models.Cart{RestaurantID: item.RestaurantID}
		c.carts[userID] = cart
	}

	if cart.RestaurantID != item.RestaurantID {
		return nil, ErrMixedRestaurants
	}

	for i := range cart.Items {
		if cart.Items[i].MenuItemID == menuItemID {
			cart.Items[i].Quantity += quantity
			return copyCart(cart), nil
		}
	}

	cart.Items = append(cart.Items, models.CartItem{
		MenuItemID: menuItemID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   quantity,
	})

	return copyCart(cart), nil
}

// Update изменяет количество позиции в корзине.
// Количество меньше единицы удаляет позицию из корзины.
func (c *CartService) Update(userID, menuItemID int64, quantity int) (*models.Cart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cart, ok := c.carts[userID]
	if !ok {
		return nil, ErrCartItemNotInCart
	}

	for i := range cart.Items {
		if cart.Items[i].MenuItemID != menuItemID {
			continue
		}

		if quantity < 1 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			cart.Items[i].Quantity = quantity
		}

		if len(cart.Items) == 0 {
			delete(c.carts, userID)
			return &models.Cart{}, nil
		}

		return copyCart(cart), nil
	}

	return nil, ErrCartItemNotInCart
}

// Get возвращает текущую корзину пользователя. Пустая корзина не является ошибкой.
func (c *CartService) Get(userID int64) *models.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()

	cart, ok := c.carts[userID]
	if !ok {
		return &models.Cart{}
	}

	return copyCart(cart)
}

// Clear удаляет корзину пользователя
func (c *CartService) Clear(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.carts, userID)
}

// copyCart возвращает копию корзины, безопасную для использования вне мьютекса
func copyCart(cart *models.Cart) *models.Cart {
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)

	return &models.Cart{
		RestaurantID: cart.RestaurantID,
		Items:        items,
	}
}
