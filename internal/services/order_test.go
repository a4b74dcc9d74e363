package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Renal37/campus-eats/internal/database"
	"github.com/Renal37/campus-eats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrderStorage хранит состояние в памяти и повторяет семантику
// compare-and-swap настоящего хранилища.
type fakeOrderStorage struct {
	mu          sync.Mutex
	users       map[int64]*database.UserDB
	menu        map[int64]*database.MenuItemDB
	restaurants map[int64]*database.RestaurantDB // ключ — владелец
	orders      map[string]*database.OrderDB
}

func newFakeOrderStorage() *fakeOrderStorage {
	return &fakeOrderStorage{
		users:       make(map[int64]*database.UserDB),
		menu:        make(map[int64]*database.MenuItemDB),
		restaurants: make(map[int64]*database.RestaurantDB),
		orders:      make(map[string]*database.OrderDB),
	}
}

func (f *fakeOrderStorage) CreateOrder(_ context.Context, order database.OrderDB) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	order.Status = database.OrderStatusDB{OrderStatus: models.StatusPlaced}
	f.orders[order.Number] = &order
	return nil
}

func (f *fakeOrderStorage) FindOrder(_ context.Context, number string) (*database.OrderDB, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[number]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderStorage) FindOrdersByUser(_ context.Context, userID int64) ([]database.OrderDB, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []database.OrderDB
	for _, order := range f.orders {
		if order.UserID == userID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (f *fakeOrderStorage) FindOrdersByRestaurant(_ context.Context, restaurantID int64) ([]database.OrderDB, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []database.OrderDB
	for _, order := range f.orders {
		if order.Restaurant == restaurantID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (f *fakeOrderStorage) TransitionOrderStatus(_ context.Context, number string, from, to database.OrderStatusDB) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[number]
	if !ok || order.Status.OrderStatus != from.OrderStatus {
		return false, nil
	}
	order.Status = to
	return true, nil
}

func (f *fakeOrderStorage) CancelOrder(_ context.Context, number string, from database.OrderStatusDB, cancelledBy, reason string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[number]
	if !ok || order.Status.OrderStatus != from.OrderStatus {
		return false, nil
	}
	order.Status = database.OrderStatusDB{OrderStatus: models.StatusCancelled}
	order.CancelledBy = cancelledBy
	order.CancelReason = reason
	return true, nil
}

func (f *fakeOrderStorage) FindMenuItem(_ context.Context, id int64) (*database.MenuItemDB, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	item, ok := f.menu[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (f *fakeOrderStorage) FindUserByID(_ context.Context, id int64) (*database.UserDB, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeOrderStorage) FindRestaurantByOwner(_ context.Context, ownerID int64) (*database.RestaurantDB, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	restaurant, ok := f.restaurants[ownerID]
	if !ok {
		return nil, nil
	}
	copied := *restaurant
	return &copied, nil
}

func (f *fakeOrderStorage) FindRestaurantOwner(_ context.Context, restaurantID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for ownerID, restaurant := range f.restaurants {
		if restaurant.ID == restaurantID {
			return ownerID, nil
		}
	}
	return 0, database.ErrRestaurantNotFound
}

// fakeCreditService записывает примененные события рейтинга.
type fakeCreditService struct {
	mu     sync.Mutex
	events []models.CreditEvent
}

func (f *fakeCreditService) ApplyEvent(_ context.Context, _ int64, event models.CreditEvent) (*models.CreditChange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, event)
	return &models.CreditChange{}, nil
}

func (f *fakeCreditService) recorded() []models.CreditEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]models.CreditEvent(nil), f.events...)
}

type fakeNotifier struct {
	mu    sync.Mutex
	count int
}

func (f *fakeNotifier) Notify(_ context.Context, _ int64, _, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.count++
	return nil
}

const (
	studentID = int64(1)
	ownerID   = int64(2)
)

func newOrderFixture() (*OrderService, *fakeOrderStorage, *fakeCreditService) {
	storage := newFakeOrderStorage()
	storage.restaurants[ownerID] = &database.RestaurantDB{Restaurant: models.Restaurant{ID: 10, Name: "Cafe"}}
	storage.menu[100] = &database.MenuItemDB{MenuItem: models.MenuItem{
		ID: 100, RestaurantID: 10, Name: "Plov", Price: 100, IsAvailable: true,
	}}

	credit := &fakeCreditService{}
	service := NewOrderService(storage, credit, &fakeNotifier{})

	return service, storage, credit
}

func setStudentScore(storage *fakeOrderStorage, score int) {
	storage.users[studentID] = &database.UserDB{User: models.User{
		ID:          studentID,
		Role:        models.RoleCustomer,
		CreditScore: score,
		IsActive:    true,
	}}
}

func checkoutRequest() models.NewOrder {
	return models.NewOrder{
		RestaurantID:  10,
		TimeSlot:      "12:00-12:30",
		Address:       "Dorm 4, room 112",
		PaymentMethod: "card",
	}
}

func cartWith(quantity int) models.Cart {
	return models.Cart{
		RestaurantID: 10,
		Items:        []models.CartItem{{MenuItemID: 100, Quantity: quantity}},
	}
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("Should apply a trusted tier discount and a fixed delivery fee", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		setStudentScore(storage, 95)

		created, err := service.Checkout(ctx, studentID, cartWith(2), checkoutRequest())

		require.NoError(t, err)
		assert.Equal(t, 200.0, created.TotalAmount)
		assert.Equal(t, 20.0, created.DiscountApplied)
		assert.Equal(t, 210.0, created.FinalAmount)
		assert.Empty(t, created.Warning)
	})

	t.Run("Should not apply a discount for an average tier student", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		setStudentScore(storage, 70)

		created, err := service.Checkout(ctx, studentID, cartWith(1), checkoutRequest())

		require.NoError(t, err)
		assert.Equal(t, 0.0, created.DiscountApplied)
		assert.Equal(t, 130.0, created.FinalAmount)
	})

	t.Run("Should warn a risky tier student", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		setStudentScore(storage, 35)

		created, err := service.Checkout(ctx, studentID, cartWith(1), checkoutRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, created.Warning)
	})

	t.Run("Should reject checkout for a blocked student", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		setStudentScore(storage, 25)

		_, err := service.Checkout(ctx, studentID, cartWith(1), checkoutRequest())

		assert.ErrorIs(t, err, ErrAccountBlocked)
	})

	t.Run("Should reject an empty cart", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		setStudentScore(storage, 70)

		_, err := service.Checkout(ctx, studentID, models.Cart{}, checkoutRequest())

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Should reject an unavailable menu item", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		setStudentScore(storage, 70)
		storage.menu[100].IsAvailable = false

		_, err := service.Checkout(ctx, studentID, cartWith(1), checkoutRequest())

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Should snapshot the menu price at checkout", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		setStudentScore(storage, 70)

		created, err := service.Checkout(ctx, studentID, cartWith(1), checkoutRequest())
		require.NoError(t, err)

		storage.menu[100].Price = 500

		order, err := storage.FindOrder(ctx, created.Number)
		require.NoError(t, err)
		assert.Equal(t, 100.0, order.Items[0].Price)
	})
}

func owner() *models.User {
	return &models.User{ID: ownerID, Role: models.RoleRestaurant, IsActive: true}
}

func customer() *models.User {
	return &models.User{ID: studentID, Role: models.RoleCustomer, IsActive: true}
}

func placeOrder(t *testing.T, service *OrderService, storage *fakeOrderStorage) string {
	t.Helper()

	setStudentScore(storage, 70)
	created, err := service.Checkout(context.Background(), studentID, cartWith(1), checkoutRequest())
	require.NoError(t, err)

	return created.Number
}

func TestAdvance(t *testing.T) {
	ctx := context.Background()

	t.Run("Should advance the order one step at a time", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		number := placeOrder(t, service, storage)

		require.NoError(t, service.Advance(ctx, number, models.StatusPreparing, owner()))
		require.NoError(t, service.Advance(ctx, number, models.StatusReady, owner()))
		require.NoError(t, service.Advance(ctx, number, models.StatusDelivered, owner()))
	})

	t.Run("Should reject skipping a status", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		number := placeOrder(t, service, storage)

		err := service.Advance(ctx, number, models.StatusReady, owner())

		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("Should reject advancing a terminal order", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		number := placeOrder(t, service, storage)

		require.NoError(t, service.Advance(ctx, number, models.StatusPreparing, owner()))
		require.NoError(t, service.Advance(ctx, number, models.StatusReady, owner()))
		require.NoError(t, service.Advance(ctx, number, models.StatusDelivered, owner()))

		err := service.Advance(ctx, number, models.StatusDelivered, owner())

		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("Should reject an advance by a foreign restaurant", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		number := placeOrder(t, service, storage)

		stranger := &models.User{ID: 99, Role: models.RoleRestaurant, IsActive: true}

		err := service.Advance(ctx, number, models.StatusPreparing, stranger)

		assert.ErrorIs(t, err, ErrNotPermitted)
	})

	t.Run("Should apply exactly one credit event when the order is delivered", func(t *testing.T) {
		service, storage, credit := newOrderFixture()
		number := placeOrder(t, service, storage)

		require.NoError(t, service.Advance(ctx, number, models.StatusPreparing, owner()))
		require.NoError(t, service.Advance(ctx, number, models.StatusReady, owner()))
		require.NoError(t, service.Advance(ctx, number, models.StatusDelivered, owner()))

		events := credit.recorded()
		require.Len(t, events, 1)
		assert.Equal(t, models.EventOnTimeDelivery, events[0].Kind)
		assert.Equal(t, number, events[0].OrderNumber)
	})

	t.Run("Should return a conflict to the loser of a concurrent advance", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		number := placeOrder(t, service, storage)

		var wg sync.WaitGroup
		results := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = service.Advance(ctx, number, models.StatusPreparing, owner())
			}(i)
		}
		wg.Wait()

		var conflicts, successes int
		for _, err := range results {
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrConflict) || errors.Is(err, ErrIllegalTransition):
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}

		assert.Equal(t, 1, successes)
		assert.Equal(t, 1, conflicts)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("Should require a cancellation reason", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		number := placeOrder(t, service, storage)

		err := service.Cancel(ctx, number, customer(), models.Cancellation{})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Should apply a one point penalty for an early cancellation", func(t *testing.T) {
		service, storage, credit := newOrderFixture()
		number := placeOrder(t, service, storage)

		require.NoError(t, service.Cancel(ctx, number, customer(), models.Cancellation{Reason: "changed my mind"}))

		events := credit.recorded()
		require.Len(t, events, 1)
		assert.Equal(t, models.EventEarlyCancellation, events[0].Kind)
	})

	t.Run("Should apply a five point penalty for a late cancellation", func(t *testing.T) {
		service, storage, credit := newOrderFixture()
		number := placeOrder(t, service, storage)

		require.NoError(t, service.Advance(ctx, number, models.StatusPreparing, owner()))
		require.NoError(t, service.Cancel(ctx, number, customer(), models.Cancellation{Reason: "running late"}))

		events := credit.recorded()
		require.Len(t, events, 1)
		assert.Equal(t, models.EventLateCancellation, events[0].Kind)
	})

	t.Run("Should record a no-show for an uncollected ready order", func(t *testing.T) {
		service, storage, credit := newOrderFixture()
		number := placeOrder(t, service, storage)

		require.NoError(t, service.Advance(ctx, number, models.StatusPreparing, owner()))
		require.NoError(t, service.Advance(ctx, number, models.StatusReady, owner()))
		require.NoError(t, service.Cancel(ctx, number, owner(), models.Cancellation{Reason: "not collected", NoShow: true}))

		events := credit.recorded()
		require.Len(t, events, 1)
		assert.Equal(t, models.EventNoShow, events[0].Kind)
	})

	t.Run("Should reject a no-show before the order is ready", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		number := placeOrder(t, service, storage)

		err := service.Cancel(ctx, number, owner(), models.Cancellation{Reason: "not collected", NoShow: true})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Should not penalize the student for a restaurant cancellation", func(t *testing.T) {
		service, storage, credit := newOrderFixture()
		number := placeOrder(t, service, storage)

		require.NoError(t, service.Cancel(ctx, number, owner(), models.Cancellation{Reason: "out of stock"}))

		events := credit.recorded()
		require.Len(t, events, 1)
		assert.Equal(t, models.EventNoFault, events[0].Kind)
	})

	t.Run("Should reject a cancellation of a foreign order", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		number := placeOrder(t, service, storage)

		stranger := &models.User{ID: 42, Role: models.RoleCustomer, IsActive: true}

		err := service.Cancel(ctx, number, stranger, models.Cancellation{Reason: "not mine"})

		assert.ErrorIs(t, err, ErrNotPermitted)
	})

	t.Run("Should reject a cancellation of a delivered order", func(t *testing.T) {
		service, storage, _ := newOrderFixture()
		number := placeOrder(t, service, storage)

		require.NoError(t, service.Advance(ctx, number, models.StatusPreparing, owner()))
		require.NoError(t, service.Advance(ctx, number, models.StatusReady, owner()))
		require.NoError(t, service.Advance(ctx, number, models.StatusDelivered, owner()))

		err := service.Cancel(ctx, number, customer(), models.Cancellation{Reason: "too late"})

		assert.ErrorIs(t, err, ErrIllegalTransition)
	})
}
