package services

import (
	"context"
	"testing"

	"github.com/Renal37/campus-eats/internal/database"
	"github.com/Renal37/campus-eats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartStorage struct {
	items map[int64]*database.MenuItemDB
}

func (f *fakeCartStorage) FindMenuItem(_ context.Context, id int64) (*database.MenuItemDB, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func newCartFixture() *CartService {
	return NewCartService(&fakeCartStorage{items: map[int64]*database.MenuItemDB{
		100: {MenuItem: models.MenuItem{ID: 100, RestaurantID: 10, Name: "Plov", Price: 100, IsAvailable: true}},
		101: {MenuItem: models.MenuItem{ID: 101, RestaurantID: 10, Name: "Tea", Price: 20, IsAvailable: true}},
		200: {MenuItem: models.MenuItem{ID: 200, RestaurantID: 20, Name: "Pizza", Price: 150, IsAvailable: true}},
		300: {MenuItem: models.MenuItem{ID: 300, RestaurantID: 10, Name: "Soup", Price: 50, IsAvailable: false}},
	}})
}

func TestCartAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("Should add an item with its current menu price", func(t *testing.T) {
		service := newCartFixture()

		cart, err := service.Add(ctx, 1, 100, 2)

		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, int64(10), cart.RestaurantID)
		assert.Equal(t, 100.0, cart.Items[0].Price)
		assert.Equal(t, 2, cart.Items[0].Quantity)
	})

	t.Run("Should merge quantities for a repeated item", func(t *testing.T) {
		service := newCartFixture()

		_, err := service.Add(ctx, 1, 100, 1)
		require.NoError(t, err)
		cart, err := service.Add(ctx, 1, 100, 2)

		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 3, cart.Items[0].Quantity)
	})

	t.Run("Should reject an item from another restaurant", func(t *testing.T) {
		service := newCartFixture()

		_, err := service.Add(ctx, 1, 100, 1)
		require.NoError(t, err)
		_, err = service.Add(ctx, 1, 200, 1)

		assert.ErrorIs(t, err, ErrMixedRestaurants)
	})

	t.Run("Should reject an unavailable item", func(t *testing.T) {
		service := newCartFixture()

		_, err := service.Add(ctx, 1, 300, 1)

		assert.ErrorIs(t, err, ErrMenuItemNotFound)
	})

	t.Run("Should reject a non-positive quantity", func(t *testing.T) {
		service := newCartFixture()

		_, err := service.Add(ctx, 1, 100, 0)

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Should keep carts of different users separate", func(t *testing.T) {
		service := newCartFixture()

		_, err := service.Add(ctx, 1, 100, 1)
		require.NoError(t, err)
		_, err = service.Add(ctx, 2, 200, 1)
		require.NoError(t, err)

		assert.Equal(t, int64(10), service.Get(1).RestaurantID)
		assert.Equal(t, int64(20), service.Get(2).RestaurantID)
	})
}

func TestCartUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should change the quantity of an existing item", func(t *testing.T) {
		service := newCartFixture()

		_, err := service.Add(ctx, 1, 100, 1)
		require.NoError(t, err)

		cart, err := service.Update(1, 100, 5)

		require.NoError(t, err)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("Should remove an item when the quantity drops below one", func(t *testing.T) {
		service := newCartFixture()

		_, err := service.Add(ctx, 1, 100, 2)
		require.NoError(t, err)
		_, err = service.Add(ctx, 1, 101, 1)
		require.NoError(t, err)

		cart, err := service.Update(1, 100, 0)

		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, int64(101), cart.Items[0].MenuItemID)
	})

	t.Run("Should drop the cart when the last item is removed", func(t *testing.T) {
		service := newCartFixture()

		_, err := service.Add(ctx, 1, 100, 1)
		require.NoError(t, err)

		cart, err := service.Update(1, 100, 0)

		require.NoError(t, err)
		assert.Empty(t, cart.Items)
		assert.Empty(t, service.Get(1).Items)
	})

	t.Run("Should reject an update of a missing item", func(t *testing.T) {
		service := newCartFixture()

		_, err := service.Update(1, 100, 2)

		assert.ErrorIs(t, err, ErrCartItemNotInCart)
	})
}

func TestCartClear(t *testing.T) {
	t.Run("Should empty the cart", func(t *testing.T) {
		service := newCartFixture()

		_, err := service.Add(context.Background(), 1, 100, 1)
		require.NoError(t, err)

		service.Clear(1)

		assert.Empty(t, service.Get(1).Items)
	})
}
