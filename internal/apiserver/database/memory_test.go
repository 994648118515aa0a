package database

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arachchispices/spicestore/internal/common/errorx"
)

func ptr[T any](v T) *T { return &v }

func TestMemoryProductLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	p := &Product{Name: "Ceylon Cinnamon", Category: "spices", Price: 12.5, Stock: 40, Unit: "100g"}
	require.NoError(t, store.CreateProduct(ctx, p))
	assert.Equal(t, int64(1), p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ceylon Cinnamon", got.Name)
	assert.Equal(t, 12.5, got.Price)

	list, err := store.ListProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)

	// patch only the price; every other field must survive
	updated, err := store.UpdateProduct(ctx, p.ID, &ProductPatch{Price: ptr(14.0)})
	require.NoError(t, err)
	assert.Equal(t, 14.0, updated.Price)
	assert.Equal(t, "Ceylon Cinnamon", updated.Name)
	assert.Equal(t, 40, updated.Stock)

	require.NoError(t, store.DeleteProduct(ctx, p.ID))

	_, err = store.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, errorx.ErrNotFound)
	_, err = store.UpdateProduct(ctx, p.ID, &ProductPatch{Price: ptr(1.0)})
	assert.ErrorIs(t, err, errorx.ErrNotFound)
	assert.ErrorIs(t, store.DeleteProduct(ctx, p.ID), errorx.ErrNotFound)
}

func TestMemoryIDsNeverReused(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	first := &Product{Name: "Pepper"}
	require.NoError(t, store.CreateProduct(ctx, first))
	require.NoError(t, store.DeleteProduct(ctx, first.ID))

	second := &Product{Name: "Cloves"}
	require.NoError(t, store.CreateProduct(ctx, second))
	assert.Greater(t, second.ID, first.ID)
}

func TestMemoryProductSearch(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	for _, name := range []string{"Ceylon Cinnamon", "Black Pepper", "Cardamom"} {
		require.NoError(t, store.CreateProduct(ctx, &Product{Name: name, Category: "spices"}))
	}

	list, err := store.ListProducts(ctx, "cInNaMoN")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ceylon Cinnamon", list[0].Name)

	// category also matches
	list, err = store.ListProducts(ctx, "SPICES")
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = store.ListProducts(ctx, "no such thing")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryDuplicateUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	u := &User{Username: "alice", Email: "alice@example.com", Password: "x", Role: RoleUser}
	require.NoError(t, store.CreateUser(ctx, u))
	assert.Equal(t, int64(1), u.ID)

	err := store.CreateUser(ctx, &User{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, errorx.ErrDuplicateUser)

	err = store.CreateUser(ctx, &User{Username: "alice2", Email: "alice@example.com"})
	assert.ErrorIs(t, err, errorx.ErrDuplicateUser)

	// duplicate check is exact, a case variant is a different user
	err = store.CreateUser(ctx, &User{Username: "Alice", Email: "ALICE@example.com"})
	assert.NoError(t, err)
}

func TestMemoryGetUserBy(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.CreateUser(ctx, &User{Username: "bob", Email: "bob@example.com"}))

	byEmail, err := store.GetUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob", byEmail.Username)

	byName, err := store.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, byEmail.ID, byName.ID)

	_, err = store.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, errorx.ErrUserNotFound)
	_, err = store.GetUser(ctx, 999)
	assert.ErrorIs(t, err, errorx.ErrUserNotFound)
}

func TestMemoryFeedbackNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	for i := 1; i <= 3; i++ {
		require.NoError(t, store.CreateFeedback(ctx, &Feedback{
			Name:    fmt.Sprintf("visitor-%d", i),
			Product: "Cinnamon",
			Rating:  i,
			Status:  FeedbackPending,
		}))
	}

	list, err := store.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, int64(3), list[0].ID)
	assert.Equal(t, int64(1), list[2].ID)
}

func TestMemoryOneDeliveryPerOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.CreateDelivery(ctx, &Delivery{OrderID: 7, Status: DeliveryScheduled}))
	err := store.CreateDelivery(ctx, &Delivery{OrderID: 7, Status: DeliveryScheduled})
	assert.ErrorIs(t, err, errorx.ErrDeliveryExists)

	require.NoError(t, store.CreateDelivery(ctx, &Delivery{OrderID: 8, Status: DeliveryScheduled}))

	list, err := store.ListDeliveries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(8), list[0].OrderID)
}

func TestMemoryOrderItemsRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	o := &Order{
		CustomerName: "Nimal",
		Items: OrderItems{
			{Name: "Cinnamon", Quantity: 2, Category: "spices"},
			{Name: "Pepper", Quantity: 1, Category: "spices"},
		},
		Status:    OrderPending,
		Total:     30,
		CreatedBy: 1,
	}
	require.NoError(t, store.CreateOrder(ctx, o))

	got, err := store.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Pepper", got.Items[1].Name)

	// replacing items keeps the rest of the order intact
	updated, err := store.UpdateOrder(ctx, o.ID, &OrderPatch{
		Items: OrderItems{{Name: "Cloves", Quantity: 5}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Nimal", updated.CustomerName)
	assert.Equal(t, 30.0, updated.Total)
}

func TestMemoryCounts(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.CreateUser(ctx, &User{Username: "u1", Email: "u1@example.com"}))
	require.NoError(t, store.CreateProduct(ctx, &Product{Name: "p1"}))
	require.NoError(t, store.CreateProduct(ctx, &Product{Name: "p2"}))
	require.NoError(t, store.CreateOrder(ctx, &Order{CustomerName: "c", Items: OrderItems{{Name: "x", Quantity: 1}}}))

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Users)
	assert.Equal(t, int64(2), counts.Products)
	assert.Equal(t, int64(1), counts.Orders)
	assert.Equal(t, int64(0), counts.Deliveries)
}

func TestMemoryConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.CreateProduct(ctx, &Product{Name: fmt.Sprintf("p-%d", n)})
		}(i)
	}
	wg.Wait()

	list, err := store.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, 50)

	seen := make(map[int64]bool)
	for _, p := range list {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
}
