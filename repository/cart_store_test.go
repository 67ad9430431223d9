package repository

import (
	"testing"
	"time"

	"localeats/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func sampleCart() *entity.Cart {
	return &entity.Cart{
		RestaurantID: 7,
		Items: []entity.CartLineItem{{
			ID:         "line-1",
			MenuItemID: 3,
			ItemName:   "Pad See Ew",
			BasePrice:  decimal.RequireFromString("11.50"),
			Quantity:   1,
			ItemTotal:  decimal.RequireFromString("11.50"),
		}},
		Tip: decimal.Zero,
	}
}

func TestMemoryCartStore_MissForUnknownUser(t *testing.T) {
	s := NewMemoryCartStore(0)

	_, ok := s.Get(1)
	require.False(t, ok)
}

func TestMemoryCartStore_RoundTrip(t *testing.T) {
	s := NewMemoryCartStore(0)
	s.Set(1, sampleCart())

	got, ok := s.Get(1)
	require.True(t, ok)
	require.EqualValues(t, 1, got.UserID)
	require.EqualValues(t, 7, got.RestaurantID)
	require.Len(t, got.Items, 1)
	require.False(t, got.UpdatedAt.IsZero())

	_, ok = s.Get(2)
	require.False(t, ok)
}

func TestMemoryCartStore_ReadersAndWritersDoNotAlias(t *testing.T) {
	s := NewMemoryCartStore(0)
	in := sampleCart()
	s.Set(1, in)

	// Mutating the cart we passed in must not reach the store.
	in.Items[0].ItemName = "changed"
	in.Items = append(in.Items, entity.CartLineItem{ID: "line-2"})

	got, ok := s.Get(1)
	require.True(t, ok)
	require.Len(t, got.Items, 1)
	require.Equal(t, "Pad See Ew", got.Items[0].ItemName)

	// Mutating what Get handed out must not reach the store either.
	got.Items[0].Quantity = 99
	again, _ := s.Get(1)
	require.Equal(t, 1, again.Items[0].Quantity)
}

func TestMemoryCartStore_Delete(t *testing.T) {
	s := NewMemoryCartStore(0)
	s.Set(1, sampleCart())
	s.Delete(1)

	_, ok := s.Get(1)
	require.False(t, ok)

	s.Delete(1) // deleting a missing cart is a no-op
}

func TestMemoryCartStore_TTLExpiresOnRead(t *testing.T) {
	s := NewMemoryCartStore(5 * time.Millisecond)
	s.Set(1, sampleCart())

	time.Sleep(30 * time.Millisecond)

	_, ok := s.Get(1)
	require.False(t, ok)
}

func TestMemoryCartStore_ZeroTTLNeverExpires(t *testing.T) {
	s := NewMemoryCartStore(0)
	s.Set(1, sampleCart())

	// Backdate far past any plausible TTL.
	s.mu.Lock()
	s.carts[1].UpdatedAt = time.Now().Add(-24 * time.Hour)
	s.mu.Unlock()

	_, ok := s.Get(1)
	require.True(t, ok)
}

func TestMemoryCartStore_SweeperEvicts(t *testing.T) {
	s := NewMemoryCartStore(5 * time.Millisecond)
	stop := make(chan struct{})
	defer close(stop)
	s.StartSweeper(5*time.Millisecond, stop)

	s.Set(1, sampleCart())

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.RLock()
		n := len(s.carts)
		s.mu.RUnlock()
		if n == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("sweeper never evicted the expired cart")
}
