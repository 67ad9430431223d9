package repository

import (
	"sync"
	"time"

	"localeats/entity"
)

// CartStore keeps the per-user carts. Carts are session-scoped working state,
// so the store is keyed by user ID and intentionally not durable; concurrent
// mutations for the same user are last-write-wins.
type CartStore interface {
	// Get returns the stored cart and whether one exists. Implementations
	// return a copy; callers persist changes with Set.
	Get(userID uint) (*entity.Cart, bool)
	Set(userID uint, cart *entity.Cart)
	Delete(userID uint)
}

// MemoryCartStore is the in-process CartStore. A TTL > 0 expires carts that
// have not been touched, so abandoned sessions do not accumulate.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[uint]*entity.Cart
	ttl   time.Duration
}

func NewMemoryCartStore(ttl time.Duration) *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[uint]*entity.Cart), ttl: ttl}
}

func (s *MemoryCartStore) Get(userID uint) (*entity.Cart, bool) {
	s.mu.RLock()
	c, ok := s.carts[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(c, time.Now()) {
		s.Delete(userID)
		return nil, false
	}
	return c.Clone(), true
}

func (s *MemoryCartStore) Set(userID uint, cart *entity.Cart) {
	cp := cart.Clone()
	cp.UserID = userID
	cp.UpdatedAt = time.Now()
	s.mu.Lock()
	s.carts[userID] = cp
	s.mu.Unlock()
}

func (s *MemoryCartStore) Delete(userID uint) {
	s.mu.Lock()
	delete(s.carts, userID)
	s.mu.Unlock()
}

func (s *MemoryCartStore) expired(c *entity.Cart, now time.Time) bool {
	return s.ttl > 0 && now.Sub(c.UpdatedAt) > s.ttl
}

// StartSweeper evicts expired carts every interval until stop is closed.
func (s *MemoryCartStore) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	if s.ttl <= 0 {
		return
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case now := <-t.C:
				s.mu.Lock()
				for uid, c := range s.carts {
					if s.expired(c, now) {
						delete(s.carts, uid)
					}
				}
				s.mu.Unlock()
			case <-stop:
				return
			}
		}
	}()
}
