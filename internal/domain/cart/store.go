package cart

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Store persists the cart document at a fixed path and notifies subscribers
// after every mutation. Mutations load, modify, and rewrite the whole
// document under one lock; there is no cross-instance conflict resolution.
type Store struct {
	path   string
	logger *slog.Logger

	mu   sync.Mutex
	subs []chan Cart
}

// NewStore creates a cart store writing to path.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cart dir: %w", err)
		}
	}
	return &Store{path: path, logger: logger}, nil
}

// Get returns the current cart. A missing document is an empty cart.
func (s *Store) Get() (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add merges an item into the cart. An existing variant has its quantity
// incremented; a new variant is appended. Quantities below 1 default to 1.
func (s *Store) Add(item Item) (Cart, error) {
	if item.VariantID == "" {
		return Cart{}, ErrInvalidItem
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	return s.mutate(func(c *Cart) error {
		if i := c.Find(item.VariantID); i >= 0 {
			c.Items[i].Quantity += item.Quantity
			return nil
		}
		c.Items = append(c.Items, item)
		return nil
	})
}

// SetQuantity sets an item's quantity; zero or less removes the item rather
// than keeping a zero-quantity entry.
func (s *Store) SetQuantity(variantID string, quantity int) (Cart, error) {
	return s.mutate(func(c *Cart) error {
		i := c.Find(variantID)
		if i < 0 {
			return ErrItemNotFound
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
		c.Items[i].Quantity = quantity
		return nil
	})
}

// Remove deletes an item by variant.
func (s *Store) Remove(variantID string) (Cart, error) {
	return s.mutate(func(c *Cart) error {
		i := c.Find(variantID)
		if i < 0 {
			return ErrItemNotFound
		}
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return nil
	})
}

// Clear empties the cart.
func (s *Store) Clear() (Cart, error) {
	return s.mutate(func(c *Cart) error {
		c.Items = nil
		return nil
	})
}

// Subscribe returns a channel receiving the full cart after each mutation.
// Slow subscribers miss notifications rather than blocking mutations.
func (s *Store) Subscribe() <-chan Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Cart, 1)
	s.subs = append(s.subs, ch)
	return ch
}

func (s *Store) mutate(fn func(*Cart) error) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load()
	if err != nil {
		return Cart{}, err
	}
	if err := fn(&c); err != nil {
		return Cart{}, err
	}
	if err := s.save(c); err != nil {
		return Cart{}, err
	}
	for _, ch := range s.subs {
		select {
		case ch <- c:
		default:
		}
	}
	return c, nil
}

func (s *Store) load() (Cart, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, fmt.Errorf("read cart: %w", err)
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		// A corrupt document should not brick the shop; start fresh.
		s.logger.Warn("cart document unreadable, resetting", "error", err)
		return Cart{}, nil
	}
	return c, nil
}

func (s *Store) save(c Cart) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	return nil
}
