package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Writer is the persistence side of the catalog; *Repo satisfies it.
type Writer interface {
	UpsertItem(ctx context.Context, m MenuItem) error
	DeleteItem(ctx context.Context, id string) error
}

// Catalog holds the menu in memory. Kalau Writer di-set, setiap mutasi ditulis
// dulu ke storage; gagal tulis = mutasi batal.
type Catalog struct {
	mu    sync.RWMutex
	items []MenuItem // terbaru di depan
	w     Writer
}

func NewCatalog(w Writer, items ...MenuItem) *Catalog {
	c := &Catalog{w: w}
	c.items = append(c.items, items...)
	return c
}

func (c *Catalog) List(category, query string) []MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Filter(c.items, category, query)
}

func (c *Catalog) Get(id string) (MenuItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], nil
	}
	return MenuItem{}, ErrNotFound
}

func (c *Catalog) indexOf(id string) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Create assigns a fresh id and puts the item at the top of the list.
func (c *Catalog) Create(ctx context.Context, m MenuItem) (MenuItem, error) {
	m.ID = strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	if err := m.Validate(); err != nil {
		return MenuItem{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.write(ctx, m); err != nil {
		return MenuItem{}, err
	}
	c.items = append([]MenuItem{m}, c.items...)
	return m, nil
}

func (c *Catalog) Update(ctx context.Context, m MenuItem) (MenuItem, error) {
	if err := m.Validate(); err != nil {
		return MenuItem{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(m.ID)
	if i < 0 {
		return MenuItem{}, ErrNotFound
	}
	if err := c.write(ctx, m); err != nil {
		return MenuItem{}, err
	}
	c.items[i] = m
	return m, nil
}

func (c *Catalog) ToggleAvailable(ctx context.Context, id string) (MenuItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return MenuItem{}, ErrNotFound
	}
	m := c.items[i]
	m.Available = !m.Available
	if err := c.write(ctx, m); err != nil {
		return MenuItem{}, err
	}
	c.items[i] = m
	return m, nil
}

func (c *Catalog) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	if c.w != nil {
		if err := c.w.DeleteItem(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("delete menu item %s: %w", id, err)
		}
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

func (c *Catalog) write(ctx context.Context, m MenuItem) error {
	if c.w == nil {
		return nil
	}
	if err := c.w.UpsertItem(ctx, m); err != nil {
		return fmt.Errorf("save menu item %s: %w", m.ID, err)
	}
	return nil
}
