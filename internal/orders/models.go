package orders

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var ErrInvalidOrder = errors.New("invalid order")

type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Order struct {
	ID          string      `json:"id"`
	TableID     string      `json:"tableId"`
	Status      Status      `json:"status"` // lihat status.go
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (it OrderItem) validate() error {
	switch {
	case strings.TrimSpace(it.ID) == "":
		return fmt.Errorf("%w: item id is required", ErrInvalidOrder)
	case strings.TrimSpace(it.Name) == "":
		return fmt.Errorf("%w: item %s has no name", ErrInvalidOrder, it.ID)
	case it.Quantity <= 0:
		return fmt.Errorf("%w: invalid quantity for item %s", ErrInvalidOrder, it.ID)
	case math.IsNaN(it.Price) || math.IsInf(it.Price, 0) || it.Price < 0:
		return fmt.Errorf("%w: invalid price for item %s", ErrInvalidOrder, it.ID)
	}
	return nil
}

// NewOrder builds a validated order in status New. totalAmount dihitung di sini
// dan tidak pernah dihitung ulang.
func NewOrder(id, tableID string, items []OrderItem, createdAt time.Time) (Order, error) {
	return restore(id, tableID, StatusNew, items, createdAt)
}

// Restore rebuilds an order loaded from storage, keeping its status.
func Restore(id, tableID string, status Status, items []OrderItem, createdAt time.Time) (Order, error) {
	return restore(id, tableID, status, items, createdAt)
}

func restore(id, tableID string, status Status, items []OrderItem, createdAt time.Time) (Order, error) {
	if strings.TrimSpace(id) == "" {
		return Order{}, fmt.Errorf("%w: id is required", ErrInvalidOrder)
	}
	if strings.TrimSpace(tableID) == "" {
		return Order{}, fmt.Errorf("%w: table is required", ErrInvalidOrder)
	}
	if !status.Valid() {
		return Order{}, fmt.Errorf("%w: unknown status %q", ErrInvalidOrder, status)
	}
	if len(items) == 0 {
		return Order{}, fmt.Errorf("%w: order %s has no items", ErrInvalidOrder, id)
	}
	for _, it := range items {
		if err := it.validate(); err != nil {
			return Order{}, err
		}
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	own := make([]OrderItem, len(items))
	copy(own, items)
	return Order{
		ID:          id,
		TableID:     tableID,
		Status:      status,
		Items:       own,
		TotalAmount: ComputeTotal(own),
		CreatedAt:   createdAt.UTC(),
	}, nil
}

func (o Order) clone() Order {
	c := o
	c.Items = make([]OrderItem, len(o.Items))
	copy(c.Items, o.Items)
	return c
}
