package orders

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNewOrderComputesTotal(t *testing.T) {
	o, err := NewOrder("O1", "T-4", []OrderItem{
		{ID: "1", Name: "Classic Cheeseburger", Quantity: 2, Price: 12.99},
		{ID: "5", Name: "Strawberry Milkshake", Quantity: 1, Price: 6.50},
	}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if o.TotalAmount != 32.48 {
		t.Fatalf("TotalAmount = %v, want 32.48", o.TotalAmount)
	}
	if o.Status != StatusNew {
		t.Fatalf("Status = %s, want New", o.Status)
	}
}

func TestNewOrderCopiesItems(t *testing.T) {
	items := []OrderItem{{ID: "1", Name: "Coke", Quantity: 1, Price: 2.5}}
	o, err := NewOrder("O1", "T-1", items, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	items[0].Quantity = 99
	if o.Items[0].Quantity != 1 {
		t.Fatal("order items must not alias the caller's slice")
	}
	if o.CreatedAt.IsZero() {
		t.Fatal("zero createdAt should default to now")
	}
}

func TestNewOrderValidation(t *testing.T) {
	good := OrderItem{ID: "1", Name: "Coke", Quantity: 1, Price: 2.5}
	cases := map[string]struct {
		id, table string
		items     []OrderItem
	}{
		"empty id":       {"", "T-1", []OrderItem{good}},
		"empty table":    {"O1", " ", []OrderItem{good}},
		"no items":       {"O1", "T-1", nil},
		"zero quantity":  {"O1", "T-1", []OrderItem{{ID: "1", Name: "Coke", Quantity: 0, Price: 1}}},
		"negative price": {"O1", "T-1", []OrderItem{{ID: "1", Name: "Coke", Quantity: 1, Price: -1}}},
		"nan price":      {"O1", "T-1", []OrderItem{{ID: "1", Name: "Coke", Quantity: 1, Price: math.NaN()}}},
		"missing name":   {"O1", "T-1", []OrderItem{{ID: "1", Quantity: 1, Price: 1}}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewOrder(c.id, c.table, c.items, time.Now())
			if !errors.Is(err, ErrInvalidOrder) {
				t.Fatalf("err = %v, want ErrInvalidOrder", err)
			}
		})
	}
}

func TestRestoreRejectsUnknownStatus(t *testing.T) {
	_, err := Restore("O1", "T-1", "Paid", []OrderItem{{ID: "1", Name: "Coke", Quantity: 1, Price: 1}}, time.Now())
	if !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("err = %v", err)
	}
}

func TestDemoOrders(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	ds := DemoOrders(now)
	if len(ds) != 4 {
		t.Fatalf("len = %d", len(ds))
	}
	if ds[0].TotalAmount != 32.48 || ds[1].TotalAmount != 19.00 {
		t.Fatalf("totals = %v, %v", ds[0].TotalAmount, ds[1].TotalAmount)
	}
}
