package orders

import "time"

// DemoOrders is the demo board used when the document store is empty or
// unreachable and demo seeding is enabled.
func DemoOrders(now time.Time) []Order {
	type demo struct {
		id, table string
		status    Status
		age       time.Duration
		items     []OrderItem
	}
	ds := []demo{
		{"ORD-1025", "T-4", StatusNew, 0, []OrderItem{
			{ID: "1", Name: "Classic Cheeseburger", Quantity: 2, Price: 12.99},
			{ID: "5", Name: "Strawberry Milkshake", Quantity: 1, Price: 6.50},
		}},
		{"ORD-1024", "T-8", StatusPreparing, 15 * time.Minute, []OrderItem{
			{ID: "3", Name: "Margherita Pizza", Quantity: 1, Price: 14.00},
			{ID: "53", Name: "Coke", Quantity: 2, Price: 2.50},
		}},
		{"ORD-1023", "T-2", StatusReady, 25 * time.Minute, []OrderItem{
			{ID: "4", Name: "Pepperoni Feast", Quantity: 1, Price: 16.00},
		}},
		{"ORD-1022", "Takeout", StatusCompleted, 45 * time.Minute, []OrderItem{
			{ID: "2", Name: "Double Bacon Blast", Quantity: 1, Price: 16.50},
		}},
	}
	out := make([]Order, 0, len(ds))
	for _, d := range ds {
		o, err := Restore(d.id, d.table, d.status, d.items, now.Add(-d.age))
		if err != nil {
			panic(err) // fixture rusak = bug
		}
		out = append(out, o)
	}
	return out
}
