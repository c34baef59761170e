package orders

import (
	"sort"
	"strings"
)

// Projection helpers. Semuanya pure: input tidak diubah, output slice baru.

func FilterByStatus(orders []Order, s Status) []Order {
	out := make([]Order, 0)
	for _, o := range orders {
		if o.Status == s {
			out = append(out, o)
		}
	}
	return out
}

// Completed returns completed orders, newest first.
func Completed(orders []Order) []Order {
	out := FilterByStatus(orders, StatusCompleted)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func IsPayable(s Status) bool {
	return s == StatusNew || s == StatusPreparing || s == StatusReady
}

// Payable is the subset shown on the payment page.
func Payable(orders []Order) []Order {
	out := make([]Order, 0)
	for _, o := range orders {
		if IsPayable(o.Status) {
			out = append(out, o)
		}
	}
	return out
}

// Search matches tableId or id, case-insensitive. Empty term matches all.
func Search(orders []Order, term string) []Order {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append(make([]Order, 0, len(orders)), orders...)
	}
	out := make([]Order, 0)
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.TableID), term) || strings.Contains(strings.ToLower(o.ID), term) {
			out = append(out, o)
		}
	}
	return out
}

func CountByStatus(orders []Order) map[Status]int {
	counts := make(map[Status]int, len(AllStatuses))
	for _, s := range AllStatuses {
		counts[s] = 0
	}
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts
}

type Column struct {
	Title  string  `json:"title"`
	Status Status  `json:"status"`
	Count  int     `json:"count"`
	Orders []Order `json:"orders"`
}

// Kanban builds the board: New, Preparing, Ready in store order, lalu
// Completed terbaru di atas. Cancelled tidak punya kolom.
func Kanban(orders []Order) []Column {
	cols := []Column{
		{Title: "New Orders", Status: StatusNew, Orders: FilterByStatus(orders, StatusNew)},
		{Title: "Preparing", Status: StatusPreparing, Orders: FilterByStatus(orders, StatusPreparing)},
		{Title: "Ready", Status: StatusReady, Orders: FilterByStatus(orders, StatusReady)},
		{Title: "Completed", Status: StatusCompleted, Orders: Completed(orders)},
	}
	for i := range cols {
		cols[i].Count = len(cols[i].Orders)
	}
	return cols
}
