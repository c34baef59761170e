package reports

import (
	"errors"
	"testing"
	"time"

	"github.com/ariefcatur/restopro-backoffice/internal/orders"
)

var now = time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

func order(t *testing.T, id string, s orders.Status, at time.Time, items ...orders.OrderItem) orders.Order {
	t.Helper()
	o, err := orders.Restore(id, "T-1", s, items, at)
	if err != nil {
		t.Fatal(err)
	}
	return o
}

var (
	burger = orders.OrderItem{ID: "1", Name: "Classic Cheeseburger", Quantity: 2, Price: 12.99}
	shake  = orders.OrderItem{ID: "5", Name: "Strawberry Milkshake", Quantity: 1, Price: 6.50}
	pizza  = orders.OrderItem{ID: "3", Name: "Margherita Pizza", Quantity: 1, Price: 14}
)

func fixture(t *testing.T) []orders.Order {
	return []orders.Order{
		order(t, "A", orders.StatusCompleted, now.Add(-time.Hour), burger, shake), // 32.48
		order(t, "B", orders.StatusCompleted, now.AddDate(0, 0, -2), pizza),       // 14
		order(t, "C", orders.StatusNew, now.Add(-10*time.Minute), pizza),          // open
		order(t, "D", orders.StatusCancelled, now.Add(-20*time.Minute), burger),   // ignored for items
		order(t, "E", orders.StatusCompleted, now.AddDate(0, 0, -40), burger),     // outside week
	}
}

func TestSummarize(t *testing.T) {
	r := Build(fixture(t), now, Options{Range: RangeWeek})
	s := r.Summary
	if s.TotalOrders != 4 || s.OpenOrders != 1 || s.CompletedOrders != 2 || s.CancelledOrders != 1 {
		t.Fatalf("summary counts = %+v", s)
	}
	// (32.48 + 14) * 1.1 = 51.128
	if s.RevenueDisplay != "51.13" {
		t.Fatalf("revenue = %s", s.RevenueDisplay)
	}
	if s.AvgDisplay != "25.56" {
		t.Fatalf("avg = %s", s.AvgDisplay)
	}
}

func TestSummarizeNoCompleted(t *testing.T) {
	s := Summarize([]orders.Order{order(t, "C", orders.StatusNew, now, pizza)})
	if s.Revenue != 0 || s.AvgOrderValue != 0 || s.AvgDisplay != "0.00" {
		t.Fatalf("summary = %+v", s)
	}
}

func TestTrend(t *testing.T) {
	pts := Trend(fixture(t), now, 7)
	if len(pts) != 7 {
		t.Fatalf("len = %d", len(pts))
	}
	last := pts[6]
	if last.Date != "2026-10-15" || last.Day != "Thu" || last.Orders != 1 {
		t.Fatalf("today = %+v", last)
	}
	if pts[4].Orders != 1 || pts[4].Date != "2026-10-13" {
		t.Fatalf("two days ago = %+v", pts[4])
	}
	if pts[0].Orders != 0 {
		t.Fatalf("oldest = %+v", pts[0])
	}
}

func TestTopItems(t *testing.T) {
	top := TopItems(fixture(t), 2)
	if len(top) != 2 {
		t.Fatalf("len = %d", len(top))
	}
	// burger: A(2) + E(2), D dibatalkan
	if top[0].Name != "Classic Cheeseburger" || top[0].Quantity != 4 || top[0].Revenue != 51.96 {
		t.Fatalf("top[0] = %+v", top[0])
	}
	if top[1].Name != "Margherita Pizza" || top[1].Quantity != 2 {
		t.Fatalf("top[1] = %+v", top[1])
	}
}

func TestParseRange(t *testing.T) {
	if r, err := ParseRange(""); err != nil || r != RangeWeek {
		t.Fatalf("default = %s, %v", r, err)
	}
	if r, err := ParseRange("Month"); err != nil || r != RangeMonth {
		t.Fatalf("month = %s, %v", r, err)
	}
	if _, err := ParseRange("decade"); !errors.Is(err, ErrUnknownRange) {
		t.Fatalf("err = %v", err)
	}
	if got := RangeToday.Since(now); !got.Equal(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("today since = %v", got)
	}
}

func TestTrendAcrossDSTStart(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 8 Maret 2026 cuma 23 jam di New York
	at := time.Date(2026, 3, 10, 10, 0, 0, 0, loc)
	os := []orders.Order{order(t, "DST", orders.StatusCompleted, at.Add(-time.Hour), pizza)}

	pts := Trend(os, at, 7)
	last := pts[len(pts)-1]
	if last.Date != "2026-03-10" || last.Orders != 1 {
		t.Fatalf("last point = %+v", last)
	}
	if pts[5].Orders != 0 {
		t.Fatalf("order landed a day early: %+v", pts[5])
	}
}
