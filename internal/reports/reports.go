package reports

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/ariefcatur/restopro-backoffice/internal/orders"
	"github.com/shopspring/decimal"
)

var ErrUnknownRange = errors.New("range must be one of today, week, month, year")

type Range string

const (
	RangeToday Range = "today"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
)

func ParseRange(s string) (Range, error) {
	switch r := Range(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return RangeWeek, nil
	case RangeToday, RangeWeek, RangeMonth, RangeYear:
		return r, nil
	}
	return "", ErrUnknownRange
}

// Since is the inclusive lower bound of r relative to now.
func (r Range) Since(now time.Time) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch r {
	case RangeToday:
		return midnight
	case RangeMonth:
		return midnight.AddDate(0, 0, -29)
	case RangeYear:
		return midnight.AddDate(-1, 0, 1)
	default:
		return midnight.AddDate(0, 0, -6)
	}
}

type Summary struct {
	TotalOrders     int     `json:"totalOrders"`
	OpenOrders      int     `json:"openOrders"`
	CompletedOrders int     `json:"completedOrders"`
	CancelledOrders int     `json:"cancelledOrders"`
	Revenue         float64 `json:"revenue"`
	AvgOrderValue   float64 `json:"avgOrderValue"`
	RevenueDisplay  string  `json:"revenueDisplay"`
	AvgDisplay      string  `json:"avgOrderValueDisplay"`
}

type DayPoint struct {
	Day     string  `json:"day"`  // Mon, Tue, ...
	Date    string  `json:"date"` // 2006-01-02
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type ItemSale struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type Report struct {
	Range    Range      `json:"range"`
	Summary  Summary    `json:"summary"`
	Trend    []DayPoint `json:"trend"`
	TopItems []ItemSale `json:"topItems"`
}

type Options struct {
	Range Range
	Days  int // panjang trend, default 7
	Top   int // jumlah top item, default 4
}

// Build derives the whole reports page from the current orders.
func Build(all []orders.Order, now time.Time, opt Options) Report {
	if opt.Range == "" {
		opt.Range = RangeWeek
	}
	if opt.Days <= 0 {
		opt.Days = 7
	}
	if opt.Top <= 0 {
		opt.Top = 4
	}
	since := opt.Range.Since(now)
	inRange := make([]orders.Order, 0, len(all))
	for _, o := range all {
		if !o.CreatedAt.Before(since) && !o.CreatedAt.After(now) {
			inRange = append(inRange, o)
		}
	}
	return Report{
		Range:    opt.Range,
		Summary:  Summarize(inRange),
		Trend:    Trend(all, now, opt.Days),
		TopItems: TopItems(inRange, opt.Top),
	}
}

// Summarize counts orders and sums Completed grand totals as revenue.
func Summarize(os []orders.Order) Summary {
	s := Summary{TotalOrders: len(os)}
	revenue := decimal.Zero
	for _, o := range os {
		switch {
		case orders.IsPayable(o.Status):
			s.OpenOrders++
		case o.Status == orders.StatusCompleted:
			s.CompletedOrders++
			revenue = revenue.Add(decimal.NewFromFloat(o.GrandTotal()))
		case o.Status == orders.StatusCancelled:
			s.CancelledOrders++
		}
	}
	s.Revenue, _ = revenue.Float64()
	if s.CompletedOrders > 0 {
		s.AvgOrderValue, _ = revenue.Div(decimal.NewFromInt(int64(s.CompletedOrders))).Float64()
	}
	s.RevenueDisplay = revenue.StringFixed(2)
	s.AvgDisplay = orders.FormatMoney(s.AvgOrderValue)
	return s
}

// Trend returns one point per day for the last days days, oldest first.
func Trend(os []orders.Order, now time.Time, days int) []DayPoint {
	loc := now.Location()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	first := today.AddDate(0, 0, -(days - 1))

	points := make([]DayPoint, days)
	sums := make([]decimal.Decimal, days)
	// index per tanggal kalender, bukan per 24 jam (hari DST bisa 23/25 jam)
	byDate := make(map[string]int, days)
	for i := range points {
		day := first.AddDate(0, 0, i)
		points[i] = DayPoint{Day: day.Format("Mon"), Date: day.Format("2006-01-02")}
		sums[i] = decimal.Zero
		byDate[points[i].Date] = i
	}
	for _, o := range os {
		if o.Status != orders.StatusCompleted {
			continue
		}
		idx, ok := byDate[o.CreatedAt.In(loc).Format("2006-01-02")]
		if !ok {
			continue
		}
		points[idx].Orders++
		sums[idx] = sums[idx].Add(decimal.NewFromFloat(o.GrandTotal()))
	}
	for i := range points {
		points[i].Revenue, _ = sums[i].Float64()
	}
	return points
}

// TopItems aggregates quantity and pre-tax revenue per item name across
// non-cancelled orders, most sold first.
func TopItems(os []orders.Order, n int) []ItemSale {
	type agg struct {
		qty int
		rev decimal.Decimal
	}
	byName := map[string]*agg{}
	for _, o := range os {
		if o.Status == orders.StatusCancelled {
			continue
		}
		for _, it := range o.Items {
			a, ok := byName[it.Name]
			if !ok {
				a = &agg{rev: decimal.Zero}
				byName[it.Name] = a
			}
			a.qty += it.Quantity
			a.rev = a.rev.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	out := make([]ItemSale, 0, len(byName))
	for name, a := range byName {
		rev, _ := a.rev.Float64()
		out = append(out, ItemSale{Name: name, Quantity: a.qty, Revenue: rev})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
