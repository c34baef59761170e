package orders

import "github.com/shopspring/decimal"

const TaxRate = 0.10

// ComputeTotal sums price × quantity. Penjumlahan pakai decimal supaya
// 12.99*2 + 6.50 tetap 32.48, hasil akhirnya tetap float64.
func ComputeTotal(items []OrderItem) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	f, _ := sum.Float64()
	return f
}

func Tax(totalAmount float64) float64 { return totalAmount * TaxRate }

func GrandTotal(totalAmount float64) float64 { return totalAmount * (1 + TaxRate) }

func (o Order) Tax() float64        { return Tax(o.TotalAmount) }
func (o Order) GrandTotal() float64 { return GrandTotal(o.TotalAmount) }

// FormatMoney rounds to cents for display only.
func FormatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// LineTotal is what the receipt shows per row.
func (it OrderItem) LineTotal() float64 {
	return it.Price * float64(it.Quantity)
}

// Totals is the display block used by order details, payment modal and receipt.
type Totals struct {
	Subtotal   string `json:"subtotal"`
	Tax        string `json:"tax"`
	GrandTotal string `json:"grandTotal"`
}

func (o Order) Totals() Totals {
	return Totals{
		Subtotal:   FormatMoney(o.TotalAmount),
		Tax:        FormatMoney(o.Tax()),
		GrandTotal: FormatMoney(o.GrandTotal()),
	}
}
