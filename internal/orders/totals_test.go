package orders

import "testing"

func TestDerivedTotals(t *testing.T) {
	for _, total := range []float64{0, 16, 19, 32.48, 123.45} {
		o := Order{TotalAmount: total}
		if o.Tax() != total*0.1 {
			t.Errorf("Tax(%v) = %v", total, o.Tax())
		}
		if o.GrandTotal() != total*1.1 {
			t.Errorf("GrandTotal(%v) = %v", total, o.GrandTotal())
		}
	}
}

func TestTotalsDisplay(t *testing.T) {
	o := Order{TotalAmount: 32.48}
	got := o.Totals()
	want := Totals{Subtotal: "32.48", Tax: "3.25", GrandTotal: "35.73"}
	if got != want {
		t.Fatalf("Totals = %+v, want %+v", got, want)
	}
}

func TestFormatMoney(t *testing.T) {
	cases := map[float64]string{0: "0.00", 16.5: "16.50", 2.005: "2.01", 1883.55: "1883.55"}
	for in, want := range cases {
		if got := FormatMoney(in); got != want {
			t.Errorf("FormatMoney(%v) = %s, want %s", in, got, want)
		}
	}
}

func TestLineTotal(t *testing.T) {
	it := OrderItem{Price: 2.5, Quantity: 2}
	if it.LineTotal() != 5 {
		t.Fatalf("LineTotal = %v", it.LineTotal())
	}
}
