package orders

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := map[Status][]Status{
		StatusNew:       {StatusPreparing, StatusCancelled},
		StatusPreparing: {StatusReady, StatusCancelled},
		StatusReady:     {StatusCompleted, StatusCancelled},
		StatusCompleted: nil,
		StatusCancelled: nil,
	}
	for _, from := range AllStatuses {
		ok := map[Status]bool{}
		for _, to := range allowed[from] {
			ok[to] = true
		}
		for _, to := range AllStatuses {
			if got := CanTransition(from, to); got != ok[to] {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, ok[to])
			}
		}
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	if CanTransition("Paid", StatusCompleted) {
		t.Fatal("unknown source status must not transition")
	}
	if CanTransition(StatusNew, "Paid") {
		t.Fatal("unknown target status must not be admissible")
	}
}

func TestNext(t *testing.T) {
	cases := []struct {
		from Status
		want Status
		ok   bool
	}{
		{StatusNew, StatusPreparing, true},
		{StatusPreparing, StatusReady, true},
		{StatusReady, StatusCompleted, true},
		{StatusCompleted, "", false},
		{StatusCancelled, "", false},
	}
	for _, c := range cases {
		got, ok := Next(c.from)
		if got != c.want || ok != c.ok {
			t.Errorf("Next(%s) = %q,%v want %q,%v", c.from, got, ok, c.want, c.ok)
		}
		if ok && IsTerminal(c.from) {
			t.Errorf("%s is terminal but has a successor", c.from)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if s, ok := ParseStatus(" preparing "); !ok || s != StatusPreparing {
		t.Fatalf("ParseStatus = %q,%v", s, ok)
	}
	if _, ok := ParseStatus("All"); ok {
		t.Fatal("All is a filter, not a status")
	}
}
