package orders

import (
	"testing"
	"time"
)

func ids(os []Order) []string {
	out := make([]string, len(os))
	for i, o := range os {
		out[i] = o.ID
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sample(t *testing.T) []Order {
	base := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	return []Order{
		mustOrder(t, "A", StatusNew, base),
		mustOrder(t, "B", StatusCompleted, base.Add(-time.Hour)),
		mustOrder(t, "C", StatusNew, base.Add(-2*time.Hour)),
		mustOrder(t, "D", StatusCompleted, base.Add(time.Hour)),
		mustOrder(t, "E", StatusCancelled, base),
		mustOrder(t, "F", StatusReady, base),
		mustOrder(t, "G", StatusPreparing, base),
	}
}

func TestFilterByStatusKeepsOrder(t *testing.T) {
	in := sample(t)
	if got := ids(FilterByStatus(in, StatusNew)); !equalIDs(got, "A", "C") {
		t.Fatalf("New = %v", got)
	}
	if got := FilterByStatus(in[:0], StatusNew); got == nil || len(got) != 0 {
		t.Fatalf("empty input should give empty, non-nil slice: %v", got)
	}
}

func TestCompletedNewestFirst(t *testing.T) {
	if got := ids(Completed(sample(t))); !equalIDs(got, "D", "B") {
		t.Fatalf("Completed = %v", got)
	}
}

func TestPayable(t *testing.T) {
	if got := ids(Payable(sample(t))); !equalIDs(got, "A", "C", "F", "G") {
		t.Fatalf("Payable = %v", got)
	}
}

func TestSearch(t *testing.T) {
	in := sample(t)
	if got := ids(Search(in, "t-c")); !equalIDs(got, "C") {
		t.Fatalf("Search table = %v", got)
	}
	if got := Search(in, "  "); len(got) != len(in) {
		t.Fatalf("blank search = %d", len(got))
	}
}

func TestCountByStatus(t *testing.T) {
	c := CountByStatus(sample(t))
	want := map[Status]int{StatusNew: 2, StatusPreparing: 1, StatusReady: 1, StatusCompleted: 2, StatusCancelled: 1}
	for s, n := range want {
		if c[s] != n {
			t.Errorf("%s = %d, want %d", s, c[s], n)
		}
	}
}

func TestKanban(t *testing.T) {
	cols := Kanban(sample(t))
	if len(cols) != 4 {
		t.Fatalf("columns = %d", len(cols))
	}
	if cols[0].Count != 2 || !equalIDs(ids(cols[0].Orders), "A", "C") {
		t.Fatalf("New column = %+v", cols[0])
	}
	if cols[3].Status != StatusCompleted || !equalIDs(ids(cols[3].Orders), "D", "B") {
		t.Fatalf("Completed column = %+v", cols[3])
	}
}

func TestProjectionsDoNotMutateInput(t *testing.T) {
	in := sample(t)
	_ = Completed(in)
	if !equalIDs(ids(in), "A", "B", "C", "D", "E", "F", "G") {
		t.Fatalf("input reordered: %v", ids(in))
	}
}
