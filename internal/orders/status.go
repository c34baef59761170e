package orders

import "strings"

type Status string

const (
	StatusNew       Status = "New"
	StatusPreparing Status = "Preparing"
	StatusReady     Status = "Ready"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// urutan kolom & tombol di board
var AllStatuses = []Status{StatusNew, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled}

var validNext = map[Status]map[Status]bool{
	StatusNew:       {StatusPreparing: true, StatusCancelled: true},
	StatusPreparing: {StatusReady: true, StatusCancelled: true},
	StatusReady:     {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted: {},
	StatusCancelled: {},
}

// forward chain saja, Cancelled tidak termasuk
var forward = map[Status]Status{
	StatusNew:       StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusCompleted,
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// Next returns the single forward successor of s; ok=false for terminal states.
func Next(s Status) (Status, bool) {
	n, ok := forward[s]
	return n, ok
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) Valid() bool {
	_, ok := validNext[s]
	return ok
}

// ParseStatus accepts the canonical names case-insensitively.
func ParseStatus(v string) (Status, bool) {
	for _, s := range AllStatuses {
		if strings.EqualFold(string(s), strings.TrimSpace(v)) {
			return s, true
		}
	}
	return "", false
}
