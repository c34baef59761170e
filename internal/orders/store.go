package orders

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrAlreadyExists = errors.New("order already exists")
	ErrStaleStatus   = errors.New("stored status does not match")
)

// StatusChange dikirim ke subscriber setiap transisi yang berhasil.
type StatusChange struct {
	Order     Order     `json:"order"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	ChangedAt time.Time `json:"changedAt"`
}

// Store is the in-memory order collection for the running process. All
// mutations go through it; readers get copies.
type Store struct {
	mu     sync.RWMutex
	orders []*Order
	byID   map[string]*Order
	subs   []func(StatusChange)
	now    func() time.Time

	// delivery ticket: perubahan dikirim ke subscriber sesuai urutan apply
	seq       uint64
	delivered uint64
	turnMu    sync.Mutex
	turn      *sync.Cond
}

// NewStore seeds the store. Duplicate ids in initial are skipped; use Load to
// find out which.
func NewStore(initial ...Order) *Store {
	s := &Store{byID: map[string]*Order{}, now: time.Now}
	s.turn = sync.NewCond(&s.turnMu)
	s.Load(initial)
	return s
}

// Load adds every order in all and returns the ids that were already present.
func (s *Store) Load(all []Order) (dups []string) {
	for _, o := range all {
		if err := s.Add(o); err != nil {
			dups = append(dups, o.ID)
		}
	}
	return dups
}

// Subscribe registers fn for every successful status change. fn dipanggil di
// luar lock, urut sesuai registrasi.
func (s *Store) Subscribe(fn func(StatusChange)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) Add(o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[o.ID]; ok {
		return ErrAlreadyExists
	}
	c := o.clone()
	s.orders = append(s.orders, &c)
	s.byID[c.ID] = &c
	return nil
}

// All returns a snapshot in insertion order.
func (s *Store) All() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.clone())
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

func (s *Store) Get(id string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.byID[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o.clone(), nil
}

// SetStatus applies the transition rules. A request that is not an admissible
// successor is a no-op: the current order is returned with applied=false.
// Subscribers see changes in the order they were applied; a subscriber must
// not mutate the store.
func (s *Store) SetStatus(id string, to Status) (order Order, applied bool, err error) {
	return s.apply(id, func(Status) Status { return to })
}

// Advance moves the order one step along New→Preparing→Ready→Completed. The
// successor is picked under the same lock that applies it.
func (s *Store) Advance(id string) (Order, bool, error) {
	return s.apply(id, func(cur Status) Status {
		next, _ := Next(cur)
		return next
	})
}

func (s *Store) apply(id string, target func(Status) Status) (Order, bool, error) {
	s.mu.Lock()
	o, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return Order{}, false, ErrNotFound
	}
	from := o.Status
	to := target(from)
	if !CanTransition(from, to) {
		cur := o.clone()
		s.mu.Unlock()
		return cur, false, nil
	}
	o.Status = to
	change := StatusChange{Order: o.clone(), From: from, To: to, ChangedAt: s.now().UTC()}
	subs := append([]func(StatusChange){}, s.subs...)
	ticket := s.seq
	s.seq++
	s.mu.Unlock()

	s.deliver(ticket, change, subs)
	return change.Order, true, nil
}

// deliver waits for ticket's turn so sinks never observe changes out of order.
func (s *Store) deliver(ticket uint64, c StatusChange, subs []func(StatusChange)) {
	s.turnMu.Lock()
	for s.delivered != ticket {
		s.turn.Wait()
	}
	s.turnMu.Unlock()

	defer func() {
		s.turnMu.Lock()
		s.delivered++
		s.turn.Broadcast()
		s.turnMu.Unlock()
	}()
	for _, fn := range subs {
		fn(c)
	}
}
