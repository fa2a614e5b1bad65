/* Copyright (c) 2021 David Bulkow */

package store

import (
	"strings"
	"sync"
	"time"

	. "github.com/dbulkow/roomreserve/api"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Persister receives the whole collection after every mutation.
type Persister interface {
	Save([]Reservation) error
}

type nonstore struct{}

func (s *nonstore) Save([]Reservation) error { return nil }

// Store holds the reservations of one session. No two reservations for the
// same room have overlapping [Start, End) intervals.
type Store struct {
	reservations []Reservation
	persist      Persister
	log          *zap.Logger
	loc          *time.Location
	now          func() time.Time
	subscribers  map[int]func([]Reservation)
	nextSub      int
	sync.Mutex
}

type Option func(*Store)

// WithLogger sets the logger used to report mutations.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithLocation sets the location zone-less request times are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.loc = loc }
}

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a store seeded with initial. A nil persister keeps the store
// purely in memory.
func New(persist Persister, initial []Reservation, opts ...Option) *Store {
	s := &Store{
		reservations: make([]Reservation, 0, len(initial)),
		persist:      persist,
		log:          zap.NewNop(),
		loc:          time.Local,
		now:          time.Now,
		subscribers:  make(map[int]func([]Reservation)),
	}

	if s.persist == nil {
		s.persist = &nonstore{}
	}

	for _, opt := range opts {
		opt(s)
	}

	for _, r := range initial {
		if c, ok := s.conflict(r.Room, r.Start, r.End); ok {
			s.log.Warn("loaded reservation overlaps an earlier one",
				zap.Stringer("reservation", r),
				zap.Stringer("conflict", c))
		}
		s.reservations = append(s.reservations, r)
	}

	return s
}

// conflict scans for the first reservation in room overlapping [start, end).
// Caller holds the lock or is still constructing the store.
func (s *Store) conflict(room string, start, end time.Time) (Reservation, bool) {
	for _, r := range s.reservations {
		if r.Room != room {
			continue
		}

		if r.Overlaps(start, end) {
			return r, true
		}
	}

	return Reservation{}, false
}

// Overlapping lists reservations in room sharing any instant with [start, end).
func (s *Store) Overlapping(room string, start, end time.Time) []Reservation {
	s.Lock()
	defer s.Unlock()

	response := make([]Reservation, 0)

	for _, r := range s.reservations {
		if r.Room == room && r.Overlaps(start, end) {
			response = append(response, r)
		}
	}

	return Sorted(response)
}

func (s *Store) validate(req Request) (start, end time.Time, err error) {
	switch {
	case strings.TrimSpace(req.Room) == "":
		return start, end, missing("room")
	case strings.TrimSpace(req.Start) == "":
		return start, end, missing("start")
	case strings.TrimSpace(req.End) == "":
		return start, end, missing("end")
	case strings.TrimSpace(req.ReserverName) == "":
		return start, end, missing("reserver name")
	}

	start, err = ParseTime(req.Start, s.loc)
	if err != nil {
		return start, end, err
	}

	end, err = ParseTime(req.End, s.loc)
	if err != nil {
		return start, end, err
	}

	if !start.Before(end) {
		return start, end, ErrOrdering
	}

	return start, end, nil
}

// Create adds a reservation. The collection is only changed once every check
// has passed and the new state has been persisted.
func (s *Store) Create(req Request) (Reservation, error) {
	start, end, err := s.validate(req)
	if err != nil {
		return Reservation{}, err
	}

	s.Lock()
	defer s.Unlock()

	room := strings.TrimSpace(req.Room)

	if c, ok := s.conflict(room, start, end); ok {
		return Reservation{}, &OverlapError{Conflict: c}
	}

	res := Reservation{
		ID:           uuid.New(),
		Room:         room,
		Start:        start,
		End:          end,
		ReserverName: strings.TrimSpace(req.ReserverName),
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}

	s.reservations = append(s.reservations, res)

	err = s.persist.Save(s.snapshot())
	if err != nil {
		s.reservations = s.reservations[:len(s.reservations)-1]
		return Reservation{}, &PersistError{Op: "add", Err: err}
	}

	s.log.Info("added", zap.Stringer("reservation", res))

	s.notify()

	return res, nil
}

// Cancel removes the reservation with the given id.
func (s *Store) Cancel(id uuid.UUID) (Reservation, error) {
	s.Lock()
	defer s.Unlock()

	for i, r := range s.reservations {
		if r.ID != id {
			continue
		}

		prev := s.reservations
		next := make([]Reservation, 0, len(prev)-1)
		next = append(next, prev[:i]...)
		next = append(next, prev[i+1:]...)
		s.reservations = next

		err := s.persist.Save(s.snapshot())
		if err != nil {
			s.reservations = prev
			return Reservation{}, &PersistError{Op: "cancel", Err: err}
		}

		s.log.Info("cancelled", zap.Stringer("reservation", r))

		s.notify()

		return r, nil
	}

	return Reservation{}, ErrNotFound
}

// Get returns the reservation with the given id.
func (s *Store) Get(id uuid.UUID) (Reservation, error) {
	s.Lock()
	defer s.Unlock()

	// recent entries are the likely targets
	for i := len(s.reservations) - 1; i >= 0; i-- {
		if s.reservations[i].ID == id {
			return s.reservations[i], nil
		}
	}

	return Reservation{}, ErrNotFound
}

// List returns a chronological copy of the collection; ties keep insertion
// order.
func (s *Store) List() []Reservation {
	s.Lock()
	defer s.Unlock()

	return Sorted(s.reservations)
}

// Snapshot returns the collection in insertion order.
func (s *Store) Snapshot() []Reservation {
	s.Lock()
	defer s.Unlock()

	return s.snapshot()
}

func (s *Store) snapshot() []Reservation {
	out := make([]Reservation, len(s.reservations))
	copy(out, s.reservations)
	return out
}

func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

func (s *Store) Len() int {
	s.Lock()
	defer s.Unlock()

	return len(s.reservations)
}

// Subscribe registers fn to receive the sorted collection after every
// successful mutation. fn runs with the store locked and must not call back
// into the store; each call gets its own copy.
func (s *Store) Subscribe(fn func([]Reservation)) (cancel func()) {
	s.Lock()
	defer s.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.Lock()
		defer s.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) notify() {
	if len(s.subscribers) == 0 {
		return
	}

	for _, fn := range s.subscribers {
		fn(Sorted(s.reservations))
	}
}
