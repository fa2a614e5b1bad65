/* Copyright (c) 2021 David Bulkow */

// Package codec moves a reservation collection to and from a durable slot
// and renders it as CSV.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	. "github.com/dbulkow/roomreserve/api"
	"github.com/dbulkow/roomreserve/internal/slot"
	"github.com/dbulkow/roomreserve/internal/store"
	"github.com/google/uuid"
)

// SlotKey is the key the collection is stored under.
const SlotKey = "roomReservations"

const (
	wallClock = "2006-01-02T15:04:05"
	isoMillis = "2006-01-02T15:04:05.000Z"
)

var ErrDecode = errors.New("stored reservations unreadable")

// DecodeError reports slot content that could not be turned back into
// reservations. Load returns it alongside an empty collection.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %v", ErrDecode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// document is the stored form of one reservation. Start and end are wall
// clock times without a zone; createdAt is UTC.
type document struct {
	ID            string `json:"id,omitempty"`
	Room          string `json:"room"`
	StartDateTime string `json:"startDateTime"`
	EndDateTime   string `json:"endDateTime"`
	ReserverName  string `json:"reserverName"`
	CreatedAt     string `json:"createdAt"`
}

type Codec struct {
	slot   slot.Slot
	key    string
	loc    *time.Location
	header Header
	prefix string
	sync.Mutex
}

type Option func(*Codec)

// WithLocation sets the wall clock location used for stored and exported
// times.
func WithLocation(loc *time.Location) Option {
	return func(c *Codec) { c.loc = loc }
}

// WithHeader sets the CSV column labels.
func WithHeader(h Header) Option {
	return func(c *Codec) { c.header = h }
}

// WithPrefix sets the export filename prefix.
func WithPrefix(prefix string) Option {
	return func(c *Codec) { c.prefix = prefix }
}

// WithKey overrides SlotKey.
func WithKey(key string) Option {
	return func(c *Codec) { c.key = key }
}

func New(s slot.Slot, opts ...Option) *Codec {
	c := &Codec{
		slot:   s,
		key:    SlotKey,
		loc:    time.Local,
		header: HeaderJA,
		prefix: PrefixJA,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Save replaces the slot content with res.
func (c *Codec) Save(res []Reservation) error {
	docs := make([]document, 0, len(res))

	for _, r := range res {
		docs = append(docs, document{
			ID:            r.ID.String(),
			Room:          r.Room,
			StartDateTime: r.Start.In(c.loc).Format(wallClock),
			EndDateTime:   r.End.In(c.loc).Format(wallClock),
			ReserverName:  r.ReserverName,
			CreatedAt:     r.CreatedAt.UTC().Format(isoMillis),
		})
	}

	b, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode reservations: %w", err)
	}

	c.Lock()
	defer c.Unlock()

	return c.slot.Put(c.key, b)
}

// Load reads the slot. An empty slot yields an empty collection and no error.
// Unreadable content yields an empty collection and a *DecodeError.
func (c *Codec) Load() ([]Reservation, error) {
	c.Lock()
	b, err := c.slot.Get(c.key)
	c.Unlock()

	if errors.Is(err, slot.ErrNotFound) {
		return []Reservation{}, nil
	}
	if err != nil {
		return nil, err
	}

	res, err := c.decode(b)
	if err != nil {
		return []Reservation{}, &DecodeError{Err: err}
	}

	return res, nil
}

func (c *Codec) decode(b []byte) ([]Reservation, error) {
	var docs []document

	err := json.Unmarshal(b, &docs)
	if err != nil {
		return nil, err
	}

	res := make([]Reservation, 0, len(docs))

	for i, d := range docs {
		r := Reservation{
			Room:         d.Room,
			ReserverName: d.ReserverName,
		}

		// documents written before ids existed get one now
		if d.ID == "" {
			r.ID = uuid.New()
		} else {
			r.ID, err = uuid.Parse(d.ID)
			if err != nil {
				return nil, fmt.Errorf("record %d: id: %w", i, err)
			}
		}

		r.Start, err = store.ParseTime(d.StartDateTime, c.loc)
		if err != nil {
			return nil, fmt.Errorf("record %d: startDateTime: %w", i, err)
		}

		r.End, err = store.ParseTime(d.EndDateTime, c.loc)
		if err != nil {
			return nil, fmt.Errorf("record %d: endDateTime: %w", i, err)
		}

		if d.CreatedAt != "" {
			r.CreatedAt, err = time.Parse(time.RFC3339Nano, d.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("record %d: createdAt: %w", i, err)
			}
		}

		res = append(res, r)
	}

	return res, nil
}
