/* Copyright (c) 2021 David Bulkow */

// Package session is the command/response boundary between a front end and
// the reservation store. Front ends hand in raw form input and get back a
// Result carrying a distinct message per failure kind.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	. "github.com/dbulkow/roomreserve/api"
	"github.com/dbulkow/roomreserve/internal/codec"
	"github.com/dbulkow/roomreserve/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Kind string

const (
	KindOK          Kind = "ok"
	KindValidation  Kind = "validation"
	KindOrdering    Kind = "ordering"
	KindOverlap     Kind = "overlap"
	KindUnknownRoom Kind = "unknown-room"
	KindPersist     Kind = "persist"
	KindNotFound    Kind = "not-found"
)

var ErrNothingToExport = errors.New("no reservations to export")

// CreateInput is a reservation form. Start and End may be given whole, or as
// a date plus a time of day; the whole form wins when both are present.
type CreateInput struct {
	Room         string `json:"room"`
	Start        string `json:"start,omitempty"`
	End          string `json:"end,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	StartTime    string `json:"startTime,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	EndTime      string `json:"endTime,omitempty"`
	ReserverName string `json:"reserverName"`
}

func compose(whole, date, clock string) string {
	if strings.TrimSpace(whole) != "" {
		return whole
	}

	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return ""
	}

	return date + "T" + clock
}

// Request turns the form into a store request.
func (in CreateInput) Request() Request {
	return Request{
		Room:         in.Room,
		Start:        compose(in.Start, in.StartDate, in.StartTime),
		End:          compose(in.End, in.EndDate, in.EndTime),
		ReserverName: in.ReserverName,
	}
}

type Result struct {
	Kind        Kind         `json:"kind"`
	Message     string       `json:"message"`
	Err         error        `json:"-"`
	Reservation *Reservation `json:"reservation,omitempty"`
}

func (r Result) OK() bool { return r.Kind == KindOK }

type Export struct {
	Filename string
	Body     []byte
}

type Session struct {
	store  *store.Store
	codec  *codec.Codec
	rooms  []string
	locale locale
	log    *zap.Logger
}

// New wires a session. rooms is the closed set a front end may offer; an
// empty set accepts any room.
func New(st *store.Store, c *codec.Codec, rooms []string, localeName string, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}

	return &Session{
		store:  st,
		codec:  c,
		rooms:  rooms,
		locale: lookup(localeName),
		log:    log,
	}
}

// Open loads the collection from c and returns a session over it. Unreadable
// slot content is logged and replaced by an empty collection.
func Open(c *codec.Codec, rooms []string, localeName string, log *zap.Logger, opts ...store.Option) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}

	initial, err := c.Load()
	if errors.Is(err, codec.ErrDecode) {
		log.Warn("discarding unreadable reservations", zap.Error(err))
	} else if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}

	opts = append([]store.Option{store.WithLogger(log)}, opts...)
	st := store.New(c, initial, opts...)

	return New(st, c, rooms, localeName, log), nil
}

func (s *Session) Store() *store.Store { return s.store }

func (s *Session) Messages() Messages { return s.locale.messages }

func (s *Session) Rooms() []string {
	out := make([]string, len(s.rooms))
	copy(out, s.rooms)
	return out
}

func (s *Session) knownRoom(room string) bool {
	if len(s.rooms) == 0 {
		return true
	}

	for _, r := range s.rooms {
		if r == room {
			return true
		}
	}

	return false
}

func (s *Session) fail(kind Kind, msg string, err error) Result {
	return Result{Kind: kind, Message: msg, Err: err}
}

// HandleCreateRequest validates the form, records the reservation and
// reports the outcome.
func (s *Session) HandleCreateRequest(in CreateInput) Result {
	req := in.Request()
	msgs := s.locale.messages

	room := strings.TrimSpace(req.Room)
	if room != "" && !s.knownRoom(room) {
		return s.fail(KindUnknownRoom, msgs.UnknownRoom, fmt.Errorf("room \"%s\" unknown", room))
	}

	res, err := s.store.Create(req)

	switch {
	case err == nil:
		return Result{Kind: KindOK, Message: msgs.Created, Reservation: &res}
	case errors.Is(err, store.ErrValidation):
		return s.fail(KindValidation, msgs.Validation, err)
	case errors.Is(err, store.ErrOrdering):
		return s.fail(KindOrdering, msgs.Ordering, err)
	case errors.Is(err, store.ErrOverlap):
		return s.fail(KindOverlap, msgs.Overlap, err)
	default:
		s.log.Error("create not saved", zap.Error(err))
		return s.fail(KindPersist, msgs.Persist, err)
	}
}

// HandleCancelRequest removes the reservation identified by id.
func (s *Session) HandleCancelRequest(id string) Result {
	msgs := s.locale.messages

	ref, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return s.fail(KindNotFound, msgs.NotFound, fmt.Errorf("ref \"%s\" is not an id: %w", id, err))
	}

	res, err := s.store.Cancel(ref)
	switch {
	case err == nil:
		return Result{Kind: KindOK, Message: msgs.Cancelled, Reservation: &res}
	case errors.Is(err, store.ErrNotFound):
		return s.fail(KindNotFound, msgs.NotFound, err)
	default:
		s.log.Error("cancel not saved", zap.Error(err))
		return s.fail(KindPersist, msgs.Persist, err)
	}
}

// Export renders the collection as CSV. It refuses an empty collection.
func (s *Session) Export(now time.Time) (Export, error) {
	if s.store.IsEmpty() {
		return Export{}, ErrNothingToExport
	}

	body, err := s.codec.CSV(s.store.List())
	if err != nil {
		return Export{}, fmt.Errorf("render csv: %w", err)
	}

	return Export{
		Filename: s.codec.SuggestFilename(now),
		Body:     body,
	}, nil
}
