/* Copyright (c) 2021 David Bulkow */

package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reservation binds a room to a half-open [Start, End) interval. Values are
// never modified after creation; an edit is a cancel followed by a create.
type Reservation struct {
	ID           uuid.UUID `json:"id"`
	Room         string    `json:"room"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	ReserverName string    `json:"reserverName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Request is a create candidate as handed over by a front end. Start and End
// are ISO-compatible date-time strings in the host's wall clock.
type Request struct {
	Room         string `json:"room"`
	Start        string `json:"start"`
	End          string `json:"end"`
	ReserverName string `json:"reserverName"`
}

// Overlaps reports whether r and the interval [start, end) share an instant.
func (r Reservation) Overlaps(start, end time.Time) bool {
	return r.Start.Before(end) && start.Before(r.End)
}

func (r Reservation) String() string {
	return fmt.Sprintf("%s room %s %s - %s (%s)", r.ID, r.Room,
		r.Start.Format("2006-01-02 15:04"), r.End.Format("2006-01-02 15:04"), r.ReserverName)
}
