/* Copyright (c) 2021 David Bulkow */

package session

import (
	"fmt"
	"time"

	. "github.com/dbulkow/roomreserve/api"
)

const (
	slotStep  = 15 * time.Minute
	firstSlot = 9 * time.Hour
	lastSlot  = 21 * time.Hour
)

// TimeSlots lists the time-of-day choices a form offers, 09:00 to 21:00 in
// quarter hours.
func TimeSlots() []string {
	var slots []string

	for d := firstSlot; d <= lastSlot; d += slotStep {
		h := int(d / time.Hour)
		m := int((d % time.Hour) / time.Minute)
		slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
	}

	return slots
}

// IsToday reports whether r starts on the calendar day of now, in now's
// location.
func IsToday(r Reservation, now time.Time) bool {
	y1, m1, d1 := r.Start.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
