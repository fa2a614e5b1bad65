/* Copyright (c) 2021 David Bulkow */

package api

import (
	"sort"
	"strings"
)

// ByStart orders reservations by start time. Use with sort.Stable so equal
// start times keep insertion order.
type ByStart []Reservation

func (b ByStart) Len() int      { return len(b) }
func (b ByStart) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b ByStart) Less(i, j int) bool {
	return b[i].Start.Before(b[j].Start)
}

// ByRoom groups reservations by room, then start time.
type ByRoom []Reservation

func (b ByRoom) Len() int      { return len(b) }
func (b ByRoom) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b ByRoom) Less(i, j int) bool {
	if cmp := strings.Compare(b[i].Room, b[j].Room); cmp != 0 {
		return cmp < 0
	}
	return b[i].Start.Before(b[j].Start)
}

// Sorted returns a copy of res in chronological order.
func Sorted(res []Reservation) []Reservation {
	out := make([]Reservation, len(res))
	copy(out, res)
	sort.Stable(ByStart(out))
	return out
}
