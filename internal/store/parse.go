/* Copyright (c) 2021 David Bulkow */

package store

import (
	"fmt"
	"strings"
	"time"
)

// layouts accepted for start and end, tried in order. Zone-less layouts are
// read in the store's location.
var layouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// ParseTime reads an ISO-compatible timestamp and truncates it to the minute.
func ParseTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t.In(loc).Truncate(time.Minute), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: time \"%s\" malformed", ErrValidation, value)
}
