/* Copyright (c) 2021 David Bulkow */

package httpapi

import (
	"sync"

	. "github.com/dbulkow/roomreserve/api"
)

// feed fans store changes out to websocket clients. Each client holds at most
// one pending list; a newer list replaces an unsent one.
type feed struct {
	clients map[chan []Reservation]struct{}
	sync.Mutex
}

func newFeed() *feed {
	return &feed{clients: make(map[chan []Reservation]struct{})}
}

func (f *feed) join() chan []Reservation {
	f.Lock()
	defer f.Unlock()

	ch := make(chan []Reservation, 1)
	f.clients[ch] = struct{}{}
	return ch
}

func (f *feed) leave(ch chan []Reservation) {
	f.Lock()
	defer f.Unlock()

	delete(f.clients, ch)
}

// publish never blocks; it runs while the store is locked.
func (f *feed) publish(list []Reservation) {
	f.Lock()
	defer f.Unlock()

	for ch := range f.clients {
		select {
		case ch <- list:
			continue
		default:
		}

		select {
		case <-ch:
		default:
		}

		select {
		case ch <- list:
		default:
		}
	}
}

func (f *feed) size() int {
	f.Lock()
	defer f.Unlock()

	return len(f.clients)
}
