/* Copyright (c) 2021 David Bulkow */

// Package slot provides durable key-value slots. Every read and write moves a
// whole value; there is no partial update.
package slot

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var ErrNotFound = errors.New("slot empty")

type Slot interface {
	// Get returns ErrNotFound when nothing was ever stored under key.
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// Open selects an implementation by DSN scheme:
//
//	memory:
//	file:<directory>
//	sqlite:<database file or sqlite DSN>
func Open(dsn string) (Slot, error) {
	scheme, rest, ok := strings.Cut(dsn, ":")
	if !ok {
		return nil, fmt.Errorf("slot dsn \"%s\" has no scheme", dsn)
	}

	switch strings.ToLower(scheme) {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(rest)
	case "sqlite":
		return NewSQLite(rest)
	default:
		return nil, fmt.Errorf("unsupported slot scheme: %s", scheme)
	}
}

type Memory struct {
	values map[string][]byte
	sync.Mutex
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.Lock()
	defer m.Unlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Put(key string, value []byte) error {
	m.Lock()
	defer m.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return nil
}

func (m *Memory) Close() error { return nil }
