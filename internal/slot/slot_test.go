/* Copyright (c) 2021 David Bulkow */

package slot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func exercise(t *testing.T, s Slot) {
	t.Helper()

	_, err := s.Get("roomReservations")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected empty slot, got %v", err)
	}

	first := []byte(`[{"room":"A"}]`)
	if err := s.Put("roomReservations", first); err != nil {
		t.Fatal(err)
	}

	b, err := s.Get("roomReservations")
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != string(first) {
		t.Fatalf("expected \"%s\" got \"%s\"", first, b)
	}

	second := []byte(`[]`)
	if err := s.Put("roomReservations", second); err != nil {
		t.Fatal(err)
	}

	b, err = s.Get("roomReservations")
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != string(second) {
		t.Fatalf("expected overwrite \"%s\" got \"%s\"", second, b)
	}

	_, err = s.Get("other")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected keys to be independent, got %v", err)
	}
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}

func TestMemoryCopies(t *testing.T) {
	m := NewMemory()

	v := []byte("abc")
	m.Put("k", v)
	v[0] = 'x'

	b, _ := m.Get("k")
	if string(b) != "abc" {
		t.Fatalf("expected stored value to be a copy, got \"%s\"", b)
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()

	f, err := NewFile(filepath.Join(dir, "nested"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	exercise(t, f)

	if _, err := os.Stat(filepath.Join(dir, "nested", "roomReservations.json")); err != nil {
		t.Fatalf("expected slot file: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "nested", "roomReservations.json-")); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, got %v", err)
	}
}

func TestFileBadKey(t *testing.T) {
	f, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := f.Put("../escape", []byte("x")); err == nil {
		t.Fatalf("expected invalid key error")
	}
}

func TestSQLite(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "slots.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	exercise(t, s)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		dsn  string
		fail bool
	}{
		{"memory:", false},
		{"file:" + filepath.Join(dir, "files"), false},
		{"sqlite:" + filepath.Join(dir, "db.sqlite"), false},
		{"s3://bucket", true},
		{"nothing", true},
		{"file:", true},
	}

	for _, tt := range tests {
		s, err := Open(tt.dsn)
		if tt.fail {
			if err == nil {
				t.Fatalf("%s: expected error", tt.dsn)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tt.dsn, err)
		}
		exercise(t, s)
		s.Close()
	}
}
