/* Copyright (c) 2021 David Bulkow */

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reserve.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Locale != "ja" {
		t.Fatalf("expected locale ja got %s", cfg.Locale)
	}

	if !reflect.DeepEqual(cfg.Rooms, []string{"A", "B", "C"}) {
		t.Fatalf("unexpected rooms %v", cfg.Rooms)
	}

	exp := "file:" + filepath.Join(filepath.Dir(path), "reserve")
	if cfg.Slot != exp {
		t.Fatalf("expected slot %s got %s", exp, cfg.Slot)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reserve.yaml")

	err := os.WriteFile(path, []byte(`
locale: en
rooms: [North, South]
slot: sqlite:/tmp/reserve.db
name: Pat
log:
  level: debug
`), 0600)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Locale != "en" || cfg.Name != "Pat" || cfg.Slot != "sqlite:/tmp/reserve.db" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	if !reflect.DeepEqual(cfg.Rooms, []string{"North", "South"}) {
		t.Fatalf("unexpected rooms %v", cfg.Rooms)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Fatalf("expected file level with default format, got %+v", cfg.Log)
	}

	if cfg.Listen != "localhost:8080" {
		t.Fatalf("expected default listen address, got %s", cfg.Listen)
	}
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reserve.yaml")

	t.Setenv("RESERVE_LOCALE", "en")
	t.Setenv("RESERVE_ROOMS", "X,Y")
	t.Setenv("RESERVE_SLOT", "memory:")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Locale != "en" || cfg.Slot != "memory:" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	if !reflect.DeepEqual(cfg.Rooms, []string{"X", "Y"}) {
		t.Fatalf("unexpected rooms %v", cfg.Rooms)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		doc string
		msg string
	}{
		{"locale: fr\n", "locale"},
		{"rooms: [A, A]\n", "twice"},
		{"rooms: [\"\"]\n", "blank"},
		{"rooms: {a: b}\n", "parse"},
	}

	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "reserve.yaml")
		if err := os.WriteFile(path, []byte(tt.doc), 0600); err != nil {
			t.Fatal(err)
		}

		_, err := Load(path)
		if err == nil {
			t.Fatalf("%q: expected error", tt.doc)
		}
		if !strings.Contains(err.Error(), tt.msg) {
			t.Fatalf("%q: expected \"%s\" in \"%s\"", tt.doc, tt.msg, err.Error())
		}
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "reserve.yaml")

	cfg := Default(path)
	cfg.Name = "Yamada"
	cfg.Rooms = []string{"A", "B"}

	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(got, cfg) {
		t.Fatalf("expected %+v got %+v", cfg, got)
	}
}
