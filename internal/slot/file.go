/* Copyright (c) 2021 David Bulkow */

package slot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// File keeps each key in <dir>/<key>.json.
type File struct {
	dir string
	sync.Mutex
}

func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("file slot directory not set")
	}

	err := os.MkdirAll(dir, 0700)
	if err != nil {
		return nil, err
	}

	return &File{dir: dir}, nil
}

func (f *File) filename(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid slot key \"%s\"", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *File) Get(key string) ([]byte, error) {
	f.Lock()
	defer f.Unlock()

	filename, err := f.filename(key)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}

	return b, err
}

// Put writes to a sibling file and renames it over the old value so a reader
// never sees a partial document.
func (f *File) Put(key string, value []byte) error {
	f.Lock()
	defer f.Unlock()

	filename, err := f.filename(key)
	if err != nil {
		return err
	}

	newfile := filename + "-"

	file, err := os.OpenFile(newfile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	_, err = file.Write(value)
	if err != nil {
		file.Close()
		return err
	}

	err = file.Close()
	if err != nil {
		return err
	}

	return os.Rename(newfile, filename)
}

func (f *File) Close() error { return nil }
