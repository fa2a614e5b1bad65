/* Copyright (c) 2021 David Bulkow */

// Package getenv reads prefixed environment variables, RESERVE_SLOT for
// suffix SLOT under prefix RESERVE.
package getenv

import (
	"os"
	"strings"
)

type Env struct {
	prefix string
}

func NewEnv(prefix string) *Env {
	return &Env{prefix: prefix}
}

// Name returns the full variable name for suffix.
func (e *Env) Name(suffix string) string {
	if e.prefix == "" {
		return suffix
	}
	return strings.Join([]string{e.prefix, suffix}, "_")
}

// Lookup reports the value and whether the variable is set to something
// non-blank.
func (e *Env) Lookup(suffix string) (string, bool) {
	env := strings.TrimSpace(os.Getenv(e.Name(suffix)))
	return env, env != ""
}

func (e *Env) Get(suffix, defvalue string) string {
	if env, ok := e.Lookup(suffix); ok {
		return env
	}
	return defvalue
}

// GetList splits a comma separated value, dropping empty elements.
func (e *Env) GetList(suffix string, defvalue []string) []string {
	env, ok := e.Lookup(suffix)
	if !ok {
		return defvalue
	}

	var list []string
	for _, v := range strings.Split(env, ",") {
		if v = strings.TrimSpace(v); v != "" {
			list = append(list, v)
		}
	}

	if len(list) == 0 {
		return defvalue
	}

	return list
}

func (e *Env) GetBool(suffix string, defvalue bool) bool {
	env, ok := e.Lookup(suffix)
	if !ok {
		return defvalue
	}

	switch strings.ToLower(env) {
	case "true", "yes", "1":
		return true
	case "false", "no", "0":
		return false
	}

	return defvalue
}
