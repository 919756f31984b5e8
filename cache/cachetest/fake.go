// Package cachetest provides an in-memory Cache for tests.
package cachetest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/logabaalan777/property-listing/cache"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Fake is an in-memory cache.Cache. Every operation is recorded, and Get or
// Set can be forced to fail to exercise the outage fall-through.
type Fake struct {
	mu   sync.Mutex
	data map[string]entry

	GetErr error
	SetErr error

	GetCalls     []string
	SetCalls     []string
	DelCalls     []string
	PatternCalls []string
}

func New() *Fake {
	return &Fake{data: make(map[string]entry)}
}

func (f *Fake) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetCalls = append(f.GetCalls, key)
	if f.GetErr != nil {
		return "", f.GetErr
	}
	e, ok := f.data[key]
	if !ok || time.Now().After(e.expiresAt) {
		delete(f.data, key)
		return "", cache.ErrMiss
	}
	return e.value, nil
}

func (f *Fake) Set(_ context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetCalls = append(f.SetCalls, key)
	if f.SetErr != nil {
		return f.SetErr
	}
	f.data[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (f *Fake) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		f.DelCalls = append(f.DelCalls, key)
		delete(f.data, key)
	}
	return nil
}

// DelPattern supports the only glob shape the invalidator uses: a literal
// prefix followed by '*'.
func (f *Fake) DelPattern(_ context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PatternCalls = append(f.PatternCalls, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			delete(f.data, key)
		}
	}
	return nil
}

// Has reports whether a live entry exists at key.
func (f *Fake) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.data[key]
	return ok && time.Now().Before(e.expiresAt)
}

// Len returns the number of stored entries, expired or not.
func (f *Fake) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data)
}
