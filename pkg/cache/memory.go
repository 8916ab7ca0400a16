package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultMemorySize = 256

// Memory is an in-process LRU store. Entries expire after the TTL given at
// construction; the per-call ttl passed to Set is ignored.
type Memory struct {
	lru *expirable.LRU[string, []byte]
}

func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = defaultMemorySize
	}
	return &Memory{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := m.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.lru.Add(key, append([]byte(nil), value...))
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}

// Len reports how many live entries the store holds.
func (m *Memory) Len() int {
	return m.lru.Len()
}
