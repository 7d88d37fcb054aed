// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "sync"

// defaultSize is the default number of instructions held by a cache.
const defaultSize = 1 << 10

// cache is a random-replacement cache of compiled layouts. Entries are sized
// by the number of instructions they hold.
//
// Its zero value is safe to use. It is safe for concurrent use.
type cache struct {
	// maxSize is the maximum number of instructions held. If it is zero,
	// defaultSize is used.
	maxSize int

	mu sync.RWMutex
	m  map[string][]Inst
	n  int
}

// get returns the program for layout, using compile to populate missing
// elements.
func (c *cache) get(layout string, compile func(string) []Inst) []Inst {
	c.mu.RLock()
	if prog, ok := c.m[layout]; ok {
		c.mu.RUnlock()
		return prog
	}
	c.mu.RUnlock()

	prog := compile(layout)

	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.m[layout]; ok {
		// another goroutine compiled the layout in the meantime
		return p
	}
	if c.m == nil {
		c.m = make(map[string][]Inst)
	}
	c.m[layout] = prog
	c.n += size(prog)
	for k := range c.m {
		if !c.fullRLocked() {
			break
		}
		c.evictLocked(k)
	}
	return prog
}

// fullRLocked returns whether c is full. c.mu must be held for reading when
// calling it.
func (c *cache) fullRLocked() bool {
	m := c.maxSize
	if m == 0 {
		m = defaultSize
	}
	return c.n > m
}

// evictLocked evicts the given layout from the cache. c.mu must be held for
// writing when calling it.
func (c *cache) evictLocked(layout string) {
	if prog, ok := c.m[layout]; ok {
		delete(c.m, layout)
		c.n -= size(prog)
	}
}

// flush removes all elements from the cache.
func (c *cache) flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.m)
	c.n = 0
}

// size counts the empty program as one, so that it still takes up space.
func size(prog []Inst) int {
	return len(prog) + 1
}
