// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/tamberline/schemacheck/jsonvalue"
)

// SchemaCache compiles schema documents at most once per distinct content
// and lets concurrent callers for the same content share a single
// in-flight compilation rather than racing to compile duplicates
// (spec.md §5's concurrency model: compiled trees are read-only and safe
// to share once built).
type SchemaCache struct {
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	root *Node
	errs []string
}

// NewSchemaCache returns an empty cache.
func NewSchemaCache() *SchemaCache {
	return &SchemaCache{entries: map[string]*cacheEntry{}}
}

// Digest returns the content-addressed key CompileCached uses to dedupe raw
// schema bytes before parsing.
func Digest(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// CompileCached decodes and compiles raw (a JSON document), returning a
// cached tree if raw's digest has already been compiled. Concurrent
// callers racing on the same digest block on the single underlying
// compile rather than each doing the work.
func (c *SchemaCache) CompileCached(raw []byte) (*Node, []string) {
	key := Digest(raw)

	c.mu.RLock()
	if entry, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return entry.root, entry.errs
	}
	c.mu.RUnlock()

	result, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		if entry, ok := c.entries[key]; ok {
			c.mu.RUnlock()
			return entry, nil
		}
		c.mu.RUnlock()
		entry := &cacheEntry{}
		if v, decodeErr := jsonvalue.DecodeBytes(raw); decodeErr != nil {
			entry.errs = []string{decodeErr.Error()}
		} else {
			entry.root, entry.errs = Compile(v)
		}
		// Store before returning so the entry is visible by the time
		// singleflight forgets the key.
		c.mu.Lock()
		c.entries[key] = entry
		c.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		// group.Do's fn never returns a non-nil error; kept for API shape.
		return nil, []string{err.Error()}
	}
	entry := result.(*cacheEntry)
	return entry.root, entry.errs
}

// Len reports how many distinct schema documents have been compiled.
func (c *SchemaCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
