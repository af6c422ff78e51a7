// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonschema

import "fmt"

// Collector accumulates validation failures without aborting the walk,
// so a single Validate call can report every violation an instance has
// rather than only the first one (spec.md §4.5).
type Collector struct {
	errs []string
}

// Add appends a pre-formatted message.
func (c *Collector) Add(msg string) {
	c.errs = append(c.errs, msg)
}

// Addf appends a formatted message, mirroring fmt.Errorf's verbs.
func (c *Collector) Addf(format string, args ...any) {
	c.errs = append(c.errs, fmt.Sprintf(format, args...))
}

// Append copies every message from other into c, after c's own messages
// and in other's order. A nil other is a no-op.
func (c *Collector) Append(other *Collector) {
	if other == nil {
		return
	}
	c.errs = append(c.errs, other.errs...)
}

// Errors returns the accumulated messages in the order they were added.
func (c *Collector) Errors() []string {
	return c.errs
}

// Len reports how many messages have been collected.
func (c *Collector) Len() int {
	return len(c.errs)
}

// OK reports whether no failures have been collected.
func (c *Collector) OK() bool {
	return len(c.errs) == 0
}
