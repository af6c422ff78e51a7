// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"math"

	"github.com/tamberline/schemacheck/jsonvalue"
)

// maxRefDepth bounds $ref recursion. A depth counter was chosen over a
// (node, instance-location) visited set: cyclic schemas in practice
// recurse on a strictly shrinking instance (e.g. a linked-list shape), so
// a depth cutoff catches runaway recursion without the bookkeeping cost
// of hashing instance locations on every step.
const maxRefDepth = 1000

// Validate checks instance against the compiled schema root, returning
// whether it is valid and, if not, every collected violation message
// (spec.md §4.3, §4.5).
func Validate(root *Node, instance jsonvalue.Value) (bool, []string) {
	var c Collector
	validateNode(root, instance, &c, 0)
	return c.OK(), c.Errors()
}

func validateNode(n *Node, v jsonvalue.Value, c *Collector, depth int) {
	if n == nil {
		return
	}

	// 1. Boolean schema.
	if n.Kind == KindBoolean {
		if n.BoolValue != nil {
			if !*n.BoolValue {
				c.Addf("%s: rejected by boolean schema false", n.Pointer())
			}
			return
		}
		if instanceType(v) != TypeBoolean {
			c.Addf("%s: expected type boolean, got %s", n.Pointer(), instanceType(v))
		}
		return
	}

	instType := instanceType(v)

	// 2. type.
	if n.TypeStr != "" {
		if instType != n.Type {
			c.Addf("%s: expected type %s, got %s", n.Pointer(), n.Type, instType)
			return
		}
		if n.TypeStr == "integer" && !v.IsIntegerValued() {
			c.Addf("%s: expected an integer, got non-integral number %s", n.Pointer(), jsonvalue.Preview(v))
			return
		}
	}

	// 3. $ref.
	if n.Ref != "" {
		if n.reference == nil {
			c.Addf("%s: $ref %q did not resolve to a schema", n.Pointer(), n.Ref)
		} else if depth >= maxRefDepth {
			c.Addf("%s: $ref recursion exceeded depth %d", n.Pointer(), maxRefDepth)
		} else {
			validateNode(n.reference, v, c, depth+1)
		}
	}

	// 4. enum.
	if len(n.EnumItems) > 0 {
		matched := false
		for _, item := range n.EnumItems {
			if jsonvalue.Equal(item, v) {
				matched = true
				break
			}
		}
		if !matched {
			c.Addf("%s: value %s is not one of the enumerated values", n.Pointer(), jsonvalue.Preview(v))
		}
	}

	// 5. allOf: every branch's failures are real failures.
	for _, sub := range n.AllOf {
		validateNode(sub, v, c, depth)
	}

	// 6. anyOf: at least one branch must pass; branches are explored with
	// scratch collectors so a failing alternative doesn't pollute the
	// instance's error list.
	if len(n.AnyOf) > 0 {
		anyPassed := false
		for _, sub := range n.AnyOf {
			var scratch Collector
			validateNode(sub, v, &scratch, depth)
			if scratch.OK() {
				anyPassed = true
				break
			}
		}
		if !anyPassed {
			c.Addf("%s: value matched none of the %d anyOf alternatives", n.Pointer(), len(n.AnyOf))
		}
	}

	// 7. oneOf: exactly one branch must pass.
	if len(n.OneOf) > 0 {
		matches := 0
		for _, sub := range n.OneOf {
			var scratch Collector
			validateNode(sub, v, &scratch, depth)
			if scratch.OK() {
				matches++
			}
		}
		if matches != 1 {
			c.Addf("%s: value matched %d of the %d oneOf alternatives, want exactly 1", n.Pointer(), matches, len(n.OneOf))
		}
	}

	// 8. not.
	if n.Not != nil {
		var scratch Collector
		validateNode(n.Not, v, &scratch, depth)
		if scratch.OK() {
			c.Addf("%s: value must not validate against the \"not\" schema", n.Pointer())
		}
	}

	// 9. $defs are definitions, never evaluated directly against the
	// instance; out of scope by design (see DESIGN.md).

	switch instType {
	case TypeString:
		validateStringKeywords(n, v, c)
	case TypeNumber:
		validateNumberKeywords(n, v, c)
	case TypeArray:
		validateArrayKeywords(n, v, c, depth)
	case TypeObject:
		validateObjectKeywords(n, v, c, depth)
	}
}

func validateStringKeywords(n *Node, v jsonvalue.Value, c *Collector) {
	length := v.UTF16Len()
	if n.MinLength != nil && length < *n.MinLength {
		c.Addf("%s: string length %d is less than minLength %d", n.Pointer(), length, *n.MinLength)
	}
	if n.MaxLength != nil && length > *n.MaxLength {
		c.Addf("%s: string length %d is greater than maxLength %d", n.Pointer(), length, *n.MaxLength)
	}
	if n.strRegex.Valid() && !n.strRegex.MatchString(v.Str) {
		c.Addf("%s: string %q does not match pattern %q", n.Pointer(), v.Str, n.Pattern)
	}
}

func validateNumberKeywords(n *Node, v jsonvalue.Value, c *Collector) {
	f := v.AsFloat64()
	if n.Minimum != nil && f < *n.Minimum {
		c.Addf("%s: %v is less than minimum %v", n.Pointer(), f, *n.Minimum)
	}
	if n.Maximum != nil && f > *n.Maximum {
		c.Addf("%s: %v is greater than maximum %v", n.Pointer(), f, *n.Maximum)
	}
	if n.ExclusiveMinimum != nil && f <= *n.ExclusiveMinimum {
		c.Addf("%s: %v is not strictly greater than exclusiveMinimum %v", n.Pointer(), f, *n.ExclusiveMinimum)
	}
	if n.ExclusiveMaximum != nil && f >= *n.ExclusiveMaximum {
		c.Addf("%s: %v is not strictly less than exclusiveMaximum %v", n.Pointer(), f, *n.ExclusiveMaximum)
	}
	if n.MultipleOf != nil {
		q := f / *n.MultipleOf
		if math.Abs(q-math.Round(q)) > 1e-9 {
			c.Addf("%s: %v is not a multiple of %v", n.Pointer(), f, *n.MultipleOf)
		}
	}
}

func validateArrayKeywords(n *Node, v jsonvalue.Value, c *Collector, depth int) {
	items := v.Array
	if n.MinItems != nil && len(items) < *n.MinItems {
		c.Addf("%s: array has %d items, fewer than minItems %d", n.Pointer(), len(items), *n.MinItems)
	}
	if n.MaxItems != nil && len(items) > *n.MaxItems {
		c.Addf("%s: array has %d items, more than maxItems %d", n.Pointer(), len(items), *n.MaxItems)
	}
	if n.UniqueItems {
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				if jsonvalue.Equal(items[i], items[j]) {
					c.Addf("%s: items %d and %d are duplicates but uniqueItems is true", n.Pointer(), i, j)
				}
			}
		}
	}

	if n.ItemsIsArray {
		for i, item := range items {
			if i < len(n.Items) {
				validateNode(n.Items[i], item, c, depth)
			} else if n.AdditionalItems != nil {
				validateNode(n.AdditionalItems, item, c, depth)
			}
		}
	} else if len(n.Items) == 1 {
		for _, item := range items {
			validateNode(n.Items[0], item, c, depth)
		}
	}

	if n.Contains != nil {
		found := false
		for _, item := range items {
			var scratch Collector
			validateNode(n.Contains, item, &scratch, depth)
			if scratch.OK() {
				found = true
				break
			}
		}
		if !found {
			c.Addf("%s: no array item matches the contains schema", n.Pointer())
		}
	}
}

func validateObjectKeywords(n *Node, v jsonvalue.Value, c *Collector, depth int) {
	obj := v.Object
	if n.MinProperties != nil && obj.Len() < *n.MinProperties {
		c.Addf("%s: object has %d properties, fewer than minProperties %d", n.Pointer(), obj.Len(), *n.MinProperties)
	}
	if n.MaxProperties != nil && obj.Len() > *n.MaxProperties {
		c.Addf("%s: object has %d properties, more than maxProperties %d", n.Pointer(), obj.Len(), *n.MaxProperties)
	}

	for _, name := range n.RequiredNames {
		if _, ok := obj.Get(name); !ok {
			c.Addf("%s: missing required property %q", n.Pointer(), name)
		}
	}

	for name, deps := range n.DependentRequired {
		if _, present := obj.Get(name); !present {
			continue
		}
		for _, dep := range deps {
			if _, ok := obj.Get(dep); !ok {
				c.Addf("%s: property %q requires property %q to also be present", n.Pointer(), name, dep)
			}
		}
	}

	for name, depSchema := range n.DependentSchemas {
		if _, present := obj.Get(name); !present {
			continue
		}
		validateNode(depSchema, v, c, depth)
	}

	if n.PropertyNames != nil {
		for _, name := range obj.Keys() {
			validateNode(n.PropertyNames, jsonvalue.String(name), c, depth)
		}
	}

	matchedByPattern := map[string]bool{}
	for key, val := range obj.All() {
		if child, ok := n.Properties[key]; ok {
			validateNode(child, val, c, depth)
			matchedByPattern[key] = true
			continue
		}
		hitPattern := false
		for _, pp := range n.PatternProperties {
			if pp.matcher.Valid() && pp.matcher.MatchString(key) {
				validateNode(pp.node, val, c, depth)
				hitPattern = true
			}
		}
		if hitPattern {
			matchedByPattern[key] = true
		}
	}

	if n.AdditionalProperties != nil {
		for key, val := range obj.All() {
			if matchedByPattern[key] {
				continue
			}
			validateNode(n.AdditionalProperties, val, c, depth)
		}
	}
}
