// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package jsonschema compiles draft 2019-09 JSON Schema documents into an
// in-memory schema tree and validates JSON instances against that tree.
//
// The package has three moving parts: Compile builds the tree and resolves
// $ref cross-links, Validate interprets the tree against an instance, and
// the two share the Node type, which represents every schema shape as one
// tagged variant rather than as a hierarchy of kind-specific struct types.
package jsonschema

import (
	"fmt"
	"strings"

	"github.com/tamberline/schemacheck/jsonvalue"
	"github.com/tamberline/schemacheck/matcher"
)

// Kind is the tag of a compiled schema node.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindObject
	KindArray
	KindString
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// InstanceType is the closed set of JSON instance shapes a schema's "type"
// assertion can name. Undefined disables the assertion entirely.
type InstanceType int

const (
	TypeUndefined InstanceType = iota
	TypeNull
	TypeBoolean
	TypeObject
	TypeArray
	TypeNumber
	TypeString
)

func (t InstanceType) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// instanceType classifies an instance's JSON kind into the InstanceType
// lattice used by the "type" assertion. Number matches both int-ish and
// float-ish JSON numbers; Undefined (absent) always matches as "any".
func instanceType(v jsonvalue.Value) InstanceType {
	switch v.Kind {
	case jsonvalue.KindUndefined:
		return TypeUndefined
	case jsonvalue.KindNull:
		return TypeNull
	case jsonvalue.KindBool:
		return TypeBoolean
	case jsonvalue.KindObject:
		return TypeObject
	case jsonvalue.KindArray:
		return TypeArray
	case jsonvalue.KindInt, jsonvalue.KindUint, jsonvalue.KindFloat:
		return TypeNumber
	case jsonvalue.KindString:
		return TypeString
	default:
		return TypeUndefined
	}
}

// patternProperty is one entry of an Object node's patternProperties map,
// keeping the pattern source, its compiled matcher, and the child schema
// together and in declaration order.
type patternProperty struct {
	pattern string
	matcher matcher.Matcher
	node    *Node
}

// Node is a compiled schema sub-tree. Every field that isn't relevant to
// Kind is simply left at its zero value; this mirrors the teacher
// library's flat Schema struct (one type, many optional fields) rather
// than a class hierarchy, with Kind playing the role the teacher leaves
// implicit in which fields happen to be set.
type Node struct {
	// common header
	ID       string
	Type     InstanceType
	TypeStr  string
	Required bool

	HasDefault   bool
	DefaultValue jsonvalue.Value

	EnumItems []jsonvalue.Value

	Ref       string
	reference *Node // weak: resolved by resolveRefs, never owns

	parent  *Node // weak
	segment string // JSON pointer token from parent to this node

	AllOf []*Node
	AnyOf []*Node
	OneOf []*Node
	Not   *Node

	Defs      map[string]*Node
	defsOrder []string

	Anchors map[string]*Node // root-only

	IsRoot              bool
	IdentifiedByPattern bool

	Kind Kind

	// String
	Pattern   string
	strRegex  matcher.Matcher
	MinLength *int
	MaxLength *int

	// Number
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64

	// Object
	Properties           map[string]*Node
	propertyOrder        []string
	PatternProperties    []patternProperty
	AdditionalProperties *Node // nil means the permissive default schema
	PropertyNames        *Node
	MinProperties        *int
	MaxProperties        *int
	RequiredNames        []string
	DependentRequired    map[string][]string
	DependentSchemas     map[string]*Node

	// Array
	Items           []*Node
	ItemsIsArray    bool
	AdditionalItems *Node
	Contains        *Node
	MinItems        *int
	MaxItems        *int
	UniqueItems     bool

	// Boolean
	BoolValue *bool
}

// newChild allocates a node linked to parent by the given JSON-pointer
// segment (e.g. "properties/name", "allOf/2", "not").
func newChild(parent *Node, segment string) *Node {
	return &Node{parent: parent, segment: segment}
}

// Pointer computes this node's JSON pointer relative to the schema root by
// walking parent links, per spec.md §4.4. patternProperties children are
// identified by their pattern source, since the runtime key that will
// match them isn't known at compile time.
func (n *Node) Pointer() string {
	if n == nil {
		return "#"
	}
	if n.parent == nil {
		return "#"
	}
	return n.parent.Pointer() + "/" + n.segment
}

// String gives a short description of the node, echoing the teacher
// library's Schema.String: prefer $id, then "<schema at POINTER>".
func (n *Node) String() string {
	if n == nil {
		return "<nil schema>"
	}
	if n.ID != "" {
		return n.ID
	}
	return fmt.Sprintf("<schema at %s>", n.Pointer())
}

// children yields every directly owned child node in a deterministic
// order, skipping nils. Used by the resolver's tree walk and by Dump.
func (n *Node) children() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	out = append(out, n.AllOf...)
	out = append(out, n.AnyOf...)
	out = append(out, n.OneOf...)
	if n.Not != nil {
		out = append(out, n.Not)
	}
	for _, name := range n.defsOrder {
		out = append(out, n.Defs[name])
	}
	switch n.Kind {
	case KindObject:
		for _, name := range n.propertyOrder {
			out = append(out, n.Properties[name])
		}
		for _, pp := range n.PatternProperties {
			out = append(out, pp.node)
		}
		if n.AdditionalProperties != nil {
			out = append(out, n.AdditionalProperties)
		}
		if n.PropertyNames != nil {
			out = append(out, n.PropertyNames)
		}
		for _, name := range sortedKeys(n.DependentSchemas) {
			out = append(out, n.DependentSchemas[name])
		}
	case KindArray:
		out = append(out, n.Items...)
		if n.AdditionalItems != nil {
			out = append(out, n.AdditionalItems)
		}
		if n.Contains != nil {
			out = append(out, n.Contains)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// Dump writes an indented, human-readable rendering of the compiled tree
// to sb, restoring the original SerenityOS implementation's
// JsonSchemaNode::dump debugging aid (see SPEC_FULL.md §4).
func (n *Node) Dump(sb *strings.Builder) {
	n.dump(sb, 0)
}

func (n *Node) dump(sb *strings.Builder, indent int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", indent))
	fmt.Fprintf(sb, "%s (%s)", n.Kind, n.Pointer())
	if n.TypeStr != "" {
		fmt.Fprintf(sb, " type=%s", n.TypeStr)
	}
	if n.Ref != "" {
		fmt.Fprintf(sb, " $ref=%s", n.Ref)
	}
	sb.WriteByte('\n')
	for _, c := range n.children() {
		c.dump(sb, indent+1)
	}
}

// Ptr returns a pointer to a new variable holding x, matching the
// teacher library's Ptr helper, used throughout the compiler for
// optional numeric fields.
func Ptr[T any](x T) *T { return &x }
