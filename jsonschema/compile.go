// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"fmt"

	"github.com/tamberline/schemacheck/jsonvalue"
	"github.com/tamberline/schemacheck/matcher"
)

const dialectURI = "https://json-schema.org/draft/2019-09/schema"

// Compile translates a JSON value into a compiled schema tree. It returns
// either a non-nil root with a nil error slice, or a nil root with a
// non-empty list of parser errors (spec.md §4.1).
func Compile(v jsonvalue.Value) (*Node, []string) {
	var errs []string
	root := &Node{IsRoot: true, Anchors: map[string]*Node{}}
	// The root must be an object or a boolean; any other JSON type
	// (array, string, number, null) is a parser error even though the
	// same shapes are accepted in nested schema position.
	if v.Kind != jsonvalue.KindBool && v.Kind != jsonvalue.KindObject {
		return nil, []string{fmt.Sprintf("%s: root json instance not of type object", root.Pointer())}
	}
	fillNode(root, v, root, &errs)
	if len(errs) > 0 {
		return nil, errs
	}
	resolveRefs(root)
	return root, nil
}

// fillNode populates an already-linked node n from the raw schema value v.
// root is threaded through for $anchor registration and $ref resolution
// bookkeeping; it is n itself only at the very top of the tree.
func fillNode(n *Node, v jsonvalue.Value, root *Node, errs *[]string) {
	switch v.Kind {
	case jsonvalue.KindBool:
		b := v.Bool
		n.Kind = KindBoolean
		n.BoolValue = &b
	case jsonvalue.KindNull:
		n.Kind = KindNull
		n.Type = TypeNull
	case jsonvalue.KindArray:
		fillArrayShorthand(n, v, root, errs)
	case jsonvalue.KindObject:
		fillObjectSchema(n, v, root, errs)
	default:
		*errs = append(*errs, fmt.Sprintf("%s: a sub-schema must be an object, array, boolean, or null, got %s", n.Pointer(), v.Kind))
		n.Kind = KindUndefined
	}
}

// fillArrayShorthand implements spec.md §4.1 rule 1: a bare JSON array in
// schema position is an Array node whose items tuple is the array's own
// elements, each itself compiled as a sub-schema.
func fillArrayShorthand(n *Node, v jsonvalue.Value, root *Node, errs *[]string) {
	n.Kind = KindArray
	n.Type = TypeArray
	n.ItemsIsArray = true
	for i, elem := range v.Array {
		child := newChild(n, fmt.Sprintf("items/%d", i))
		fillNode(child, elem, root, errs)
		n.Items = append(n.Items, child)
	}
}

func fillObjectSchema(n *Node, v jsonvalue.Value, root *Node, errs *[]string) {
	obj := v.Object

	if n == root {
		if sv, ok := obj.Get("$schema"); ok {
			if sv.Kind != jsonvalue.KindString || sv.Str != dialectURI {
				*errs = append(*errs, fmt.Sprintf("%s: unsupported $schema dialect (want %s)", n.Pointer(), dialectURI))
			}
		}
	}

	if obj.Len() == 0 {
		n.Kind = KindBoolean
		n.BoolValue = Ptr(true)
		return
	}

	typeStr := ""
	if typeVal, ok := obj.Get("type"); ok {
		switch typeVal.Kind {
		case jsonvalue.KindString:
			typeStr = typeVal.Str
		case jsonvalue.KindArray:
			*errs = append(*errs, fmt.Sprintf(`%s: "type" as an array is not supported; only a single type is`, n.Pointer()))
		default:
			*errs = append(*errs, fmt.Sprintf(`%s: "type" must be a string`, n.Pointer()))
		}
	}
	n.TypeStr = typeStr
	n.Kind, n.Type = classify(obj, typeStr)

	populateCommon(n, obj, root, errs)

	switch n.Kind {
	case KindString:
		populateString(n, obj, errs)
	case KindNumber:
		populateNumber(n, obj, errs)
	case KindArray:
		populateArray(n, obj, root, errs)
	case KindObject:
		populateObject(n, obj, root, errs)
	case KindBoolean, KindNull, KindUndefined:
		// no variant-specific keywords
	}
}

// classify implements the ordered decision table of spec.md §4.1.
func classify(obj *jsonvalue.Object, typeStr string) (Kind, InstanceType) {
	has := func(keys ...string) bool {
		for _, k := range keys {
			if _, ok := obj.Get(k); ok {
				return true
			}
		}
		return false
	}
	switch {
	case typeStr == "null":
		return KindNull, TypeNull
	case typeStr == "boolean":
		return KindBoolean, TypeBoolean
	case typeStr == "number" || typeStr == "integer" ||
		has("minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf"):
		return KindNumber, TypeNumber
	case typeStr == "array" ||
		has("items", "additionalItems", "unevaluatedItems", "maxItems", "minItems", "uniqueItems", "contains", "maxContains", "minContains"):
		return KindArray, TypeArray
	case typeStr == "string" || has("maxLength", "minLength", "pattern"):
		return KindString, TypeString
	case typeStr == "object" ||
		has("properties", "additionalProperties", "patternProperties", "minProperties", "maxProperties", "required", "dependentRequired", "dependentSchemas"):
		return KindObject, TypeObject
	default:
		return KindUndefined, TypeUndefined
	}
}

// populateCommon compiles the keywords shared by every object sub-schema:
// $id, $anchor, $ref, default, enum, allOf/anyOf/oneOf, not, $defs.
func populateCommon(n *Node, obj *jsonvalue.Object, root *Node, errs *[]string) {
	if idVal, ok := obj.Get("$id"); ok {
		if idVal.Kind == jsonvalue.KindString {
			n.ID = idVal.Str
		} else {
			*errs = append(*errs, fmt.Sprintf(`%s: "$id" must be a string`, n.Pointer()))
		}
	}

	if anchorVal, ok := obj.Get("$anchor"); ok {
		if anchorVal.Kind == jsonvalue.KindString && anchorVal.Str != "" {
			root.Anchors[anchorVal.Str] = n
		} else {
			*errs = append(*errs, fmt.Sprintf(`%s: "$anchor" must be a non-empty string`, n.Pointer()))
		}
	}

	if refVal, ok := obj.Get("$ref"); ok {
		if refVal.Kind == jsonvalue.KindString {
			n.Ref = percentDecodeRef(refVal.Str)
		} else {
			*errs = append(*errs, fmt.Sprintf(`%s: "$ref" must be a string`, n.Pointer()))
		}
	}

	if defVal, ok := obj.Get("default"); ok {
		n.HasDefault = true
		n.DefaultValue = defVal
	}

	if enumVal, ok := obj.Get("enum"); ok {
		if enumVal.Kind != jsonvalue.KindArray {
			*errs = append(*errs, fmt.Sprintf(`%s: "enum" must be an array`, n.Pointer()))
		} else {
			for _, item := range enumVal.Array {
				dup := false
				for _, existing := range n.EnumItems {
					if jsonvalue.Equal(existing, item) {
						dup = true
						break
					}
				}
				if !dup {
					n.EnumItems = append(n.EnumItems, item)
				}
			}
		}
	}

	compileSchemaArray := func(key string) []*Node {
		val, ok := obj.Get(key)
		if !ok {
			return nil
		}
		if val.Kind != jsonvalue.KindArray {
			*errs = append(*errs, fmt.Sprintf("%s: %q must be an array of schemas", n.Pointer(), key))
			return nil
		}
		var out []*Node
		for i, elem := range val.Array {
			child := newChild(n, fmt.Sprintf("%s/%d", key, i))
			fillNode(child, elem, root, errs)
			out = append(out, child)
		}
		return out
	}
	n.AllOf = compileSchemaArray("allOf")
	n.AnyOf = compileSchemaArray("anyOf")
	n.OneOf = compileSchemaArray("oneOf")

	if notVal, ok := obj.Get("not"); ok {
		child := newChild(n, "not")
		fillNode(child, notVal, root, errs)
		n.Not = child
	}

	if defsVal, ok := obj.Get("$defs"); ok {
		if defsVal.Kind != jsonvalue.KindObject {
			*errs = append(*errs, fmt.Sprintf(`%s: "$defs" must be an object`, n.Pointer()))
		} else {
			n.Defs = map[string]*Node{}
			for name, sub := range defsVal.Object.All() {
				child := newChild(n, "$defs/"+name)
				fillNode(child, sub, root, errs)
				n.Defs[name] = child
				n.defsOrder = append(n.defsOrder, name)
			}
		}
	}
}

func parseNonNegativeInt(n *Node, v jsonvalue.Value, keyword string, errs *[]string) *int {
	if !v.IsNumber() || !v.IsIntegerValued() || v.AsFloat64() < 0 {
		*errs = append(*errs, fmt.Sprintf("%s: %q must be a non-negative integer", n.Pointer(), keyword))
		return nil
	}
	return Ptr(int(v.AsFloat64()))
}

func populateString(n *Node, obj *jsonvalue.Object, errs *[]string) {
	if pv, ok := obj.Get("pattern"); ok {
		if pv.Kind != jsonvalue.KindString {
			*errs = append(*errs, fmt.Sprintf(`%s: "pattern" must be a string`, n.Pointer()))
		} else {
			n.Pattern = pv.Str
			m, err := matcher.Compile(pv.Str)
			if err != nil {
				*errs = append(*errs, fmt.Sprintf("%s: invalid pattern %q: %v", n.Pointer(), pv.Str, err))
			} else {
				n.strRegex = m
			}
		}
	}
	if v, ok := obj.Get("minLength"); ok {
		n.MinLength = parseNonNegativeInt(n, v, "minLength", errs)
	}
	if v, ok := obj.Get("maxLength"); ok {
		n.MaxLength = parseNonNegativeInt(n, v, "maxLength", errs)
	}
}

func parseFloatKeyword(n *Node, obj *jsonvalue.Object, keyword string, errs *[]string) *float64 {
	v, ok := obj.Get(keyword)
	if !ok {
		return nil
	}
	if !v.IsNumber() {
		*errs = append(*errs, fmt.Sprintf("%s: %q must be a number", n.Pointer(), keyword))
		return nil
	}
	f := v.AsFloat64()
	return &f
}

func populateNumber(n *Node, obj *jsonvalue.Object, errs *[]string) {
	n.Minimum = parseFloatKeyword(n, obj, "minimum", errs)
	n.Maximum = parseFloatKeyword(n, obj, "maximum", errs)
	n.ExclusiveMinimum = parseFloatKeyword(n, obj, "exclusiveMinimum", errs)
	n.ExclusiveMaximum = parseFloatKeyword(n, obj, "exclusiveMaximum", errs)
	if mo := parseFloatKeyword(n, obj, "multipleOf", errs); mo != nil && *mo > 0 {
		n.MultipleOf = mo
	}
}

func populateArray(n *Node, obj *jsonvalue.Object, root *Node, errs *[]string) {
	if v, ok := obj.Get("minItems"); ok {
		n.MinItems = parseNonNegativeInt(n, v, "minItems", errs)
	}
	if v, ok := obj.Get("maxItems"); ok {
		n.MaxItems = parseNonNegativeInt(n, v, "maxItems", errs)
	}
	if v, ok := obj.Get("uniqueItems"); ok {
		if v.Kind != jsonvalue.KindBool {
			*errs = append(*errs, fmt.Sprintf(`%s: "uniqueItems" must be a boolean`, n.Pointer()))
		} else {
			n.UniqueItems = v.Bool
		}
	}

	if itemsVal, ok := obj.Get("items"); ok {
		if itemsVal.Kind == jsonvalue.KindArray {
			n.ItemsIsArray = true
			for i, elem := range itemsVal.Array {
				child := newChild(n, fmt.Sprintf("items/%d", i))
				fillNode(child, elem, root, errs)
				n.Items = append(n.Items, child)
			}
		} else {
			child := newChild(n, "items/0")
			fillNode(child, itemsVal, root, errs)
			n.Items = []*Node{child}
		}
	}

	if aiVal, ok := obj.Get("additionalItems"); ok {
		child := newChild(n, "additionalItems")
		fillNode(child, aiVal, root, errs)
		n.AdditionalItems = child
	}

	if cVal, ok := obj.Get("contains"); ok {
		child := newChild(n, "contains")
		fillNode(child, cVal, root, errs)
		n.Contains = child
	}
}

func populateObject(n *Node, obj *jsonvalue.Object, root *Node, errs *[]string) {
	if v, ok := obj.Get("minProperties"); ok {
		n.MinProperties = parseNonNegativeInt(n, v, "minProperties", errs)
	}
	if v, ok := obj.Get("maxProperties"); ok {
		n.MaxProperties = parseNonNegativeInt(n, v, "maxProperties", errs)
	}

	if propsVal, ok := obj.Get("properties"); ok {
		if propsVal.Kind != jsonvalue.KindObject {
			*errs = append(*errs, fmt.Sprintf(`%s: "properties" must be an object`, n.Pointer()))
		} else {
			n.Properties = map[string]*Node{}
			for name, sub := range propsVal.Object.All() {
				child := newChild(n, "properties/"+name)
				fillNode(child, sub, root, errs)
				n.Properties[name] = child
				n.propertyOrder = append(n.propertyOrder, name)
			}
		}
	}

	if ppVal, ok := obj.Get("patternProperties"); ok {
		if ppVal.Kind != jsonvalue.KindObject {
			*errs = append(*errs, fmt.Sprintf(`%s: "patternProperties" must be an object`, n.Pointer()))
		} else {
			for pattern, sub := range ppVal.Object.All() {
				child := newChild(n, "patternProperties/"+pattern)
				child.IdentifiedByPattern = true
				fillNode(child, sub, root, errs)
				m, err := matcher.Compile(pattern)
				if err != nil {
					*errs = append(*errs, fmt.Sprintf("%s: invalid patternProperties key %q: %v", n.Pointer(), pattern, err))
				}
				n.PatternProperties = append(n.PatternProperties, patternProperty{pattern: pattern, matcher: m, node: child})
			}
		}
	}

	if apVal, ok := obj.Get("additionalProperties"); ok {
		child := newChild(n, "additionalProperties")
		fillNode(child, apVal, root, errs)
		n.AdditionalProperties = child
	}

	if pnVal, ok := obj.Get("propertyNames"); ok {
		child := newChild(n, "propertyNames")
		fillNode(child, pnVal, root, errs)
		n.PropertyNames = child
	}

	requiredSeen := map[string]bool{}
	if reqVal, ok := obj.Get("required"); ok {
		if reqVal.Kind != jsonvalue.KindArray {
			*errs = append(*errs, fmt.Sprintf(`%s: "required" must be an array of strings`, n.Pointer()))
		} else {
			for _, item := range reqVal.Array {
				if item.Kind != jsonvalue.KindString {
					*errs = append(*errs, fmt.Sprintf(`%s: "required" entries must be strings`, n.Pointer()))
					continue
				}
				if requiredSeen[item.Str] {
					continue
				}
				requiredSeen[item.Str] = true
				n.RequiredNames = append(n.RequiredNames, item.Str)
				if child, ok := n.Properties[item.Str]; ok {
					child.Required = true
				}
			}
		}
	}

	if drVal, ok := obj.Get("dependentRequired"); ok {
		if drVal.Kind != jsonvalue.KindObject {
			*errs = append(*errs, fmt.Sprintf(`%s: "dependentRequired" must be an object`, n.Pointer()))
		} else {
			n.DependentRequired = map[string][]string{}
			for name, depsVal := range drVal.Object.All() {
				if depsVal.Kind != jsonvalue.KindArray {
					*errs = append(*errs, fmt.Sprintf("%s: dependentRequired[%q] must be an array of strings", n.Pointer(), name))
					continue
				}
				var deps []string
				for _, d := range depsVal.Array {
					if d.Kind != jsonvalue.KindString {
						*errs = append(*errs, fmt.Sprintf("%s: dependentRequired[%q] entries must be strings", n.Pointer(), name))
						continue
					}
					deps = append(deps, d.Str)
				}
				n.DependentRequired[name] = deps
			}
		}
	}

	if dsVal, ok := obj.Get("dependentSchemas"); ok {
		if dsVal.Kind != jsonvalue.KindObject {
			*errs = append(*errs, fmt.Sprintf(`%s: "dependentSchemas" must be an object`, n.Pointer()))
		} else {
			n.DependentSchemas = map[string]*Node{}
			for name, sub := range dsVal.Object.All() {
				child := newChild(n, "dependentSchemas/"+name)
				fillNode(child, sub, root, errs)
				n.DependentSchemas[name] = child
			}
		}
	}
}

// percentDecodeRef decodes percent-escaped octets in a $ref string, except
// for %2F and %7E, which are re-encoded as the JSON-pointer escapes ~1 and
// ~0 so a later pointer-token split on "/" doesn't see a literal slash
// that didn't come from the pointer syntax itself (spec.md §4.1, §6).
func percentDecodeRef(s string) string {
	var out []byte
	for i := 0; i < len(s); {
		if s[i] == '%' && i+2 < len(s) {
			hi, hiOK := hexDigit(s[i+1])
			lo, loOK := hexDigit(s[i+2])
			if hiOK && loOK {
				v := hi<<4 | lo
				switch v {
				case 0x2F:
					out = append(out, '~', '1')
				case 0x7E:
					out = append(out, '~', '0')
				default:
					out = append(out, byte(v))
				}
				i += 3
				continue
			}
		}
		out = append(out, s[i])
		i++
	}
	return string(out)
}

func hexDigit(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}
