// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tamberline/schemacheck/jsonvalue"
)

func mustCompile(t *testing.T, schema string) *Node {
	t.Helper()
	v, err := jsonvalue.DecodeBytes([]byte(schema))
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	n, errs := Compile(v)
	if len(errs) > 0 {
		t.Fatalf("Compile errors: %v", errs)
	}
	return n
}

func TestCompileBooleanSchema(t *testing.T) {
	n := mustCompile(t, `true`)
	if n.Kind != KindBoolean || n.BoolValue == nil || !*n.BoolValue {
		t.Fatalf("got %+v, want boolean true", n)
	}

	n = mustCompile(t, `false`)
	if n.Kind != KindBoolean || n.BoolValue == nil || *n.BoolValue {
		t.Fatalf("got %+v, want boolean false", n)
	}

	n = mustCompile(t, `{}`)
	if n.Kind != KindBoolean || n.BoolValue == nil || !*n.BoolValue {
		t.Fatalf("empty object schema should compile as permissive boolean true, got %+v", n)
	}
}

func TestCompileRootArrayRejected(t *testing.T) {
	_, errs := Compile(mustDecodeValue(t, `[{"type":"string"},{"type":"number"}]`))
	if len(errs) == 0 {
		t.Fatal("expected a parser error for a root-level array")
	}
}

func TestCompileNestedArrayShorthand(t *testing.T) {
	n := mustCompile(t, `{"items":[{"type":"string"},{"type":"number"}]}`)
	if n.Kind != KindArray || !n.ItemsIsArray || len(n.Items) != 2 {
		t.Fatalf("got %+v", n)
	}
	if n.Items[0].Type != TypeString || n.Items[1].Type != TypeNumber {
		t.Fatalf("item types wrong: %v, %v", n.Items[0].Type, n.Items[1].Type)
	}
}

func TestCompileAllOfArrayShorthand(t *testing.T) {
	n := mustCompile(t, `{"allOf":[[{"type":"string"},{"type":"number"}]]}`)
	sub := n.AllOf[0]
	if sub.Kind != KindArray || !sub.ItemsIsArray || len(sub.Items) != 2 {
		t.Fatalf("got %+v", sub)
	}
}

func TestClassifyByType(t *testing.T) {
	tests := []struct {
		schema string
		want   Kind
	}{
		{`{"type":"string"}`, KindString},
		{`{"type":"integer"}`, KindNumber},
		{`{"type":"number"}`, KindNumber},
		{`{"type":"array"}`, KindArray},
		{`{"type":"object"}`, KindObject},
		{`{"type":"boolean"}`, KindBoolean},
		{`{"type":"null"}`, KindNull},
	}
	for _, tt := range tests {
		n := mustCompile(t, tt.schema)
		if n.Kind != tt.want {
			t.Errorf("Compile(%s).Kind = %v, want %v", tt.schema, n.Kind, tt.want)
		}
	}
}

func TestClassifyByKeywordInference(t *testing.T) {
	tests := []struct {
		schema string
		want   Kind
	}{
		{`{"minimum": 0}`, KindNumber},
		{`{"pattern": "^a"}`, KindString},
		{`{"items": {"type":"string"}}`, KindArray},
		{`{"properties": {"a": true}}`, KindObject},
		{`{"required": ["a"]}`, KindObject},
	}
	for _, tt := range tests {
		n := mustCompile(t, tt.schema)
		if n.Kind != tt.want {
			t.Errorf("Compile(%s).Kind = %v, want %v", tt.schema, n.Kind, tt.want)
		}
	}
}

func TestCompilePointerComputation(t *testing.T) {
	n := mustCompile(t, `{"properties":{"a":{"type":"string"},"b":{"type":"number"}}}`)
	a := n.Properties["a"]
	if got, want := a.Pointer(), "#/properties/a"; got != want {
		t.Errorf("Pointer() = %q, want %q", got, want)
	}
}

func TestCompileRequiredMarksProperty(t *testing.T) {
	n := mustCompile(t, `{"properties":{"a":{"type":"string"}},"required":["a"]}`)
	if !n.Properties["a"].Required {
		t.Error("expected property a to be marked Required")
	}
}

func TestCompileEnumDeduplicates(t *testing.T) {
	n := mustCompile(t, `{"enum":[1,1.0,2,2]}`)
	want := []jsonvalue.Value{jsonvalue.Int(1), jsonvalue.Int(2)}
	if diff := cmp.Diff(want, n.EnumItems, cmp.Comparer(jsonvalue.Equal)); diff != "" {
		t.Errorf("EnumItems mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileDefsAndAnchor(t *testing.T) {
	n := mustCompile(t, `{"$defs":{"pos":{"$anchor":"positive","minimum":0}}}`)
	if n.Defs == nil || n.Defs["pos"] == nil {
		t.Fatal("expected $defs/pos to be compiled")
	}
	anchored, ok := n.Anchors["positive"]
	if !ok || anchored != n.Defs["pos"] {
		t.Error("expected $anchor to register the $defs/pos node")
	}
}

func TestCompileRefPercentDecoding(t *testing.T) {
	n := mustCompile(t, `{"$ref":"#/$defs/a~1b%2Fc%7E0"}`)
	if got, want := n.Ref, "#/$defs/a~1b~1c~00"; got != want {
		t.Errorf("Ref = %q, want %q", got, want)
	}
}

func TestCompileInvalidTypeArrayRejected(t *testing.T) {
	_, errs := Compile(mustDecodeValue(t, `{"type":["string","null"]}`))
	if len(errs) == 0 {
		t.Error("expected error for array-valued type")
	}
}

func TestCompileDuplicateKeyRejected(t *testing.T) {
	_, err := jsonvalue.DecodeBytes([]byte(`{"type":"string","type":"number"}`))
	if err == nil {
		t.Fatal("expected duplicate-key decode error")
	}
}

func mustDecodeValue(t *testing.T, s string) jsonvalue.Value {
	t.Helper()
	v, err := jsonvalue.DecodeBytes([]byte(s))
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	return v
}

func TestCompilePatternPropertiesIdentifiedByPattern(t *testing.T) {
	n := mustCompile(t, `{"patternProperties":{"^S_":{"type":"string"}}}`)
	if len(n.PatternProperties) != 1 {
		t.Fatalf("len(PatternProperties) = %d, want 1", len(n.PatternProperties))
	}
	pp := n.PatternProperties[0]
	if !pp.node.IdentifiedByPattern {
		t.Error("expected IdentifiedByPattern on patternProperties child")
	}
	if !pp.matcher.MatchString("S_foo") {
		t.Error("expected compiled matcher to match S_foo")
	}
}
