// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustValidate(t *testing.T, schema, instance string) (bool, []string) {
	t.Helper()
	n := mustCompile(t, schema)
	v := mustDecodeValue(t, instance)
	return Validate(n, v)
}

func TestValidateTypeMismatch(t *testing.T) {
	ok, errs := mustValidate(t, `{"type":"string"}`, `5`)
	if ok {
		t.Fatal("expected failure")
	}
	want := []string{"#: expected type string, got number"}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("errs mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateIntegerRejectsFraction(t *testing.T) {
	ok, _ := mustValidate(t, `{"type":"integer"}`, `1.5`)
	if ok {
		t.Fatal("expected failure for fractional integer")
	}
	ok, _ = mustValidate(t, `{"type":"integer"}`, `4`)
	if !ok {
		t.Fatal("expected 4 to satisfy integer")
	}
}

func TestValidateStringLengthAndPattern(t *testing.T) {
	schema := `{"type":"string","minLength":2,"maxLength":4,"pattern":"^a"}`
	cases := []struct {
		instance string
		ok       bool
	}{
		{`"a"`, false},
		{`"abcde"`, false},
		{`"bcd"`, false},
		{`"abc"`, true},
	}
	for _, tt := range cases {
		ok, errs := mustValidate(t, schema, tt.instance)
		if ok != tt.ok {
			t.Errorf("Validate(%s) = %v (%v), want %v", tt.instance, ok, errs, tt.ok)
		}
	}
}

func TestValidateNumberBounds(t *testing.T) {
	schema := `{"minimum":0,"maximum":10,"exclusiveMinimum":0,"multipleOf":2}`
	cases := []struct {
		instance string
		ok       bool
	}{
		{"0", false},
		{"2", true},
		{"3", false},
		{"10", true},
		{"11", false},
	}
	for _, tt := range cases {
		ok, errs := mustValidate(t, schema, tt.instance)
		if ok != tt.ok {
			t.Errorf("Validate(%s) = %v (%v), want %v", tt.instance, ok, errs, tt.ok)
		}
	}
}

func TestValidateRequiredProperties(t *testing.T) {
	schema := `{"type":"object","properties":{"a":{"type":"string"}},"required":["a","b"]}`
	ok, errs := mustValidate(t, schema, `{"a":"x"}`)
	if ok {
		t.Fatal("expected failure for missing required property b")
	}
	want := []string{`#: missing required property "b"`}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("errs mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateAdditionalPropertiesFalse(t *testing.T) {
	schema := `{"properties":{"a":true},"additionalProperties":false}`
	ok, _ := mustValidate(t, schema, `{"a":1,"b":2}`)
	if ok {
		t.Fatal("expected failure for additional property b")
	}
	ok, _ = mustValidate(t, schema, `{"a":1}`)
	if !ok {
		t.Fatal("expected success with only known property")
	}
}

func TestValidatePatternPropertiesExemptsAdditional(t *testing.T) {
	schema := `{"patternProperties":{"^S_":{"type":"string"}},"additionalProperties":false}`
	ok, errs := mustValidate(t, schema, `{"S_a":"x"}`)
	if !ok {
		t.Fatalf("expected success, got errs %v", errs)
	}
	ok, _ = mustValidate(t, schema, `{"other":"x"}`)
	if ok {
		t.Fatal("expected failure: 'other' matches no pattern and additionalProperties is false")
	}
}

func TestValidateDependentRequired(t *testing.T) {
	schema := `{"dependentRequired":{"credit_card":["billing_address"]}}`
	ok, _ := mustValidate(t, schema, `{"credit_card":"1234"}`)
	if ok {
		t.Fatal("expected failure: credit_card present without billing_address")
	}
	ok, _ = mustValidate(t, schema, `{"credit_card":"1234","billing_address":"x"}`)
	if !ok {
		t.Fatal("expected success with both fields present")
	}
	ok, _ = mustValidate(t, schema, `{}`)
	if !ok {
		t.Fatal("expected success when trigger property is absent")
	}
}

func TestValidateArrayTuple(t *testing.T) {
	schema := `{"items":[{"type":"string"},{"type":"number"}],"additionalItems":false}`
	ok, _ := mustValidate(t, schema, `["a",1]`)
	if !ok {
		t.Fatal("expected success for matching tuple")
	}
	ok, _ = mustValidate(t, schema, `["a",1,"extra"]`)
	if ok {
		t.Fatal("expected failure: additionalItems forbidden")
	}
}

func TestValidateArrayUniqueItems(t *testing.T) {
	schema := `{"uniqueItems":true}`
	ok, _ := mustValidate(t, schema, `[1,2,3]`)
	if !ok {
		t.Fatal("expected success for unique items")
	}
	ok, _ = mustValidate(t, schema, `[1,2,2]`)
	if ok {
		t.Fatal("expected failure for duplicate items")
	}
}

func TestValidateContains(t *testing.T) {
	schema := `{"contains":{"type":"number","minimum":10}}`
	ok, _ := mustValidate(t, schema, `[1,2,11]`)
	if !ok {
		t.Fatal("expected success: array contains a value >= 10")
	}
	ok, _ = mustValidate(t, schema, `[1,2,3]`)
	if ok {
		t.Fatal("expected failure: no array item satisfies contains")
	}
}

func TestValidateEnum(t *testing.T) {
	schema := `{"enum":["red","green","blue"]}`
	ok, _ := mustValidate(t, schema, `"green"`)
	if !ok {
		t.Fatal("expected success for enumerated value")
	}
	ok, _ = mustValidate(t, schema, `"purple"`)
	if ok {
		t.Fatal("expected failure for non-enumerated value")
	}
}

func TestValidateAllOfAnyOfOneOfNot(t *testing.T) {
	allOf := `{"allOf":[{"type":"number"},{"minimum":0}]}`
	ok, _ := mustValidate(t, allOf, `-1`)
	if ok {
		t.Fatal("allOf: expected failure")
	}

	anyOf := `{"anyOf":[{"type":"string"},{"type":"number"}]}`
	ok, _ = mustValidate(t, anyOf, `true`)
	if ok {
		t.Fatal("anyOf: expected failure, bool matches neither branch")
	}
	ok, _ = mustValidate(t, anyOf, `"x"`)
	if !ok {
		t.Fatal("anyOf: expected success")
	}

	oneOf := `{"oneOf":[{"multipleOf":2},{"multipleOf":3}]}`
	ok, _ = mustValidate(t, oneOf, `6`)
	if ok {
		t.Fatal("oneOf: expected failure, 6 matches both branches")
	}
	ok, _ = mustValidate(t, oneOf, `4`)
	if !ok {
		t.Fatal("oneOf: expected success, 4 matches exactly one branch")
	}

	not := `{"not":{"type":"string"}}`
	ok, _ = mustValidate(t, not, `"x"`)
	if ok {
		t.Fatal("not: expected failure for string instance")
	}
	ok, _ = mustValidate(t, not, `5`)
	if !ok {
		t.Fatal("not: expected success for non-string instance")
	}
}

func TestValidateRefRecursiveStructure(t *testing.T) {
	schema := `{
		"$defs": {
			"node": {
				"type": "object",
				"properties": {
					"value": {"type": "number"},
					"next": {"anyOf": [{"type": "null"}, {"$ref": "#/$defs/node"}]}
				},
				"required": ["value"]
			}
		},
		"$ref": "#/$defs/node"
	}`
	ok, errs := mustValidate(t, schema, `{"value":1,"next":{"value":2,"next":null}}`)
	if !ok {
		t.Fatalf("expected success, got errs %v", errs)
	}
	ok, _ = mustValidate(t, schema, `{"value":1,"next":{"next":null}}`)
	if ok {
		t.Fatal("expected failure: nested node missing required value")
	}
}

func TestValidateBooleanSchemas(t *testing.T) {
	ok, _ := mustValidate(t, `true`, `"anything"`)
	if !ok {
		t.Fatal("expected true schema to accept anything")
	}
	ok, _ = mustValidate(t, `false`, `"anything"`)
	if ok {
		t.Fatal("expected false schema to reject everything")
	}
}

func TestValidateTypeBooleanWithNoLiteralValue(t *testing.T) {
	ok, errs := mustValidate(t, `{"type":"boolean"}`, `true`)
	if !ok {
		t.Fatalf("expected boolean instance to satisfy {\"type\":\"boolean\"}, got errs %v", errs)
	}
	ok, errs = mustValidate(t, `{"type":"boolean"}`, `"x"`)
	if ok {
		t.Fatal("expected string instance to fail {\"type\":\"boolean\"}")
	}
	want := []string{"#: expected type boolean, got string"}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("errs mismatch (-want +got):\n%s", diff)
	}
}

func TestValidatePropertyNames(t *testing.T) {
	schema := `{"type":"object","propertyNames":{"pattern":"^[a-z]+$"}}`
	ok, _ := mustValidate(t, schema, `{"abc":1}`)
	if !ok {
		t.Fatal("expected success for lowercase property name")
	}
	ok, _ = mustValidate(t, schema, `{"ABC":1}`)
	if ok {
		t.Fatal("expected failure for uppercase property name")
	}
}
