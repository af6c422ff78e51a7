// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tamberline/schemacheck/jsonvalue"
)

// scenarioCase and scenarioTest mirror the description/schema/tests shape
// of the keyword-by-keyword fixture files the original SerenityOS test
// driver (Tests/TestJsonSchemas.cpp) loaded from resource/draft2019-09/,
// restored here as Go table fixtures under testdata/scenarios
// (SPEC_FULL.md §4).
type scenarioCase struct {
	Description string
	Schema      jsonvalue.Value
	Tests       []scenarioTest
}

type scenarioTest struct {
	Description string
	Data        jsonvalue.Value
	Valid       bool
}

func loadScenarios(t *testing.T, path string) []scenarioCase {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	v, err := jsonvalue.DecodeBytes(raw)
	if err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}
	if v.Kind != jsonvalue.KindArray {
		t.Fatalf("%s: top level must be an array", path)
	}
	var cases []scenarioCase
	for _, item := range v.Array {
		obj := item.Object
		descVal, _ := obj.Get("description")
		schemaVal, _ := obj.Get("schema")
		testsVal, _ := obj.Get("tests")

		var tests []scenarioTest
		for _, tv := range testsVal.Array {
			tobj := tv.Object
			tDesc, _ := tobj.Get("description")
			tData, _ := tobj.Get("data")
			tValid, _ := tobj.Get("valid")
			tests = append(tests, scenarioTest{
				Description: tDesc.Str,
				Data:        tData,
				Valid:       tValid.Bool,
			})
		}
		cases = append(cases, scenarioCase{
			Description: descVal.Str,
			Schema:      schemaVal,
			Tests:       tests,
		})
	}
	return cases
}

func runScenarioFile(t *testing.T, filename string) {
	t.Helper()
	path := filepath.Join("..", "testdata", "scenarios", filename)
	for _, c := range loadScenarios(t, path) {
		t.Run(c.Description, func(t *testing.T) {
			root, errs := Compile(c.Schema)
			if len(errs) > 0 {
				t.Fatalf("Compile: %v", errs)
			}
			for _, tc := range c.Tests {
				t.Run(tc.Description, func(t *testing.T) {
					ok, verrs := Validate(root, tc.Data)
					if ok != tc.Valid {
						t.Errorf("Validate() = %v (%v), want %v", ok, verrs, tc.Valid)
					}
				})
			}
		})
	}
}

func TestScenariosRequired(t *testing.T)        { runScenarioFile(t, "required.json") }
func TestScenariosPattern(t *testing.T)         { runScenarioFile(t, "pattern.json") }
func TestScenariosAdditionalItems(t *testing.T) { runScenarioFile(t, "additionalItems.json") }
func TestScenariosMultipleOf(t *testing.T)      { runScenarioFile(t, "multipleOf.json") }
func TestScenariosUniqueItems(t *testing.T)     { runScenarioFile(t, "uniqueItems.json") }
