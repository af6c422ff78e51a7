// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tamberline/schemacheck/jsonvalue"
)

// DecodeYAML parses a single YAML document and converts it into the same
// jsonvalue.Value representation Compile and Validate consume, so schemas
// and instances may be authored in either notation (spec.md §6's
// load_from_file accepts both).
func DecodeYAML(raw []byte) (jsonvalue.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return jsonvalue.Undefined, fmt.Errorf("parsing YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return jsonvalue.Undefined, nil
	}
	return yamlNodeToValue(doc.Content[0])
}

func yamlNodeToValue(n *yaml.Node) (jsonvalue.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return jsonvalue.Undefined, nil
		}
		return yamlNodeToValue(n.Content[0])
	case yaml.AliasNode:
		return yamlNodeToValue(n.Alias)
	case yaml.ScalarNode:
		return yamlScalarToValue(n)
	case yaml.SequenceNode:
		vals := make([]jsonvalue.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlNodeToValue(c)
			if err != nil {
				return jsonvalue.Undefined, err
			}
			vals = append(vals, v)
		}
		return jsonvalue.Array(vals...), nil
	case yaml.MappingNode:
		obj := jsonvalue.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return jsonvalue.Undefined, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
			}
			val, err := yamlNodeToValue(valNode)
			if err != nil {
				return jsonvalue.Undefined, err
			}
			if err := obj.Set(keyNode.Value, val); err != nil {
				return jsonvalue.Undefined, fmt.Errorf("line %d: %w", keyNode.Line, err)
			}
		}
		return jsonvalue.ObjectValue(obj), nil
	default:
		return jsonvalue.Undefined, fmt.Errorf("line %d: unsupported YAML node kind", n.Line)
	}
}

func yamlScalarToValue(n *yaml.Node) (jsonvalue.Value, error) {
	tag := n.Tag
	switch tag {
	case "!!null":
		return jsonvalue.Null, nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return jsonvalue.Undefined, fmt.Errorf("line %d: invalid bool %q", n.Line, n.Value)
		}
		return jsonvalue.Bool(b), nil
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return jsonvalue.Int(i), nil
		}
		if u, err := strconv.ParseUint(n.Value, 0, 64); err == nil {
			return jsonvalue.Uint(u), nil
		}
		return jsonvalue.Undefined, fmt.Errorf("line %d: invalid int %q", n.Line, n.Value)
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return jsonvalue.Undefined, fmt.Errorf("line %d: invalid float %q", n.Line, n.Value)
		}
		return jsonvalue.Float(f), nil
	default:
		return jsonvalue.String(n.Value), nil
	}
}
