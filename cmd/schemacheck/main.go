// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command schemacheck validates a JSON or YAML instance document against a
// draft 2019-09 JSON Schema document.
//
// Usage:
//
//	schemacheck <schema-file> <instance-file>
//
// Exit status is 0 if the instance is valid, 1 if it fails validation (or
// the schema/instance fail to load), and 2 if the command line itself is
// malformed.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/tamberline/schemacheck/jsonschema"
)

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	if len(args) != 2 {
		fmt.Fprintf(stderr, "usage: schemacheck <schema-file> <instance-file>\n")
		return 2
	}
	schemaPath, instancePath := args[0], args[1]

	root, err := jsonschema.LoadSchemaFile(schemaPath)
	if err != nil {
		fmt.Fprintf(stderr, "schemacheck: %v\n", err)
		return 1
	}

	instance, err := jsonschema.LoadInstanceFile(instancePath)
	if err != nil {
		fmt.Fprintf(stderr, "schemacheck: %v\n", err)
		return 1
	}

	ok, errs := jsonschema.Validate(root, instance)
	if ok {
		fmt.Fprintf(stdout, "%s: valid\n", instancePath)
		return 0
	}

	fmt.Fprintf(stdout, "%s: invalid\n", instancePath)
	for _, e := range errs {
		fmt.Fprintf(stdout, "  %s\n", e)
	}
	return 1
}
