// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package gs1

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// TableSchema is the JSON Schema that table definitions are checked
// against before they are built.
//
//go:embed table.schema.json
var TableSchema string

var tableSchema = mustSchema(gojsonschema.NewSchema(gojsonschema.NewStringLoader(TableSchema)))

func mustSchema(s *gojsonschema.Schema, err error) *gojsonschema.Schema {
	if err != nil {
		panic(fmt.Sprintf("gs1: invalid table schema: %v", err))
	}
	return s
}

// checkTableDocument validates a decoded YAML or JSON document against
// TableSchema.
func checkTableDocument(doc any) error {
	result, err := tableSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to parse table: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var b strings.Builder
	b.WriteString("table failed schema validation:")
	for _, desc := range result.Errors() {
		fmt.Fprintf(&b, "\n- %s", desc)
	}
	return fmt.Errorf("%s", b.String())
}
