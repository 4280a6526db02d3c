// Package schemas embeds the JSON Schemas for the artifacts the CLI writes.
package schemas

import _ "embed"

// ExtractionResult is the schema for one extracted document record
//
//go:embed extraction_result.schema.json
var ExtractionResult string
