// Package schemas embeds the JSON Schemas for botbench configuration files.
package schemas

import _ "embed"

// ConfigSchemaJSON is the schema for .botbench.yaml.
//
//go:embed config.schema.json
var ConfigSchemaJSON string
