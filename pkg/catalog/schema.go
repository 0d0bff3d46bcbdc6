package catalog

import "github.com/santhosh-tekuri/jsonschema/v5"

// Embedded JSON schemas for catalog and background graph files. Compiled
// once at init; a failure here is a programming error, not user input.

const catalogSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "rules"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "min_engine": {"type": "string"},
    "rules": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "group", "body", "head"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "group": {
            "enum": ["activation", "prohibited", "risk", "requirement", "exception", "scope", "incident"]
          },
          "body": {"$ref": "#/$defs/atoms"},
          "head": {"$ref": "#/$defs/atoms"},
          "guard": {"type": "string"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false,
  "$defs": {
    "atoms": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "array",
        "minItems": 3,
        "maxItems": 3,
        "items": {"type": ["string", "integer", "boolean"]}
      }
    }
  }
}`

const backgroundSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["triples"],
  "properties": {
    "triples": {
      "type": "array",
      "items": {
        "type": "array",
        "minItems": 3,
        "maxItems": 3,
        "items": {"type": ["string", "integer", "boolean"]}
      }
    }
  },
  "additionalProperties": false
}`

var (
	catalogSchema    = jsonschema.MustCompileString("catalog.schema.json", catalogSchemaJSON)
	backgroundSchema = jsonschema.MustCompileString("background.schema.json", backgroundSchemaJSON)
)
