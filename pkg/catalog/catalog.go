// pkg/catalog/catalog.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// jsonSchema is validated against catalog files before they are trusted.
// Structural mistakes in a hand-edited catalog fail here instead of half-way
// through a database seed.
const jsonSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "intents", "devices"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "intents": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "category", "threshold", "keywords"],
        "properties": {
          "name": {"type": "string", "pattern": "^[a-z][a-z0-9_]*$"},
          "description": {"type": "string"},
          "category": {"type": "string", "minLength": 1},
          "threshold": {"type": "number", "minimum": 0, "maximum": 1},
          "keywords": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["keyword", "weight"],
              "properties": {
                "keyword": {"type": "string", "minLength": 1},
                "weight": {"type": "number", "exclusiveMinimum": 0},
                "context": {"type": "string"}
              }
            }
          },
          "actions": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name", "functionName", "riskLevel"],
              "properties": {
                "name": {"type": "string", "minLength": 1},
                "functionName": {"type": "string", "pattern": "^[a-z][a-z0-9_]*$"},
                "riskLevel": {"enum": ["low", "medium", "high"]},
                "topic": {"type": "string"},
                "payloadTemplate": {"type": "string"},
                "transportCompatible": {"type": "boolean"},
                "confirmationRequired": {"type": "boolean"},
                "parameters": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "required": ["name", "type"],
                    "properties": {
                      "name": {"type": "string", "pattern": "^[a-z][a-z0-9_]*$"},
                      "type": {"enum": ["string", "integer", "number", "boolean"]},
                      "default": {"type": "string"},
                      "required": {"type": "boolean"},
                      "validationRule": {"type": "string"}
                    }
                  }
                }
              }
            }
          }
        }
      }
    },
    "devices": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "category", "topic", "deviceType", "keywords", "actions"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "category": {"type": "string", "minLength": 1},
          "room": {"type": "string"},
          "topic": {"type": "string", "minLength": 1},
          "deviceType": {"type": "string", "minLength": 1},
          "keywords": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["keyword"],
              "properties": {
                "keyword": {"type": "string", "minLength": 1},
                "context": {"type": "string"}
              }
            }
          },
          "actions": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["name", "command"],
              "properties": {
                "name": {"type": "string", "pattern": "^[a-z][a-z0-9_]*$"},
                "command": {"type": "string", "minLength": 1},
                "payload": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`

// Validate checks raw catalog JSON against the schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(jsonSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return fmt.Errorf("catalog invalid:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

// Load reads, validates and decodes a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &cat, nil
}
