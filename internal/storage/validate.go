package storage

import (
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/checklist-go/internal/utils"
)

// ValidationError describes a checklist document shape violation.
type ValidationError struct {
	Path string // JSON path to the error location, empty for the root
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// documentSchemaJSON is the JSON Schema for the checklist file format.
const documentSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["categories"],
  "properties": {
    "categories": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name"],
        "properties": {
          "id": {"type": "integer"},
          "name": {"type": "string", "minLength": 1},
          "tasks": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["text"],
              "properties": {
                "text": {"type": "string"},
                "completed": {"type": "boolean"},
                "created": {"type": "string"},
                "notes": {"type": "array", "items": {"type": "string"}},
                "subtasks": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "required": ["text"],
                    "properties": {
                      "text": {"type": "string"},
                      "completed": {"type": "boolean"}
                    }
                  }
                },
                "priority": {"type": "string"},
                "due_date": {"type": "string"},
                "reminder": {"type": "string"}
              }
            }
          }
        }
      }
    },
    "current_category": {"type": ["integer", "null"]}
  }
}`

var documentSchema = jsonschema.MustCompileString("checklist.schema.json", documentSchemaJSON)

// validateDocument checks the decoded JSON document against the
// checklist shape rules. Structural checks run first so the common
// failure modes produce stable messages; the schema then covers the
// deeper field types.
func validateDocument(doc any) error {
	root, ok := doc.(map[string]any)
	if !ok {
		return &ValidationError{Err: fmt.Errorf("root must be an object")}
	}

	categories, present := root["categories"]
	if !present {
		return &ValidationError{Path: "categories", Err: fmt.Errorf("missing required field")}
	}
	if _, ok := categories.([]any); !ok {
		return &ValidationError{Path: "categories", Err: fmt.Errorf("must be a list")}
	}

	if err := documentSchema.Validate(doc); err != nil {
		return &ValidationError{Path: schemaErrorPath(err), Err: fmt.Errorf("%s", schemaErrorMessage(err))}
	}
	return nil
}

// schemaErrorPath extracts the instance location of the innermost
// schema violation as a dot-notation path.
func schemaErrorPath(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return ""
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return utils.JSONPointerToPath(ve.InstanceLocation)
}

// schemaErrorMessage extracts the message of the innermost schema
// violation.
func schemaErrorMessage(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve.Message
}

// decodeDocument parses and validates raw checklist JSON, returning the
// generic document for validation and the raw bytes for struct
// decoding.
func decodeDocument(data []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse checklist file: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
