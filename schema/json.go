package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// JSONSchema validates data against a compiled JSON Schema document.
type JSONSchema struct {
	schema *gojsonschema.Schema
}

// JSON compiles a JSON Schema document.
func JSON(doc []byte) (*JSONSchema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("schema: compile: %w", err)
	}
	return &JSONSchema{schema: s}, nil
}

// MustJSON is like JSON but panics on an invalid document. It is meant for
// package-level schema variables.
func MustJSON(doc string) *JSONSchema {
	s, err := JSON([]byte(doc))
	if err != nil {
		panic(err)
	}
	return s
}

// JSONFile loads and compiles a schema file. Files ending in .yaml or .yml
// are decoded as YAML first; anything else is read as JSON.
func JSONFile(path string) (*JSONSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("schema: parse %s: %w", path, err)
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
		if err != nil {
			return nil, fmt.Errorf("schema: compile %s: %w", path, err)
		}
		return &JSONSchema{schema: s}, nil
	default:
		return JSON(data)
	}
}

// Validate checks data against the schema. data is re-encoded to JSON, so
// any value produced by encoding/json is accepted.
func (s *JSONSchema) Validate(data any) error {
	doc, err := json.Marshal(data)
	if err != nil {
		return issue("(root)", fmt.Sprintf("not encodable as JSON: %v", err))
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return issue("(root)", err.Error())
	}
	if result.Valid() {
		return nil
	}

	e := &Error{Issues: make([]Issue, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		e.Issues = append(e.Issues, Issue{Path: desc.Field(), Message: desc.Description()})
	}
	return e
}
