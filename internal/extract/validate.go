package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaValidator checks parsed records against the JSON Schema generated
// from a Schema.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

func NewSchemaValidator(s Schema) (*SchemaValidator, error) {
	b, err := json.Marshal(s.JSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("resume.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile("resume.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &SchemaValidator{schema: compiled}, nil
}

// Validate returns an error describing the first mismatches, or nil.
func (v *SchemaValidator) Validate(r Record) error {
	if err := v.schema.Validate(r.Value()); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
