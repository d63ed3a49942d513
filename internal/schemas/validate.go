// Package schemas provides JSON Schema validation for the persona and
// preference-record wire formats. Schemas are embedded at compile time.
package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mariana/concept-panel/internal/types"
)

// Embedded schema names.
const (
	PersonaSchema          = "persona.schema.json"
	PreferenceRecordSchema = "preference_record.schema.json"
)

//go:embed *.schema.json
var schemaFiles embed.FS

var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for _, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %s: %s;", err.Field, err.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// Validate checks a JSON document against one of the embedded schemas.
// Returns nil when the document conforms, a *ValidationError when it does
// not, and a plain error when the schema itself cannot be loaded.
func Validate(schemaName string, document []byte) error {
	schema, err := load(schemaName)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("failed to validate against %s: %w", schemaName, err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}

// ValidPersona reports whether a parsed persona conforms to the persona
// wire-format schema.
func ValidPersona(p types.Persona) bool {
	data, err := json.Marshal(p)
	if err != nil {
		return false
	}
	return Validate(PersonaSchema, data) == nil
}

// FilterPersonas drops personas that fail schema validation. The survivors
// keep their original order.
func FilterPersonas(personas []types.Persona) []types.Persona {
	valid := make([]types.Persona, 0, len(personas))
	for _, p := range personas {
		if ValidPersona(p) {
			valid = append(valid, p)
		}
	}
	return valid
}

// load compiles and caches an embedded schema.
func load(schemaName string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, exists := compiled[schemaName]; exists {
		return schema, nil
	}

	data, err := schemaFiles.ReadFile(schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", schemaName, err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", schemaName, err)
	}

	compiled[schemaName] = schema
	return schema, nil
}
