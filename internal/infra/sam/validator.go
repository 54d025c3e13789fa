// Where: internal/infra/sam/validator.go
// What: Structural validation of a decoded template.
// Why: Catch malformed templates before extraction, with pointed messages.
package sam

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/sam.schema.json
var templateSchemaJSON string

var (
	templateSchemaOnce sync.Once
	templateSchema     *jsonschema.Schema
	templateSchemaErr  error
)

func compiledTemplateSchema() (*jsonschema.Schema, error) {
	templateSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("sam.schema.json", strings.NewReader(templateSchemaJSON)); err != nil {
			templateSchemaErr = fmt.Errorf("load template schema: %w", err)
			return
		}
		templateSchema, templateSchemaErr = compiler.Compile("sam.schema.json")
	})
	return templateSchema, templateSchemaErr
}

// ValidateTemplate checks the decoded document against the template schema.
// The document goes through a JSON round-trip first: short-form intrinsic
// tags are already expanded at decode time, so the result is plain data.
func ValidateTemplate(document map[string]any) error {
	schema, err := compiledTemplateSchema()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("encode template: %w", err)
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("decode template: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("template validation failed: %s", flattenValidationError(validationErr))
		}
		return fmt.Errorf("template validation failed: %w", err)
	}
	return nil
}

// flattenValidationError picks the deepest cause so the message names the
// offending location instead of the schema root.
func flattenValidationError(err *jsonschema.ValidationError) string {
	deepest := err
	for len(deepest.Causes) > 0 {
		deepest = deepest.Causes[0]
	}
	location := deepest.InstanceLocation
	if location == "" {
		location = "/"
	}
	return fmt.Sprintf("%s: %s", location, deepest.Message)
}
