package modeljson

import (
	"embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaFS contains the embedded model interchange JSON schema.
//
//go:embed model-schema.json
var SchemaFS embed.FS

const schemaName = "model-schema.json"

// ValidationIssue is one schema violation in an interchange document.
type ValidationIssue struct {
	Field       string
	Description string
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Description)
}

// ValidateBytes checks a JSON interchange document against the embedded
// schema. A nil issue slice with a nil error means the document is valid;
// a non-nil error means validation itself could not run.
func ValidateBytes(data []byte) ([]ValidationIssue, error) {
	schemaBytes, err := SchemaFS.ReadFile(schemaName)
	if err != nil {
		return nil, fmt.Errorf("read embedded schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	issues := make([]ValidationIssue, 0, len(result.Errors()))

	for _, verr := range result.Errors() {
		issues = append(issues, ValidationIssue{
			Field:       verr.Field(),
			Description: verr.Description(),
		})
	}

	return issues, nil
}
