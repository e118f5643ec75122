// pkg/acordspec/acordspec.go
package acordspec

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"acord-intake/internal/acord"
)

// Load reads a form-spec override file, checks it against the schema,
// and parses it.
func Load(path string) (*SpecFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var document interface{}
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("parsing form spec file %s: %w", path, err)
	}
	if err := validateDocument(document); err != nil {
		return nil, fmt.Errorf("form spec file %s: %w", path, err)
	}

	var file SpecFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing form spec file %s: %w", path, err)
	}
	return &file, nil
}

func validateDocument(document interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(specSchema)
	documentLoader := gojsonschema.NewGoLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("schema validation failed: %v", errs)
	}

	return nil
}

// Validate checks every form spec in the file and rejects duplicate
// form types. Files that fail here are refused at startup rather than
// producing half-applied overrides.
func (f *SpecFile) Validate() error {
	if len(f.Forms) == 0 {
		return fmt.Errorf("form spec file declares no forms")
	}
	seen := make(map[string]bool, len(f.Forms))
	for _, spec := range f.Forms {
		if err := spec.Validate(); err != nil {
			return err
		}
		if seen[spec.FormType] {
			return fmt.Errorf("form spec file lists %s twice", spec.FormType)
		}
		seen[spec.FormType] = true
	}
	return nil
}

// Apply overrides the catalog with every form in the file and returns
// the number of specs applied.
func (f *SpecFile) Apply(fc *acord.FormCatalog) int {
	for _, spec := range f.Forms {
		fc.Override(spec)
	}
	return len(f.Forms)
}
