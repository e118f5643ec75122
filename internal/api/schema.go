// internal/api/schema.go
package api

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// createSubmissionSchema is the shape gate for POST /submissions. It
// checks structure only; field semantics stay with the coverage
// validator.
var createSubmissionSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"agencyId", "clientType"},
	"properties": map[string]interface{}{
		"agencyId":   map[string]interface{}{"type": "string", "minLength": 1},
		"producerId": map[string]interface{}{"type": "string"},
		"clientType": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"personal", "business", "both"},
		},
		"business": map[string]interface{}{"type": "object"},
		"contact":  map[string]interface{}{"type": "object"},
		"coverageTypes": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"coverageAnswers": map[string]interface{}{"type": "object"},
	},
}

// checkCreatePayload validates the raw request body against the create
// schema and returns one message per violation.
func checkCreatePayload(raw []byte) ([]string, error) {
	schemaLoader := gojsonschema.NewGoLoader(createSubmissionSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("payload is not valid JSON: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}
	issues := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		issues[i] = desc.String()
	}
	return issues, nil
}
