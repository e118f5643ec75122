// pkg/acordspec/schema.go
package acordspec

import "acord-intake/internal/acord"

// SpecFile is the on-disk format for operator-supplied ACORD field
// mapping overrides. Forms listed here replace the compiled-in spec for
// the same form type, or add support for a new form type.
type SpecFile struct {
	Version     string           `json:"version"`
	LastUpdated string           `json:"lastUpdated"`
	Forms       []acord.FormSpec `json:"forms"`
}

// specSchema is checked before the file is decoded into structs so
// shape errors come back with a JSON path instead of a Go unmarshal
// message.
var specSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"version", "forms"},
	"properties": map[string]interface{}{
		"version":     map[string]interface{}{"type": "string", "minLength": 1},
		"lastUpdated": map[string]interface{}{"type": "string"},
		"forms": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"formType", "name", "fields"},
				"properties": map[string]interface{}{
					"formType": map[string]interface{}{"type": "string", "minLength": 1},
					"name":     map[string]interface{}{"type": "string", "minLength": 1},
					"fields": map[string]interface{}{
						"type":     "array",
						"minItems": 1,
						"items": map[string]interface{}{
							"type":     "object",
							"required": []interface{}{"field"},
							"properties": map[string]interface{}{
								"field":    map[string]interface{}{"type": "string", "minLength": 1},
								"path":     map[string]interface{}{"type": "string"},
								"literal":  map[string]interface{}{"type": "string"},
								"computed": map[string]interface{}{"type": "string"},
							},
						},
					},
				},
			},
		},
	},
}
