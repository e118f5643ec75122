// internal/acord/formspec.go
// Package acord implements the ACORD form generation engine: validating
// intake submissions, resolving which forms a coverage selection needs,
// and populating each form's fields from submission data.
package acord

import (
	"fmt"
	"strings"
)

// FieldSource describes where one ACORD field's value comes from.
// Exactly one of Path, Literal, or Computed is set per field.
type FieldSource struct {
	Field    string `json:"field"`
	Path     string `json:"path,omitempty"`     // dotted path into the submission document
	Literal  string `json:"literal,omitempty"`  // fixed value, e.g. producer boilerplate
	Computed string `json:"computed,omitempty"` // name of a computed-field function
}

// FormSpec is the field mapping for one ACORD form type.
type FormSpec struct {
	FormType string        `json:"formType"`
	Name     string        `json:"name"`
	Fields   []FieldSource `json:"fields"`
}

// Validate checks the spec for structural problems: missing names,
// duplicate field names, and fields with zero or multiple sources.
func (s FormSpec) Validate() error {
	if strings.TrimSpace(s.FormType) == "" {
		return fmt.Errorf("form spec has no form type")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("form spec %s has no display name", s.FormType)
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("form spec %s declares no fields", s.FormType)
	}
	seen := make(map[string]bool, len(s.Fields))
	for i, f := range s.Fields {
		if strings.TrimSpace(f.Field) == "" {
			return fmt.Errorf("form spec %s: field %d has no name", s.FormType, i)
		}
		if seen[f.Field] {
			return fmt.Errorf("form spec %s: duplicate field %s", s.FormType, f.Field)
		}
		seen[f.Field] = true
		sources := 0
		if f.Path != "" {
			sources++
		}
		if f.Literal != "" {
			sources++
		}
		if f.Computed != "" {
			sources++
		}
		if sources != 1 {
			return fmt.Errorf("form spec %s: field %s must have exactly one of path, literal, or computed", s.FormType, f.Field)
		}
	}
	return nil
}

// HasField reports whether the spec maps the given ACORD field name.
func (s FormSpec) HasField(name string) bool {
	for _, f := range s.Fields {
		if f.Field == name {
			return true
		}
	}
	return false
}

// FormCatalog holds the field mappings for every supported form type.
// Lookups are safe for concurrent use after construction; Override is
// only called during startup while loading operator spec files.
type FormCatalog struct {
	specs map[string]FormSpec
	order []string
}

// NewFormCatalog returns the compiled-in form specifications.
func NewFormCatalog() *FormCatalog {
	return NewFormCatalogFromSpecs(defaultFormSpecs)
}

// NewFormCatalogFromSpecs builds a catalog from explicit specs, keeping
// declaration order. Later specs for the same form type win.
func NewFormCatalogFromSpecs(specs []FormSpec) *FormCatalog {
	fc := &FormCatalog{specs: make(map[string]FormSpec, len(specs))}
	for _, s := range specs {
		fc.Override(s)
	}
	return fc
}

// Get looks up the field mapping for a form type.
func (fc *FormCatalog) Get(formType string) (FormSpec, bool) {
	s, ok := fc.specs[formType]
	return s, ok
}

// DisplayName returns the human-readable name for a form type, falling
// back to the form type itself when the form is unknown.
func (fc *FormCatalog) DisplayName(formType string) string {
	if s, ok := fc.specs[formType]; ok {
		return s.Name
	}
	return formType
}

// FormTypes lists the supported form types in declaration order.
func (fc *FormCatalog) FormTypes() []string {
	out := make([]string, len(fc.order))
	copy(out, fc.order)
	return out
}

// Override replaces or adds a form spec. Operator-supplied mapping
// fixes loaded from the form-spec file land here at startup.
func (fc *FormCatalog) Override(spec FormSpec) {
	if _, exists := fc.specs[spec.FormType]; !exists {
		fc.order = append(fc.order, spec.FormType)
	}
	fc.specs[spec.FormType] = spec
}
