// internal/acord/populator.go
package acord

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"acord-intake/internal/catalog"
	"acord-intake/internal/common/logger"
	"acord-intake/internal/common/metrics"
	"acord-intake/internal/models"
)

// Populator fills ACORD form fields from submission data. Population is
// deterministic for a fixed clock: the same submission always produces
// the same field map.
type Populator struct {
	catalog *catalog.Catalog
	forms   *FormCatalog
	logger  logger.Logger
	now     func() time.Time
}

// NewPopulator creates a populator over the given catalogs.
func NewPopulator(cat *catalog.Catalog, forms *FormCatalog, log logger.Logger) *Populator {
	return &Populator{
		catalog: cat,
		forms:   forms,
		logger:  log,
		now:     time.Now,
	}
}

// WithClock overrides the time source. Tests use this to pin the
// completion date and generatedAt values.
func (p *Populator) WithClock(now func() time.Time) *Populator {
	p.now = now
	return p
}

// Populate builds one ACORD form from the submission. Fields that
// resolve to nothing are left out of the map entirely. A form type with
// no field mapping yields a form with an empty field map and a logged
// warning rather than an error.
func (p *Populator) Populate(formType string, sub *models.Submission) *models.GeneratedForm {
	form := &models.GeneratedForm{
		SubmissionID: sub.ID,
		FormType:     formType,
		FormName:     p.forms.DisplayName(formType),
		Fields:       make(map[string]string),
		GeneratedAt:  p.now().UTC().Format(time.RFC3339),
	}

	spec, ok := p.forms.Get(formType)
	if !ok {
		p.logger.Warn("no field mapping for form type", map[string]interface{}{
			"formType":     formType,
			"submissionId": sub.ID,
		})
		metrics.FormGenerationSkipped.WithLabelValues("mapping_gap").Inc()
		return form
	}

	doc := submissionDocument(sub)
	for _, fs := range spec.Fields {
		var value string
		switch {
		case fs.Literal != "":
			value = fs.Literal
		case fs.Computed != "":
			value = p.computeField(fs.Computed, sub)
		case fs.Path != "":
			value = formatValue(lookupPath(doc, fs.Path))
		}
		if value == "" {
			continue
		}
		form.Fields[fs.Field] = value
	}

	metrics.FormsGenerated.WithLabelValues(formType).Inc()
	p.logger.Debug("form populated", map[string]interface{}{
		"formType":     formType,
		"submissionId": sub.ID,
		"fieldCount":   form.FieldCount(),
	})
	return form
}

// PopulateAll builds every resolvable form in the given order. Forms
// without a field mapping are skipped with a logged warning instead of
// being returned empty.
func (p *Populator) PopulateAll(sub *models.Submission, formTypes []string) []*models.GeneratedForm {
	forms := make([]*models.GeneratedForm, 0, len(formTypes))
	for _, formType := range formTypes {
		if _, ok := p.forms.Get(formType); !ok {
			p.logger.Warn("skipping form with no field mapping", map[string]interface{}{
				"formType":     formType,
				"submissionId": sub.ID,
			})
			metrics.FormGenerationSkipped.WithLabelValues("mapping_gap").Inc()
			continue
		}
		forms = append(forms, p.Populate(formType, sub))
	}
	return forms
}

// computedFields maps a computed-field name to its implementation. Form
// spec files reference these by name.
var computedFields = map[string]func(p *Populator, sub *models.Submission) string{
	"completionDate": func(p *Populator, sub *models.Submission) string {
		return p.now().UTC().Format("01/02/2006")
	},
	"coverageSummary": func(p *Populator, sub *models.Submission) string {
		names := make([]string, 0, len(sub.CoverageTypes))
		for _, raw := range sub.CoverageTypes {
			if id, ok := p.catalog.Normalize(raw); ok {
				if ct, ok := p.catalog.Get(id); ok {
					names = append(names, ct.Name)
				}
			}
		}
		return strings.Join(names, ", ")
	},
	"contactFullName": func(p *Populator, sub *models.Submission) string {
		return strings.TrimSpace(strings.TrimSpace(sub.Contact.FirstName) + " " + strings.TrimSpace(sub.Contact.LastName))
	},
}

// ComputedFieldNames returns the sorted names of the computed fields a
// form spec may reference.
func ComputedFieldNames() []string {
	names := make([]string, 0, len(computedFields))
	for name := range computedFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsComputedField reports whether name is a known computed field.
func IsComputedField(name string) bool {
	_, ok := computedFields[name]
	return ok
}

func (p *Populator) computeField(name string, sub *models.Submission) string {
	fn, ok := computedFields[name]
	if !ok {
		p.logger.Warn("unknown computed field in form spec", map[string]interface{}{"computed": name})
		return ""
	}
	return fn(p, sub)
}

// submissionDocument flattens the submission into the generic document
// that field paths resolve against. Marshaling through JSON keeps the
// path vocabulary identical to the wire format the wizard submits.
func submissionDocument(sub *models.Submission) map[string]interface{} {
	raw, err := json.Marshal(sub)
	if err != nil {
		return map[string]interface{}{}
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return map[string]interface{}{}
	}
	return doc
}

// lookupPath walks a dotted path through nested objects. Answer keys
// are kebab-case and never contain dots, so a plain split is safe.
func lookupPath(doc map[string]interface{}, path string) interface{} {
	parts := strings.Split(path, ".")
	var current interface{} = doc
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return current
}

// formatValue renders a resolved value as an ACORD field string. Empty
// results mean the field is omitted from the form.
func formatValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case bool:
		if value {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case []interface{}:
		parts := make([]string, 0, len(value))
		for _, item := range value {
			if s := formatValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]interface{}:
		return ""
	default:
		return fmt.Sprintf("%v", value)
	}
}
