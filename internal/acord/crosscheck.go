// internal/acord/crosscheck.go
package acord

import (
	"fmt"
	"strings"

	"acord-intake/internal/catalog"
)

// CrossCheck verifies the coverage catalog and the form field catalog
// against each other: every coverage form has a field mapping, every
// question target field lands on one of its coverage's forms, every
// mapped answer path references a defined question, and every computed
// field name is registered. Empty result means the catalogs agree.
func CrossCheck(cat *catalog.Catalog, forms *FormCatalog) []string {
	issues := append([]string{}, cat.SelfCheck()...)

	coverages := cat.List("")

	questionIDs := make(map[string]bool)
	for _, ct := range coverages {
		for _, q := range ct.Questions {
			questionIDs[q.ID] = true
		}
	}

	for _, ct := range coverages {
		for _, formType := range ct.Forms {
			if _, ok := forms.Get(formType); !ok {
				issues = append(issues, fmt.Sprintf("coverage %q lists form %q which has no field mapping", ct.ID, formType))
			}
		}

		for _, q := range ct.Questions {
			if q.TargetField == "" {
				continue
			}
			found := false
			for _, formType := range ct.Forms {
				if spec, ok := forms.Get(formType); ok && spec.HasField(q.TargetField) {
					found = true
					break
				}
			}
			if !found {
				issues = append(issues, fmt.Sprintf("question %q targets field %q which none of coverage %q forms carry", q.ID, q.TargetField, ct.ID))
			}
		}
	}

	for _, formType := range forms.FormTypes() {
		spec, _ := forms.Get(formType)
		if err := spec.Validate(); err != nil {
			issues = append(issues, fmt.Sprintf("form %q: %v", formType, err))
		}

		for _, fs := range spec.Fields {
			if strings.HasPrefix(fs.Path, "coverageAnswers.") {
				id := strings.TrimPrefix(fs.Path, "coverageAnswers.")
				if !questionIDs[id] {
					issues = append(issues, fmt.Sprintf("form %q field %q maps answer %q which no coverage question defines", formType, fs.Field, id))
				}
			}
			if fs.Computed != "" && !IsComputedField(fs.Computed) {
				issues = append(issues, fmt.Sprintf("form %q field %q references unknown computed field %q (known: %s)",
					formType, fs.Field, fs.Computed, strings.Join(ComputedFieldNames(), ", ")))
			}
		}
	}

	return issues
}
