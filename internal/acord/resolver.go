// internal/acord/resolver.go
package acord

import "acord-intake/internal/catalog"

// Resolver turns a coverage selection into the ordered list of ACORD
// form types to generate.
type Resolver struct {
	catalog *catalog.Catalog
}

// NewResolver creates a resolver over the given coverage catalog.
func NewResolver(cat *catalog.Catalog) *Resolver {
	return &Resolver{catalog: cat}
}

// ResolveFormTypes returns the deduplicated union of the form lists of
// the selected coverage types. Order is deterministic: coverages in
// selection order, each coverage's forms in catalog order, keeping the
// first occurrence of a form that several coverages share. Coverage
// references are normalized first; ids that still resolve to nothing
// are skipped.
func (r *Resolver) ResolveFormTypes(coverageTypes []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(coverageTypes)*2)
	for _, raw := range coverageTypes {
		id, ok := r.catalog.Normalize(raw)
		if !ok {
			continue
		}
		ct, ok := r.catalog.Get(id)
		if !ok {
			continue
		}
		for _, formType := range ct.Forms {
			if seen[formType] {
				continue
			}
			seen[formType] = true
			out = append(out, formType)
		}
	}
	return out
}
