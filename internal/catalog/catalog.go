// Package catalog holds the coverage-type reference data that drives
// intake questions and ACORD form resolution. The catalog is immutable
// after construction; lookups are safe for concurrent use.
package catalog

import (
	"strings"

	"acord-intake/internal/common/validation"
	"acord-intake/internal/models"
)

// QuestionType enumerates the wizard answer kinds.
type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionTextarea QuestionType = "textarea"
	QuestionNumber   QuestionType = "number"
	QuestionSelect   QuestionType = "select"
	QuestionMulti    QuestionType = "checkbox-multi"
)

// Question is one coverage-specific intake question. Critical marks
// answers that gate form generation; a critical question is always
// treated as required by the validator. TargetField, when set, names
// the ACORD field the answer feeds so mapping drift can be detected.
type Question struct {
	ID          string              `json:"id"`
	Text        string              `json:"text"`
	Type        QuestionType        `json:"type"`
	Options     []string            `json:"options,omitempty"`
	Min         *float64            `json:"min,omitempty"`
	Max         *float64            `json:"max,omitempty"`
	Required    bool                `json:"required"`
	Critical    bool                `json:"critical"`
	TargetField string              `json:"targetField,omitempty"`
	ClientTypes []models.ClientType `json:"clientTypes,omitempty"` // empty means no restriction
}

// CoverageType is one selectable line of coverage.
type CoverageType struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    string              `json:"category"` // "vehicle", "property", "business", "additional"
	ClientTypes []models.ClientType `json:"clientTypes"`
	Forms       []string            `json:"forms"` // ACORD form types, in generation order
	Questions   []Question          `json:"questions"`
}

// AppliesTo reports whether the coverage is offered to the given client type.
func (c CoverageType) AppliesTo(clientType models.ClientType) bool {
	if clientType == "" || clientType == models.ClientTypeBoth {
		return true
	}
	for _, ct := range c.ClientTypes {
		if ct == clientType || ct == models.ClientTypeBoth {
			return true
		}
	}
	return false
}

// Catalog indexes coverage types by id while preserving declaration order.
type Catalog struct {
	ordered []CoverageType
	byID    map[string]*CoverageType
	aliases map[string]string
}

// New builds the catalog from the compiled-in coverage definitions.
func New() *Catalog {
	return NewFromTypes(defaultCoverageTypes)
}

// NewFromTypes builds a catalog from explicit definitions. Used by tests
// and by the catalog-check tool when loading trial data.
func NewFromTypes(types []CoverageType) *Catalog {
	c := &Catalog{
		ordered: types,
		byID:    make(map[string]*CoverageType, len(types)),
		aliases: make(map[string]string),
	}
	for i := range c.ordered {
		ct := &c.ordered[i]
		c.byID[ct.ID] = ct
		c.aliases[canonicalKey(ct.ID)] = ct.ID
		c.aliases[canonicalKey(ct.Name)] = ct.ID
	}
	for alias, id := range defaultAliases {
		if _, exists := c.byID[id]; exists {
			c.aliases[canonicalKey(alias)] = id
		}
	}
	return c
}

// List returns coverage types applicable to the client type, in
// declaration order. An empty clientType returns everything.
func (c *Catalog) List(clientType models.ClientType) []CoverageType {
	out := make([]CoverageType, 0, len(c.ordered))
	for _, ct := range c.ordered {
		if ct.AppliesTo(clientType) {
			out = append(out, ct)
		}
	}
	return out
}

// Get looks up a coverage type by canonical id.
func (c *Catalog) Get(id string) (CoverageType, bool) {
	ct, ok := c.byID[id]
	if !ok {
		return CoverageType{}, false
	}
	return *ct, true
}

// Normalize maps a raw coverage reference (display name, legacy key,
// mixed casing) to its canonical id. The source data historically mixed
// hyphenated ids with human-readable names as table keys, so every
// lookup goes through this first.
func (c *Catalog) Normalize(raw string) (string, bool) {
	id, ok := c.aliases[canonicalKey(raw)]
	return id, ok
}

// QuestionsFor collects the questions of the selected coverage types,
// filtered by client-type applicability, deduplicated by question id
// keeping first occurrence order.
func (c *Catalog) QuestionsFor(coverageIDs []string, clientType models.ClientType) []Question {
	seen := make(map[string]bool)
	var out []Question
	for _, id := range coverageIDs {
		ct, ok := c.byID[id]
		if !ok {
			continue
		}
		for _, q := range ct.Questions {
			if seen[q.ID] {
				continue
			}
			if !questionApplies(q, clientType) {
				continue
			}
			seen[q.ID] = true
			out = append(out, q)
		}
	}
	return out
}

func questionApplies(q Question, clientType models.ClientType) bool {
	if len(q.ClientTypes) == 0 || clientType == "" || clientType == models.ClientTypeBoth {
		return true
	}
	for _, ct := range q.ClientTypes {
		if ct == clientType || ct == models.ClientTypeBoth {
			return true
		}
	}
	return false
}

func canonicalKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "_", "-")
	key = strings.ReplaceAll(key, " ", "-")
	key = strings.ReplaceAll(key, "'", "")
	return key
}

// SelfCheck reports catalog consistency findings: coverage types with no
// associated forms, question ids that break the kebab-case answer-key
// convention, critical questions not marked required, and duplicate
// question ids with conflicting text. Findings are returned for the
// caller to log; an empty slice means the catalog is clean.
func (c *Catalog) SelfCheck() []string {
	var findings []string
	questionText := make(map[string]string)
	for _, ct := range c.ordered {
		if len(ct.Forms) == 0 {
			findings = append(findings, "coverage "+ct.ID+" declares no forms")
		}
		for _, q := range ct.Questions {
			if !validation.ValidateAnswerKey(q.ID) {
				findings = append(findings, "question "+q.ID+" id is not kebab-case")
			}
			if q.Critical && !q.Required {
				findings = append(findings, "question "+q.ID+" is critical but not required")
			}
			if prev, ok := questionText[q.ID]; ok && prev != q.Text {
				findings = append(findings, "question "+q.ID+" redefined with different text")
			}
			questionText[q.ID] = q.Text
		}
	}
	return findings
}
