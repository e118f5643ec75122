// internal/acord/validator.go
package acord

import (
	"fmt"
	"strconv"
	"strings"

	"acord-intake/internal/catalog"
	"acord-intake/internal/common/validation"
	"acord-intake/internal/models"
)

// Result is the outcome of validating a submission. IsValid is true
// exactly when Errors is empty. Warnings flag data worth fixing but
// never block form generation.
type Result struct {
	IsValid  bool                         `json:"isValid"`
	Errors   []validation.ValidationError `json:"errors"`
	Warnings []validation.ValidationError `json:"warnings"`
}

func (r *Result) addError(field, message, code string) {
	r.Errors = append(r.Errors, validation.ValidationError{Field: field, Message: message, Code: code})
}

func (r *Result) addWarning(field, message, code string) {
	r.Warnings = append(r.Warnings, validation.ValidationError{Field: field, Message: message, Code: code})
}

// ErrorMessages flattens the error list for logs and error details.
func (r Result) ErrorMessages() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Field + ": " + e.Message
	}
	return out
}

// Validator checks a submission for completeness before forms are
// generated from it. Missing mandatory attributes, an empty coverage
// selection, and unanswered required or critical questions are errors;
// missing recommended attributes and malformed values are warnings.
type Validator struct {
	catalog *catalog.Catalog
}

// NewValidator creates a validator over the given coverage catalog.
func NewValidator(cat *catalog.Catalog) *Validator {
	return &Validator{catalog: cat}
}

// Validate runs every check against the submission. The same input
// always yields the same result.
func (v *Validator) Validate(sub *models.Submission) Result {
	res := Result{
		Errors:   []validation.ValidationError{},
		Warnings: []validation.ValidationError{},
	}
	v.checkBusiness(sub, &res)
	v.checkContact(sub, &res)
	v.checkCoverages(sub, &res)
	res.IsValid = len(res.Errors) == 0
	return res
}

func (v *Validator) checkBusiness(sub *models.Submission, res *Result) {
	b := sub.Business
	required := []struct {
		field string
		label string
		value string
	}{
		{"business.legalName", "business name", b.LegalName},
		{"business.fein", "tax ID", b.FEIN},
		{"business.entityType", "entity type", b.EntityType},
		{"business.description", "business description", b.Description},
		{"business.address.line1", "mailing address", b.Address.Line1},
		{"business.address.city", "city", b.Address.City},
		{"business.address.state", "state", b.Address.State},
		{"business.address.zipCode", "postal code", b.Address.ZipCode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			res.addError(f.field, f.label+" is required", "required")
		}
	}

	if strings.TrimSpace(b.Website) == "" {
		res.addWarning("business.website", "website is recommended", "recommended")
	} else if !validation.ValidateURL(b.Website) {
		res.addWarning("business.website", "website does not look like a valid URL", "invalid_format")
	}
	if b.YearsInBusiness == 0 {
		res.addWarning("business.yearsInBusiness", "years in business is recommended", "recommended")
	}
	if b.AnnualRevenue == 0 {
		res.addWarning("business.annualRevenue", "annual revenue is recommended", "recommended")
	}
	if strings.TrimSpace(b.NAICSCode) == "" {
		res.addWarning("business.naicsCode", "NAICS code is recommended", "recommended")
	}
}

func (v *Validator) checkContact(sub *models.Submission, res *Result) {
	c := sub.Contact
	if strings.TrimSpace(c.FirstName) == "" {
		res.addError("contact.firstName", "contact first name is required", "required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		res.addError("contact.lastName", "contact last name is required", "required")
	}
	if strings.TrimSpace(c.Email) == "" {
		res.addError("contact.email", "contact email is required", "required")
	} else if !validation.ValidateEmail(c.Email) {
		res.addWarning("contact.email", "contact email does not look valid", "invalid_format")
	}
	if strings.TrimSpace(c.Phone) == "" {
		res.addError("contact.phone", "contact phone is required", "required")
	} else if !validation.ValidatePhone(c.Phone) {
		res.addWarning("contact.phone", "contact phone does not look valid", "invalid_format")
	}
}

func (v *Validator) checkCoverages(sub *models.Submission, res *Result) {
	if len(sub.CoverageTypes) == 0 {
		res.addError("coverageTypes", "at least one coverage type must be selected", "no_coverage_selected")
		return
	}

	ids := make([]string, 0, len(sub.CoverageTypes))
	for _, raw := range sub.CoverageTypes {
		id, ok := v.catalog.Normalize(raw)
		if !ok {
			res.addWarning("coverageTypes", fmt.Sprintf("unknown coverage type %q will be skipped", raw), "unknown_coverage")
			continue
		}
		ids = append(ids, id)
	}

	// Answers for coverages that are not selected are ignored entirely.
	for _, q := range v.catalog.QuestionsFor(ids, sub.ClientType) {
		answer, answered := sub.Answers[q.ID]
		if !answered || !answerPresent(answer) {
			if q.Required || q.Critical {
				res.addError("coverageAnswers."+q.ID, q.Text+" is required", "required")
			}
			continue
		}
		v.checkAnswer(q, answer, res)
	}
}

func (v *Validator) checkAnswer(q catalog.Question, answer interface{}, res *Result) {
	field := "coverageAnswers." + q.ID
	switch q.Type {
	case catalog.QuestionNumber:
		n, ok := toNumber(answer)
		if !ok {
			res.addWarning(field, "expected a numeric answer", "invalid_type")
			return
		}
		if q.Min != nil && n < *q.Min {
			res.addWarning(field, fmt.Sprintf("answer must be at least %g", *q.Min), "out_of_range")
		}
		if q.Max != nil && n > *q.Max {
			res.addWarning(field, fmt.Sprintf("answer must be at most %g", *q.Max), "out_of_range")
		}
	case catalog.QuestionSelect:
		s, ok := answer.(string)
		if !ok {
			res.addWarning(field, "expected one of the listed options", "invalid_type")
			return
		}
		if len(q.Options) > 0 && !containsOption(q.Options, s) {
			res.addWarning(field, fmt.Sprintf("%q is not one of the listed options", s), "invalid_option")
		}
	case catalog.QuestionMulti:
		items, ok := answer.([]interface{})
		if !ok {
			res.addWarning(field, "expected a list of options", "invalid_type")
			return
		}
		for _, item := range items {
			s, ok := item.(string)
			if !ok || (len(q.Options) > 0 && !containsOption(q.Options, s)) {
				res.addWarning(field, "answer contains an unlisted option", "invalid_option")
				return
			}
		}
	}
}

// answerPresent treats nil, blank strings, and empty lists as missing.
// Zero numbers and false booleans still count as answers.
func answerPresent(v interface{}) bool {
	switch a := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(a) != ""
	case []interface{}:
		return len(a) > 0
	case []string:
		return len(a) > 0
	default:
		return true
	}
}

func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
