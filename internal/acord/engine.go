// internal/acord/engine.go
package acord

import (
	"strings"
	"time"

	"acord-intake/internal/catalog"
	"acord-intake/internal/common/errors"
	"acord-intake/internal/common/logger"
	"acord-intake/internal/common/metrics"
	"acord-intake/internal/models"
)

// Engine ties the coverage catalog, validator, resolver, and populator
// together behind the facade the API layer calls.
type Engine struct {
	catalog   *catalog.Catalog
	forms     *FormCatalog
	validator *Validator
	resolver  *Resolver
	populator *Populator
	logger    logger.Logger
}

// NewEngine wires the engine over the given catalogs.
func NewEngine(cat *catalog.Catalog, forms *FormCatalog, log logger.Logger) *Engine {
	return &Engine{
		catalog:   cat,
		forms:     forms,
		validator: NewValidator(cat),
		resolver:  NewResolver(cat),
		populator: NewPopulator(cat, forms, log),
		logger:    log,
	}
}

// WithClock overrides the populator's time source. Tests use this to
// pin generated timestamps.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.populator.WithClock(now)
	return e
}

// Catalog exposes the coverage catalog backing the engine.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Forms exposes the form-spec catalog backing the engine.
func (e *Engine) Forms() *FormCatalog {
	return e.forms
}

// Validate checks the submission and records the outcome.
func (e *Engine) Validate(sub *models.Submission) Result {
	res := e.validator.Validate(sub)
	outcome := "valid"
	if !res.IsValid {
		outcome = "invalid"
	}
	metrics.SubmissionValidations.WithLabelValues(outcome).Inc()
	return res
}

// ResolveFormTypes returns the forms the given coverage selection needs.
func (e *Engine) ResolveFormTypes(coverageTypes []string) []string {
	return e.resolver.ResolveFormTypes(coverageTypes)
}

// Populate builds a single form without validating the submission.
func (e *Engine) Populate(formType string, sub *models.Submission) *models.GeneratedForm {
	return e.populator.Populate(formType, sub)
}

// GenerateForms validates the submission and, when it passes, resolves
// and populates every form its coverage selection requires. An empty
// coverage selection gets its own error code; any other invalid
// submission yields a validation error carrying the failed checks.
func (e *Engine) GenerateForms(sub *models.Submission) ([]*models.GeneratedForm, error) {
	start := time.Now()

	res := e.Validate(sub)
	if !res.IsValid {
		if len(sub.CoverageTypes) == 0 {
			return nil, errors.NewNoCoverageSelectedError(sub.ID)
		}
		return nil, errors.NewValidationFailedError(strings.Join(res.ErrorMessages(), "; "))
	}

	formTypes := e.resolver.ResolveFormTypes(sub.CoverageTypes)
	forms := e.populator.PopulateAll(sub, formTypes)

	metrics.FormGenerationDuration.WithLabelValues(string(sub.ClientType)).Observe(time.Since(start).Seconds())
	e.logger.Info("generated forms for submission", map[string]interface{}{
		"submissionId": sub.ID,
		"formTypes":    formTypes,
		"formCount":    len(forms),
	})
	return forms, nil
}
