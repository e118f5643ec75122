// internal/api/submissions.go
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"acord-intake/internal/acord"
	"acord-intake/internal/cache"
	"acord-intake/internal/common/errors"
	"acord-intake/internal/common/logger"
	"acord-intake/internal/export"
	"acord-intake/internal/models"
	"acord-intake/internal/notify"
	"acord-intake/internal/renderer"
	"acord-intake/internal/repository"
	"acord-intake/internal/search"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SubmissionHandlerDeps carries everything the submission endpoints touch.
// Cache, Searcher, Notifier, Renderer and Exporter are optional; the
// handler degrades to direct DB access when they are absent.
type SubmissionHandlerDeps struct {
	Submissions *repository.SubmissionRepository
	Forms       *repository.FormRepository
	Documents   *repository.DocumentRepository
	Users       *repository.UserRepository
	Engine      *acord.Engine
	Cache       *cache.FormCache
	Searcher    *search.Searcher
	Notifier    *notify.Notifier
	Renderer    *renderer.Client
	Exporter    *export.Exporter
}

// SubmissionHandler serves the submission lifecycle endpoints.
type SubmissionHandler struct {
	deps   SubmissionHandlerDeps
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewSubmissionHandler(deps SubmissionHandlerDeps, errHandler *errors.ErrorHandler, log logger.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		deps:   deps,
		errors: errHandler,
		logger: log.WithFields(map[string]interface{}{"component": "submission-handler"}),
	}
}

// RegisterRoutes mounts the submission routes on the API group.
func (h *SubmissionHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Collection routes
	router.POST("/submissions", h.Create)
	router.GET("/submissions", h.List)
	router.GET("/submissions/search", h.Search)
	router.GET("/submissions/export", h.Export)

	// Single-submission routes
	router.GET("/submissions/:id", h.Get)
	router.PUT("/submissions/:id", h.Update)
	router.DELETE("/submissions/:id", h.Delete)

	// Lifecycle routes
	router.POST("/submissions/:id/validate", h.Validate)
	router.POST("/submissions/:id/submit", h.Submit)
	router.POST("/submissions/:id/status", h.UpdateStatus)

	// Form and document routes
	router.GET("/submissions/:id/forms", h.Forms)
	router.POST("/submissions/:id/documents", h.RenderDocuments)
	router.GET("/submissions/:id/documents", h.ListDocuments)
}

// ==========================
// Request bodies
// ==========================

type CreateSubmissionRequest struct {
	AgencyID      string                 `json:"agencyId"`
	ProducerID    string                 `json:"producerId"`
	ClientType    models.ClientType      `json:"clientType"`
	Business      models.BusinessInfo    `json:"business"`
	Contact       models.ContactInfo     `json:"contact"`
	CoverageTypes []string               `json:"coverageTypes"`
	Answers       map[string]interface{} `json:"coverageAnswers"`
}

// UpdateSubmissionRequest carries a partial draft update. Nil sections are
// left untouched; an explicit empty coverage list clears the selection.
type UpdateSubmissionRequest struct {
	ProducerID    string                 `json:"producerId"`
	ClientType    models.ClientType      `json:"clientType"`
	Business      *models.BusinessInfo   `json:"business"`
	Contact       *models.ContactInfo    `json:"contact"`
	CoverageTypes []string               `json:"coverageTypes"`
	Answers       map[string]interface{} `json:"coverageAnswers"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// ==========================
// Collection handlers
// ==========================

// Create opens a new draft submission. The raw payload is checked
// against the create schema before binding so shape errors come back
// with field-level messages.
func (h *SubmissionHandler) Create(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.errors.HandleRequestError(c, errors.NewInvalidRequestError(err.Error()))
		return
	}
	issues, err := checkCreatePayload(raw)
	if err != nil {
		h.errors.HandleRequestError(c, errors.NewInvalidRequestError(err.Error()))
		return
	}
	if len(issues) > 0 {
		h.errors.HandleRequestError(c, errors.NewInvalidRequestError(strings.Join(issues, "; ")))
		return
	}

	var req CreateSubmissionRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		h.errors.HandleRequestError(c, errors.NewInvalidRequestError(err.Error()))
		return
	}

	sub := &models.Submission{
		AgencyID:      req.AgencyID,
		ProducerID:    req.ProducerID,
		ClientType:    req.ClientType,
		Business:      req.Business,
		Contact:       req.Contact,
		CoverageTypes: h.normalizeCoverageTypes(req.CoverageTypes),
		Answers:       req.Answers,
	}

	if err := h.deps.Submissions.Create(c.Request.Context(), sub); err != nil {
		if stderrors.Is(err, repository.ErrDuplicateSubmission) {
			h.errors.HandleRequestError(c, errors.NewDuplicateSubmissionError(err.Error()))
			return
		}
		h.errors.HandleRequestError(c, errors.NewDatabaseInsertFailedError(err))
		return
	}

	h.indexSubmission(c, sub)
	c.JSON(http.StatusCreated, sub)
}

// List returns submissions matching the query filters, newest first.
func (h *SubmissionHandler) List(c *gin.Context) {
	filter := repository.SubmissionFilter{
		AgencyID:   c.Query("agencyId"),
		ProducerID: c.Query("producerId"),
		Status:     c.Query("status"),
		ClientType: c.Query("clientType"),
		Limit:      parseIntWithDefault(c, "limit", 0),
		Offset:     parseIntWithDefault(c, "offset", 0),
	}

	subs, err := h.deps.Submissions.List(c.Request.Context(), filter)
	if err != nil {
		h.errors.HandleRequestError(c, queryError("list submissions", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": subs, "count": len(subs)})
}

// Search runs a keyword and filter query against the search index.
func (h *SubmissionHandler) Search(c *gin.Context) {
	if h.deps.Searcher == nil {
		h.errors.HandleRequestError(c, errors.NewExternalServiceError("search", stderrors.New("search index is not configured")))
		return
	}

	params := search.Params{
		Keywords:     c.Query("q"),
		AgencyID:     c.Query("agencyId"),
		Status:       c.Query("status"),
		ClientType:   c.Query("clientType"),
		CoverageType: c.Query("coverageType"),
		State:        c.Query("state"),
		CreatedFrom:  c.Query("createdFrom"),
		CreatedTo:    c.Query("createdTo"),
		From:         parseIntWithDefault(c, "from", 0),
		Size:         parseIntWithDefault(c, "size", 0),
	}

	result, err := h.deps.Searcher.Search(c.Request.Context(), params)
	if err != nil {
		switch {
		case stderrors.Is(err, search.ErrSearchTimeout):
			h.errors.HandleRequestError(c, errors.NewSearchTimeoutError("submissions"))
		case stderrors.Is(err, search.ErrIndexNotFound):
			h.errors.HandleRequestError(c, errors.NewIndexNotFoundError(h.deps.Searcher.Index()))
		default:
			h.errors.HandleRequestError(c, errors.NewSearchQueryFailedError("submissions", err))
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// Export streams the filtered submissions as an xlsx workbook. With
// save=true the workbook is written to the configured export directory
// instead and the path returned.
func (h *SubmissionHandler) Export(c *gin.Context) {
	if h.deps.Exporter == nil {
		h.errors.HandleRequestError(c, errors.NewExportFailedError(stderrors.New("exporter is not configured")))
		return
	}

	filter := repository.SubmissionFilter{
		AgencyID:   c.Query("agencyId"),
		ProducerID: c.Query("producerId"),
		Status:     c.Query("status"),
		ClientType: c.Query("clientType"),
		Limit:      parseIntWithDefault(c, "limit", 200),
	}
	subs, err := h.deps.Submissions.List(c.Request.Context(), filter)
	if err != nil {
		h.errors.HandleRequestError(c, queryError("export submissions", err))
		return
	}

	ids := make([]string, len(subs))
	for i, sub := range subs {
		ids[i] = sub.ID
	}
	counts, err := h.deps.Forms.CountsForSubmissions(c.Request.Context(), ids)
	if err != nil {
		h.logger.Warn("form counts unavailable for export", map[string]interface{}{
			"error": err.Error(),
		})
		counts = nil
	}

	workbook, err := h.deps.Exporter.BuildSubmissionsWorkbook(subs, counts)
	if err != nil {
		h.errors.HandleRequestError(c, errors.NewExportFailedError(err))
		return
	}

	filename := export.Filename(time.Now())
	if c.Query("save") == "true" {
		path, err := h.deps.Exporter.SaveToDir(workbook, filename)
		if err != nil {
			h.errors.HandleRequestError(c, errors.NewExportFailedError(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"path": path, "filename": filename, "count": len(subs)})
		return
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := workbook.Write(c.Writer); err != nil {
		h.logger.Warn("workbook stream interrupted", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// ==========================
// Single-submission handlers
// ==========================

func (h *SubmissionHandler) Get(c *gin.Context) {
	sub, ok := h.loadSubmission(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sub)
}

// Update applies a draft edit. Submissions past draft are read-only
// through this endpoint; the review flow moves them by status instead.
func (h *SubmissionHandler) Update(c *gin.Context) {
	sub, ok := h.loadSubmission(c)
	if !ok {
		return
	}
	if sub.Status != models.StatusDraft {
		h.errors.HandleRequestError(c, errors.NewBusinessRuleError(
			"Only draft submissions can be edited",
			fmt.Sprintf("submission %s is %s", sub.ID, sub.Status)))
		return
	}

	var req UpdateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.HandleRequestError(c, errors.NewInvalidRequestError(err.Error()))
		return
	}

	if req.ProducerID != "" {
		sub.ProducerID = req.ProducerID
	}
	if req.ClientType != "" {
		sub.ClientType = req.ClientType
	}
	if req.Business != nil {
		sub.Business = *req.Business
	}
	if req.Contact != nil {
		sub.Contact = *req.Contact
	}
	if req.CoverageTypes != nil {
		sub.CoverageTypes = h.normalizeCoverageTypes(req.CoverageTypes)
	}
	if req.Answers != nil {
		sub.Answers = req.Answers
	}

	if err := h.deps.Submissions.Update(c.Request.Context(), sub); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			h.errors.HandleRequestError(c, errors.NewSubmissionNotFoundError(sub.ID))
			return
		}
		h.errors.HandleRequestError(c, queryError("update submission", err))
		return
	}

	h.invalidateForms(c, sub.ID)
	h.indexSubmission(c, sub)
	c.JSON(http.StatusOK, sub)
}

// Delete removes a draft. Anything past draft stays for the audit trail.
func (h *SubmissionHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.deps.Submissions.Delete(c.Request.Context(), id); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			h.errors.HandleRequestError(c, errors.NewSubmissionNotFoundError(id))
			return
		}
		h.errors.HandleRequestError(c, queryError("delete submission", err))
		return
	}

	h.invalidateForms(c, id)
	if h.deps.Searcher != nil {
		if err := h.deps.Searcher.DeleteSubmission(c.Request.Context(), id); err != nil {
			h.logger.Warn("failed to remove submission from search index", map[string]interface{}{
				"submissionId": id,
				"error":        err.Error(),
			})
		}
	}
	c.Status(http.StatusNoContent)
}

// ==========================
// Lifecycle handlers
// ==========================

// Validate runs the coverage validator and reports the result without
// changing any state. The wizard calls this on every step.
func (h *SubmissionHandler) Validate(c *gin.Context) {
	sub, ok := h.loadSubmission(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.deps.Engine.Validate(sub))
}

// Submit moves a draft into the pipeline. The validation gate is hard:
// an invalid submission stays a draft and the caller gets the full
// validation result back.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	sub, ok := h.loadSubmission(c)
	if !ok {
		return
	}

	result := h.deps.Engine.Validate(sub)
	if !result.IsValid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      errors.NewValidationFailedError("submission did not pass validation"),
			"validation": result,
			"requestId":  c.GetString("requestId"),
		})
		return
	}

	if err := h.deps.Submissions.UpdateStatus(c.Request.Context(), sub.ID, models.StatusSubmitted); err != nil {
		h.handleTransitionError(c, err, sub, models.StatusSubmitted)
		return
	}

	updated, err := h.deps.Submissions.GetByID(c.Request.Context(), sub.ID)
	if err != nil {
		updated = sub
		updated.Status = models.StatusSubmitted
	}

	if h.deps.Notifier != nil {
		if _, err := h.deps.Notifier.SubmissionReceived(c.Request.Context(), updated); err != nil {
			h.logger.Warn("submission receipt notification failed", map[string]interface{}{
				"submissionId": updated.ID,
				"error":        err.Error(),
			})
		}
	}

	h.indexSubmission(c, updated)
	c.JSON(http.StatusOK, gin.H{"submission": updated, "validation": result})
}

// UpdateStatus applies a review-flow transition. A decline carries an
// optional reason that is passed on to the customer notification.
func (h *SubmissionHandler) UpdateStatus(c *gin.Context) {
	sub, ok := h.loadSubmission(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.HandleRequestError(c, errors.NewInvalidRequestError(err.Error()))
		return
	}

	target := models.SubmissionStatus(req.Status)
	if err := h.deps.Submissions.UpdateStatus(c.Request.Context(), sub.ID, target); err != nil {
		h.handleTransitionError(c, err, sub, target)
		return
	}

	updated, err := h.deps.Submissions.GetByID(c.Request.Context(), sub.ID)
	if err != nil {
		updated = sub
		updated.Status = target
	}

	if target == models.StatusDeclined && h.deps.Notifier != nil {
		if _, err := h.deps.Notifier.SubmissionDeclined(c.Request.Context(), updated, req.Reason); err != nil {
			h.logger.Warn("decline notification failed", map[string]interface{}{
				"submissionId": updated.ID,
				"error":        err.Error(),
			})
		}
	}

	h.indexSubmission(c, updated)
	c.JSON(http.StatusOK, updated)
}

// ==========================
// Form and document handlers
// ==========================

// Forms returns the ACORD forms for a submission. Resolution order is
// cache, then stored forms, then a fresh generation run. regenerate=true
// skips straight to generation.
func (h *SubmissionHandler) Forms(c *gin.Context) {
	sub, ok := h.loadSubmission(c)
	if !ok {
		return
	}

	regenerate := c.Query("regenerate") == "true"
	if !regenerate {
		if h.deps.Cache != nil {
			if forms, found := h.deps.Cache.Get(c.Request.Context(), sub.ID); found {
				c.JSON(http.StatusOK, gin.H{"items": forms, "count": len(forms), "source": "cache"})
				return
			}
		}

		stored, err := h.deps.Forms.ListBySubmission(c.Request.Context(), sub.ID)
		if err != nil {
			h.errors.HandleRequestError(c, queryError("load generated forms", err))
			return
		}
		if len(stored) > 0 {
			if h.deps.Cache != nil {
				h.deps.Cache.Set(c.Request.Context(), sub.ID, stored)
			}
			c.JSON(http.StatusOK, gin.H{"items": stored, "count": len(stored), "source": "store"})
			return
		}
	}

	forms, err := h.deps.Engine.GenerateForms(sub)
	if err != nil {
		h.errors.HandleRequestError(c, err)
		return
	}

	if err := h.deps.Forms.SaveForms(c.Request.Context(), sub.ID, forms); err != nil {
		h.errors.HandleRequestError(c, errors.NewDatabaseInsertFailedError(err))
		return
	}
	if h.deps.Cache != nil {
		h.deps.Cache.Set(c.Request.Context(), sub.ID, forms)
	}

	// Drafts can preview forms without leaving draft; everything else
	// advances to forms_generated.
	if models.CanTransition(sub.Status, models.StatusFormsGenerated) {
		if err := h.deps.Submissions.UpdateStatus(c.Request.Context(), sub.ID, models.StatusFormsGenerated); err != nil {
			h.logger.Warn("failed to advance submission after generation", map[string]interface{}{
				"submissionId": sub.ID,
				"error":        err.Error(),
			})
		} else {
			sub.Status = models.StatusFormsGenerated
			h.indexSubmission(c, sub)
		}
	}

	h.notifyFormsGenerated(c, sub, forms)
	c.JSON(http.StatusOK, gin.H{"items": forms, "count": len(forms), "source": "generated"})
}

// RenderDocuments sends every generated form to the render service and
// tracks one document per form. Render failures are recorded per form
// and do not abort the batch; only when every form fails does the
// request surface the render error.
func (h *SubmissionHandler) RenderDocuments(c *gin.Context) {
	if h.deps.Renderer == nil || !h.deps.Renderer.Enabled() {
		h.errors.HandleRequestError(c, errors.NewExternalServiceError("renderer", stderrors.New("render service is not configured")))
		return
	}

	sub, ok := h.loadSubmission(c)
	if !ok {
		return
	}

	forms, err := h.deps.Forms.ListBySubmission(c.Request.Context(), sub.ID)
	if err != nil {
		h.errors.HandleRequestError(c, queryError("load generated forms", err))
		return
	}
	if len(forms) == 0 {
		h.errors.HandleRequestError(c, errors.NewResourceNotFoundError("generated_forms",
			fmt.Sprintf("no generated forms for submission %s", sub.ID)))
		return
	}

	var docs []*models.Document
	var firstRenderErr error
	var firstFailedForm string
	rendered, failed := 0, 0
	for _, form := range forms {
		doc := &models.Document{
			SubmissionID: sub.ID,
			FormType:     form.FormType,
			Kind:         "pdf",
			Status:       "pending",
		}
		if err := h.deps.Documents.Create(c.Request.Context(), doc); err != nil {
			h.errors.HandleRequestError(c, errors.NewDatabaseInsertFailedError(err))
			return
		}

		result, err := h.deps.Renderer.RenderForm(c.Request.Context(), form)
		if err != nil {
			failed++
			if firstRenderErr == nil {
				firstRenderErr = err
				firstFailedForm = form.FormType
			}
			doc.Status = "failed"
			if updErr := h.deps.Documents.UpdateStatus(c.Request.Context(), doc.ID, "failed", "", ""); updErr != nil {
				h.logger.Warn("failed to mark document failed", map[string]interface{}{
					"documentId": doc.ID,
					"error":      updErr.Error(),
				})
			}
			h.logger.Warn("form render failed", map[string]interface{}{
				"submissionId": sub.ID,
				"formType":     form.FormType,
				"error":        err.Error(),
			})
		} else {
			rendered++
			doc.Status = "rendered"
			doc.RemoteID = result.DocumentID
			doc.URL = result.URL
			if updErr := h.deps.Documents.UpdateStatus(c.Request.Context(), doc.ID, "rendered", result.DocumentID, result.URL); updErr != nil {
				h.logger.Warn("failed to mark document rendered", map[string]interface{}{
					"documentId": doc.ID,
					"error":      updErr.Error(),
				})
			}
		}
		docs = append(docs, doc)
	}

	if rendered == 0 && failed > 0 {
		if stderrors.Is(firstRenderErr, renderer.ErrRenderTimeout) {
			h.errors.HandleRequestError(c, errors.NewRenderTimeoutError(firstFailedForm))
			return
		}
		h.errors.HandleRequestError(c, errors.NewRenderFailedError(firstFailedForm, firstRenderErr))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    docs,
		"rendered": rendered,
		"failed":   failed,
	})
}

func (h *SubmissionHandler) ListDocuments(c *gin.Context) {
	sub, ok := h.loadSubmission(c)
	if !ok {
		return
	}

	docs, err := h.deps.Documents.ListBySubmission(c.Request.Context(), sub.ID)
	if err != nil {
		h.errors.HandleRequestError(c, queryError("list documents", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": docs, "count": len(docs)})
}

// ==========================
// Helpers
// ==========================

// queryError classifies a repository failure. A deadline expiry becomes
// a query timeout so the caller sees a 504 instead of a generic 500.
func queryError(operation string, err error) *errors.StandardError {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewQueryTimeoutError(operation)
	}
	return errors.NewQueryExecutionFailedError(operation, err)
}

func (h *SubmissionHandler) loadSubmission(c *gin.Context) (*models.Submission, bool) {
	id := c.Param("id")
	sub, err := h.deps.Submissions.GetByID(c.Request.Context(), id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			h.errors.HandleRequestError(c, errors.NewSubmissionNotFoundError(id))
		} else {
			h.errors.HandleRequestError(c, queryError("get submission", err))
		}
		return nil, false
	}
	return sub, true
}

func (h *SubmissionHandler) handleTransitionError(c *gin.Context, err error, sub *models.Submission, target models.SubmissionStatus) {
	switch {
	case stderrors.Is(err, repository.ErrInvalidTransition):
		h.errors.HandleRequestError(c, errors.NewInvalidTransitionError(string(sub.Status), string(target)))
	case stderrors.Is(err, repository.ErrNotFound):
		h.errors.HandleRequestError(c, errors.NewSubmissionNotFoundError(sub.ID))
	default:
		h.errors.HandleRequestError(c, queryError("update submission status", err))
	}
}

// normalizeCoverageTypes maps raw coverage references to canonical ids and
// drops duplicates. Unknown references pass through untouched so the
// validator can flag them.
func (h *SubmissionHandler) normalizeCoverageTypes(raw []string) []string {
	if raw == nil {
		return nil
	}
	catalog := h.deps.Engine.Catalog()
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, ref := range raw {
		id := ref
		if canonical, ok := catalog.Normalize(ref); ok {
			id = canonical
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// indexSubmission mirrors the submission into the search index. Indexing
// is best effort; the DB row is the source of truth.
func (h *SubmissionHandler) indexSubmission(c *gin.Context, sub *models.Submission) {
	if h.deps.Searcher == nil {
		return
	}
	if err := h.deps.Searcher.IndexSubmission(c.Request.Context(), sub); err != nil {
		h.logger.Warn("failed to index submission", map[string]interface{}{
			"submissionId": sub.ID,
			"error":        err.Error(),
		})
	}
}

func (h *SubmissionHandler) invalidateForms(c *gin.Context, submissionID string) {
	if h.deps.Cache == nil {
		return
	}
	h.deps.Cache.Invalidate(c.Request.Context(), submissionID)
}

func (h *SubmissionHandler) notifyFormsGenerated(c *gin.Context, sub *models.Submission, forms []*models.GeneratedForm) {
	if h.deps.Notifier == nil || h.deps.Users == nil || sub.ProducerID == "" {
		return
	}

	producer, err := h.deps.Users.GetByID(c.Request.Context(), sub.ProducerID)
	if err != nil {
		h.logger.Warn("producer lookup failed for notification", map[string]interface{}{
			"producerId": sub.ProducerID,
			"error":      err.Error(),
		})
		return
	}

	formTypes := make([]string, len(forms))
	for i, form := range forms {
		formTypes[i] = form.FormType
	}
	if _, err := h.deps.Notifier.FormsGenerated(c.Request.Context(), sub, producer, formTypes); err != nil {
		h.logger.Warn("forms generated notification failed", map[string]interface{}{
			"submissionId": sub.ID,
			"error":        err.Error(),
		})
	}
}

func parseIntWithDefault(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
