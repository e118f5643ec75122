// internal/api/coveragetypes.go
package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"acord-intake/internal/catalog"
	"acord-intake/internal/common/errors"
	"acord-intake/internal/common/logger"
	"acord-intake/internal/models"
)

// CoverageTypeHandler serves the coverage catalog the intake wizard is
// built from.
type CoverageTypeHandler struct {
	catalog *catalog.Catalog
	errors  *errors.ErrorHandler
	logger  logger.Logger
}

func NewCoverageTypeHandler(cat *catalog.Catalog, errHandler *errors.ErrorHandler, log logger.Logger) *CoverageTypeHandler {
	return &CoverageTypeHandler{
		catalog: cat,
		errors:  errHandler,
		logger:  log.WithFields(map[string]interface{}{"component": "coverage-handler"}),
	}
}

func (h *CoverageTypeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/coverage-types", h.List)
	router.GET("/coverage-types/questions", h.CombinedQuestions)
	router.GET("/coverage-types/:id", h.Get)
	router.GET("/coverage-types/:id/questions", h.Questions)
}

// List returns the coverage types offered to a client type, in catalog
// order. Without a clientType filter the full catalog comes back.
func (h *CoverageTypeHandler) List(c *gin.Context) {
	clientType, ok := h.parseClientType(c)
	if !ok {
		return
	}

	items := h.catalog.List(clientType)
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *CoverageTypeHandler) Get(c *gin.Context) {
	raw := c.Param("id")
	id := raw
	if canonical, ok := h.catalog.Normalize(raw); ok {
		id = canonical
	}

	ct, ok := h.catalog.Get(id)
	if !ok {
		h.errors.HandleRequestError(c, errors.NewUnknownCoverageTypeError(raw))
		return
	}
	c.JSON(http.StatusOK, ct)
}

// Questions returns the question set of a single coverage type, filtered
// by client-type applicability.
func (h *CoverageTypeHandler) Questions(c *gin.Context) {
	raw := c.Param("id")
	id := raw
	if canonical, ok := h.catalog.Normalize(raw); ok {
		id = canonical
	}
	if _, ok := h.catalog.Get(id); !ok {
		h.errors.HandleRequestError(c, errors.NewUnknownCoverageTypeError(raw))
		return
	}

	clientType, ok := h.parseClientType(c)
	if !ok {
		return
	}

	questions := h.catalog.QuestionsFor([]string{id}, clientType)
	c.JSON(http.StatusOK, gin.H{"items": questions, "count": len(questions)})
}

// CombinedQuestions merges the questions of several selected coverages
// into one deduplicated list, the way the wizard renders its dynamic
// question step. ids is a comma-separated list of coverage references.
func (h *CoverageTypeHandler) CombinedQuestions(c *gin.Context) {
	rawIDs := c.Query("ids")
	if strings.TrimSpace(rawIDs) == "" {
		h.errors.HandleRequestError(c, errors.NewInvalidFilterFormatError("ids query parameter is required"))
		return
	}

	clientType, ok := h.parseClientType(c)
	if !ok {
		return
	}

	var ids []string
	for _, part := range strings.Split(rawIDs, ",") {
		ref := strings.TrimSpace(part)
		if ref == "" {
			continue
		}
		if canonical, ok := h.catalog.Normalize(ref); ok {
			ref = canonical
		}
		ids = append(ids, ref)
	}

	questions := h.catalog.QuestionsFor(ids, clientType)
	c.JSON(http.StatusOK, gin.H{"items": questions, "count": len(questions)})
}

func (h *CoverageTypeHandler) parseClientType(c *gin.Context) (models.ClientType, bool) {
	raw := c.Query("clientType")
	switch models.ClientType(raw) {
	case "", models.ClientTypePersonal, models.ClientTypeBusiness, models.ClientTypeBoth:
		return models.ClientType(raw), true
	default:
		h.errors.HandleRequestError(c, errors.NewInvalidFilterFormatError(
			"clientType must be personal, business or both"))
		return "", false
	}
}
