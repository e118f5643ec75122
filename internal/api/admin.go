// internal/api/admin.go
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"acord-intake/internal/acord"
	"acord-intake/internal/common/errors"
	"acord-intake/internal/common/logger"
	"acord-intake/pkg/acordspec"
)

// AdminHandler serves the operational endpoints: form-spec inspection,
// spec reloads, and catalog consistency checks.
type AdminHandler struct {
	engine   *acord.Engine
	specPath string
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewAdminHandler(engine *acord.Engine, specPath string, errHandler *errors.ErrorHandler, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		engine:   engine,
		specPath: specPath,
		errors:   errHandler,
		logger:   log.WithFields(map[string]interface{}{"component": "admin-handler"}),
	}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		admin.GET("/form-specs", h.ListFormSpecs)
		admin.GET("/form-specs/:formType", h.GetFormSpec)
		admin.POST("/form-specs/reload", h.ReloadFormSpecs)
		admin.GET("/catalog-check", h.CatalogCheck)
	}
}

// ListFormSpecs returns a summary of every form the populator can fill.
func (h *AdminHandler) ListFormSpecs(c *gin.Context) {
	forms := h.engine.Forms()
	types := forms.FormTypes()

	items := make([]gin.H, 0, len(types))
	for _, formType := range types {
		spec, ok := forms.Get(formType)
		if !ok {
			continue
		}
		items = append(items, gin.H{
			"formType":   spec.FormType,
			"name":       spec.Name,
			"fieldCount": len(spec.Fields),
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *AdminHandler) GetFormSpec(c *gin.Context) {
	formType := c.Param("formType")
	spec, ok := h.engine.Forms().Get(formType)
	if !ok {
		h.errors.HandleRequestError(c, errors.NewFormSpecMissingError(formType))
		return
	}
	c.JSON(http.StatusOK, spec)
}

// ReloadFormSpecs re-reads the form spec override file and applies it to
// the running catalog. Used to ship field-mapping fixes without a deploy.
func (h *AdminHandler) ReloadFormSpecs(c *gin.Context) {
	if h.specPath == "" {
		h.errors.HandleRequestError(c, errors.NewFormSpecInvalidError("no form spec file configured"))
		return
	}

	specFile, err := acordspec.Load(h.specPath)
	if err != nil {
		h.errors.HandleRequestError(c, errors.NewFormSpecInvalidError(err.Error()))
		return
	}
	if err := specFile.Validate(); err != nil {
		h.errors.HandleRequestError(c, errors.NewFormSpecInvalidError(err.Error()))
		return
	}

	applied := specFile.Apply(h.engine.Forms())
	h.logger.Info("form specs reloaded", map[string]interface{}{
		"path":    h.specPath,
		"applied": applied,
	})
	c.JSON(http.StatusOK, gin.H{"applied": applied, "path": h.specPath})
}

// CatalogCheck cross-checks the coverage catalog against the form
// catalog and reports drift: forms referenced by coverages but missing
// specs, question target fields no form knows, and so on.
func (h *AdminHandler) CatalogCheck(c *gin.Context) {
	issues := acord.CrossCheck(h.engine.Catalog(), h.engine.Forms())

	if len(issues) > 0 {
		h.logger.Warn("catalog check found issues", map[string]interface{}{
			"issueCount": len(issues),
		})
	}
	c.JSON(http.StatusOK, gin.H{"clean": len(issues) == 0, "issues": issues})
}
