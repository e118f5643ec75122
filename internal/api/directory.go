// internal/api/directory.go
// Agency, user and notification-log endpoints. These back the producer
// portal's directory screens and stay deliberately thin over the
// repositories.
package api

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"acord-intake/internal/common/errors"
	"acord-intake/internal/common/logger"
	"acord-intake/internal/models"
	"acord-intake/internal/repository"
)

// ==========================
// Agencies
// ==========================

type AgencyHandler struct {
	agencies *repository.AgencyRepository
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewAgencyHandler(agencies *repository.AgencyRepository, errHandler *errors.ErrorHandler, log logger.Logger) *AgencyHandler {
	return &AgencyHandler{
		agencies: agencies,
		errors:   errHandler,
		logger:   log.WithFields(map[string]interface{}{"component": "agency-handler"}),
	}
}

func (h *AgencyHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/agencies", h.Create)
	router.GET("/agencies", h.List)
	router.GET("/agencies/:id", h.Get)
}

type CreateAgencyRequest struct {
	Name        string         `json:"name" binding:"required"`
	ContactName string         `json:"contactName"`
	Email       string         `json:"email" binding:"required,email"`
	Phone       string         `json:"phone"`
	Address     models.Address `json:"address"`
}

func (h *AgencyHandler) Create(c *gin.Context) {
	var req CreateAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.HandleRequestError(c, errors.NewInvalidRequestError(err.Error()))
		return
	}

	agency := &models.Agency{
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
	}
	if err := h.agencies.Create(c.Request.Context(), agency); err != nil {
		h.errors.HandleRequestError(c, errors.NewDatabaseInsertFailedError(err))
		return
	}
	h.logger.Info("agency created", map[string]interface{}{"agency_id": agency.ID})
	c.JSON(http.StatusCreated, agency)
}

func (h *AgencyHandler) List(c *gin.Context) {
	agencies, err := h.agencies.List(c.Request.Context())
	if err != nil {
		h.errors.HandleRequestError(c, queryError("list agencies", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": agencies, "count": len(agencies)})
}

func (h *AgencyHandler) Get(c *gin.Context) {
	id := c.Param("id")
	agency, err := h.agencies.GetByID(c.Request.Context(), id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			h.errors.HandleRequestError(c, errors.NewResourceNotFoundError("agency", id))
			return
		}
		h.errors.HandleRequestError(c, queryError("get agency", err))
		return
	}
	c.JSON(http.StatusOK, agency)
}

// ==========================
// Users
// ==========================

type UserHandler struct {
	users  *repository.UserRepository
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewUserHandler(users *repository.UserRepository, errHandler *errors.ErrorHandler, log logger.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		errors: errHandler,
		logger: log.WithFields(map[string]interface{}{"component": "user-handler"}),
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/users", h.Create)
	router.GET("/users", h.List)
	router.GET("/users/:id", h.Get)
}

type CreateUserRequest struct {
	AgencyID  string `json:"agencyId" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.HandleRequestError(c, errors.NewInvalidRequestError(err.Error()))
		return
	}

	user := &models.User{
		AgencyID:  req.AgencyID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Active:    true,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		h.errors.HandleRequestError(c, errors.NewDatabaseInsertFailedError(err))
		return
	}
	h.logger.Info("user created", map[string]interface{}{"user_id": user.ID, "agency_id": user.AgencyID})
	c.JSON(http.StatusCreated, user)
}

// List returns the users of one agency, or looks a single user up by
// email when the email filter is present.
func (h *UserHandler) List(c *gin.Context) {
	if email := c.Query("email"); email != "" {
		user, err := h.users.GetByEmail(c.Request.Context(), email)
		if err != nil {
			if stderrors.Is(err, repository.ErrNotFound) {
				h.errors.HandleRequestError(c, errors.NewResourceNotFoundError("user", email))
				return
			}
			h.errors.HandleRequestError(c, queryError("get user by email", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": []*models.User{user}, "count": 1})
		return
	}

	agencyID := c.Query("agencyId")
	if agencyID == "" {
		h.errors.HandleRequestError(c, errors.NewInvalidFilterFormatError("agencyId or email query parameter is required"))
		return
	}

	users, err := h.users.ListByAgency(c.Request.Context(), agencyID)
	if err != nil {
		h.errors.HandleRequestError(c, queryError("list users", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": users, "count": len(users)})
}

func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")
	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			h.errors.HandleRequestError(c, errors.NewResourceNotFoundError("user", id))
			return
		}
		h.errors.HandleRequestError(c, queryError("get user", err))
		return
	}
	c.JSON(http.StatusOK, user)
}

// ==========================
// Notification log
// ==========================

type NotificationHandler struct {
	notifications *repository.NotificationRepository
	errors        *errors.ErrorHandler
	logger        logger.Logger
}

func NewNotificationHandler(notifications *repository.NotificationRepository, errHandler *errors.ErrorHandler, log logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		errors:        errHandler,
		logger:        log.WithFields(map[string]interface{}{"component": "notification-handler"}),
	}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/notifications", h.ListRecent)
}

func (h *NotificationHandler) ListRecent(c *gin.Context) {
	limit := parseIntWithDefault(c, "limit", 50)
	items, err := h.notifications.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.errors.HandleRequestError(c, queryError("list notifications", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}
