package guest

import (
	"net/http"
	"strconv"

	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/response"
	"hotelbooking/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/guests", h.ListProfiles)
	rg.POST("/guests", h.CreateProfile)
	rg.GET("/guests/:id", h.GetProfile)
	rg.PUT("/guests/:id", h.UpdateProfile)
	rg.DELETE("/guests/:id", h.DeleteProfile)
}

func (h *Handler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Invalid request body", validator.BindingErrors(err))
		return
	}

	profile, err := h.service.CreateProfile(c.Request.Context(), middleware.Principal(c), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"guest": profile})
}

func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"guest": profile})
}

func (h *Handler) ListProfiles(c *gin.Context) {
	profiles, err := h.service.ListProfiles(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"guests": profiles})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Invalid request body", validator.BindingErrors(err))
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), middleware.Principal(c), id, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"guest": profile})
}

func (h *Handler) DeleteProfile(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteProfile(c.Request.Context(), middleware.Principal(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Guest profile deleted"})
}

func profileID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid guest profile ID")
		return 0, false
	}
	return id, true
}

func handleServiceError(c *gin.Context, err error) {
	switch err {
	case ErrUnauthorized:
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have access to this profile")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Guest profile not found")
	case ErrAlreadyExists:
		response.Error(c, http.StatusConflict, "ALREADY_EXISTS", "Guest profile already exists")
	case ErrInvalidPhone:
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Invalid profile", gin.H{"phoneno": err.Error()})
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
