package auth

import (
	"net/http"

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
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
	rg.POST("/auth/token/refresh", h.Refresh)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Invalid request body", validator.BindingErrors(err))
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrWeakPassword:
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
				"Registration failed", gin.H{"password": err.Error()})
		case ErrInvalidPhone:
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
				"Registration failed", gin.H{"phoneno": err.Error()})
		case ErrEmailAlreadyExists:
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
				"Registration failed", gin.H{"email": err.Error()})
		case ErrUsernameTaken:
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
				"Registration failed", gin.H{"username": err.Error()})
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register user")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user": UserPublic{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
		},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Invalid request body", validator.BindingErrors(err))
		return
	}

	pair, user, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if err == ErrInvalidCredentials {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access":  pair.Access,
		"refresh": pair.Refresh,
		"user": UserPublic{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
		},
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Invalid request body", validator.BindingErrors(err))
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		if err == ErrInvalidRefresh {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid refresh token")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to refresh token")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}
