package payment

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
	rg.GET("/payments", h.ListPayments)
	rg.POST("/payments", h.RecordPayment)
	rg.GET("/payments/my", h.ListMyPayments)
	rg.GET("/payments/:id", h.GetPayment)
}

func (h *Handler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Invalid request body", validator.BindingErrors(err))
		return
	}

	pmt, err := h.service.RecordPayment(c.Request.Context(), middleware.Principal(c), req.BookingID, req.Amount, req.Method)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment": newPaymentResponse(pmt)})
}

func (h *Handler) GetPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid payment ID")
		return
	}

	pmt, err := h.service.GetPayment(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": newPaymentResponse(pmt)})
}

func (h *Handler) ListPayments(c *gin.Context) {
	ps, err := h.service.ListPayments(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": newPaymentResponses(ps)})
}

func (h *Handler) ListMyPayments(c *gin.Context) {
	ps, err := h.service.ListMine(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": newPaymentResponses(ps)})
}

func handleServiceError(c *gin.Context, err error) {
	switch err {
	case ErrUnauthorized:
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have access to this payment")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment not found")
	case ErrBookingNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case ErrAmountMismatch:
		response.Error(c, http.StatusBadRequest, "AMOUNT_MISMATCH", err.Error())
	case ErrBookingCancelled:
		response.Error(c, http.StatusConflict, "ALREADY_CANCELLED", "Cannot pay for a cancelled booking")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
