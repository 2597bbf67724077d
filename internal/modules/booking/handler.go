package booking

import (
	"net/http"
	"strconv"
	"time"

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
	rg.GET("/bookings", h.ListBookings)
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/my", h.ListMyBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PUT("/bookings/:id/cancel", h.CancelBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Invalid request body", validator.BindingErrors(err))
		return
	}

	checkIn, err := time.Parse(DateLayout, req.CheckInDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"check_in_date must be YYYY-MM-DD")
		return
	}
	checkOut, err := time.Parse(DateLayout, req.CheckOutDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"check_out_date must be YYYY-MM-DD")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), middleware.Principal(c), req.RoomID, checkIn, checkOut)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": NewBookingResponse(b)})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": NewBookingResponse(b)})
}

func (h *Handler) ListBookings(c *gin.Context) {
	bs, err := h.service.ListBookings(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": NewBookingResponses(bs)})
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	bs, err := h.service.ListMine(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": NewBookingResponses(bs)})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.CancelBooking(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Booking cancelled successfully",
		"booking": NewBookingResponse(b),
	})
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}

func handleServiceError(c *gin.Context, err error) {
	switch err {
	case ErrUnauthorized:
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have access to this booking")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case ErrRoomNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case ErrInvalidDateRange, ErrPastDate:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case ErrRoomUnavailable:
		response.Error(c, http.StatusConflict, "ROOM_UNAVAILABLE", err.Error())
	case ErrDateConflict:
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", err.Error())
	case ErrAlreadyCancelled:
		response.Error(c, http.StatusConflict, "ALREADY_CANCELLED", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
