package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/httpresp"
	"github.com/BruksfildServices01/uniease-api/internal/middleware"
	uc "github.com/BruksfildServices01/uniease-api/internal/usecase/salon"
)

// ======================================================
// HANDLER
// ======================================================

type SalonHandler struct {
	slots    *uc.ListAvailableSlots
	create   *uc.CreateBooking
	cancel   *uc.CancelBooking
	update   *uc.UpdateBookingStatus
	bookings *uc.ListBookings
	stats    *uc.BookingStats
}

func NewSalonHandler(
	slots *uc.ListAvailableSlots,
	create *uc.CreateBooking,
	cancel *uc.CancelBooking,
	update *uc.UpdateBookingStatus,
	bookings *uc.ListBookings,
	stats *uc.BookingStats,
) *SalonHandler {
	return &SalonHandler{
		slots:    slots,
		create:   create,
		cancel:   cancel,
		update:   update,
		bookings: bookings,
		stats:    stats,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	Date    string `json:"date" binding:"required"`
	Time    string `json:"time" binding:"required"`
	Service string `json:"service"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// USER
// ======================================================

func (h *SalonHandler) AvailableSlots(c *gin.Context) {
	date := c.Query("date")

	times, err := h.slots.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"date": date, "slots": times})
}

func (h *SalonHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid_request"))
		return
	}

	b, err := h.create.Execute(c.Request.Context(), uc.CreateBookingInput{
		UserID:  middleware.PrincipalFrom(c).UserID,
		Date:    req.Date,
		Time:    req.Time,
		Service: req.Service,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, b)
}

func (h *SalonHandler) Mine(c *gin.Context) {
	list, err := h.bookings.Mine(c.Request.Context(), middleware.PrincipalFrom(c).UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *SalonHandler) Cancel(c *gin.Context) {
	b, err := h.cancel.Execute(c.Request.Context(), middleware.PrincipalFrom(c).UserID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// ADMIN
// ======================================================

func (h *SalonHandler) List(c *gin.Context) {
	list, err := h.bookings.All(c.Request.Context(), c.Query("status"), c.Query("date"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *SalonHandler) Stats(c *gin.Context) {
	out, err := h.stats.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *SalonHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid_request"))
		return
	}

	b, err := h.update.Execute(
		c.Request.Context(),
		middleware.PrincipalFrom(c).UserID,
		c.Param("id"),
		req.Status,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}
