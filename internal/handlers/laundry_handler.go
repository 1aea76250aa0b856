package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/httpresp"
	"github.com/BruksfildServices01/uniease-api/internal/middleware"
	"github.com/BruksfildServices01/uniease-api/internal/models"
	uc "github.com/BruksfildServices01/uniease-api/internal/usecase/laundry"
)

type LaundryHandler struct {
	submit *uc.Submit
	list   *uc.List
	status *uc.SetStatus
}

func NewLaundryHandler(submit *uc.Submit, list *uc.List, status *uc.SetStatus) *LaundryHandler {
	return &LaundryHandler{submit: submit, list: list, status: status}
}

type SubmitLaundryRequest struct {
	Type  string               `json:"type" binding:"required"`
	Items []models.LaundryItem `json:"items"`
}

func (h *LaundryHandler) Submit(c *gin.Context) {
	var req SubmitLaundryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid_request"))
		return
	}

	out, err := h.submit.Execute(c.Request.Context(), uc.SubmitInput{
		UserID: middleware.PrincipalFrom(c).UserID,
		Type:   req.Type,
		Items:  req.Items,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, out)
}

func (h *LaundryHandler) Mine(c *gin.Context) {
	list, err := h.list.Mine(c.Request.Context(), middleware.PrincipalFrom(c).UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *LaundryHandler) All(c *gin.Context) {
	list, err := h.list.All(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *LaundryHandler) SetStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid_request"))
		return
	}

	out, err := h.status.Execute(
		c.Request.Context(),
		middleware.PrincipalFrom(c).UserID,
		c.Param("id"),
		req.Status,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}
