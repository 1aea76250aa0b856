package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/uniease-api/internal/audit"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/httpresp"
	"github.com/BruksfildServices01/uniease-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store audit.Store
}

func NewAuditLogsHandler(store audit.Store) *AuditLogsHandler {
	return &AuditLogsHandler{store: store}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	// --------------------------------------------------
	// Optional date range
	// --------------------------------------------------

	if s := c.Query("from"); s != "" {
		if from, err := timezone.ParseDay(s); err == nil {
			f.From = &from
		}
	}

	if s := c.Query("to"); s != "" {
		if to, err := timezone.ParseDay(s); err == nil {
			end := to.Add(24 * time.Hour)
			f.To = &end
		}
	}

	logs, total, err := h.store.ListAuditLogs(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
