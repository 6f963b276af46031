package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/backoffice-kit/backoffice/pkg/schema"
	"github.com/gin-gonic/gin"
)

// parseQueryTime accepts RFC 3339 timestamps or plain dates. A plain date
// used as an upper bound covers the whole day.
func parseQueryTime(raw string, endOfDay bool) (*time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return &t, true
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, true
}

func (h *Handler) ListAudit(c *gin.Context) {
	verr := schema.NewValidationError()
	q := schema.AuditQuery{
		Page:       queryInt(c, "page", schema.DefaultPage, verr),
		PageSize:   queryInt(c, "pageSize", schema.DefaultAuditPageSize, verr),
		Search:     c.Query("search"),
		Action:     schema.AuditAction(strings.ToUpper(c.Query("action"))),
		EntityType: c.Query("entityType"),
		User:       c.Query("user"),
		SortKey:    c.Query("sort"),
		SortOrder:  c.Query("order"),
	}

	if raw := c.Query("from"); raw != "" {
		t, ok := parseQueryTime(raw, false)
		if !ok {
			verr.AddField("from", "From must be a date or RFC 3339 timestamp")
		}
		q.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, ok := parseQueryTime(raw, true)
		if !ok {
			verr.AddField("to", "To must be a date or RFC 3339 timestamp")
		}
		q.To = t
	}
	if verr.HasErrors() {
		respondError(c, verr)
		return
	}

	page, err := h.Store.ListAudit(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
