// Package api serves the owner and audit endpoints over gin.
package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/backoffice-kit/backoffice/internal/metrics"
	"github.com/backoffice-kit/backoffice/internal/validation"
	"github.com/backoffice-kit/backoffice/pkg/schema"
	"github.com/backoffice-kit/backoffice/pkg/sdk"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	Store   sdk.Backend
	Metrics *metrics.Metrics
	Now     func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) recordMutation(action schema.AuditAction) {
	if h.Metrics != nil {
		h.Metrics.RecordMutation(string(action))
	}
}

// queryInt reads key as an integer, or def when absent. Zero and negative
// values pass through; paging them yields an empty page.
func queryInt(c *gin.Context, key string, def int, verr *schema.ValidationError) int {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		verr.AddField(key, validation.Label(key)+" must be a number")
		return def
	}
	return n
}

func (h *Handler) ListOwners(c *gin.Context) {
	verr := schema.NewValidationError()
	q := schema.ListQuery{
		Page:     queryInt(c, "page", schema.DefaultPage, verr),
		PageSize: queryInt(c, "pageSize", schema.DefaultPageSize, verr),
		Search:   c.Query("search"),
	}
	if verr.HasErrors() {
		respondError(c, verr)
		return
	}

	page, err := h.Store.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetOwner(c *gin.Context) {
	owner, err := h.Store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, owner)
}

func (h *Handler) CreateOwner(c *gin.Context) {
	var req schema.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, validation.FromError(err))
		return
	}

	owner, err := h.Store.Create(c.Request.Context(), req.Owner())
	if err != nil {
		respondError(c, err)
		return
	}
	h.recordMutation(schema.AuditCreate)
	c.JSON(http.StatusCreated, owner)
}

func (h *Handler) UpdateOwner(c *gin.Context) {
	var req schema.UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, validation.FromError(err))
		return
	}

	owner, err := h.Store.Update(c.Request.Context(), c.Param("id"), req.Patch())
	if err != nil {
		respondError(c, err)
		return
	}
	h.recordMutation(schema.AuditUpdate)
	c.JSON(http.StatusOK, owner)
}

func (h *Handler) DeleteOwner(c *gin.Context) {
	if err := h.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	h.recordMutation(schema.AuditDelete)
	c.Status(http.StatusNoContent)
}

func (h *Handler) OwnershipSummary(c *gin.Context) {
	sum, err := h.Store.OwnershipSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   h.now().Format(time.RFC3339),
	})
}
