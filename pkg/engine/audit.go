package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/backoffice-kit/backoffice/pkg/schema"
	"github.com/backoffice-kit/backoffice/pkg/view"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditLog is an append-only, in-memory audit trail.
type AuditLog struct {
	mu      sync.RWMutex
	entries []schema.AuditLogItem
	now     func() time.Time
	newID   func() string
	log     *zap.Logger
}

// NewAuditLog returns a log holding initial entries.
func NewAuditLog(initial []schema.AuditLogItem, opts ...Option) *AuditLog {
	o := buildOptions(opts)
	if o.newID == nil {
		o.newID = uuid.NewString
	}

	entries := make([]schema.AuditLogItem, 0, len(initial))
	for _, e := range initial {
		entries = append(entries, e.Clone())
	}
	return &AuditLog{
		entries: entries,
		now:     o.now,
		newID:   o.newID,
		log:     o.log,
	}
}

// Record appends an entry attributed to the actor carried by ctx.
func (l *AuditLog) Record(ctx context.Context, action schema.AuditAction, entityType, entityID string, changes map[string]schema.FieldChange) schema.AuditLogItem {
	actor := schema.ActorFrom(ctx)
	entry := schema.AuditLogItem{
		ID:         l.newID(),
		Timestamp:  l.now(),
		UserID:     actor.ID,
		UserName:   actor.Name,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    changes,
	}
	if len(entry.Changes) == 0 {
		entry.Changes = nil
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry.Clone())
	l.mu.Unlock()

	l.log.Debug("audit entry recorded",
		zap.String("action", string(action)),
		zap.String("entityType", entityType),
		zap.String("entityId", entityID),
		zap.String("userId", actor.ID),
	)
	return entry
}

// Entries returns a copy of every entry in recording order.
func (l *AuditLog) Entries() []schema.AuditLogItem {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]schema.AuditLogItem, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Clone()
	}
	return out
}

// List filters, sorts and pages the trail. The time range is inclusive on
// both ends. Without a sort key the newest entries come first. Page and
// PageSize are used as given.
func (l *AuditLog) List(_ context.Context, q schema.AuditQuery) (schema.PaginationResponse[schema.AuditLogItem], error) {
	vq, err := auditViewQuery(q)
	if err != nil {
		return schema.PaginationResponse[schema.AuditLogItem]{}, err
	}

	entries := l.Entries()
	inRange := entries[:0]
	for _, e := range entries {
		if q.From != nil && e.Timestamp.Before(*q.From) {
			continue
		}
		if q.To != nil && e.Timestamp.After(*q.To) {
			continue
		}
		inRange = append(inRange, e)
	}

	res := view.Derive(inRange, view.AuditSchema, vq)
	return schema.PaginationResponse[schema.AuditLogItem]{
		Data:     res.Rows,
		Page:     res.Page,
		PageSize: res.PageSize,
		Total:    res.Total,
	}, nil
}

func auditViewQuery(q schema.AuditQuery) (view.Query, error) {
	verr := schema.NewValidationError()

	if q.Action != "" && !q.Action.Valid() {
		verr.AddField("action", fmt.Sprintf("Action must be one of %v", schema.AuditActions))
	}

	srt := view.DefaultAuditSort
	if q.SortKey != "" {
		if !view.AuditSchema.Sortable(q.SortKey) {
			verr.AddField("sort", fmt.Sprintf("Cannot sort by %q", q.SortKey))
		}
		srt = view.Sort{Key: q.SortKey, Direction: view.SortAsc}
	}
	if q.SortOrder != "" {
		dir, ok := view.ParseSortDirection(q.SortOrder)
		if !ok {
			verr.AddField("order", "Order must be asc or desc")
		}
		srt.Direction = dir
	}

	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		verr.AddField("from", "From must not be after to")
	}
	if verr.HasErrors() {
		return view.Query{}, verr
	}

	vq := view.Query{
		Search: q.Search,
		Filters: map[string]string{
			"action":     string(q.Action),
			"entityType": q.EntityType,
			"user":       q.User,
		},
		Sort:     srt,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	return vq, nil
}
