package schema

import "time"

// AuditAction is the kind of operation an audit entry records.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
	AuditView   AuditAction = "VIEW"
)

// AuditActions lists every valid AuditAction.
var AuditActions = []AuditAction{AuditCreate, AuditUpdate, AuditDelete, AuditView}

func (a AuditAction) Valid() bool {
	for _, known := range AuditActions {
		if a == known {
			return true
		}
	}
	return false
}

// EntityOwner is the entity type recorded for owner mutations.
const EntityOwner = "owner"

// FieldChange holds the before and after value of a single field.
type FieldChange struct {
	Old any `json:"old" yaml:"old"`
	New any `json:"new" yaml:"new"`
}

// AuditLogItem is a single entry in the audit trail.
type AuditLogItem struct {
	ID         string                 `json:"id" yaml:"id"`
	Timestamp  time.Time              `json:"timestamp" yaml:"timestamp"`
	UserID     string                 `json:"userId" yaml:"userId"`
	UserName   string                 `json:"userName" yaml:"userName"`
	Action     AuditAction            `json:"action" yaml:"action"`
	EntityType string                 `json:"entityType" yaml:"entityType"`
	EntityID   string                 `json:"entityId" yaml:"entityId"`
	Changes    map[string]FieldChange `json:"changes,omitempty" yaml:"changes,omitempty"`
	Metadata   map[string]any         `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Clone returns a deep copy of the entry's maps so callers cannot mutate
// the stored entry.
func (a AuditLogItem) Clone() AuditLogItem {
	if a.Changes != nil {
		changes := make(map[string]FieldChange, len(a.Changes))
		for k, v := range a.Changes {
			changes[k] = v
		}
		a.Changes = changes
	}
	if a.Metadata != nil {
		meta := make(map[string]any, len(a.Metadata))
		for k, v := range a.Metadata {
			meta[k] = v
		}
		a.Metadata = meta
	}
	return a
}

// AuditQuery holds the audit list parameters. Empty strings and nil times
// mean "no constraint".
type AuditQuery struct {
	Page       int
	PageSize   int
	Search     string
	Action     AuditAction
	EntityType string
	User       string
	From       *time.Time
	To         *time.Time
	SortKey    string
	SortOrder  string
}

// WithDefaults fills a zero Page or PageSize with the audit defaults.
func (q AuditQuery) WithDefaults() AuditQuery {
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultAuditPageSize
	}
	return q
}
