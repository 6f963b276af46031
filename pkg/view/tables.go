package view

import (
	"strconv"
	"time"

	"github.com/backoffice-kit/backoffice/pkg/schema"
)

// OwnerSchema is the owners table: search over name and email, filter by role.
var OwnerSchema = Schema[schema.Owner]{
	Fields: []Field[schema.Owner]{
		TextField("id", func(o schema.Owner) string { return o.ID }, false, false),
		TextField("name", func(o schema.Owner) string { return o.Name }, true, false),
		TextField("email", func(o schema.Owner) string { return o.Email }, true, false),
		TextField("role", func(o schema.Owner) string { return string(o.Role) }, false, true),
		NumberField("ownershipPercentage",
			func(o schema.Owner) float64 { return o.OwnershipPercentage },
			func(o schema.Owner) string { return strconv.FormatFloat(o.OwnershipPercentage, 'f', -1, 64) },
		),
		TimeField("createdAt", func(o schema.Owner) time.Time { return o.CreatedAt }),
		TimeField("updatedAt", func(o schema.Owner) time.Time { return o.UpdatedAt }),
	},
}

// AuditSchema is the audit table: search over user, entity and action,
// filter by action, entity type and user name.
var AuditSchema = Schema[schema.AuditLogItem]{
	Fields: []Field[schema.AuditLogItem]{
		TimeField("timestamp", func(a schema.AuditLogItem) time.Time { return a.Timestamp }),
		TextField("action", func(a schema.AuditLogItem) string { return string(a.Action) }, true, true),
		TextField("entityType", func(a schema.AuditLogItem) string { return a.EntityType }, true, true),
		TextField("entityId", func(a schema.AuditLogItem) string { return a.EntityID }, true, false),
		TextField("user", func(a schema.AuditLogItem) string { return a.UserName }, true, true),
		TextField("userId", func(a schema.AuditLogItem) string { return a.UserID }, false, false),
	},
}

// DefaultAuditSort shows the newest entries first.
var DefaultAuditSort = Sort{Key: "timestamp", Direction: SortDesc}
