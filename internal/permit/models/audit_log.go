package models

import (
	"time"
)

// Audit actions
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// AuditLog defines one mutation event based on the 'audit_logs' table.
// Rows are append-only; nothing in the application updates or deletes them.
// UserID is nil for system-initiated actions. OldValues is nil on creation,
// NewValues is nil on deletion.
type AuditLog struct {
	ID        int64                  `json:"id" db:"id"`
	UserID    *int64                 `json:"userId,omitempty" db:"user_id"`
	Action    string                 `json:"action" db:"action"`
	TableName string                 `json:"tableName" db:"table_name"`
	RecordID  int64                  `json:"recordId" db:"record_id"`
	OldValues map[string]interface{} `json:"oldValues,omitempty" db:"old_values"`
	NewValues map[string]interface{} `json:"newValues,omitempty" db:"new_values"`
	IPAddress *string                `json:"ipAddress,omitempty" db:"ip_address"`
	UserAgent *string                `json:"userAgent,omitempty" db:"user_agent"`
	CreatedAt time.Time              `json:"createdAt" db:"created_at"`
}
