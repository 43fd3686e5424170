package services

import (
	"context"
	"encoding/json"

	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/permit/repositories"
)

// auditSnapshot converts a model into the string-keyed map stored in the
// audit trail's JSONB columns. Fields excluded from JSON, such as the user
// credential, never reach the snapshot.
func auditSnapshot(v interface{}) map[string]interface{} {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// auditActor turns an actor ID into the nullable form the audit row stores.
// Zero means the action was system-initiated.
func auditActor(actorID int64) *int64 {
	if actorID <= 0 {
		return nil
	}
	return &actorID
}

// recordAudit appends the audit row accompanying a mutation. It must run on
// the same Querier (transaction) as the mutation itself.
func recordAudit(ctx context.Context, q repositories.Querier, auditRepo *repositories.AuditLogRepository,
	actorID int64, action, tableName string, recordID int64, oldValue, newValue interface{}) error {
	return auditRepo.Insert(ctx, q, &models.AuditLog{
		UserID:    auditActor(actorID),
		Action:    action,
		TableName: tableName,
		RecordID:  recordID,
		OldValues: auditSnapshot(oldValue),
		NewValues: auditSnapshot(newValue),
	})
}
