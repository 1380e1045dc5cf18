package models

import "time"

// Audit actions recorded by the calendar service.
const (
	AuditRuleCreated      = "rule_created"
	AuditRuleUpdated      = "rule_updated"
	AuditRuleDeleted      = "rule_deleted"
	AuditExceptionCreated = "exception_created"
	AuditExceptionDeleted = "exception_deleted"
)

// AuditEntry is an append-only record of a schedule mutation.
type AuditEntry struct {
	ID         string         `bson:"id" json:"id"`
	ProviderID string         `bson:"provider_id" json:"provider_id"`
	Action     string         `bson:"action" json:"action"`
	EntityID   string         `bson:"entity_id" json:"entity_id"`
	Detail     map[string]any `bson:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt  time.Time      `bson:"created_at" json:"created_at"`
}
