package auditlog

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  *uuid.UUID     `gorm:"type:uuid;index:idx_audit_company_entity"`
	ActorID    *uuid.UUID     `gorm:"type:uuid"`
	Action     string         `gorm:"type:varchar(80);not null"`
	EntityType string         `gorm:"type:varchar(50);not null;index:idx_audit_company_entity"`
	EntityID   string         `gorm:"type:varchar(64);index:idx_audit_company_entity"`
	Payload    map[string]any `gorm:"type:jsonb;serializer:json"`
	CreatedAt  time.Time
}

// Entry is what callers hand to a Logger.
type Entry struct {
	CompanyID  string
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Message    string
	Payload    map[string]any
}
