package auditlog

import (
	"context"
	"time"

	"go-hrcore/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Logger is append-only and fire-and-forget: a failed write is logged,
// never returned to the caller.
type Logger interface {
	Log(ctx context.Context, entry Entry)
}

type dbLogger struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewLogger(db *gorm.DB, logger ...*zap.Logger) Logger {
	l := zap.L().Named("auditlog")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auditlog")
	}
	return &dbLogger{db: db, logger: l}
}

// Log fills a missing actor or company from the authenticated caller.
func (l *dbLogger) Log(ctx context.Context, entry Entry) {
	meta := contextutil.ExtractMetadata(ctx)
	if entry.ActorID == "" {
		entry.ActorID = meta.EmployeeID
	}
	if entry.CompanyID == "" {
		entry.CompanyID = meta.CompanyID
	}

	row := toRow(entry)
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		contextutil.GetLogger(ctx, l.logger).Error("append audit log failed",
			zap.String("request_id", meta.RequestID),
			zap.String("action", entry.Action),
			zap.String("entity_type", entry.EntityType),
			zap.String("entity_id", entry.EntityID),
			zap.Error(err),
		)
	}
}

func toRow(entry Entry) AuditLog {
	row := AuditLog{
		ID:         uuid.New(),
		CompanyID:  parseOptionalUUID(entry.CompanyID),
		ActorID:    parseOptionalUUID(entry.ActorID),
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Payload:    entry.Payload,
		CreatedAt:  time.Now().UTC(),
	}
	if entry.Message != "" {
		if row.Payload == nil {
			row.Payload = map[string]any{}
		}
		row.Payload["message"] = entry.Message
	}
	return row
}

func parseOptionalUUID(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

// ZapLogger writes entries to the structured log only. Used where no
// database is wired, like server shutdown.
type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger() *ZapLogger {
	return &ZapLogger{logger: zap.L().Named("audit")}
}

func (l *ZapLogger) Log(ctx context.Context, entry Entry) {
	l.logger.Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("company_id", entry.CompanyID),
		zap.String("actor_id", entry.ActorID),
		zap.String("action", entry.Action),
		zap.String("entity_type", entry.EntityType),
		zap.String("entity_id", entry.EntityID),
		zap.String("message", entry.Message),
		zap.Any("payload", entry.Payload),
	)
}
