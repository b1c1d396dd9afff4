package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/service"
)

// AuditLog records a state-changing or pricing action. actor overrides the
// authenticated caller when non-empty (for example a created_by field).
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType, actor, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := auditEntry(c, "info", actionType, actor, message, fields)
	dispatch(loggingService, entry)
}

// AuditLogError records a failed action.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType, actor, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := auditEntry(c, "error", actionType, actor, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	dispatch(loggingService, entry)
}

func auditEntry(c *gin.Context, level, actionType, actor, message string, fields map[string]interface{}) *model.LogEntry {
	if actor == "" {
		actor = GetActor(c)
	}
	return &model.LogEntry{
		Timestamp:  time.Now().UTC(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Actor:      actor,
		ActionType: actionType,
		Fields:     fields,
	}
}

// dispatch hands entry to the async logger, falling back to a goroutine when
// none is running.
func dispatch(loggingService service.LoggingService, entry *model.LogEntry) {
	if asyncLogger := GetAsyncLogger(); asyncLogger != nil {
		asyncLogger.Log(entry)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}
