package audit

import (
	"context"

	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/pkg/log"
)

// Audit actions for the user service.
const (
	ActionCreateUser           = "user.create"
	ActionDeleteUser           = "user.delete"
	ActionUpdatePreferences    = "user.update_preferences"
	ActionUpdatePushToken      = "user.update_push_token"
	ActionUpdatePassword       = "user.update_password"
	ActionVerifyPassword       = "user.verify_password"
	ActionVerifyPasswordFailed = "user.verify_password_failed"
)

// Field constants for audit entries.
const (
	FieldAction = "action"
	FieldDetail = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action string, userID string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Msg(msg)
}

// LogWithDetail emits an audit log with an extra detail field.
func LogWithDetail(ctx context.Context, action string, userID string, detail string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Str(FieldDetail, detail).
		Msg(msg)
}
