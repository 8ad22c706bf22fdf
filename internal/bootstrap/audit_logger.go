package bootstrap

import "context"

// AuditLog is one recorded lifecycle action: payroll run transitions,
// template changes, server shutdown.
type AuditLog struct {
	Action  string
	Actor   string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
