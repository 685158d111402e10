package workflow

import (
	"context"

	"github.com/google/uuid"
	"github.com/mmdatafocus/billing_ledger/config"
	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/mmdatafocus/billing_ledger/utils"
)

const (
	AuditModuleSales           = "sales"
	AuditModuleDuePayment      = "due_payment"
	AuditModuleDataConsistency = "data_consistency"
)

// writeAudit never fails the caller; the action being audited has already been persisted.
func (l *Ledger) writeAudit(ctx context.Context, user, module, action, reference string, before, after any) {
	entry := models.AuditEntry{
		ID:        uuid.NewString(),
		Timestamp: l.now().Format(models.AuditTimestampLayout),
		User:      utils.ResolveAuditUser(ctx, user),
		Module:    module,
		Action:    action,
		Reference: reference,
		Before:    before,
		After:     after,
	}
	if err := l.store.AppendAudit(ctx, entry); err != nil {
		config.LogError(l.logger, "auditLog.go", "writeAudit", "AppendAudit", entry.Reference, err)
	}
}
