package models

// AuditEntry records one operator or system action. The audit collection is kept latest first.
type AuditEntry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Module    string `json:"module"`
	Action    string `json:"action"`
	Reference string `json:"reference"`
	Before    any    `json:"before"`
	After     any    `json:"after"`
}

const AuditTimestampLayout = "02-01-2006 15:04:05"
