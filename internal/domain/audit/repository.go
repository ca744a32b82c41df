package audit

import "context"

// AuditFilter narrows history listings. Empty fields match everything.
type AuditFilter struct {
	Nama   string
	Cabang string
	Limit  int
	Offset int
}

// AuditRepository persists engine output verbatim. It never recomputes or edits
// a stored result.
type AuditRepository interface {
	Create(ctx context.Context, result AuditResult) (AuditRecord, error)
	CreateBatch(ctx context.Context, results []AuditResult) ([]AuditRecord, error)
	GetByID(ctx context.Context, id string) (AuditRecord, error)
	List(ctx context.Context, filter AuditFilter) ([]AuditRecord, int64, error)
}
