package audit

import "context"

// AuditService evaluates submissions and serves stored results.
type AuditService interface {
	// Evaluate runs the engine and persists the result
	Evaluate(ctx context.Context, sub AuditSubmission) (AuditResponse, error)

	// Preview runs the engine without persisting anything
	Preview(ctx context.Context, sub AuditSubmission) (AuditResult, error)

	// EvaluateBatch runs the engine over many submissions in parallel; results are
	// persisted only when every submission is valid
	EvaluateBatch(ctx context.Context, req BatchEvaluateRequest) (BatchEvaluateResponse, error)

	GetByID(ctx context.Context, id string) (AuditResponse, error)
	List(ctx context.Context, req ListAuditRequest) (ListAuditResponse, error)

	// Compare diffs two stored results without re-running the engine
	Compare(ctx context.Context, req CompareAuditRequest) (ComparisonResponse, error)

	// Export renders a stored result as an XLSX workbook
	Export(ctx context.Context, id string) ([]byte, string, error)

	// Config returns the active engine calibration
	Config() EngineConfig
}
