package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
	"github.com/cmlabs-hris/audit-pilar-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type AuditServiceImpl struct {
	repo      audit.AuditRepository
	evaluator *Evaluator

	// now supplies the evaluation date
	now func() time.Time
}

func NewAuditService(repo audit.AuditRepository, evaluator *Evaluator) audit.AuditService {
	return &AuditServiceImpl{
		repo:      repo,
		evaluator: evaluator,
		now:       time.Now,
	}
}

// Evaluate implements audit.AuditService.
func (s *AuditServiceImpl) Evaluate(ctx context.Context, sub audit.AuditSubmission) (audit.AuditResponse, error) {
	result, err := s.evaluate(sub)
	if err != nil {
		return audit.AuditResponse{}, err
	}

	record, err := s.repo.Create(ctx, result)
	if err != nil {
		return audit.AuditResponse{}, fmt.Errorf("failed to store audit result: %w", err)
	}

	slog.Info("Audit evaluated",
		"audit_id", record.ID,
		"cabang", result.Cabang,
		"profile", result.Profile,
		"recommendation", result.ProDem.Recommendation,
		"zona_final", result.Zones.ZonaFinal,
	)

	return toAuditResponse(record), nil
}

// Preview implements audit.AuditService.
func (s *AuditServiceImpl) Preview(ctx context.Context, sub audit.AuditSubmission) (audit.AuditResult, error) {
	return s.evaluate(sub)
}

// EvaluateBatch implements audit.AuditService.
func (s *AuditServiceImpl) EvaluateBatch(ctx context.Context, req audit.BatchEvaluateRequest) (audit.BatchEvaluateResponse, error) {
	n := len(req.Submissions)
	if n == 0 {
		return audit.BatchEvaluateResponse{}, audit.ErrEmptyBatch
	}
	if n > audit.MaxBatchSize {
		return audit.BatchEvaluateResponse{}, audit.ErrBatchTooLarge
	}

	asOf := s.now()
	results := make([]audit.AuditResult, n)
	itemErrs := make([]validator.ValidationErrors, n)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, sub := range req.Submissions {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result, err := s.evaluator.Evaluate(sub, asOf)
			if err != nil {
				var verrs validator.ValidationErrors
				if errors.As(err, &verrs) {
					itemErrs[i] = verrs
					return nil
				}
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logEngineError(err)
		return audit.BatchEvaluateResponse{}, err
	}

	resp := audit.BatchEvaluateResponse{Items: make([]audit.BatchItemResult, n)}
	var batchErrs validator.ValidationErrors
	for i := range results {
		resp.Items[i].Index = i
		if itemErrs[i] != nil {
			resp.Failed++
			resp.Items[i].Errors = itemErrs[i].ToMap()
			for _, e := range itemErrs[i] {
				batchErrs = append(batchErrs, validator.ValidationError{
					Field:   fmt.Sprintf("submissions[%d].%s", i, e.Field),
					Message: e.Message,
				})
			}
		}
	}

	// Nothing is stored unless every submission is valid
	if resp.Failed > 0 {
		return resp, batchErrs
	}

	records, err := s.repo.CreateBatch(ctx, results)
	if err != nil {
		return audit.BatchEvaluateResponse{}, fmt.Errorf("failed to store audit batch: %w", err)
	}
	for i, rec := range records {
		result := rec.Result
		resp.Items[i].ID = rec.ID
		resp.Items[i].Result = &result
	}
	resp.Succeeded = len(records)

	slog.Info("Audit batch evaluated", "count", resp.Succeeded)
	return resp, nil
}

// GetByID implements audit.AuditService.
func (s *AuditServiceImpl) GetByID(ctx context.Context, id string) (audit.AuditResponse, error) {
	if !validator.IsValidUUID(id) {
		return audit.AuditResponse{}, audit.ErrAuditNotFound
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, audit.ErrAuditNotFound) {
			return audit.AuditResponse{}, err
		}
		return audit.AuditResponse{}, fmt.Errorf("failed to get audit result: %w", err)
	}
	return toAuditResponse(record), nil
}

// List implements audit.AuditService.
func (s *AuditServiceImpl) List(ctx context.Context, req audit.ListAuditRequest) (audit.ListAuditResponse, error) {
	if err := req.Validate(); err != nil {
		return audit.ListAuditResponse{}, err
	}

	records, total, err := s.repo.List(ctx, audit.AuditFilter{
		Nama:   req.Nama,
		Cabang: req.Cabang,
		Limit:  req.Limit,
		Offset: (req.Page - 1) * req.Limit,
	})
	if err != nil {
		return audit.ListAuditResponse{}, fmt.Errorf("failed to list audit results: %w", err)
	}

	items := make([]audit.AuditSummary, 0, len(records))
	for _, rec := range records {
		items = append(items, audit.NewAuditSummary(rec))
	}
	return audit.ListAuditResponse{Items: items, TotalItems: total}, nil
}

// Compare implements audit.AuditService. It reads stored results only.
func (s *AuditServiceImpl) Compare(ctx context.Context, req audit.CompareAuditRequest) (audit.ComparisonResponse, error) {
	if err := req.Validate(); err != nil {
		return audit.ComparisonResponse{}, err
	}
	if req.PreviousID == req.CurrentID {
		return audit.ComparisonResponse{}, audit.ErrInvalidComparison
	}

	previous, err := s.repo.GetByID(ctx, req.PreviousID)
	if err != nil {
		return audit.ComparisonResponse{}, fmt.Errorf("failed to get previous audit result: %w", err)
	}
	current, err := s.repo.GetByID(ctx, req.CurrentID)
	if err != nil {
		return audit.ComparisonResponse{}, fmt.Errorf("failed to get current audit result: %w", err)
	}

	return compareResults(previous, current), nil
}

func compareResults(previous, current audit.AuditRecord) audit.ComparisonResponse {
	resp := audit.ComparisonResponse{
		Previous:          audit.NewAuditSummary(previous),
		Current:           audit.NewAuditSummary(current),
		TotalRealityDelta: current.Result.TotalRealityScore - previous.Result.TotalRealityScore,
		ProfileChanged:    previous.Result.Profile != current.Result.Profile,
		ZoneChanged:       previous.Result.Zones.ZonaFinal != current.Result.Zones.ZonaFinal,
		Improved:          []string{},
		Declined:          []string{},
		Pillars:           make([]audit.PillarDelta, 0, len(current.Result.Pillars)),
	}

	for _, cur := range current.Result.Pillars {
		prev, ok := previous.Result.Pillar(cur.PillarID)
		if !ok {
			continue
		}
		delta := cur.RealityScore - prev.RealityScore
		resp.Pillars = append(resp.Pillars, audit.PillarDelta{
			PillarID:   cur.PillarID,
			PillarName: cur.PillarName,
			Previous:   prev.RealityScore,
			Current:    cur.RealityScore,
			Delta:      delta,
		})
		switch {
		case delta > 0:
			resp.Improved = append(resp.Improved, cur.PillarName)
		case delta < 0:
			resp.Declined = append(resp.Declined, cur.PillarName)
		}
	}
	return resp
}

// Export implements audit.AuditService.
func (s *AuditServiceImpl) Export(ctx context.Context, id string) ([]byte, string, error) {
	resp, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	data, err := exportWorkbook(resp.Result)
	if err != nil {
		slog.Error("Failed to export audit result", "audit_id", id, "error", err)
		return nil, "", fmt.Errorf("%w: %v", audit.ErrExportFailed, err)
	}

	filename := fmt.Sprintf("audit-18-pilar-%s-%s.xlsx", slugify(resp.Result.Nama), resp.Result.EvaluatedAt.Format("20060102"))
	return data, filename, nil
}

// Config implements audit.AuditService.
func (s *AuditServiceImpl) Config() audit.EngineConfig {
	return s.evaluator.Config()
}

func (s *AuditServiceImpl) evaluate(sub audit.AuditSubmission) (audit.AuditResult, error) {
	result, err := s.evaluator.Evaluate(sub, s.now())
	if err != nil {
		logEngineError(err)
		return audit.AuditResult{}, err
	}
	return result, nil
}

// logEngineError reports calibration defects; validation errors are the caller's.
func logEngineError(err error) {
	if errors.Is(err, audit.ErrConfiguration) {
		slog.Error("Audit engine configuration defect", "error", err)
	}
}

func toAuditResponse(rec audit.AuditRecord) audit.AuditResponse {
	return audit.AuditResponse{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		Result:    rec.Result,
	}
}
