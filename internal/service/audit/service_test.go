package audit

import (
	"bytes"
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
	"github.com/cmlabs-hris/audit-pilar-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// memoryRepository is an in-memory audit.AuditRepository.
type memoryRepository struct {
	mu      sync.Mutex
	records map[string]audit.AuditRecord
	clock   time.Time
	failing error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		records: make(map[string]audit.AuditRecord),
		clock:   time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memoryRepository) Create(ctx context.Context, result audit.AuditResult) (audit.AuditRecord, error) {
	records, err := r.CreateBatch(ctx, []audit.AuditResult{result})
	if err != nil {
		return audit.AuditRecord{}, err
	}
	return records[0], nil
}

func (r *memoryRepository) CreateBatch(ctx context.Context, results []audit.AuditResult) ([]audit.AuditRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing != nil {
		return nil, r.failing
	}

	records := make([]audit.AuditRecord, 0, len(results))
	for _, result := range results {
		r.clock = r.clock.Add(time.Second)
		rec := audit.AuditRecord{ID: uuid.Must(uuid.NewV7()).String(), Result: result, CreatedAt: r.clock}
		r.records[rec.ID] = rec
		records = append(records, rec)
	}
	return records, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (audit.AuditRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return audit.AuditRecord{}, audit.ErrAuditNotFound
	}
	return rec, nil
}

func (r *memoryRepository) List(ctx context.Context, filter audit.AuditFilter) ([]audit.AuditRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []audit.AuditRecord
	for _, rec := range r.records {
		if filter.Nama != "" && !strings.Contains(strings.ToLower(rec.Result.Nama), strings.ToLower(filter.Nama)) {
			continue
		}
		if filter.Cabang != "" && !strings.EqualFold(rec.Result.Cabang, filter.Cabang) {
			continue
		}
		matched = append(matched, rec)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return []audit.AuditRecord{}, total, nil
	}
	end := min(filter.Offset+filter.Limit, len(matched))
	return matched[filter.Offset:end], total, nil
}

func (r *memoryRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func newTestService(t *testing.T) (*AuditServiceImpl, *memoryRepository) {
	t.Helper()
	repo := newMemoryRepository()
	svc := NewAuditService(repo, newTestEvaluator(t)).(*AuditServiceImpl)
	svc.now = func() time.Time { return testAsOf }
	return svc, repo
}

func TestAuditService_Evaluate(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Evaluate(ctx, promotableSubmission())
	require.NoError(t, err)
	assert.True(t, validator.IsValidUUID(resp.ID))
	assert.Equal(t, audit.RecommendationPromosi, resp.Result.ProDem.Recommendation)
	assert.Equal(t, testAsOf, resp.Result.EvaluatedAt)
	assert.Equal(t, 1, repo.count())

	stored, err := svc.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp, stored)
}

func TestAuditService_Evaluate_InvalidSubmissionIsNotStored(t *testing.T) {
	svc, repo := newTestService(t)

	sub := newHireSubmission()
	sub.Answers = sub.Answers[:10]

	_, err := svc.Evaluate(context.Background(), sub)
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Zero(t, repo.count())
}

func TestAuditService_Evaluate_RepositoryFailure(t *testing.T) {
	svc, repo := newTestService(t)
	repo.failing = errors.New("connection reset")

	_, err := svc.Evaluate(context.Background(), newHireSubmission())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAuditService_Preview(t *testing.T) {
	svc, repo := newTestService(t)

	result, err := svc.Preview(context.Background(), newHireSubmission())
	require.NoError(t, err)
	assert.Equal(t, 72, result.TotalRealityScore)
	assert.Zero(t, repo.count())
}

func TestAuditService_EvaluateBatch(t *testing.T) {
	svc, repo := newTestService(t)

	req := audit.BatchEvaluateRequest{Submissions: []audit.AuditSubmission{
		newHireSubmission(), promotableSubmission(), strugglingSubmission(),
	}}
	resp, err := svc.EvaluateBatch(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Succeeded)
	assert.Zero(t, resp.Failed)
	require.Len(t, resp.Items, 3)
	for i, item := range resp.Items {
		assert.Equal(t, i, item.Index)
		assert.NotEmpty(t, item.ID)
		require.NotNil(t, item.Result)
		assert.Equal(t, req.Submissions[i].Nama, item.Result.Nama, "results keep submission order")
	}
	assert.Equal(t, audit.RecommendationDemosi, resp.Items[2].Result.ProDem.Recommendation)
	assert.Equal(t, 3, repo.count())
}

func TestAuditService_EvaluateBatch_AnyInvalidStoresNothing(t *testing.T) {
	svc, repo := newTestService(t)

	bad := newHireSubmission()
	bad.Answers[0].SelfScore = 0

	resp, err := svc.EvaluateBatch(context.Background(), audit.BatchEvaluateRequest{
		Submissions: []audit.AuditSubmission{newHireSubmission(), bad},
	})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "submissions[1].answers[0].self_score")

	assert.Equal(t, 1, resp.Failed)
	assert.Zero(t, resp.Succeeded)
	assert.Empty(t, resp.Items[0].Errors)
	assert.Contains(t, resp.Items[1].Errors, "answers[0].self_score")
	assert.Zero(t, repo.count())
}

func TestAuditService_EvaluateBatch_Size(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.EvaluateBatch(context.Background(), audit.BatchEvaluateRequest{})
	assert.ErrorIs(t, err, audit.ErrEmptyBatch)

	subs := make([]audit.AuditSubmission, audit.MaxBatchSize+1)
	_, err = svc.EvaluateBatch(context.Background(), audit.BatchEvaluateRequest{Submissions: subs})
	assert.ErrorIs(t, err, audit.ErrBatchTooLarge)
}

func TestAuditService_GetByID_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, audit.ErrAuditNotFound)

	_, err = svc.GetByID(context.Background(), uuid.Must(uuid.NewV7()).String())
	assert.ErrorIs(t, err, audit.ErrAuditNotFound)
}

func TestAuditService_List(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, sub := range []audit.AuditSubmission{newHireSubmission(), promotableSubmission(), strugglingSubmission()} {
		_, err := svc.Evaluate(ctx, sub)
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, audit.ListAuditRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalItems)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Andi Wijaya", resp.Items[0].Nama, "newest first")

	resp, err = svc.List(ctx, audit.ListAuditRequest{Cabang: "bandung", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, audit.RecommendationPromosi, resp.Items[0].Recommendation)

	_, err = svc.List(ctx, audit.ListAuditRequest{Page: 0, Limit: 500})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
}

func TestAuditService_List_PageBeyondCap(t *testing.T) {
	svc, _ := newTestService(t)

	for _, page := range []int{audit.MaxListPage + 1, math.MaxInt} {
		_, err := svc.List(context.Background(), audit.ListAuditRequest{Page: page, Limit: 100})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs), "page %d", page)
		assert.Contains(t, verrs.ToMap(), "page")
	}

	resp, err := svc.List(context.Background(), audit.ListAuditRequest{Page: audit.MaxListPage, Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestAuditService_Compare(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	before := strugglingSubmission()
	previous, err := svc.Evaluate(ctx, before)
	require.NoError(t, err)

	after := strugglingSubmission()
	after.Answers = answersWith(5)
	current, err := svc.Evaluate(ctx, after)
	require.NoError(t, err)

	resp, err := svc.Compare(ctx, audit.CompareAuditRequest{PreviousID: previous.ID, CurrentID: current.ID})
	require.NoError(t, err)

	assert.Equal(t, current.Result.TotalRealityScore-previous.Result.TotalRealityScore, resp.TotalRealityDelta)
	assert.Positive(t, resp.TotalRealityDelta)
	assert.Len(t, resp.Pillars, audit.PillarCount)
	assert.Contains(t, resp.Improved, "Integritas")
	assert.Empty(t, resp.Declined)

	sum := 0
	for _, p := range resp.Pillars {
		assert.Equal(t, p.Current-p.Previous, p.Delta)
		sum += p.Delta
	}
	assert.Equal(t, resp.TotalRealityDelta, sum)
}

func TestAuditService_Compare_Invalid(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Evaluate(ctx, newHireSubmission())
	require.NoError(t, err)

	_, err = svc.Compare(ctx, audit.CompareAuditRequest{PreviousID: rec.ID, CurrentID: rec.ID})
	assert.ErrorIs(t, err, audit.ErrInvalidComparison)

	_, err = svc.Compare(ctx, audit.CompareAuditRequest{PreviousID: rec.ID, CurrentID: uuid.Must(uuid.NewV7()).String()})
	assert.ErrorIs(t, err, audit.ErrAuditNotFound)

	_, err = svc.Compare(ctx, audit.CompareAuditRequest{PreviousID: "x", CurrentID: rec.ID})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestAuditService_Export(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Evaluate(ctx, strugglingSubmission())
	require.NoError(t, err)

	data, filename, err := svc.Export(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "audit-18-pilar-andi-wijaya-20251115.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Ringkasan", "Pilar", "SWOT", "Action Plan", "EWS", "ProDem"}, f.GetSheetList())

	name, err := f.GetCellValue("Ringkasan", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Andi Wijaya", name)

	rows, err := f.GetRows("Pilar")
	require.NoError(t, err)
	assert.Len(t, rows, audit.PillarCount+1)

	recommendation, err := f.GetCellValue("ProDem", "B3")
	require.NoError(t, err)
	assert.Equal(t, string(audit.RecommendationDemosi), recommendation)
}

func TestAuditService_Config(t *testing.T) {
	svc, _ := newTestService(t)
	cfg := svc.Config()
	assert.Equal(t, audit.DefaultConfigVersion, cfg.Version)
	assert.Len(t, cfg.Pillars, audit.PillarCount)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "budi-santoso", slugify("  Budi  Santoso! "))
	assert.Equal(t, "audit", slugify("***"))
}
