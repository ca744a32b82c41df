package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
	"github.com/cmlabs-hris/audit-pilar-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type auditRepository struct {
	db *database.DB
}

// NewAuditRepository stores engine results verbatim as JSONB next to a few
// denormalized summary columns used for listing.
func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepository{db: db}
}

const auditColumns = 12

// Create implements audit.AuditRepository.
func (r *auditRepository) Create(ctx context.Context, result audit.AuditResult) (audit.AuditRecord, error) {
	records, err := r.CreateBatch(ctx, []audit.AuditResult{result})
	if err != nil {
		return audit.AuditRecord{}, err
	}
	return records[0], nil
}

// CreateBatch implements audit.AuditRepository. All rows are written in one
// transaction, at most insertChunkSize rows per statement.
func (r *auditRepository) CreateBatch(ctx context.Context, results []audit.AuditResult) ([]audit.AuditRecord, error) {
	if len(results) == 0 {
		return []audit.AuditRecord{}, nil
	}

	createdAt := time.Now().UTC()
	records := make([]audit.AuditRecord, 0, len(results))
	for _, result := range results {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate audit id: %w", err)
		}
		records = append(records, audit.AuditRecord{ID: id.String(), Result: result, CreatedAt: createdAt})
	}

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		for start := 0; start < len(records); start += insertChunkSize {
			end := min(start+insertChunkSize, len(records))
			if err := r.insertRecords(ctx, records[start:end]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// insertChunkSize keeps a statement well under the 65535 bind parameter limit.
const insertChunkSize = 50

func (r *auditRepository) insertRecords(ctx context.Context, records []audit.AuditRecord) error {
	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(records))
	valueArgs := make([]interface{}, 0, len(records)*auditColumns)

	for i, rec := range records {
		result := rec.Result
		resultJSON, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal audit result: %w", err)
		}

		base := i * auditColumns
		placeholders := make([]string, auditColumns)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ", ")+")")
		valueArgs = append(valueArgs,
			rec.ID,
			result.Nama,
			result.Jabatan,
			result.Cabang,
			string(result.Profile),
			string(result.ProDem.Recommendation),
			string(result.Zones.ZonaFinal),
			result.TotalRealityScore,
			result.ConfigVersion,
			result.EvaluatedAt,
			resultJSON,
			rec.CreatedAt,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO audit_results (id, nama, jabatan, cabang, profile, recommendation, zona_final,
			total_reality_score, config_version, evaluated_at, result, created_at)
		VALUES %s
	`, strings.Join(valueStrings, ", "))

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to insert audit results: %w", err)
	}
	return nil
}

// GetByID implements audit.AuditRepository.
func (r *auditRepository) GetByID(ctx context.Context, id string) (audit.AuditRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, result, created_at
		FROM audit_results
		WHERE id = $1
	`

	rec, err := scanAuditRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return audit.AuditRecord{}, audit.ErrAuditNotFound
		}
		return audit.AuditRecord{}, fmt.Errorf("failed to get audit result: %w", err)
	}
	return rec, nil
}

// List implements audit.AuditRepository. Newest results come first.
func (r *auditRepository) List(ctx context.Context, filter audit.AuditFilter) ([]audit.AuditRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Nama != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(`LOWER(nama) LIKE $%d ESCAPE '\'`, argIdx))
		args = append(args, "%"+escapeLike(strings.ToLower(filter.Nama))+"%")
		argIdx++
	}
	if filter.Cabang != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("LOWER(cabang) = $%d", argIdx))
		args = append(args, strings.ToLower(filter.Cabang))
		argIdx++
	}
	where := strings.Join(whereClauses, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM audit_results WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit results: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, result, created_at
		FROM audit_results
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit results: %w", err)
	}
	defer rows.Close()

	records := []audit.AuditRecord{}
	for rows.Next() {
		rec, err := scanAuditRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit result: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate audit results: %w", err)
	}

	return records, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanAuditRecord(row pgx.Row) (audit.AuditRecord, error) {
	var (
		rec        audit.AuditRecord
		resultJSON []byte
	)
	if err := row.Scan(&rec.ID, &resultJSON, &rec.CreatedAt); err != nil {
		return audit.AuditRecord{}, err
	}
	if err := json.Unmarshal(resultJSON, &rec.Result); err != nil {
		return audit.AuditRecord{}, fmt.Errorf("failed to unmarshal audit result %s: %w", rec.ID, err)
	}
	return rec, nil
}
