package audit

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cmlabs-hris/audit-pilar-go/internal/pkg/validator"
)

// QuarterCount is the number of quarterly slots per metric series.
const QuarterCount = 4

// MaxIdentityLength matches the width of the stored identity columns.
const MaxIdentityLength = 255

// MaxListPage bounds the history page number so the row offset stays small.
const MaxListPage = 10000

// MaxBatchSize caps the number of submissions per batch evaluation.
const MaxBatchSize = 100

type PillarSelfAnswer struct {
	PillarID  int `json:"pillar_id"`
	SelfScore int `json:"self_score"`
}

// QuarterlyMetrics holds one value per quarter (Q1..Q4) for each series.
type QuarterlyMetrics struct {
	Margin      []float64 `json:"margin"`
	NewAccounts []float64 `json:"new_accounts"`
}

// TeamStructure is a snapshot of subordinate headcount per tier.
type TeamStructure struct {
	BC  int `json:"bc"`
	SBC int `json:"sbc"`
	BM  int `json:"bm"`
	SBM int `json:"sbm"`
	EM  int `json:"em"`
	SEM int `json:"sem"`
	VBM int `json:"vbm"`
	BrM int `json:"brm"`
}

// Count returns the headcount of a subordinate tier.
func (t TeamStructure) Count(tier Level) int {
	switch tier {
	case LevelBC:
		return t.BC
	case LevelSBC:
		return t.SBC
	case LevelBM:
		return t.BM
	case LevelSBM:
		return t.SBM
	case LevelEM:
		return t.EM
	case LevelSEM:
		return t.SEM
	case LevelVBM:
		return t.VBM
	case LevelBrM:
		return t.BrM
	}
	return 0
}

// Total returns the total subordinate headcount.
func (t TeamStructure) Total() int {
	return t.BC + t.SBC + t.BM + t.SBM + t.EM + t.SEM + t.VBM + t.BrM
}

// AuditSubmission is one raw audit: identity, quarterly metrics, a team snapshot and
// the 18 self-assessed pillar scores. The engine never modifies it.
type AuditSubmission struct {
	Nama     string `json:"nama"`
	Jabatan  string `json:"jabatan"`
	Cabang   string `json:"cabang"`
	TglLahir string `json:"tgl_lahir"` // DD-MM-YYYY

	TeamMetrics     QuarterlyMetrics   `json:"team_metrics"`
	PersonalMetrics QuarterlyMetrics   `json:"personal_metrics"`
	TeamStructure   TeamStructure      `json:"team_structure"`
	Answers         []PillarSelfAnswer `json:"answers"`
}

// BirthDate parses TglLahir. Callers must have validated the submission.
func (s *AuditSubmission) BirthDate() time.Time {
	t, _ := validator.IsValidBirthDate(s.TglLahir)
	return t
}

// SelfScores returns the self score per pillar id.
func (s *AuditSubmission) SelfScores() map[int]int {
	scores := make(map[int]int, len(s.Answers))
	for _, a := range s.Answers {
		scores[a.PillarID] = a.SelfScore
	}
	return scores
}

func (s *AuditSubmission) Validate() error {
	var errs validator.ValidationErrors

	// Identity
	if validator.IsEmpty(s.Nama) {
		errs = append(errs, validator.ValidationError{
			Field:   "nama",
			Message: "nama is required",
		})
	}
	if validator.IsEmpty(s.Jabatan) {
		errs = append(errs, validator.ValidationError{
			Field:   "jabatan",
			Message: "jabatan is required",
		})
	}
	if validator.IsEmpty(s.Cabang) {
		errs = append(errs, validator.ValidationError{
			Field:   "cabang",
			Message: "cabang is required",
		})
	}
	for _, f := range []struct{ field, value string }{
		{"nama", s.Nama},
		{"jabatan", s.Jabatan},
		{"cabang", s.Cabang},
	} {
		if utf8.RuneCountInString(f.value) > MaxIdentityLength {
			errs = append(errs, validator.ValidationError{
				Field:   f.field,
				Message: fmt.Sprintf("%s must not exceed %d characters", f.field, MaxIdentityLength),
			})
		}
	}
	if validator.IsEmpty(s.TglLahir) {
		errs = append(errs, validator.ValidationError{
			Field:   "tgl_lahir",
			Message: "tgl_lahir is required",
		})
	} else if _, ok := validator.IsValidBirthDate(s.TglLahir); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "tgl_lahir",
			Message: "tgl_lahir must be a valid date in DD-MM-YYYY format",
		})
	}

	// Quarterly metrics
	errs = append(errs, validateSeries("team_metrics.margin", s.TeamMetrics.Margin, false)...)
	errs = append(errs, validateSeries("team_metrics.new_accounts", s.TeamMetrics.NewAccounts, false)...)
	errs = append(errs, validateSeries("personal_metrics.margin", s.PersonalMetrics.Margin, true)...)
	errs = append(errs, validateSeries("personal_metrics.new_accounts", s.PersonalMetrics.NewAccounts, true)...)

	// Team structure
	for _, tier := range SubordinateTiers() {
		if s.TeamStructure.Count(tier) < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "team_structure." + strings.ToLower(string(tier)),
				Message: "headcount must not be negative",
			})
		}
	}

	// Pillar answers
	if len(s.Answers) != PillarCount {
		errs = append(errs, validator.ValidationError{
			Field:   "answers",
			Message: fmt.Sprintf("answers must contain exactly %d pillars, got %d", PillarCount, len(s.Answers)),
		})
	}
	seen := make(map[int]bool, len(s.Answers))
	for i, a := range s.Answers {
		if a.PillarID < 1 || a.PillarID > PillarCount {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("answers[%d].pillar_id", i),
				Message: fmt.Sprintf("pillar_id must be between 1 and %d", PillarCount),
			})
		} else if seen[a.PillarID] {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("answers[%d].pillar_id", i),
				Message: fmt.Sprintf("pillar_id %d is duplicated", a.PillarID),
			})
		}
		seen[a.PillarID] = true

		if a.SelfScore < 1 || a.SelfScore > 5 {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("answers[%d].self_score", i),
				Message: "self_score must be between 1 and 5",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateAt runs Validate and also rejects a birth date later than asOf.
func (s *AuditSubmission) ValidateAt(asOf time.Time) error {
	var errs validator.ValidationErrors
	if err := s.Validate(); err != nil {
		errs = err.(validator.ValidationErrors)
	}

	if birth, ok := validator.IsValidBirthDate(s.TglLahir); ok && birth.After(asOf) {
		errs = append(errs, validator.ValidationError{
			Field:   "tgl_lahir",
			Message: "tgl_lahir must not be after the evaluation date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateSeries(field string, values []float64, signed bool) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if len(values) != QuarterCount {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must contain exactly %d quarterly values", field, QuarterCount),
		})
		return errs
	}

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: "value must be a finite number",
			})
			continue
		}
		if !signed && v < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: "value must not be negative",
			})
		}
	}

	return errs
}

type BatchEvaluateRequest struct {
	Submissions []AuditSubmission `json:"submissions"`
}

type ListAuditRequest struct {
	Nama   string `json:"nama"`
	Cabang string `json:"cabang"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

func (r *ListAuditRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Page < 1 || r.Page > MaxListPage {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: fmt.Sprintf("page must be between 1 and %d", MaxListPage),
		})
	}
	if r.Limit < 1 || r.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 1 and 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CompareAuditRequest struct {
	PreviousID string `json:"previous"`
	CurrentID  string `json:"current"`
}

func (r *CompareAuditRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.PreviousID) {
		errs = append(errs, validator.ValidationError{
			Field:   "previous",
			Message: "previous must be a valid audit id",
		})
	}
	if !validator.IsValidUUID(r.CurrentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "current",
			Message: "current must be a valid audit id",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type AuditResponse struct {
	ID        string      `json:"id"`
	CreatedAt string      `json:"created_at"`
	Result    AuditResult `json:"result"`
}

type AuditSummary struct {
	ID                string         `json:"id"`
	Nama              string         `json:"nama"`
	Cabang            string         `json:"cabang"`
	Jabatan           string         `json:"jabatan"`
	Profile           ProfileTag     `json:"profile"`
	Recommendation    Recommendation `json:"recommendation"`
	ZonaFinal         FinalZone      `json:"zona_final"`
	TotalRealityScore int            `json:"total_reality_score"`
	ConfigVersion     string         `json:"config_version"`
	EvaluatedAt       string         `json:"evaluated_at"`
}

type ListAuditResponse struct {
	Items      []AuditSummary `json:"items"`
	TotalItems int64          `json:"total_items"`
}

type BatchItemResult struct {
	Index  int               `json:"index"`
	ID     string            `json:"id,omitempty"`
	Result *AuditResult      `json:"result,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

type BatchEvaluateResponse struct {
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Items     []BatchItemResult `json:"items"`
}

type PillarDelta struct {
	PillarID   int    `json:"pillar_id"`
	PillarName string `json:"pillar_name"`
	Previous   int    `json:"previous"`
	Current    int    `json:"current"`
	Delta      int    `json:"delta"`
}

type ComparisonResponse struct {
	Previous          AuditSummary  `json:"previous"`
	Current           AuditSummary  `json:"current"`
	TotalRealityDelta int           `json:"total_reality_delta"`
	ProfileChanged    bool          `json:"profile_changed"`
	ZoneChanged       bool          `json:"zone_changed"`
	Improved          []string      `json:"improved"`
	Declined          []string      `json:"declined"`
	Pillars           []PillarDelta `json:"pillars"`
}

// NewAuditSummary flattens a stored record for listings.
func NewAuditSummary(rec AuditRecord) AuditSummary {
	return AuditSummary{
		ID:                rec.ID,
		Nama:              rec.Result.Nama,
		Cabang:            rec.Result.Cabang,
		Jabatan:           rec.Result.Jabatan,
		Profile:           rec.Result.Profile,
		Recommendation:    rec.Result.ProDem.Recommendation,
		ZonaFinal:         rec.Result.Zones.ZonaFinal,
		TotalRealityScore: rec.Result.TotalRealityScore,
		ConfigVersion:     rec.Result.ConfigVersion,
		EvaluatedAt:       rec.Result.EvaluatedAt.Format(time.RFC3339),
	}
}
