package audit

import "time"

// Zone is the tri-level bucket used for the Kinerja and Perilaku zones.
type Zone string

const (
	ZoneSuccess  Zone = "success"
	ZoneWarning  Zone = "warning"
	ZoneCritical Zone = "critical"
)

// FinalZone is the Indonesian-labelled bucket of the total reality score.
type FinalZone string

const (
	FinalZoneHijau  FinalZone = "hijau"
	FinalZoneKuning FinalZone = "kuning"
	FinalZoneMerah  FinalZone = "merah"
)

// Zone returns the success/warning/critical equivalent of the final zone.
func (z FinalZone) Zone() Zone {
	switch z {
	case FinalZoneHijau:
		return ZoneSuccess
	case FinalZoneKuning:
		return ZoneWarning
	default:
		return ZoneCritical
	}
}

type ProfileTag string

const (
	ProfileLeader    ProfileTag = "Leader"
	ProfileVisionary ProfileTag = "Visionary"
	ProfilePerformer ProfileTag = "Performer"
	ProfileAtRisk    ProfileTag = "At-Risk"
)

// AllProfileTags returns every profile tag in display order
func AllProfileTags() []ProfileTag {
	return []ProfileTag{ProfileLeader, ProfileVisionary, ProfilePerformer, ProfileAtRisk}
}

// GapTendency summarizes the sign of the total self-vs-reality gap.
type GapTendency string

const (
	GapOverestimation  GapTendency = "overestimation"
	GapBalanced        GapTendency = "balanced"
	GapUnderestimation GapTendency = "underestimation"
)

// GapClass is the per-pillar self-awareness classification.
type GapClass string

const (
	GapClassSignificantOver GapClass = "significant overestimation"
	GapClassMildOver        GapClass = "mild overestimation"
	GapClassAccurate        GapClass = "accurate self-awareness"
	GapClassUnder           GapClass = "underestimation"
)

type Recommendation string

const (
	RecommendationPromosi       Recommendation = "Promosi"
	RecommendationDipertahankan Recommendation = "Dipertahankan"
	RecommendationPembinaan     Recommendation = "Pembinaan"
	RecommendationDemosi        Recommendation = "Demosi"
)

type StrategyType string

const (
	StrategySaveByMargin StrategyType = "Save by Margin"
	StrategySaveByStaff  StrategyType = "Save by Staff"
	StrategyNA           StrategyType = "N/A"
)

type Generation string

const (
	GenerationZ          Generation = "Gen Z"
	GenerationMillennial Generation = "Millennial"
	GenerationX          Generation = "Gen X"
	GenerationBoomer     Generation = "Boomer"
)

// AllGenerations returns every generational cohort, youngest first
func AllGenerations() []Generation {
	return []Generation{GenerationZ, GenerationMillennial, GenerationX, GenerationBoomer}
}

// PillarAssessment is the engine's verdict on one pillar.
type PillarAssessment struct {
	PillarID       int            `json:"pillar_id"`
	PillarName     string         `json:"pillar_name"`
	Category       PillarCategory `json:"category"`
	SelfScore      int            `json:"self_score"`
	RealityScore   int            `json:"reality_score"`
	Gap            int            `json:"gap"`
	Classification GapClass       `json:"classification"`
	Insight        string         `json:"insight"`
}

type ZoneSet struct {
	ZonaKinerja  Zone      `json:"zona_kinerja"`
	ZonaPerilaku Zone      `json:"zona_perilaku"`
	ZonaFinal    FinalZone `json:"zona_final"`

	// Scaled (0-90 equivalent) subtotals the Kinerja and Perilaku zones were bucketed from
	SkorKinerja  int `json:"skor_kinerja"`
	SkorPerilaku int `json:"skor_perilaku"`
}

type SWOTAnalysis struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

type Requirement struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Met   bool   `json:"met"`
}

type ProDemRecommendation struct {
	CurrentLevel   Level          `json:"current_level"`
	Recommendation Recommendation `json:"recommendation"`
	NextLevel      *Level         `json:"next_level,omitempty"`
	Reason         string         `json:"reason"`
	Konsekuensi    string         `json:"konsekuensi"`
	NextStep       string         `json:"next_step"`
	StrategyType   StrategyType   `json:"strategy_type"`
	Requirements   []Requirement  `json:"requirements"`
}

type ActionPlanItem struct {
	Periode   string `json:"periode"`
	PillarID  int    `json:"pillar_id"`
	Target    string `json:"target"`
	Aktivitas string `json:"aktivitas"`
	PIC       string `json:"pic"`
	Output    string `json:"output"`
}

type EWSEntry struct {
	PillarID   int    `json:"pillar_id"`
	Faktor     string `json:"faktor"`
	Indikator  string `json:"indikator"`
	Risiko     string `json:"risiko"`
	SaranCepat string `json:"saran_cepat"`
}

type QuarterProgress struct {
	KuartalBerjalan  string  `json:"kuartal_berjalan"`
	SisaHari         int     `json:"sisa_hari"`
	TargetMargin     float64 `json:"target_margin"`
	RealisasiMargin  float64 `json:"realisasi_margin"`
	PercentageMargin float64 `json:"percentage_margin"`
	TargetNA         float64 `json:"target_na"`
	RealisasiNA      float64 `json:"realisasi_na"`
	PercentageNA     float64 `json:"percentage_na"`
	Catatan          string  `json:"catatan"`
}

type MagicSection struct {
	Julukan           string     `json:"julukan"`
	Narasi            string     `json:"narasi"`
	Zodiak            string     `json:"zodiak"`
	Generasi          Generation `json:"generasi"`
	ZodiakBooster     string     `json:"zodiak_booster"`
	CoachingHighlight string     `json:"coaching_highlight"`
	CallToAction      string     `json:"call_to_action"`
	Quote             string     `json:"quote"`
}

// AuditResult is the engine's sole output. It is built once per submission and
// never modified afterwards; a re-audit produces a new AuditResult.
type AuditResult struct {
	ConfigVersion string    `json:"config_version"`
	EvaluatedAt   time.Time `json:"evaluated_at"`

	Nama     string `json:"nama"`
	Jabatan  string `json:"jabatan"`
	Cabang   string `json:"cabang"`
	TglLahir string `json:"tgl_lahir"`

	Pillars           []PillarAssessment `json:"pillars"`
	TotalSelfScore    int                `json:"total_self_score"`
	TotalRealityScore int                `json:"total_reality_score"`
	TotalGap          int                `json:"total_gap"`
	GapTendency       GapTendency        `json:"gap_tendency"`

	Zones           ZoneSet              `json:"zones"`
	Profile         ProfileTag           `json:"profile"`
	SWOT            SWOTAnalysis         `json:"swot"`
	ProDem          ProDemRecommendation `json:"prodem"`
	ActionPlan      []ActionPlanItem     `json:"action_plan"`
	EWS             []EWSEntry           `json:"ews"`
	QuarterProgress QuarterProgress      `json:"quarter_progress"`
	MagicSection    MagicSection         `json:"magic_section"`
}

// Pillar returns the assessment for the given pillar id.
func (r AuditResult) Pillar(id int) (PillarAssessment, bool) {
	for _, p := range r.Pillars {
		if p.PillarID == id {
			return p, true
		}
	}
	return PillarAssessment{}, false
}

// AuditRecord is a persisted AuditResult. The result is stored verbatim and never
// recomputed.
type AuditRecord struct {
	ID        string
	Result    AuditResult
	CreatedAt time.Time
}
