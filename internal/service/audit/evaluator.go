package audit

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
)

// Evaluator is the audit engine. It holds a private copy of the calibration that
// is never written after construction, so it is safe for concurrent use.
type Evaluator struct {
	cfg audit.EngineConfig
}

// NewEvaluator validates the calibration and checks that narrative content exists
// for every configured pillar, profile and generation. The caller keeps ownership
// of cfg.
func NewEvaluator(cfg audit.EngineConfig) (*Evaluator, error) {
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, p := range cfg.Pillars {
		if _, ok := pillarContents[p.ID]; !ok {
			return nil, &audit.ConfigurationError{
				Key:    fmt.Sprintf("pillar_contents[%d]", p.ID),
				Reason: "missing pillar content",
			}
		}
	}

	for _, profile := range audit.AllProfileTags() {
		if _, ok := profileNarratives[profile]; !ok {
			return nil, &audit.ConfigurationError{Key: "profile_narratives[" + string(profile) + "]", Reason: "missing narrative"}
		}
	}
	for _, gen := range audit.AllGenerations() {
		if _, ok := generationNotes[gen]; !ok {
			return nil, &audit.ConfigurationError{Key: "generation_notes[" + string(gen) + "]", Reason: "missing narrative"}
		}
	}

	cfg.Pillars = cfg.SortedPillars()
	return &Evaluator{cfg: cfg}, nil
}

// Config returns a copy of the active calibration.
func (e *Evaluator) Config() audit.EngineConfig {
	return e.cfg.Clone()
}

// Evaluate runs every stage over one submission. asOf is the evaluation date; only
// the quarter progress, and the ProDem requirements built on it, depend on it.
// Any error aborts the whole run and no partial result is returned.
func (e *Evaluator) Evaluate(sub audit.AuditSubmission, asOf time.Time) (audit.AuditResult, error) {
	if err := sub.ValidateAt(asOf); err != nil {
		return audit.AuditResult{}, err
	}

	levelIdx := e.resolveLevel(sub)
	snap := newMetricSnapshot(sub)
	selfScores := sub.SelfScores()

	// Reality scores and gap annotations
	pillars := make([]audit.PillarAssessment, 0, len(e.cfg.Pillars))
	var totalSelf, totalReality int
	for _, p := range e.cfg.Pillars {
		self := selfScores[p.ID]
		reality, err := e.realityScore(p, self, levelIdx, snap)
		if err != nil {
			return audit.AuditResult{}, err
		}

		gap := self - reality
		class := classifyGap(gap)
		insight, err := e.insight(p, class, self, reality, gap)
		if err != nil {
			return audit.AuditResult{}, err
		}

		pillars = append(pillars, audit.PillarAssessment{
			PillarID:       p.ID,
			PillarName:     p.Name,
			Category:       p.Category,
			SelfScore:      self,
			RealityScore:   reality,
			Gap:            gap,
			Classification: class,
			Insight:        insight,
		})
		totalSelf += self
		totalReality += reality
	}

	totalGap := totalSelf - totalReality
	zones := e.classifyZones(pillars, totalReality)
	tendency := gapTendency(totalGap)
	profile := classifyProfile(zones, tendency)
	progress := e.quarterProgress(sub, levelIdx, asOf)

	return audit.AuditResult{
		ConfigVersion: e.cfg.Version,
		EvaluatedAt:   asOf.UTC(),

		Nama:     sub.Nama,
		Jabatan:  sub.Jabatan,
		Cabang:   sub.Cabang,
		TglLahir: sub.TglLahir,

		Pillars:           pillars,
		TotalSelfScore:    totalSelf,
		TotalRealityScore: totalReality,
		TotalGap:          totalGap,
		GapTendency:       tendency,

		Zones:   zones,
		Profile: profile,
		SWOT:    e.synthesizeSWOT(pillars, snap),
		ProDem: e.recommend(prodemInput{
			profile:  profile,
			zones:    zones,
			levelIdx: levelIdx,
			progress: progress,
			team:     sub.TeamStructure,
		}),
		ActionPlan:      e.buildActionPlan(pillars, sub.Nama),
		EWS:             e.buildEWS(pillars, snap),
		QuarterProgress: progress,
		MagicSection:    magicSection(sub, profile),
	}, nil
}
