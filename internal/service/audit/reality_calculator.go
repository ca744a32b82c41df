package audit

import (
	"fmt"
	"math"
	"strings"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
)

// resolveLevel returns the ladder index of the submitter's current tier. A jabatan
// naming a configured tier (by code or name) wins; otherwise the tier is inferred
// from the team structure.
func (e *Evaluator) resolveLevel(sub audit.AuditSubmission) int {
	jabatan := strings.TrimSpace(sub.Jabatan)
	for i, l := range e.cfg.Levels {
		if strings.EqualFold(jabatan, string(l.Code)) || strings.EqualFold(jabatan, l.Name) {
			return i
		}
	}
	return e.inferLevel(sub.TeamStructure)
}

// inferLevel returns the ladder index of the highest tier whose team minimums are
// all satisfied by the snapshot. The bottom tier is the floor.
func (e *Evaluator) inferLevel(team audit.TeamStructure) int {
	level := 0
	for i, l := range e.cfg.Levels {
		if meetsMinimums(team, l.TeamMinimums) {
			level = i
		}
	}
	return level
}

func meetsMinimums(team audit.TeamStructure, minimums map[audit.Level]int) bool {
	for tier, n := range minimums {
		if team.Count(tier) < n {
			return false
		}
	}
	return true
}

// realityScore derives the objective 1-5 score of one pillar.
func (e *Evaluator) realityScore(p audit.PillarConfig, self int, levelIdx int, snap metricSnapshot) (int, error) {
	if p.Category == audit.CategoryBehavioral || snap.newHire() {
		return e.dampedScore(self), nil
	}

	ratio, applicable, err := e.normalize(p, levelIdx, snap)
	if err != nil {
		return 0, err
	}
	if !applicable {
		return e.dampedScore(self), nil
	}

	return e.bucket(ratio)
}

// dampedScore applies the self-report trust factor: round(self x damping), floor 1.
func (e *Evaluator) dampedScore(self int) int {
	score := int(math.Round(float64(self) * e.cfg.Damping))
	if score < 1 {
		return 1
	}
	if score > 5 {
		return 5
	}
	return score
}

// bucket maps a normalized value in [0,1] onto the configured breakpoints.
func (e *Evaluator) bucket(ratio float64) (int, error) {
	for _, b := range e.cfg.Breakpoints {
		if ratio >= b.Min {
			return b.Score, nil
		}
	}
	return 0, &audit.ConfigurationError{
		Key:    "breakpoints",
		Reason: fmt.Sprintf("no breakpoint covers normalized value %.4f", ratio),
	}
}

// ratio divides by a target clamped to epsilon and clamps the result to [0,1].
func (e *Evaluator) ratio(value, target float64) float64 {
	return clamp01(value / math.Max(target, e.cfg.Epsilon))
}

// normalize turns the pillar's metric into a value in [0,1] against the role-tier
// target. applicable is false when the tier sets no target for the metric.
func (e *Evaluator) normalize(p audit.PillarConfig, levelIdx int, snap metricSnapshot) (float64, bool, error) {
	if levelIdx < 0 || levelIdx >= len(e.cfg.Levels) {
		return 0, false, &audit.ConfigurationError{
			Key:    "levels",
			Reason: fmt.Sprintf("no role tier at ladder position %d", levelIdx),
		}
	}
	level := e.cfg.Levels[levelIdx]
	targets := level.Targets

	switch p.Metric {
	case audit.MetricPersonalMargin:
		return e.targetRatio(snap.last(snap.personalMargin), targets.PersonalMargin)
	case audit.MetricPersonalNA:
		return e.targetRatio(snap.last(snap.personalNA), targets.PersonalNA)
	case audit.MetricTeamMargin:
		return e.targetRatio(snap.last(snap.teamMargin), targets.TeamMargin)
	case audit.MetricTeamNA:
		return e.targetRatio(snap.last(snap.teamNA), targets.TeamNA)

	case audit.MetricTeamProductivity:
		if targets.NAPerHead == 0 {
			return 0, false, nil
		}
		headcount := snap.team.Total()
		if headcount == 0 {
			return 0, true, nil
		}
		return e.ratio(snap.last(snap.teamNA), targets.NAPerHead*float64(headcount)), true, nil

	case audit.MetricTeamStructure:
		// Measured against the tier above; the top tier is measured against itself
		minimums := level.TeamMinimums
		if levelIdx+1 < len(e.cfg.Levels) {
			minimums = e.cfg.Levels[levelIdx+1].TeamMinimums
		}
		required, filled := 0, 0
		for tier, n := range minimums {
			required += n
			filled += min(snap.team.Count(tier), n)
		}
		if required == 0 {
			return 0, false, nil
		}
		return e.ratio(float64(filled), float64(required)), true, nil

	case audit.MetricConsistency:
		target := targets.PersonalMargin + targets.TeamMargin
		if target == 0 {
			return 0, false, nil
		}
		hits := 0
		for _, v := range snap.combinedMargin {
			if v >= target {
				hits++
			}
		}
		return e.ratio(float64(hits), float64(len(snap.combinedMargin))), true, nil
	}

	return 0, false, &audit.ConfigurationError{
		Key:    fmt.Sprintf("pillars[%d].metric", p.ID),
		Reason: fmt.Sprintf("no normalization defined for metric %q", p.Metric),
	}
}

func (e *Evaluator) targetRatio(value, target float64) (float64, bool, error) {
	if target == 0 {
		return 0, false, nil
	}
	return e.ratio(value, target), true, nil
}
