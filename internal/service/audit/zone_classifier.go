package audit

import (
	"math"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
)

// maxTotalScore is the 0-90 range every subtotal is scaled to before bucketing.
const maxTotalScore = audit.PillarCount * 5

// classifyZones buckets the category subtotals and the full total. It is a total
// function: every score lands in exactly one bucket.
func (e *Evaluator) classifyZones(pillars []audit.PillarAssessment, total int) audit.ZoneSet {
	var metricSum, metricN, behavioralSum, behavioralN int
	for _, p := range pillars {
		if p.Category == audit.CategoryMetric {
			metricSum += p.RealityScore
			metricN++
		} else {
			behavioralSum += p.RealityScore
			behavioralN++
		}
	}

	// Behavioral scores are damped, so their ceiling is the damped maximum
	skorKinerja := scaleSubtotal(metricSum, metricN, 5, total)
	skorPerilaku := scaleSubtotal(behavioralSum, behavioralN, e.dampedScore(5), total)

	return audit.ZoneSet{
		ZonaKinerja:  e.zoneOf(skorKinerja),
		ZonaPerilaku: e.zoneOf(skorPerilaku),
		ZonaFinal:    e.finalZoneOf(total),
		SkorKinerja:  skorKinerja,
		SkorPerilaku: skorPerilaku,
	}
}

// scaleSubtotal maps a subtotal of n pillars with the given per-pillar ceiling onto
// the 0-90 range. A category with no pillars inherits the full total.
func scaleSubtotal(sum, n, ceiling, total int) int {
	if n == 0 || ceiling <= 0 {
		return total
	}
	scaled := int(math.Round(float64(sum) / float64(n*ceiling) * maxTotalScore))
	if scaled > maxTotalScore {
		return maxTotalScore
	}
	return scaled
}

func (e *Evaluator) zoneOf(score int) audit.Zone {
	return e.finalZoneOf(score).Zone()
}

func (e *Evaluator) finalZoneOf(score int) audit.FinalZone {
	switch {
	case score >= e.cfg.Zones.Success:
		return audit.FinalZoneHijau
	case score >= e.cfg.Zones.Warning:
		return audit.FinalZoneKuning
	default:
		return audit.FinalZoneMerah
	}
}
