package audit

import (
	"fmt"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
)

// synthesizeSWOT walks the pillars in id order so every list is stable.
func (e *Evaluator) synthesizeSWOT(pillars []audit.PillarAssessment, snap metricSnapshot) audit.SWOTAnalysis {
	th := e.cfg.Synthesis
	swot := audit.SWOTAnalysis{
		Strengths:     []string{},
		Weaknesses:    []string{},
		Opportunities: []string{},
		Threats:       []string{},
	}

	for _, p := range pillars {
		cfg, _ := e.cfg.PillarByID(p.PillarID)
		content := pillarContents[p.PillarID]
		series := snap.series(cfg.Metric)
		if p.Category != audit.CategoryMetric {
			series = nil
		}

		if p.RealityScore >= th.StrengthMin {
			swot.Strengths = append(swot.Strengths,
				fmt.Sprintf("%s (skor %d/5): %s menjadi kekuatan.", p.PillarName, p.RealityScore, content.Focus))
		}
		if p.RealityScore <= th.WeaknessMax {
			swot.Weaknesses = append(swot.Weaknesses,
				fmt.Sprintf("%s (skor %d/5): %s perlu perbaikan segera.", p.PillarName, p.RealityScore, content.Focus))
		}
		if s := slope(series); s > 0 {
			swot.Opportunities = append(swot.Opportunities,
				fmt.Sprintf("%s (tren naik %s per kuartal): %s.", p.PillarName, formatAmount(s), content.Opportunity))
		}
		if p.RealityScore <= th.WeaknessMax {
			if change := lastChange(series); change < 0 {
				swot.Threats = append(swot.Threats,
					fmt.Sprintf("%s (skor %d/5, turun %s kuartal terakhir): %s.", p.PillarName, p.RealityScore, formatAmount(-change), content.Risiko))
			}
		}
	}

	return swot
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
