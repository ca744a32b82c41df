package audit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
)

// actionHorizons are assigned to the lowest pillars, weakest first.
var actionHorizons = []string{"30 Hari", "60 Hari", "90 Hari"}

// lowestPillars returns up to n pillars with the lowest reality score; ties are
// broken by pillar id.
func lowestPillars(pillars []audit.PillarAssessment, n int) []audit.PillarAssessment {
	sorted := make([]audit.PillarAssessment, len(pillars))
	copy(sorted, pillars)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RealityScore != sorted[j].RealityScore {
			return sorted[i].RealityScore < sorted[j].RealityScore
		}
		return sorted[i].PillarID < sorted[j].PillarID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func (e *Evaluator) buildActionPlan(pillars []audit.PillarAssessment, nama string) []audit.ActionPlanItem {
	band := e.cfg.Synthesis.TargetBand
	weakest := lowestPillars(pillars, len(actionHorizons))

	items := make([]audit.ActionPlanItem, 0, len(weakest))
	for i, p := range weakest {
		content := pillarContents[p.PillarID]

		var target string
		switch i {
		case 0:
			target = fmt.Sprintf("Stabilkan %s: tidak ada penurunan dari skor %d/5", p.PillarName, p.RealityScore)
		case 1:
			target = fmt.Sprintf("Naikkan %s satu band: dari %d/5 ke %d/5", p.PillarName, p.RealityScore, min(p.RealityScore+1, 5))
		default:
			goal := max(band, min(p.RealityScore+1, 5))
			target = fmt.Sprintf("Capai band target %s: %d/5", p.PillarName, goal)
		}

		pic := fmt.Sprintf("%s (mandiri)", nama)
		if p.Category == audit.CategoryMetric {
			pic = fmt.Sprintf("Atasan langsung bersama %s", nama)
		}

		items = append(items, audit.ActionPlanItem{
			Periode:   actionHorizons[i],
			PillarID:  p.PillarID,
			Target:    target,
			Aktivitas: content.Aktivitas,
			PIC:       pic,
			Output:    content.Output,
		})
	}
	return items
}

// buildEWS flags behavioral pillars at or below the critical score and metric-backed
// pillars whose series declined in each of the last two quarters.
func (e *Evaluator) buildEWS(pillars []audit.PillarAssessment, snap metricSnapshot) []audit.EWSEntry {
	entries := []audit.EWSEntry{}

	for _, p := range pillars {
		cfg, _ := e.cfg.PillarByID(p.PillarID)
		content := pillarContents[p.PillarID]

		var indikator string
		switch p.Category {
		case audit.CategoryBehavioral:
			if p.RealityScore <= e.cfg.Synthesis.EWSBehavioralMax {
				indikator = fmt.Sprintf("Skor realitas %d/5 (penilaian diri %d/5)", p.RealityScore, p.SelfScore)
			}
		case audit.CategoryMetric:
			series := snap.series(cfg.Metric)
			if consecutiveDeclines(series, 2) {
				indikator = fmt.Sprintf("Turun 2 kuartal berturut-turut: %s", formatSeries(series[len(series)-3:]))
			}
		}
		if indikator == "" {
			continue
		}

		entries = append(entries, audit.EWSEntry{
			PillarID:   p.PillarID,
			Faktor:     p.PillarName,
			Indikator:  indikator,
			Risiko:     content.Risiko,
			SaranCepat: content.SaranCepat,
		})
	}
	return entries
}

func formatSeries(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatAmount(v)
	}
	return strings.Join(parts, " → ")
}
