package audit

import (
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
)

// quarterBounds returns the zero-based quarter index of asOf together with the
// first and last calendar day of that quarter, all in UTC.
func quarterBounds(asOf time.Time) (int, time.Time, time.Time) {
	q := (int(asOf.Month()) - 1) / 3
	start := time.Date(asOf.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)
	return q, start, end
}

// quarterProgress is the only stage that depends on the evaluation date.
func (e *Evaluator) quarterProgress(sub audit.AuditSubmission, levelIdx int, asOf time.Time) audit.QuarterProgress {
	q, start, end := quarterBounds(asOf)
	today := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	sisaHari := int(end.Sub(today).Hours() / 24)
	totalDays := int(end.Sub(start).Hours()/24) + 1

	targets := e.cfg.Levels[levelIdx].Targets
	targetMargin := targets.PersonalMargin + targets.TeamMargin
	targetNA := targets.PersonalNA + targets.TeamNA
	realisasiMargin := sub.PersonalMetrics.Margin[q] + sub.TeamMetrics.Margin[q]
	realisasiNA := sub.PersonalMetrics.NewAccounts[q] + sub.TeamMetrics.NewAccounts[q]

	progress := audit.QuarterProgress{
		KuartalBerjalan:  fmt.Sprintf("Q%d %d", q+1, asOf.Year()),
		SisaHari:         sisaHari,
		TargetMargin:     targetMargin,
		RealisasiMargin:  realisasiMargin,
		PercentageMargin: percentage(realisasiMargin, targetMargin),
		TargetNA:         targetNA,
		RealisasiNA:      realisasiNA,
		PercentageNA:     percentage(realisasiNA, targetNA),
	}

	elapsed := round2(float64(totalDays-sisaHari) / float64(totalDays) * 100)
	progress.Catatan = progressNote(progress, elapsed)
	return progress
}

// percentage reports realisasi/target x 100 rounded to two decimals, or 0 when the
// target is zero or the realization is negative.
func percentage(realisasi, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := realisasi / target * 100
	if pct < 0 || math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return round2(pct)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func progressNote(p audit.QuarterProgress, elapsed float64) string {
	switch {
	case p.TargetMargin <= 0:
		return fmt.Sprintf("Target margin %s belum ditetapkan untuk level ini; sisa %d hari.", p.KuartalBerjalan, p.SisaHari)
	case p.PercentageMargin >= 100:
		return fmt.Sprintf("Target margin %s sudah tercapai (%.2f%%). Pertahankan momentum %d hari tersisa.",
			p.KuartalBerjalan, p.PercentageMargin, p.SisaHari)
	case p.PercentageMargin >= elapsed:
		return fmt.Sprintf("Realisasi margin %.2f%% sejalan dengan waktu berjalan %.2f%%; sisa %d hari untuk menutup target.",
			p.PercentageMargin, elapsed, p.SisaHari)
	default:
		return fmt.Sprintf("Realisasi margin %.2f%% tertinggal dari waktu berjalan %.2f%%; perlu percepatan dalam %d hari tersisa.",
			p.PercentageMargin, elapsed, p.SisaHari)
	}
}
