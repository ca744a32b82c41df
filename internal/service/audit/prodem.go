package audit

import (
	"fmt"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
)

// prodemInput gathers the upstream outputs the recommendation depends on.
type prodemInput struct {
	profile  audit.ProfileTag
	zones    audit.ZoneSet
	levelIdx int
	progress audit.QuarterProgress
	team     audit.TeamStructure
}

// recommend evaluates Promosi, Demosi, Pembinaan and Dipertahankan in that order.
// Every requirement is evaluated regardless of the branch that fires.
func (e *Evaluator) recommend(in prodemInput) audit.ProDemRecommendation {
	levels := e.cfg.Levels
	current := levels[in.levelIdx]
	th := e.cfg.ProDem

	var requirements []audit.Requirement

	// Next-tier team minimums, in ladder order
	nextTierMet := false
	var next *audit.LevelConfig
	if in.levelIdx+1 < len(levels) {
		next = &levels[in.levelIdx+1]
		nextTierMet = true
		for _, tier := range audit.SubordinateTiers() {
			n, ok := next.TeamMinimums[tier]
			if !ok || n == 0 {
				continue
			}
			count := in.team.Count(tier)
			met := count >= n
			nextTierMet = nextTierMet && met
			requirements = append(requirements, audit.Requirement{
				Label: fmt.Sprintf("Minimal %s untuk %s", tier, next.Code),
				Value: fmt.Sprintf("%d/%d", count, n),
				Met:   met,
			})
		}
	}

	pct := in.progress.PercentageMargin
	marginMet := pct >= th.PromotionMarginPercent
	requirements = append(requirements, audit.Requirement{
		Label: "Realisasi margin kuartal",
		Value: fmt.Sprintf("%.2f%% / %.0f%%", pct, th.PromotionMarginPercent),
		Met:   marginMet,
	})

	saveMargin := pct >= th.SaveMarginPercent
	requirements = append(requirements, audit.Requirement{
		Label: string(audit.StrategySaveByMargin),
		Value: fmt.Sprintf("%.2f%% / %.0f%%", pct, th.SaveMarginPercent),
		Met:   saveMargin,
	})

	requiredStaff := max(th.SaveStaffMinHeadcount, current.HeadcountFloor(), 1)
	headcount := in.team.Total()
	saveStaff := headcount >= requiredStaff
	requirements = append(requirements, audit.Requirement{
		Label: string(audit.StrategySaveByStaff),
		Value: fmt.Sprintf("%d/%d orang", headcount, requiredStaff),
		Met:   saveStaff,
	})

	rec := audit.ProDemRecommendation{
		CurrentLevel: current.Code,
		StrategyType: audit.StrategyNA,
		Requirements: requirements,
	}

	switch {
	case in.profile == audit.ProfileLeader && marginMet && next != nil && nextTierMet:
		code := next.Code
		rec.Recommendation = audit.RecommendationPromosi
		rec.NextLevel = &code
		rec.Reason = fmt.Sprintf("Profil Leader dengan realisasi margin %.2f%% dan seluruh syarat struktur %s terpenuhi.", pct, next.Code)
		rec.Konsekuensi = fmt.Sprintf("Diajukan naik ke level %s (%s) dengan target tim yang lebih besar.", next.Code, next.Name)
		rec.NextStep = "Siapkan dokumen pengajuan promosi dan rencana transisi tim dalam 30 hari."

	case in.profile == audit.ProfileAtRisk && in.zones.ZonaFinal == audit.FinalZoneMerah && !saveMargin && !saveStaff:
		rec.Recommendation = audit.RecommendationDemosi
		if in.levelIdx > 0 {
			code := levels[in.levelIdx-1].Code
			rec.NextLevel = &code
		}
		rec.Reason = fmt.Sprintf("Profil At-Risk di zona merah tanpa strategi save yang terpenuhi (margin %.2f%%, tim %d/%d orang).",
			pct, headcount, requiredStaff)
		if rec.NextLevel != nil {
			rec.Konsekuensi = fmt.Sprintf("Diajukan turun ke level %s.", *rec.NextLevel)
		} else {
			rec.Konsekuensi = fmt.Sprintf("Sudah di level terendah %s; status kerja ditinjau oleh manajemen.", current.Code)
		}
		rec.NextStep = "Jadwalkan sesi review dengan atasan dan HR dalam 7 hari."

	case (in.profile == audit.ProfilePerformer || in.profile == audit.ProfileAtRisk) && (saveMargin || saveStaff):
		rec.Recommendation = audit.RecommendationPembinaan
		marginProgress := pct / th.SaveMarginPercent
		staffProgress := float64(headcount) / float64(requiredStaff)
		if marginProgress > staffProgress {
			rec.StrategyType = audit.StrategySaveByMargin
			rec.NextStep = fmt.Sprintf("Kejar realisasi margin minimal %.0f%% target sebelum akhir %s.", th.SaveMarginPercent, in.progress.KuartalBerjalan)
		} else {
			rec.StrategyType = audit.StrategySaveByStaff
			rec.NextStep = fmt.Sprintf("Pertahankan dan perkuat struktur tim minimal %d orang hingga akhir %s.", requiredStaff, in.progress.KuartalBerjalan)
		}
		rec.Reason = fmt.Sprintf("Profil %s dengan strategi %s yang masih terpenuhi.", in.profile, rec.StrategyType)
		rec.Konsekuensi = fmt.Sprintf("Tetap di level %s dengan program pembinaan dan evaluasi ulang kuartal berikutnya.", current.Code)

	default:
		rec.Recommendation = audit.RecommendationDipertahankan
		rec.Reason = fmt.Sprintf("Profil %s di zona %s belum memenuhi kriteria promosi maupun demosi.", in.profile, in.zones.ZonaFinal)
		rec.Konsekuensi = fmt.Sprintf("Tetap di level %s.", current.Code)
		if next != nil {
			rec.NextStep = fmt.Sprintf("Fokus pada syarat %s yang belum terpenuhi untuk membuka jalur promosi.", next.Code)
		} else {
			rec.NextStep = "Pertahankan kinerja dan kembangkan pemimpin baru di struktur tim."
		}
	}

	return rec
}
