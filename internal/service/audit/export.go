package audit

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
	"github.com/cmlabs-hris/audit-pilar-go/internal/pkg/spreadsheet"
)

// exportWorkbook lays out a stored result as an XLSX report. It only reads the
// result; nothing is recomputed.
func exportWorkbook(r audit.AuditResult) ([]byte, error) {
	return spreadsheet.Build([]spreadsheet.Sheet{
		summarySheet(r),
		pillarSheet(r),
		swotSheet(r),
		actionPlanSheet(r),
		ewsSheet(r),
		prodemSheet(r),
	})
}

func summarySheet(r audit.AuditResult) spreadsheet.Sheet {
	qp := r.QuarterProgress
	return spreadsheet.Sheet{
		Name:    "Ringkasan",
		Headers: []string{"Keterangan", "Nilai"},
		Widths:  []float64{28, 60},
		Rows: [][]any{
			{"Nama", r.Nama},
			{"Jabatan", r.Jabatan},
			{"Cabang", r.Cabang},
			{"Tanggal Lahir", r.TglLahir},
			{"Tanggal Evaluasi", r.EvaluatedAt.Format(time.DateOnly)},
			{"Versi Kalibrasi", r.ConfigVersion},
			{"Total Skor Diri", r.TotalSelfScore},
			{"Total Skor Realitas", r.TotalRealityScore},
			{"Total Gap", r.TotalGap},
			{"Kecenderungan Gap", string(r.GapTendency)},
			{"Zona Kinerja", string(r.Zones.ZonaKinerja)},
			{"Zona Perilaku", string(r.Zones.ZonaPerilaku)},
			{"Zona Final", string(r.Zones.ZonaFinal)},
			{"Profil", string(r.Profile)},
			{"Kuartal Berjalan", qp.KuartalBerjalan},
			{"Sisa Hari", qp.SisaHari},
			{"Realisasi Margin", fmt.Sprintf("%.2f / %.2f (%.2f%%)", qp.RealisasiMargin, qp.TargetMargin, qp.PercentageMargin)},
			{"Realisasi NA", fmt.Sprintf("%.2f / %.2f (%.2f%%)", qp.RealisasiNA, qp.TargetNA, qp.PercentageNA)},
			{"Catatan", qp.Catatan},
			{"Julukan", r.MagicSection.Julukan},
			{"Zodiak", r.MagicSection.Zodiak},
			{"Generasi", string(r.MagicSection.Generasi)},
			{"Narasi", r.MagicSection.Narasi},
		},
	}
}

func pillarSheet(r audit.AuditResult) spreadsheet.Sheet {
	rows := make([][]any, 0, len(r.Pillars))
	for _, p := range r.Pillars {
		rows = append(rows, []any{
			p.PillarID, p.PillarName, string(p.Category), p.SelfScore, p.RealityScore, p.Gap, string(p.Classification), p.Insight,
		})
	}
	return spreadsheet.Sheet{
		Name:    "Pilar",
		Headers: []string{"ID", "Pilar", "Kategori", "Skor Diri", "Skor Realitas", "Gap", "Klasifikasi", "Insight"},
		Widths:  []float64{6, 30, 12, 10, 12, 8, 26, 90},
		Rows:    rows,
	}
}

func swotSheet(r audit.AuditResult) spreadsheet.Sheet {
	var rows [][]any
	add := func(kind string, items []string) {
		for _, item := range items {
			rows = append(rows, []any{kind, item})
		}
	}
	add("Strength", r.SWOT.Strengths)
	add("Weakness", r.SWOT.Weaknesses)
	add("Opportunity", r.SWOT.Opportunities)
	add("Threat", r.SWOT.Threats)

	return spreadsheet.Sheet{
		Name:    "SWOT",
		Headers: []string{"Jenis", "Uraian"},
		Widths:  []float64{14, 100},
		Rows:    rows,
	}
}

func actionPlanSheet(r audit.AuditResult) spreadsheet.Sheet {
	rows := make([][]any, 0, len(r.ActionPlan))
	for _, item := range r.ActionPlan {
		rows = append(rows, []any{item.Periode, item.PillarID, item.Target, item.Aktivitas, item.PIC, item.Output})
	}
	return spreadsheet.Sheet{
		Name:    "Action Plan",
		Headers: []string{"Periode", "Pilar", "Target", "Aktivitas", "PIC", "Output"},
		Widths:  []float64{10, 6, 50, 60, 30, 50},
		Rows:    rows,
	}
}

func ewsSheet(r audit.AuditResult) spreadsheet.Sheet {
	rows := make([][]any, 0, len(r.EWS))
	for _, e := range r.EWS {
		rows = append(rows, []any{e.PillarID, e.Faktor, e.Indikator, e.Risiko, e.SaranCepat})
	}
	return spreadsheet.Sheet{
		Name:    "EWS",
		Headers: []string{"Pilar", "Faktor", "Indikator", "Risiko", "Saran Cepat"},
		Widths:  []float64{6, 30, 45, 55, 55},
		Rows:    rows,
	}
}

func prodemSheet(r audit.AuditResult) spreadsheet.Sheet {
	pd := r.ProDem
	nextLevel := "-"
	if pd.NextLevel != nil {
		nextLevel = string(*pd.NextLevel)
	}

	rows := [][]any{
		{"Level Saat Ini", string(pd.CurrentLevel), ""},
		{"Rekomendasi", string(pd.Recommendation), ""},
		{"Level Berikutnya", nextLevel, ""},
		{"Strategi", string(pd.StrategyType), ""},
		{"Alasan", pd.Reason, ""},
		{"Konsekuensi", pd.Konsekuensi, ""},
		{"Langkah Berikutnya", pd.NextStep, ""},
	}
	for _, req := range pd.Requirements {
		status := "Belum"
		if req.Met {
			status = "Terpenuhi"
		}
		rows = append(rows, []any{req.Label, req.Value, status})
	}

	return spreadsheet.Sheet{
		Name:    "ProDem",
		Headers: []string{"Keterangan", "Nilai", "Status"},
		Widths:  []float64{30, 80, 12},
		Rows:    rows,
	}
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
		} else if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "audit"
	}
	return out
}
