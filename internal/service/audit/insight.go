package audit

import (
	"fmt"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
)

func classifyGap(gap int) audit.GapClass {
	switch {
	case gap >= 2:
		return audit.GapClassSignificantOver
	case gap == 1:
		return audit.GapClassMildOver
	case gap == 0:
		return audit.GapClassAccurate
	default:
		return audit.GapClassUnder
	}
}

// insightTemplates are keyed by classification; the pillar name, focus and the
// numeric gap are substituted per pillar.
var insightTemplates = map[audit.GapClass]string{
	audit.GapClassSignificantOver: "%[1]s: penilaian diri %[3]d/5 melampaui realitas %[4]d/5 sebesar %[5]d poin. " +
		"Persepsi jauh di atas bukti; validasi %[2]s dengan data dan umpan balik atasan.",
	audit.GapClassMildOver: "%[1]s: penilaian diri %[3]d/5 sedikit di atas realitas %[4]d/5 (selisih %[5]d poin). " +
		"Perkuat bukti %[2]s agar persepsi dan hasil sejalan.",
	audit.GapClassAccurate: "%[1]s: penilaian diri akurat di skor %[4]d/5. " +
		"Pertahankan %[2]s dan jadikan standar bagi tim.",
	audit.GapClassUnder: "%[1]s: realitas %[4]d/5 lebih tinggi %[5]d poin dari penilaian diri %[3]d/5. " +
		"Peluang coaching: bangun kepercayaan diri atas %[2]s.",
}

func (e *Evaluator) insight(p audit.PillarConfig, class audit.GapClass, self, reality, gap int) (string, error) {
	tmpl, ok := insightTemplates[class]
	if !ok {
		return "", &audit.ConfigurationError{Key: "insight_templates", Reason: fmt.Sprintf("no template for %q", class)}
	}
	content, ok := pillarContents[p.ID]
	if !ok {
		return "", &audit.ConfigurationError{Key: fmt.Sprintf("pillar_contents[%d]", p.ID), Reason: "missing pillar content"}
	}

	magnitude := gap
	if magnitude < 0 {
		magnitude = -magnitude
	}
	return fmt.Sprintf(tmpl, p.Name, content.Focus, self, reality, magnitude), nil
}
