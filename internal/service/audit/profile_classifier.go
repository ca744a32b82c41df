package audit

import "github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"

func gapTendency(totalGap int) audit.GapTendency {
	switch {
	case totalGap > 0:
		return audit.GapOverestimation
	case totalGap < 0:
		return audit.GapUnderestimation
	default:
		return audit.GapBalanced
	}
}

type profileRule struct {
	kinerja  func(audit.Zone) bool
	perilaku func(audit.Zone) bool
	tendency func(audit.GapTendency) bool
	profile  audit.ProfileTag
}

func isSuccess(z audit.Zone) bool    { return z == audit.ZoneSuccess }
func isNotSuccess(z audit.Zone) bool { return z != audit.ZoneSuccess }
func anyTendency(audit.GapTendency) bool {
	return true
}

// profileRules is evaluated top to bottom; the first match wins. Success Kinerja
// with a soft Perilaku resolves to Visionary for every gap tendency.
var profileRules = []profileRule{
	{kinerja: isSuccess, perilaku: isSuccess, tendency: anyTendency, profile: audit.ProfileLeader},
	{kinerja: isSuccess, perilaku: isNotSuccess, tendency: anyTendency, profile: audit.ProfileVisionary},
	{kinerja: isNotSuccess, perilaku: isSuccess, tendency: anyTendency, profile: audit.ProfilePerformer},
	{kinerja: isNotSuccess, perilaku: isNotSuccess, tendency: anyTendency, profile: audit.ProfileAtRisk},
}

func classifyProfile(zones audit.ZoneSet, tendency audit.GapTendency) audit.ProfileTag {
	for _, r := range profileRules {
		if r.kinerja(zones.ZonaKinerja) && r.perilaku(zones.ZonaPerilaku) && r.tendency(tendency) {
			return r.profile
		}
	}
	return audit.ProfileAtRisk
}
