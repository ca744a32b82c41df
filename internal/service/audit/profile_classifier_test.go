package audit

import (
	"testing"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
	"github.com/stretchr/testify/assert"
)

func TestGapTendency(t *testing.T) {
	assert.Equal(t, audit.GapOverestimation, gapTendency(3))
	assert.Equal(t, audit.GapBalanced, gapTendency(0))
	assert.Equal(t, audit.GapUnderestimation, gapTendency(-1))
}

func TestClassifyProfile(t *testing.T) {
	zones := []audit.Zone{audit.ZoneSuccess, audit.ZoneWarning, audit.ZoneCritical}
	tendencies := []audit.GapTendency{audit.GapOverestimation, audit.GapBalanced, audit.GapUnderestimation}

	for _, k := range zones {
		for _, p := range zones {
			for _, g := range tendencies {
				var want audit.ProfileTag
				switch {
				case k == audit.ZoneSuccess && p == audit.ZoneSuccess:
					want = audit.ProfileLeader
				case k == audit.ZoneSuccess:
					want = audit.ProfileVisionary
				case p == audit.ZoneSuccess:
					want = audit.ProfilePerformer
				default:
					want = audit.ProfileAtRisk
				}

				set := audit.ZoneSet{ZonaKinerja: k, ZonaPerilaku: p}
				got := classifyProfile(set, g)
				assert.Equal(t, want, got, "kinerja=%s perilaku=%s gap=%s", k, p, g)
				assert.Equal(t, got, classifyProfile(set, g), "deterministic")
			}
		}
	}
}
