package audit

import (
	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
)

// metricSnapshot is the read-only view of a submission's quarterly data that the
// scoring stages share. Series are trimmed to the latest reported quarter.
type metricSnapshot struct {
	personalMargin []float64
	personalNA     []float64
	teamMargin     []float64
	teamNA         []float64
	combinedMargin []float64
	team           audit.TeamStructure

	// latest is the index of the latest quarter carrying any data, -1 for a new hire
	latest int
}

func newMetricSnapshot(sub audit.AuditSubmission) metricSnapshot {
	latest := -1
	for q := 0; q < audit.QuarterCount; q++ {
		if sub.PersonalMetrics.Margin[q] != 0 || sub.PersonalMetrics.NewAccounts[q] != 0 ||
			sub.TeamMetrics.Margin[q] != 0 || sub.TeamMetrics.NewAccounts[q] != 0 {
			latest = q
		}
	}

	snap := metricSnapshot{team: sub.TeamStructure, latest: latest}
	if latest < 0 {
		return snap
	}

	n := latest + 1
	snap.personalMargin = cloneSeries(sub.PersonalMetrics.Margin[:n])
	snap.personalNA = cloneSeries(sub.PersonalMetrics.NewAccounts[:n])
	snap.teamMargin = cloneSeries(sub.TeamMetrics.Margin[:n])
	snap.teamNA = cloneSeries(sub.TeamMetrics.NewAccounts[:n])
	snap.combinedMargin = make([]float64, n)
	for q := 0; q < n; q++ {
		snap.combinedMargin[q] = snap.personalMargin[q] + snap.teamMargin[q]
	}
	return snap
}

// newHire reports whether every quarterly metric is zero.
func (m metricSnapshot) newHire() bool {
	return m.latest < 0
}

// series returns the quarterly history behind a metric kind, or nil when the metric
// is a point-in-time snapshot.
func (m metricSnapshot) series(kind audit.MetricKind) []float64 {
	switch kind {
	case audit.MetricPersonalMargin:
		return m.personalMargin
	case audit.MetricPersonalNA:
		return m.personalNA
	case audit.MetricTeamMargin:
		return m.teamMargin
	case audit.MetricTeamNA, audit.MetricTeamProductivity:
		return m.teamNA
	case audit.MetricConsistency:
		return m.combinedMargin
	}
	return nil
}

func (m metricSnapshot) last(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

func cloneSeries(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	return out
}

// slope is the least-squares slope of the series over quarter index.
func slope(values []float64) float64 {
	n := float64(len(values))
	if len(values) < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// lastChange is the quarter-over-quarter change of the latest quarter.
func lastChange(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return values[len(values)-1] - values[len(values)-2]
}

// consecutiveDeclines reports whether the last n quarter-over-quarter changes are
// all negative.
func consecutiveDeclines(values []float64, n int) bool {
	if len(values) < n+1 {
		return false
	}
	for i := len(values) - n; i < len(values); i++ {
		if values[i] >= values[i-1] {
			return false
		}
	}
	return true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
