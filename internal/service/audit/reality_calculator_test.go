package audit

import (
	"errors"
	"testing"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucket(t *testing.T) {
	e := newTestEvaluator(t)

	tests := []struct {
		ratio float64
		want  int
	}{
		{1, 5},
		{0.9, 5},
		{0.8999, 4},
		{0.7, 4},
		{0.5, 3},
		{0.4999, 2},
		{0.3, 2},
		{0.2999, 1},
		{0, 1},
	}

	for _, tt := range tests {
		got, err := e.bucket(tt.ratio)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ratio %v", tt.ratio)
	}
}

func TestBucket_MissingCatchAll(t *testing.T) {
	e := newTestEvaluator(t)
	e.cfg.Breakpoints = []audit.Breakpoint{{Min: 0.5, Score: 5}}

	_, err := e.bucket(0.1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, audit.ErrConfiguration))
}

func TestDampedScore(t *testing.T) {
	e := newTestEvaluator(t)

	assert.Equal(t, 4, e.dampedScore(5))
	assert.Equal(t, 3, e.dampedScore(4)) // 3.2
	assert.Equal(t, 2, e.dampedScore(3)) // 2.4
	assert.Equal(t, 2, e.dampedScore(2)) // 1.6
	assert.Equal(t, 1, e.dampedScore(1)) // 0.8

	e.cfg.Damping = 0.1
	assert.Equal(t, 1, e.dampedScore(1), "floor-clamped to 1")
}

func TestInferLevel(t *testing.T) {
	e := newTestEvaluator(t)

	tests := []struct {
		name string
		team audit.TeamStructure
		want audit.Level
	}{
		{"no team", audit.TeamStructure{}, audit.LevelBC},
		{"two BC", audit.TeamStructure{BC: 2}, audit.LevelSBC},
		{"BM structure", audit.TeamStructure{BC: 5, SBC: 1}, audit.LevelBM},
		{"two BM", audit.TeamStructure{BM: 2}, audit.LevelEM},
		{"regional", audit.TeamStructure{BrM: 2}, audit.LevelRM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := e.inferLevel(tt.team)
			assert.Equal(t, tt.want, e.cfg.Levels[idx].Code)
		})
	}
}

func TestResolveLevel_JabatanWins(t *testing.T) {
	e := newTestEvaluator(t)

	sub := newHireSubmission()
	sub.TeamStructure = audit.TeamStructure{BC: 2}

	sub.Jabatan = "senior business manager"
	assert.Equal(t, audit.LevelSBM, e.cfg.Levels[e.resolveLevel(sub)].Code)

	sub.Jabatan = " em "
	assert.Equal(t, audit.LevelEM, e.cfg.Levels[e.resolveLevel(sub)].Code)

	sub.Jabatan = "Kepala Unit"
	assert.Equal(t, audit.LevelSBC, e.cfg.Levels[e.resolveLevel(sub)].Code, "falls back to team structure")
}

func TestRealityScore_MetricNotApplicableFallsBack(t *testing.T) {
	e := newTestEvaluator(t)
	sub := strugglingSubmission()
	sub.Answers = answersWith(5)
	snap := newMetricSnapshot(sub)

	// BC has no team margin target
	p, ok := e.cfg.PillarByID(6)
	require.True(t, ok)
	got, err := e.realityScore(p, 5, 0, snap)
	require.NoError(t, err)
	assert.Equal(t, 4, got)
}

func TestNormalize_TeamStructure(t *testing.T) {
	e := newTestEvaluator(t)
	p, ok := e.cfg.PillarByID(7)
	require.True(t, ok)
	bm := e.cfg.LevelIndex(audit.LevelBM)

	// SBM needs BC:4 and BM:1
	snap := metricSnapshot{team: audit.TeamStructure{BC: 6, SBC: 3}}
	ratio, applicable, err := e.normalize(p, bm, snap)
	require.NoError(t, err)
	assert.True(t, applicable)
	assert.InDelta(t, 0.8, ratio, 1e-9, "surplus BC does not compensate the missing BM")

	top := e.cfg.LevelIndex(audit.LevelRM)
	snap = metricSnapshot{team: audit.TeamStructure{BrM: 1}}
	ratio, applicable, err = e.normalize(p, top, snap)
	require.NoError(t, err)
	assert.True(t, applicable)
	assert.InDelta(t, 0.5, ratio, 1e-9)
}

func TestNormalize_ProductivityWithoutTeam(t *testing.T) {
	e := newTestEvaluator(t)
	p, ok := e.cfg.PillarByID(8)
	require.True(t, ok)

	snap := metricSnapshot{teamNA: []float64{4}, latest: 0}
	ratio, applicable, err := e.normalize(p, e.cfg.LevelIndex(audit.LevelBM), snap)
	require.NoError(t, err)
	assert.True(t, applicable)
	assert.Zero(t, ratio)
}

func TestNormalize_Consistency(t *testing.T) {
	e := newTestEvaluator(t)
	p, ok := e.cfg.PillarByID(14)
	require.True(t, ok)

	// BC target is 5000 per quarter
	snap := metricSnapshot{combinedMargin: []float64{6000, 4000, 5000, 1000}, latest: 3}
	ratio, applicable, err := e.normalize(p, 0, snap)
	require.NoError(t, err)
	assert.True(t, applicable)
	assert.InDelta(t, 0.5, ratio, 1e-9)
}

func TestMetricSnapshot_TrimsToLatestQuarter(t *testing.T) {
	sub := newHireSubmission()
	sub.PersonalMetrics.Margin = []float64{100, 200, 0, 0}

	snap := newMetricSnapshot(sub)
	assert.False(t, snap.newHire())
	assert.Equal(t, 1, snap.latest)
	assert.Equal(t, []float64{100, 200}, snap.personalMargin)
	assert.Equal(t, float64(200), snap.last(snap.personalMargin))

	sub.PersonalMetrics.Margin[0] = 999
	assert.Equal(t, float64(100), snap.personalMargin[0], "snapshot owns its series")
}

func TestTrendHelpers(t *testing.T) {
	assert.InDelta(t, 100, slope([]float64{100, 200, 300, 400}), 1e-9)
	assert.Zero(t, slope([]float64{5}))
	assert.Equal(t, float64(-50), lastChange([]float64{100, 50}))

	assert.True(t, consecutiveDeclines([]float64{10, 30, 20, 10}, 2))
	assert.False(t, consecutiveDeclines([]float64{30, 20, 20}, 2))
	assert.False(t, consecutiveDeclines([]float64{20, 10}, 2))
}
