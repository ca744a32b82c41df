package audit

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultConfigVersion identifies the compiled-in calibration.
const DefaultConfigVersion = "18pilar-2025.1"

// PillarCount is the fixed size of the 18 Pilar framework.
const PillarCount = 18

type PillarCategory string

const (
	CategoryMetric     PillarCategory = "metric"
	CategoryBehavioral PillarCategory = "behavioral"
)

// MetricKind names the quantitative proxy behind a metric-backed pillar.
type MetricKind string

const (
	MetricPersonalMargin   MetricKind = "personal_margin"
	MetricPersonalNA       MetricKind = "personal_na"
	MetricTeamMargin       MetricKind = "team_margin"
	MetricTeamNA           MetricKind = "team_na"
	MetricTeamStructure    MetricKind = "team_structure"
	MetricTeamProductivity MetricKind = "team_productivity"
	MetricConsistency      MetricKind = "consistency"
)

func (m MetricKind) valid() bool {
	switch m {
	case MetricPersonalMargin, MetricPersonalNA, MetricTeamMargin, MetricTeamNA,
		MetricTeamStructure, MetricTeamProductivity, MetricConsistency:
		return true
	}
	return false
}

// Level is a role tier code. The same codes name the subordinate tiers counted in
// a team-structure snapshot.
type Level string

const (
	LevelBC  Level = "BC"
	LevelSBC Level = "SBC"
	LevelBM  Level = "BM"
	LevelSBM Level = "SBM"
	LevelEM  Level = "EM"
	LevelSEM Level = "SEM"
	LevelVBM Level = "VBM"
	LevelBrM Level = "BrM"
	LevelRM  Level = "RM"
)

// SubordinateTiers lists the 8 tiers of a team-structure snapshot, lowest first.
func SubordinateTiers() []Level {
	return []Level{LevelBC, LevelSBC, LevelBM, LevelSBM, LevelEM, LevelSEM, LevelVBM, LevelBrM}
}

type PillarConfig struct {
	ID       int            `yaml:"id" json:"id"`
	Name     string         `yaml:"name" json:"name"`
	Category PillarCategory `yaml:"category" json:"category"`
	Metric   MetricKind     `yaml:"metric,omitempty" json:"metric,omitempty"`
}

// Breakpoint maps a normalized metric value (>= Min) to a reality score.
type Breakpoint struct {
	Min   float64 `yaml:"min" json:"min"`
	Score int     `yaml:"score" json:"score"`
}

// RoleTargets are the per-quarter targets of a role tier. A zero target marks the
// metric as not applicable for that tier.
type RoleTargets struct {
	PersonalMargin float64 `yaml:"personal_margin" json:"personal_margin"`
	PersonalNA     float64 `yaml:"personal_na" json:"personal_na"`
	TeamMargin     float64 `yaml:"team_margin" json:"team_margin"`
	TeamNA         float64 `yaml:"team_na" json:"team_na"`
	NAPerHead      float64 `yaml:"na_per_head" json:"na_per_head"`
}

type LevelConfig struct {
	Code Level  `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
	// TeamMinimums are the subordinate counts required to hold this tier
	TeamMinimums map[Level]int `yaml:"team_minimums" json:"team_minimums"`
	Targets      RoleTargets   `yaml:"targets" json:"targets"`
}

// HeadcountFloor is the total subordinate headcount implied by the tier minimums.
func (l LevelConfig) HeadcountFloor() int {
	total := 0
	for _, n := range l.TeamMinimums {
		total += n
	}
	return total
}

type ZoneThresholds struct {
	Success int `yaml:"success" json:"success"` // >= success
	Warning int `yaml:"warning" json:"warning"` // >= warning, below success
}

type ProDemThresholds struct {
	PromotionMarginPercent float64 `yaml:"promotion_margin_percent" json:"promotion_margin_percent"`
	SaveMarginPercent      float64 `yaml:"save_margin_percent" json:"save_margin_percent"`
	SaveStaffMinHeadcount  int     `yaml:"save_staff_min_headcount" json:"save_staff_min_headcount"`
}

type SynthesisThresholds struct {
	StrengthMin      int `yaml:"strength_min" json:"strength_min"`
	WeaknessMax      int `yaml:"weakness_max" json:"weakness_max"`
	EWSBehavioralMax int `yaml:"ews_behavioral_max" json:"ews_behavioral_max"`
	TargetBand       int `yaml:"target_band" json:"target_band"`
}

// EngineConfig is the versioned calibration of the audit engine. Every breakpoint,
// damping factor and target lives here so that recalibration never touches logic.
type EngineConfig struct {
	Version     string              `yaml:"version" json:"version"`
	Pillars     []PillarConfig      `yaml:"pillars" json:"pillars"`
	Breakpoints []Breakpoint        `yaml:"breakpoints" json:"breakpoints"`
	Damping     float64             `yaml:"damping" json:"damping"`
	Epsilon     float64             `yaml:"epsilon" json:"epsilon"`
	Levels      []LevelConfig       `yaml:"levels" json:"levels"`
	Zones       ZoneThresholds      `yaml:"zones" json:"zones"`
	ProDem      ProDemThresholds    `yaml:"prodem" json:"prodem"`
	Synthesis   SynthesisThresholds `yaml:"synthesis" json:"synthesis"`
}

// DefaultEngineConfig returns the compiled-in calibration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Version: DefaultConfigVersion,
		Pillars: []PillarConfig{
			{ID: 1, Name: "Visi & Tujuan Karier", Category: CategoryBehavioral},
			{ID: 2, Name: "Integritas", Category: CategoryBehavioral},
			{ID: 3, Name: "Disiplin Kerja", Category: CategoryBehavioral},
			{ID: 4, Name: "Pencapaian Margin Pribadi", Category: CategoryMetric, Metric: MetricPersonalMargin},
			{ID: 5, Name: "Akuisisi Nasabah Baru", Category: CategoryMetric, Metric: MetricPersonalNA},
			{ID: 6, Name: "Pertumbuhan Margin Tim", Category: CategoryMetric, Metric: MetricTeamMargin},
			{ID: 7, Name: "Rekrutmen & Struktur Tim", Category: CategoryMetric, Metric: MetricTeamStructure},
			{ID: 8, Name: "Produktivitas Tim", Category: CategoryMetric, Metric: MetricTeamProductivity},
			{ID: 9, Name: "Komunikasi Efektif", Category: CategoryBehavioral},
			{ID: 10, Name: "Kepemimpinan", Category: CategoryBehavioral},
			{ID: 11, Name: "Coaching & Mentoring", Category: CategoryBehavioral},
			{ID: 12, Name: "Manajemen Waktu", Category: CategoryBehavioral},
			{ID: 13, Name: "Problem Solving", Category: CategoryBehavioral},
			{ID: 14, Name: "Konsistensi Kinerja", Category: CategoryMetric, Metric: MetricConsistency},
			{ID: 15, Name: "Kolaborasi Tim", Category: CategoryBehavioral},
			{ID: 16, Name: "Adaptasi & Inovasi", Category: CategoryBehavioral},
			{ID: 17, Name: "Pengembangan Diri", Category: CategoryBehavioral},
			{ID: 18, Name: "Pertumbuhan Akun Tim", Category: CategoryMetric, Metric: MetricTeamNA},
		},
		Breakpoints: []Breakpoint{
			{Min: 0.9, Score: 5},
			{Min: 0.7, Score: 4},
			{Min: 0.5, Score: 3},
			{Min: 0.3, Score: 2},
			{Min: 0, Score: 1},
		},
		Damping: 0.8,
		Epsilon: 1e-9,
		Levels: []LevelConfig{
			{Code: LevelBC, Name: "Business Consultant", TeamMinimums: map[Level]int{},
				Targets: RoleTargets{PersonalMargin: 5000, PersonalNA: 2}},
			{Code: LevelSBC, Name: "Senior Business Consultant", TeamMinimums: map[Level]int{LevelBC: 2},
				Targets: RoleTargets{PersonalMargin: 7500, PersonalNA: 3, TeamMargin: 5000, TeamNA: 2, NAPerHead: 1}},
			{Code: LevelBM, Name: "Business Manager", TeamMinimums: map[Level]int{LevelBC: 4, LevelSBC: 1},
				Targets: RoleTargets{PersonalMargin: 10000, PersonalNA: 3, TeamMargin: 15000, TeamNA: 5, NAPerHead: 1}},
			{Code: LevelSBM, Name: "Senior Business Manager", TeamMinimums: map[Level]int{LevelBC: 4, LevelBM: 1},
				Targets: RoleTargets{PersonalMargin: 10000, PersonalNA: 3, TeamMargin: 30000, TeamNA: 8, NAPerHead: 1}},
			{Code: LevelEM, Name: "Executive Manager", TeamMinimums: map[Level]int{LevelBM: 2},
				Targets: RoleTargets{PersonalMargin: 12500, PersonalNA: 2, TeamMargin: 50000, TeamNA: 12, NAPerHead: 0.8}},
			{Code: LevelSEM, Name: "Senior Executive Manager", TeamMinimums: map[Level]int{LevelBM: 2, LevelSBM: 1},
				Targets: RoleTargets{PersonalMargin: 12500, PersonalNA: 2, TeamMargin: 80000, TeamNA: 18, NAPerHead: 0.8}},
			{Code: LevelVBM, Name: "Vice Branch Manager", TeamMinimums: map[Level]int{LevelSBM: 2, LevelEM: 1},
				Targets: RoleTargets{PersonalMargin: 15000, PersonalNA: 2, TeamMargin: 120000, TeamNA: 25, NAPerHead: 0.7}},
			{Code: LevelBrM, Name: "Branch Manager", TeamMinimums: map[Level]int{LevelEM: 2, LevelSEM: 1},
				Targets: RoleTargets{PersonalMargin: 15000, PersonalNA: 1, TeamMargin: 200000, TeamNA: 40, NAPerHead: 0.6}},
			{Code: LevelRM, Name: "Regional Manager", TeamMinimums: map[Level]int{LevelBrM: 2},
				Targets: RoleTargets{PersonalMargin: 20000, PersonalNA: 1, TeamMargin: 400000, TeamNA: 80, NAPerHead: 0.5}},
		},
		Zones: ZoneThresholds{Success: 75, Warning: 51},
		ProDem: ProDemThresholds{
			PromotionMarginPercent: 100,
			SaveMarginPercent:      70,
			SaveStaffMinHeadcount:  1,
		},
		Synthesis: SynthesisThresholds{
			StrengthMin:      4,
			WeaknessMax:      2,
			EWSBehavioralMax: 2,
			TargetBand:       4,
		},
	}
}

// LoadEngineConfig reads a YAML calibration file. An empty path returns the default.
func LoadEngineConfig(path string) (EngineConfig, error) {
	if path == "" {
		return DefaultEngineConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("read engine config: %w", err)
	}

	cfg := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("parse engine config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}

// Validate checks the calibration for deployment defects.
func (c EngineConfig) Validate() error {
	if c.Version == "" {
		return &ConfigurationError{Key: "version", Reason: "must not be empty"}
	}

	// Pillars
	if len(c.Pillars) != PillarCount {
		return &ConfigurationError{Key: "pillars", Reason: fmt.Sprintf("expected %d pillars, got %d", PillarCount, len(c.Pillars))}
	}
	seen := make(map[int]bool, PillarCount)
	for _, p := range c.Pillars {
		key := fmt.Sprintf("pillars[%d]", p.ID)
		if p.ID < 1 || p.ID > PillarCount || seen[p.ID] {
			return &ConfigurationError{Key: key, Reason: "pillar id must be unique and within 1..18"}
		}
		seen[p.ID] = true
		switch p.Category {
		case CategoryMetric:
			if !p.Metric.valid() {
				return &ConfigurationError{Key: key, Reason: fmt.Sprintf("unknown metric %q", p.Metric)}
			}
		case CategoryBehavioral:
		default:
			return &ConfigurationError{Key: key, Reason: fmt.Sprintf("unknown category %q", p.Category)}
		}
	}

	// Breakpoints must be strictly descending and end with a catch-all
	if len(c.Breakpoints) == 0 {
		return &ConfigurationError{Key: "breakpoints", Reason: "must not be empty"}
	}
	for i, b := range c.Breakpoints {
		if b.Score < 1 || b.Score > 5 {
			return &ConfigurationError{Key: fmt.Sprintf("breakpoints[%d]", i), Reason: "score must be within 1..5"}
		}
		if i > 0 && b.Min >= c.Breakpoints[i-1].Min {
			return &ConfigurationError{Key: fmt.Sprintf("breakpoints[%d]", i), Reason: "breakpoints must be strictly descending"}
		}
	}
	if c.Breakpoints[len(c.Breakpoints)-1].Min > 0 {
		return &ConfigurationError{Key: "breakpoints", Reason: "last breakpoint must start at 0"}
	}

	if c.Damping <= 0 || c.Damping > 1 {
		return &ConfigurationError{Key: "damping", Reason: "must be within (0, 1]"}
	}
	if c.Epsilon <= 0 {
		return &ConfigurationError{Key: "epsilon", Reason: "must be positive"}
	}

	// Levels
	if len(c.Levels) == 0 {
		return &ConfigurationError{Key: "levels", Reason: "must not be empty"}
	}
	codes := make(map[Level]bool, len(c.Levels))
	for _, l := range c.Levels {
		if l.Code == "" || codes[l.Code] {
			return &ConfigurationError{Key: "levels", Reason: fmt.Sprintf("duplicate or empty level code %q", l.Code)}
		}
		codes[l.Code] = true
	}
	tiers := SubordinateTiers()
	for _, l := range c.Levels {
		for tier, n := range l.TeamMinimums {
			if !containsLevel(tiers, tier) {
				return &ConfigurationError{Key: fmt.Sprintf("levels[%s].team_minimums", l.Code), Reason: fmt.Sprintf("unknown tier %q", tier)}
			}
			if n < 0 {
				return &ConfigurationError{Key: fmt.Sprintf("levels[%s].team_minimums", l.Code), Reason: "minimum must not be negative"}
			}
		}
	}

	if c.Zones.Success <= c.Zones.Warning || c.Zones.Warning <= 0 {
		return &ConfigurationError{Key: "zones", Reason: "success threshold must exceed warning threshold"}
	}
	if c.ProDem.PromotionMarginPercent <= 0 || c.ProDem.SaveMarginPercent <= 0 {
		return &ConfigurationError{Key: "prodem", Reason: "margin thresholds must be positive"}
	}
	if c.Synthesis.TargetBand < 1 || c.Synthesis.TargetBand > 5 {
		return &ConfigurationError{Key: "synthesis.target_band", Reason: "must be within 1..5"}
	}

	return nil
}

// Clone returns a deep copy; the slices and team-minimum maps are not shared.
func (c EngineConfig) Clone() EngineConfig {
	out := c
	out.Pillars = append([]PillarConfig(nil), c.Pillars...)
	out.Breakpoints = append([]Breakpoint(nil), c.Breakpoints...)
	out.Levels = make([]LevelConfig, len(c.Levels))
	for i, l := range c.Levels {
		out.Levels[i] = l
		if l.TeamMinimums != nil {
			out.Levels[i].TeamMinimums = make(map[Level]int, len(l.TeamMinimums))
			for tier, n := range l.TeamMinimums {
				out.Levels[i].TeamMinimums[tier] = n
			}
		}
	}
	return out
}

// PillarByID returns the configured pillar with the given id.
func (c EngineConfig) PillarByID(id int) (PillarConfig, bool) {
	for _, p := range c.Pillars {
		if p.ID == id {
			return p, true
		}
	}
	return PillarConfig{}, false
}

// SortedPillars returns the pillars ordered by id.
func (c EngineConfig) SortedPillars() []PillarConfig {
	pillars := make([]PillarConfig, len(c.Pillars))
	copy(pillars, c.Pillars)
	sort.Slice(pillars, func(i, j int) bool { return pillars[i].ID < pillars[j].ID })
	return pillars
}

// LevelIndex returns the ladder position of a level, or -1.
func (c EngineConfig) LevelIndex(code Level) int {
	for i, l := range c.Levels {
		if l.Code == code {
			return i
		}
	}
	return -1
}

func containsLevel(levels []Level, l Level) bool {
	for _, x := range levels {
		if x == l {
			return true
		}
	}
	return false
}
