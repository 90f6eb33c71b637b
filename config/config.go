// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Sim         SimConfig         `yaml:"sim"`
	Canopy      SegmentConfig     `yaml:"canopy"`
	Roots       SegmentConfig     `yaml:"roots"`
	Branching   BranchingConfig   `yaml:"branching"`
	Economy     EconomyConfig     `yaml:"economy"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
	Interaction InteractionConfig `yaml:"interaction"`
	Soil        SoilConfig        `yaml:"soil"`
	Autopilot   AutopilotConfig   `yaml:"autopilot"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Logging     LoggingConfig     `yaml:"logging"`
	Audio       AudioConfig       `yaml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	TargetFPS  int     `yaml:"target_fps"`
	PixelsPerU float64 `yaml:"pixels_per_unit"` // World units to screen pixels
	ScrollStep float64 `yaml:"scroll_step"`     // Camera movement per frame in world units
}

// SimConfig holds the fixed-step clock parameters.
type SimConfig struct {
	DT    float64 `yaml:"dt"`     // Seconds per simulation step
	MaxDT float64 `yaml:"max_dt"` // Upper bound for a single externally supplied delta
	Seed  int64   `yaml:"seed"`   // 0 = time-based
}

// SegmentConfig describes how one branching system (canopy or roots) grows.
type SegmentConfig struct {
	SegmentLength     float64 `yaml:"segment_length"`
	LengthVariance    float64 `yaml:"length_variance"` // Fractional +/- on segment length
	Straightness      float64 `yaml:"straightness"`    // 1 = no lateral jitter on new points
	Wobble            float64 `yaml:"wobble"`          // Bezier control point perturbation (0..1)
	CurveSubdivisions int     `yaml:"curve_subdivisions"`
	ThicknessFactor   float64 `yaml:"thickness_factor"`
	GrowthSpeed       float64 `yaml:"growth_speed"`      // Growth progress per second
	GrowthFactorMin   float64 `yaml:"growth_factor_min"` // Per-segment random multiplier range
	GrowthFactorMax   float64 `yaml:"growth_factor_max"`
	MaxDepth          int     `yaml:"max_depth"`
	BaseAngle         float64 `yaml:"base_angle"` // Orientation of the top-level segment in degrees
}

// BranchingConfig holds autonomous canopy forking parameters.
type BranchingConfig struct {
	AngleDeg         float64 `yaml:"angle_deg"`
	AngleVarianceDeg float64 `yaml:"angle_variance_deg"`
	Chance           float64 `yaml:"chance"` // Independent per side
	Offset           int     `yaml:"offset"` // Points behind the tip a fork starts from
}

// Amounts is a water/minerals/energy triple used for costs, gains and stocks.
type Amounts struct {
	Water    float64 `yaml:"water"`
	Minerals float64 `yaml:"minerals"`
	Energy   float64 `yaml:"energy"`
}

// EconomyConfig holds the resource economy parameters.
type EconomyConfig struct {
	Initial    Amounts `yaml:"initial"`   // Starting stocks
	Max        Amounts `yaml:"max"`       // Starting caps
	BaseGain   Amounts `yaml:"base_gain"` // Intrinsic gain per resource cycle
	BranchCost Amounts `yaml:"branch_cost"`
	RootCost   Amounts `yaml:"root_cost"`

	LeafEnergyGain float64 `yaml:"leaf_energy_gain"` // Added to energy gain per canopy point
	LeafWaterCost  float64 `yaml:"leaf_water_cost"`  // Removed from water gain per canopy point
	LeafWaterCap   float64 `yaml:"leaf_water_cap"`   // Added to water cap per canopy point
	RootCap        Amounts `yaml:"root_cap"`         // Added to each cap per root point

	PoolWaterExtraction    float64 `yaml:"pool_water_extraction"`
	PoolMineralsExtraction float64 `yaml:"pool_minerals_extraction"`
	PoolSearchRadius       float64 `yaml:"pool_search_radius"`
	CompoundPoolDiscovery  bool    `yaml:"compound_pool_discovery"`

	MinBranches int `yaml:"min_branches"` // Affordable branch units required to auto-grow
	MinRoots    int `yaml:"min_roots"`    // Affordable root units required to auto-grow
}

// ScheduleConfig holds the two logical clock intervals.
type ScheduleConfig struct {
	ResourceInterval       float64 `yaml:"resource_interval"`
	GrowthIntervalMultiple float64 `yaml:"growth_interval_multiple"`
	GrowthIntervalBand     float64 `yaml:"growth_interval_band"` // Fractional +/- around the multiple
}

// InteractionConfig holds player-directed root extension limits.
type InteractionConfig struct {
	MinRadius   float64 `yaml:"min_radius"`
	MaxRadius   float64 `yaml:"max_radius"`
	RockRadius  float64 `yaml:"rock_radius"`
	GroundLevel float64 `yaml:"ground_level"` // Targets above this world Y are rejected
}

// SoilConfig holds procedural soil generation parameters.
type SoilConfig struct {
	MinX          float64 `yaml:"min_x"`
	MaxX          float64 `yaml:"max_x"`
	MinY          float64 `yaml:"min_y"`
	MaxY          float64 `yaml:"max_y"`
	CellSize      float64 `yaml:"cell_size"`   // Sampling step and spatial grid cell size
	NoiseScale    float64 `yaml:"noise_scale"` // World units per noise unit
	NoiseAlpha    float64 `yaml:"noise_alpha"` // Perlin weight decay per octave
	NoiseBeta     float64 `yaml:"noise_beta"`  // Perlin frequency growth per octave
	NoiseOctaves  int32   `yaml:"noise_octaves"`
	PoolThreshold float64 `yaml:"pool_threshold"`
	RockThreshold float64 `yaml:"rock_threshold"`
	RockSize      float64 `yaml:"rock_size"`
	PoolWater     float64 `yaml:"pool_water"`
	PoolMinerals  float64 `yaml:"pool_minerals"`
	ClearRadius   float64 `yaml:"clear_radius"` // No objects are placed this close to the origin
}

// AutopilotConfig holds the headless root-extension player parameters.
type AutopilotConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Interval float64 `yaml:"interval"` // Seconds between extension attempts
	Attempts int     `yaml:"attempts"` // Candidate targets sampled per attempt
	Spread   float64 `yaml:"spread"`   // Max lateral offset from the source point
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// LoggingConfig holds log file rotation parameters.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// AudioConfig maps sound events to clip files for the graphical front-end.
type AudioConfig struct {
	Enabled bool              `yaml:"enabled"`
	Clips   map[string]string `yaml:"clips"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	GrowthInterval   float64 // ResourceInterval * GrowthIntervalMultiple
	StatsWindowTicks int32   // Telemetry.StatsWindow / Sim.DT
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate reports every out-of-range parameter.
func (c *Config) Validate() error {
	var errs []error
	if c.Sim.DT <= 0 {
		errs = append(errs, errors.New("sim.dt must be positive"))
	}
	if c.Sim.MaxDT < c.Sim.DT {
		errs = append(errs, errors.New("sim.max_dt must be >= sim.dt"))
	}
	errs = append(errs, c.Canopy.validate("canopy")...)
	errs = append(errs, c.Roots.validate("roots")...)
	if c.Branching.Offset < 0 {
		errs = append(errs, errors.New("branching.offset must be >= 0"))
	}
	if c.Schedule.ResourceInterval <= 0 {
		errs = append(errs, errors.New("schedule.resource_interval must be positive"))
	}
	if c.Schedule.GrowthIntervalMultiple <= 0 {
		errs = append(errs, errors.New("schedule.growth_interval_multiple must be positive"))
	}
	if c.Schedule.GrowthIntervalBand < 0 || c.Schedule.GrowthIntervalBand >= 1 {
		errs = append(errs, errors.New("schedule.growth_interval_band must be in [0,1)"))
	}
	if c.Interaction.MinRadius > c.Interaction.MaxRadius {
		errs = append(errs, errors.New("interaction.min_radius must be <= interaction.max_radius"))
	}
	if c.Soil.CellSize <= 0 {
		errs = append(errs, errors.New("soil.cell_size must be positive"))
	}
	return errors.Join(errs...)
}

func (s SegmentConfig) validate(name string) []error {
	var errs []error
	if s.MaxDepth < 2 {
		errs = append(errs, fmt.Errorf("%s.max_depth must be >= 2", name))
	}
	if s.SegmentLength <= 0 {
		errs = append(errs, fmt.Errorf("%s.segment_length must be positive", name))
	}
	if s.CurveSubdivisions < 1 {
		errs = append(errs, fmt.Errorf("%s.curve_subdivisions must be >= 1", name))
	}
	if s.GrowthFactorMin > s.GrowthFactorMax {
		errs = append(errs, fmt.Errorf("%s.growth_factor_min must be <= growth_factor_max", name))
	}
	return errs
}

// ComputeDerived recalculates values derived from the loaded config. Call it
// again after changing fields in code.
func (c *Config) ComputeDerived() {
	c.Derived.GrowthInterval = c.Schedule.ResourceInterval * c.Schedule.GrowthIntervalMultiple

	ticks := int32(c.Telemetry.StatsWindow / c.Sim.DT)
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.StatsWindowTicks = ticks
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
