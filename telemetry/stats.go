package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Plant shape at window end
	CanopySegments int `csv:"canopy_segments"`
	CanopyPoints   int `csv:"canopy_points"`
	CanopyComplete int `csv:"canopy_complete"`
	RootSegments   int `csv:"root_segments"`
	RootPoints     int `csv:"root_points"`

	// Canopy segment depth distribution
	DepthMean float64 `csv:"depth_mean"`
	DepthStd  float64 `csv:"depth_std"`
	DepthP50  float64 `csv:"depth_p50"`
	DepthP90  float64 `csv:"depth_p90"`

	// Events during window
	BranchesGrown  int `csv:"branches_grown"`
	RootsExtended  int `csv:"roots_extended"`
	RootsForked    int `csv:"roots_forked"`
	Rejections     int `csv:"rejections"`
	PoolsConnected int `csv:"pools_connected"`
	PoolsDepleted  int `csv:"pools_depleted"`
	ResourceCycles int `csv:"resource_cycles"`
	GrowthCycles   int `csv:"growth_cycles"`

	// Stocks at window end
	Water       float64 `csv:"water"`
	WaterMax    float64 `csv:"water_max"`
	Minerals    float64 `csv:"minerals"`
	MineralsMax float64 `csv:"minerals_max"`
	Energy      float64 `csv:"energy"`
	EnergyMax   float64 `csv:"energy_max"`

	// Soil and budgets
	PoolsLeft         int     `csv:"pools_left"`
	PoolsAttached     int     `csv:"pools_attached"`
	PoolWater         float64 `csv:"pool_water"`
	PoolMinerals      float64 `csv:"pool_minerals"`
	ExtractedWater    float64 `csv:"extracted_water"`
	ExtractedMinerals float64 `csv:"extracted_minerals"`
	BranchBudget      int     `csv:"branch_budget"`
	RootBudget        int     `csv:"root_budget"`
	Outcome           string  `csv:"outcome"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	if lo+1 >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}

// ComputeDepthStats returns the mean, population standard deviation and
// median/p90 of segment depths.
func ComputeDepthStats(values []float64) (mean, std, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return mean, std, Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("canopy_segments", s.CanopySegments),
		slog.Int("canopy_complete", s.CanopyComplete),
		slog.Int("root_segments", s.RootSegments),
		slog.Float64("depth_mean", s.DepthMean),
		slog.Int("branches_grown", s.BranchesGrown),
		slog.Int("roots_extended", s.RootsExtended),
		slog.Int("roots_forked", s.RootsForked),
		slog.Int("rejections", s.Rejections),
		slog.Int("pools_connected", s.PoolsConnected),
		slog.Int("pools_depleted", s.PoolsDepleted),
		slog.Float64("water", s.Water),
		slog.Float64("minerals", s.Minerals),
		slog.Float64("energy", s.Energy),
		slog.String("outcome", s.Outcome),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"canopy_segments", s.CanopySegments,
		"canopy_points", s.CanopyPoints,
		"canopy_complete", s.CanopyComplete,
		"root_segments", s.RootSegments,
		"root_points", s.RootPoints,
		"depth_mean", s.DepthMean,
		"depth_std", s.DepthStd,
		"branches_grown", s.BranchesGrown,
		"roots_extended", s.RootsExtended,
		"roots_forked", s.RootsForked,
		"rejections", s.Rejections,
		"pools_connected", s.PoolsConnected,
		"pools_depleted", s.PoolsDepleted,
		"resource_cycles", s.ResourceCycles,
		"water", s.Water,
		"minerals", s.Minerals,
		"energy", s.Energy,
		"pools_left", s.PoolsLeft,
		"branch_budget", s.BranchBudget,
		"root_budget", s.RootBudget,
		"outcome", s.Outcome,
	)
}
