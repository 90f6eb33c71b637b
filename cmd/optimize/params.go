// Package main tunes plant growth parameters with CMA-ES over headless
// autopilot runs.
package main

import (
	"github.com/pthm-cable/sprout/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "canopy_growth_speed", Path: "canopy.growth_speed", Min: 0.1, Max: 2.0, Default: 0.5},
			{Name: "root_growth_speed", Path: "roots.growth_speed", Min: 0.1, Max: 2.0, Default: 0.35},
			{Name: "branching_chance", Path: "branching.chance", Min: 0.0, Max: 1.0, Default: 0.5},
			{Name: "leaf_energy_gain", Path: "economy.leaf_energy_gain", Min: 0.1, Max: 2.0, Default: 0.6},
			{Name: "leaf_water_cost", Path: "economy.leaf_water_cost", Min: 0.0, Max: 1.0, Default: 0.2},
			{Name: "pool_water_extraction", Path: "economy.pool_water_extraction", Min: 0.1, Max: 3.0, Default: 1.0},
			{Name: "pool_minerals_extraction", Path: "economy.pool_minerals_extraction", Min: 0.1, Max: 3.0, Default: 0.5},
			{Name: "resource_interval", Path: "schedule.resource_interval", Min: 0.25, Max: 3.0, Default: 1.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes parameter values into cfg and refreshes derived values.
// Order must match Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Canopy.GrowthSpeed = c[0]
	cfg.Roots.GrowthSpeed = c[1]
	cfg.Branching.Chance = c[2]
	cfg.Economy.LeafEnergyGain = c[3]
	cfg.Economy.LeafWaterCost = c[4]
	cfg.Economy.PoolWaterExtraction = c[5]
	cfg.Economy.PoolMineralsExtraction = c[6]
	cfg.Schedule.ResourceInterval = c[7]

	cfg.ComputeDerived()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Canopy.GrowthSpeed,
		cfg.Roots.GrowthSpeed,
		cfg.Branching.Chance,
		cfg.Economy.LeafEnergyGain,
		cfg.Economy.LeafWaterCost,
		cfg.Economy.PoolWaterExtraction,
		cfg.Economy.PoolMineralsExtraction,
		cfg.Schedule.ResourceInterval,
	}
}
