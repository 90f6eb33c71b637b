package game

// Options configures a game instance beyond the loaded config file.
type Options struct {
	Seed           int64   // 0 = use sim.seed, then time-based
	LogStats       bool    // Log window stats via slog
	StatsWindowSec float64 // 0 = use telemetry.stats_window
	OutputDir      string  // CSV and config snapshot directory ("" = disabled)
	Headless       bool    // No window, no audio
	StepsPerUpdate int     // Simulation steps per Update call
	Autopilot      bool    // Force the autopilot on regardless of config

	// Sounds receives queued sound effects once per update. Nil discards them.
	Sounds SoundPlayer
}

// withDefaults fills unset fields.
func (o Options) withDefaults() Options {
	if o.StepsPerUpdate < 1 {
		o.StepsPerUpdate = 1
	}
	return o
}
