package game

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pthm-cable/sprout/config"
	"github.com/pthm-cable/sprout/systems"
)

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// SetupLogging installs a JSON slog logger as the default. With a non-empty
// path, output goes to a rotating log file instead of stdout. The returned
// closer must be closed on exit.
func SetupLogging(cfg config.LoggingConfig, path, level string) (io.Closer, error) {
	if level == "" {
		level = cfg.Level
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var w io.WriteCloser = nopCloser{os.Stdout}
	if path != "" {
		w = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return w, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// LogState logs a one-line summary of the plant and its stocks.
func (g *Game) LogState() {
	canopy := g.canopy.Stats()
	slog.Info("state",
		"tick", g.tick,
		"sim_time", g.simTime,
		"outcome", g.outcome.String(),
		"canopy_segments", canopy.Segments,
		"canopy_complete", canopy.Complete,
		"root_segments", g.roots.NumSegments(),
		"water", g.eco.Stock(systems.Water).Value,
		"minerals", g.eco.Stock(systems.Minerals).Value,
		"energy", g.eco.Stock(systems.Energy).Value,
		"pools_connected", len(g.eco.Connected()),
	)
}
