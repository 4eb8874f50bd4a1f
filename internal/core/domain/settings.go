package domain

import (
	"runtime"
	"time"
)

// Settings are tool-level options that are not part of a project.
type Settings struct {
	// Parallelism bounds the number of export pipelines running at once.
	Parallelism int `mapstructure:"parallelism"`
	// Debounce is the quiet period before a watch round starts.
	Debounce time.Duration `mapstructure:"debounce"`
	Log      LogSettings   `mapstructure:"log"`
}

// LogSettings configure logging output.
type LogSettings struct {
	JSON bool `mapstructure:"json"`
	// DebugFile is the rotating debug log. Empty disables it.
	DebugFile string `mapstructure:"debug_file"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Parallelism: runtime.NumCPU(),
		Debounce:    100 * time.Millisecond,
		Log: LogSettings{
			DebugFile: DefaultDebugLogPath(),
		},
	}
}
