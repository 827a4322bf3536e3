// Package config loads the vitals application configuration file, an
// external collaborator per spec's Non-goals framing: the core never
// depends on viper or yaml types directly, only on this plain struct.
package config

// AppConfig holds the user-tunable defaults for a vitals run.
type AppConfig struct {
	// UpdateMS is the tick interval in milliseconds.
	UpdateMS int `yaml:"update_ms" mapstructure:"update_ms"`

	// SortKey is one of pid, name, command, threads, user, memory, cpu
	// (direct), cpu_lazy.
	SortKey string `yaml:"sort_key" mapstructure:"sort_key"`

	// Reverse reverses the selected sort order.
	Reverse bool `yaml:"reverse" mapstructure:"reverse"`

	// TreeMode starts the process box in tree-projection mode.
	TreeMode bool `yaml:"tree_mode" mapstructure:"tree_mode"`

	// ProcPerCore is loaded from the config file, but nothing in the
	// dashboard reads it: process CPU percent is never divided by core
	// count.
	ProcPerCore bool `yaml:"proc_per_core" mapstructure:"proc_per_core"`

	// Theme is the name of the theme file to load (bare name, resolved
	// under the theme search path) or "default" for the built-in palette.
	Theme string `yaml:"theme" mapstructure:"theme"`
}

// DefaultAppConfig returns the built-in defaults, used whenever no config
// file is present or a key is missing from one that is.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		UpdateMS:    2000,
		SortKey:     "cpu_lazy",
		Reverse:     false,
		TreeMode:    false,
		ProcPerCore: false,
		Theme:       "default",
	}
}
