package config

import (
	"os"
	"path/filepath"

	"github.com/osmet/vitals/internal/apperrors"
	"github.com/spf13/viper"
)

// DirName is the directory under the user's config home holding vitals'
// configuration and theme files.
const DirName = "vitals"

// FileName is the app config file's base name.
const FileName = "vitals.yaml"

// Path returns the path vitals looks for its config file at,
// "$XDG_CONFIG_HOME/vitals/vitals.yaml" (falling back to "~/.config").
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", apperrors.WrapWithCode(err, apperrors.ErrEnvironment,
			"can't locate your config directory", "check $HOME/$XDG_CONFIG_HOME")
	}
	return filepath.Join(base, DirName, FileName), nil
}

// Load reads the app config file at Path(), merging found keys over
// DefaultAppConfig(). A missing file is not an error; it yields defaults.
func Load() (*AppConfig, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads and merges the app config file at the given path.
func LoadFrom(path string) (*AppConfig, error) {
	cfg := DefaultAppConfig()

	if _, statErr := os.Stat(path); statErr != nil {
		if os.IsNotExist(statErr) {
			return cfg, nil
		}
		return nil, apperrors.WrapWithCode(statErr, apperrors.ErrEnvironment,
			"can't access config file "+path, "check file permissions")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.ErrConfiguration,
			"couldn't parse "+path, "check it's valid YAML")
	}

	v.SetDefault("update_ms", cfg.UpdateMS)
	v.SetDefault("sort_key", cfg.SortKey)
	v.SetDefault("reverse", cfg.Reverse)
	v.SetDefault("tree_mode", cfg.TreeMode)
	v.SetDefault("proc_per_core", cfg.ProcPerCore)
	v.SetDefault("theme", cfg.Theme)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.ErrConfiguration,
			"config file has some issues", "check the YAML syntax in "+path)
	}
	if cfg.UpdateMS < 1 {
		cfg.UpdateMS = 1
	}
	return cfg, nil
}

// ThemeSearchPath returns the directory vitals looks in for named theme
// files, "$XDG_CONFIG_HOME/vitals/themes".
func ThemeSearchPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", apperrors.WrapWithCode(err, apperrors.ErrEnvironment,
			"can't locate your config directory", "check $HOME/$XDG_CONFIG_HOME")
	}
	return filepath.Join(base, DirName, "themes"), nil
}
