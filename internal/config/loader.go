package config

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	// ProjectConfigFile is looked up in the working directory
	ProjectConfigFile = "sheettracker.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/sheettracker"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"

	EnvDataDir   = "SHEETTRACKER_DATA_DIR"
	EnvServerURL = "SHEETTRACKER_SERVER_URL"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *zap.Logger
	getenv func(string) string
	home   func() (string, error)
	wd     func() (string, error)
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger, getenv: os.Getenv, home: os.UserHomeDir, wd: os.Getwd}
}

// Load applies, lowest first: defaults, user config, project config (or
// explicit, when non-empty), environment. The result is validated.
func (l *Loader) Load(explicit string) (*Config, error) {
	cfg := DefaultConfig()

	if explicit != "" {
		fileCfg, err := LoadFromFile(explicit)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("loaded config", zap.String("path", explicit))
		cfg.Merge(fileCfg)
	} else {
		for _, path := range l.candidates() {
			fileCfg, err := LoadFromFile(path)
			if err != nil {
				if !os.IsNotExist(err) {
					l.logger.Warn("failed to load config", zap.String("path", path), zap.Error(err))
				}
				continue
			}
			l.logger.Debug("loaded config", zap.String("path", path))
			cfg.Merge(fileCfg)
		}
	}

	if v := l.getenv(EnvDataDir); v != "" {
		cfg.Storage.Dir = v
	}
	if v := l.getenv(EnvServerURL); v != "" {
		cfg.Server.URL = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) candidates() []string {
	var out []string
	if home, err := l.home(); err == nil {
		out = append(out, filepath.Join(home, UserConfigDir, UserConfigFile))
	}
	if wd, err := l.wd(); err == nil {
		out = append(out, filepath.Join(wd, ProjectConfigFile))
	}
	return out
}
