package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

const (
	defaultAnkiSuffix = ".anki"
	defaultJoinSuffix = ".out"
	defaultLineBreak  = "<br />"
	defaultLogLevel   = "info"
)

const (
	configFolderName  = "ankiconv"
	configFileName    = "config.toml"
	configPathEnvName = "XDG_CONFIG_HOME"
)

type Config struct {
	AnkiSuffix string
	JoinSuffix string
	LineBreak  string
	LogLevel   string
}

func Default() Config {
	return Config{
		AnkiSuffix: defaultAnkiSuffix,
		JoinSuffix: defaultJoinSuffix,
		LineBreak:  defaultLineBreak,
		LogLevel:   defaultLogLevel,
	}
}

func LoadConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	configPath, hasConfig, err := findConfigPath(home)
	if err != nil {
		return Config{}, err
	}
	if hasConfig {
		fileCfg, err := loadFileConfig(configPath)
		if err != nil {
			return Config{}, err
		}
		applyFileConfig(&cfg, fileCfg)
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

type fileConfig struct {
	AnkiSuffix *string `toml:"anki_suffix"`
	JoinSuffix *string `toml:"join_suffix"`
	LineBreak  *string `toml:"line_break"`
	LogLevel   *string `toml:"log_level"`
}

func findConfigPath(home string) (string, bool, error) {
	candidates := make([]string, 0, 2)
	if xdgConfigHome := strings.TrimSpace(os.Getenv(configPathEnvName)); xdgConfigHome != "" {
		candidates = append(candidates, filepath.Join(xdgConfigHome, configFolderName, configFileName))
	}
	candidates = append(candidates, filepath.Join(home, ".config", configFolderName, configFileName))

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", false, fmt.Errorf("config path %q is a directory; expected a file", candidate)
			}
			return candidate, true, nil
		}
		if os.IsNotExist(err) {
			continue
		}
		return "", false, fmt.Errorf("failed to read config path %q: %w", candidate, err)
	}
	return "", false, nil
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		unknown := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			unknown = append(unknown, key.String())
		}
		sort.Strings(unknown)
		return fileConfig{}, fmt.Errorf("invalid config file %q: unknown key(s): %s", path, strings.Join(unknown, ", "))
	}
	if err := validateFileConfig(path, cfg); err != nil {
		return fileConfig{}, err
	}
	return cfg, nil
}

func validateFileConfig(path string, cfg fileConfig) error {
	if cfg.AnkiSuffix != nil && strings.TrimSpace(*cfg.AnkiSuffix) == "" {
		return fmt.Errorf("invalid config file %q: anki_suffix must be non-empty when provided", path)
	}
	if cfg.JoinSuffix != nil && strings.TrimSpace(*cfg.JoinSuffix) == "" {
		return fmt.Errorf("invalid config file %q: join_suffix must be non-empty when provided", path)
	}
	if cfg.LineBreak != nil && *cfg.LineBreak == "" {
		return fmt.Errorf("invalid config file %q: line_break must be non-empty when provided", path)
	}
	if cfg.LogLevel != nil && !validLogLevel(*cfg.LogLevel) {
		return fmt.Errorf("invalid config file %q: log_level must be one of debug, info, warn, error", path)
	}
	return nil
}

func applyFileConfig(cfg *Config, fileCfg fileConfig) {
	if fileCfg.AnkiSuffix != nil {
		cfg.AnkiSuffix = *fileCfg.AnkiSuffix
	}
	if fileCfg.JoinSuffix != nil {
		cfg.JoinSuffix = *fileCfg.JoinSuffix
	}
	if fileCfg.LineBreak != nil {
		cfg.LineBreak = *fileCfg.LineBreak
	}
	if fileCfg.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*fileCfg.LogLevel))
	}
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("ANKICONV_ANKI_SUFFIX"); ok && strings.TrimSpace(v) != "" {
		cfg.AnkiSuffix = v
	}
	if v, ok := os.LookupEnv("ANKICONV_JOIN_SUFFIX"); ok && strings.TrimSpace(v) != "" {
		cfg.JoinSuffix = v
	}
	if v, ok := os.LookupEnv("ANKICONV_LINE_BREAK"); ok && v != "" {
		cfg.LineBreak = v
	}
	if v, ok := os.LookupEnv("ANKICONV_LOG_LEVEL"); ok && validLogLevel(v) {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
}

// Level returns the zerolog level for cfg.LogLevel, falling back to info.
func (c Config) Level() zerolog.Level {
	if validLogLevel(c.LogLevel) {
		lvl, _ := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
		return lvl
	}
	return zerolog.InfoLevel
}

func validLogLevel(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
