package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable kiro-merge reads.
const EnvPrefix = "KIRO_MERGE"

// Configuration keys, read from EnvPrefix + "_" + upper-cased key.
const (
	KeyLogFile       = "log_file"
	KeyLogMaxSize    = "log_max_size"
	KeyLogMaxBackups = "log_max_backups"
	KeyLogMaxAge     = "log_max_age"
	KeyDebug         = "debug"
	KeyTmpDir        = "tmp_dir"
	KeyGitBinary     = "git_binary"
)

// Rotation defaults for the optional log file
const (
	DefaultLogMaxSize    = 1 // megabytes
	DefaultLogMaxBackups = 2
	DefaultLogMaxAge     = 30 // days
)

// Config holds the settings for one kiro-merge invocation
type Config struct {
	// LogFile enables file logging when non-empty. Nothing is written to disk otherwise.
	LogFile       string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int

	Debug   bool
	NoColor bool

	// TmpDir is the parent of the three-way merge workspace; empty means os.TempDir().
	TmpDir    string
	GitBinary string
}

// Load resolves configuration from KIRO_MERGE_* environment variables.
// DEBUG and NO_COLOR are honoured as well.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogMaxSize, DefaultLogMaxSize)
	v.SetDefault(KeyLogMaxBackups, DefaultLogMaxBackups)
	v.SetDefault(KeyLogMaxAge, DefaultLogMaxAge)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyTmpDir, "")
	v.SetDefault(KeyGitBinary, "git")

	cfg := &Config{
		LogFile:       v.GetString(KeyLogFile),
		LogMaxSize:    positiveOr(v.GetInt(KeyLogMaxSize), DefaultLogMaxSize),
		LogMaxBackups: v.GetInt(KeyLogMaxBackups),
		LogMaxAge:     positiveOr(v.GetInt(KeyLogMaxAge), DefaultLogMaxAge),
		Debug:         v.GetBool(KeyDebug) || os.Getenv("DEBUG") != "",
		TmpDir:        v.GetString(KeyTmpDir),
		GitBinary:     v.GetString(KeyGitBinary),
	}
	if cfg.LogMaxBackups < 0 {
		cfg.LogMaxBackups = DefaultLogMaxBackups
	}
	if cfg.GitBinary == "" {
		cfg.GitBinary = "git"
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.NoColor = true
	}

	return cfg, nil
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
