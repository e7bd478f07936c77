// Package config loads kiro-merge configuration.
//
// Values come from command-line flags and KIRO_MERGE_* environment variables,
// resolved through viper. There is no configuration file.
package config
