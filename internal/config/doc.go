// Package config provides environment-based configuration for the absa CLI.
//
// Loads from .env file (godotenv), maps to Config struct via go-simpler/env struct tags.
// Validates the strategy key, windows and thresholds before the engine sees them.
package config
