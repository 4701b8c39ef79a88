// Package config loads service configuration from YAML files and
// environment variables using viper, with optional .env support via
// godotenv. Precedence: environment variables override file values.
package config
