// Package config loads and validates application configuration from
// environment variables (RECITE_ prefix) and an optional YAML config file.
package config
