// Package config provides application configuration loaded from
// environment variables and an optional YAML file, plus the centralized
// filesystem layout used by every other package.
package config
