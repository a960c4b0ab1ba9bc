// Package config provides startup settings for the tile merge game server.
//
// Settings are layered, lowest precedence first:
//   - Built-in defaults (Default)
//   - An optional YAML file (Load)
//   - Environment variables, including any loaded from .env (LoadDotEnv)
//   - Command-line flags
//
// The last two layers are applied by the command in package main, which
// binds each flag to its environment variable.
//
// Usage:
//
//	if _, err := config.LoadDotEnv(); err != nil {
//		return err
//	}
//	settings, err := config.Load("tilemerge.yaml")
//	if err != nil {
//		return err
//	}
//	if err := settings.Validate(); err != nil {
//		return err
//	}
//
// Validation rejects an empty host, ports outside 1-65535, unknown log
// levels, negative durations and an ngrok tunnel without an auth token.
package config
