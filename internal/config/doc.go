// Package config provides environment-based configuration for consoled.
//
// Configuration is loaded from environment variables via envconfig struct
// tags, with sane defaults for local development. Invalid environments fall
// back to Default() through LoadOrDefault.
package config
