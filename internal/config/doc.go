// Package config provides configuration loading, merging, and validation
// for lowboy applications.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win over later non-zero fields):
//  1. Environment variables (LOWBOY_ prefix)
//  2. Command-line flags
//  3. YAML config file (--config, or the default XDG path when present)
//  4. Built-in defaults
//
// The main entry point is [Load]. [Template] and [Init] back the
// config-template and config-init commands.
package config
