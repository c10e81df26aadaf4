// Package config loads and validates framepick's TOML configuration.
// A missing config file falls back to Default(); a present but invalid
// file fails loudly before any work starts.
package config
