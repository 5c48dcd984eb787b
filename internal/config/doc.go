// Package config loads, normalizes, and validates matchframe configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MATCHFRAME_STUDIO_API_KEY. The Config type centralizes every knob the CLI
// and HTTP service need: backend connection settings, batch run defaults,
// notification topics, and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
