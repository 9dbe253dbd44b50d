// Package file provides TOML-backed configuration for the Shelf CLI.
// Configuration lives in ~/.shelf/config.toml; the SHELF_API_KEY
// environment variable overrides the stored key so CI and shared
// machines never need the key on disk.
package file
