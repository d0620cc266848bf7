// Package config loads runtime configuration for the jobkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c, -config or --config.
//  3. Environment variables prefixed with JOBKEEPER_.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   data directory for the file backend
//	-s string   storage backend: file, s3, sqlite, postgres
//	-dsn string database DSN for sqlite/postgres
//	-p string   password scheme for new accounts: sha256, argon2id
//	-l string   log level: debug, info, warn, error
//	-t duration storage call timeout
//
// # JSON schema
//
//	{
//	  "data_dir": "data",
//	  "storage": "file",
//	  "s3_bucket": "jobs",
//	  "storage_timeout": "10s"
//	}
//
// Durations accept either strings like "10s" or integer nanoseconds.
package config
