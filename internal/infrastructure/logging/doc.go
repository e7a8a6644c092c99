// Package logging provides structured logging for Slotboard.
//
// It wraps the standard library's log/slog with service defaults: every
// record carries the service name and build version, the level and output
// format come from config.yaml, and component loggers are derived with
// With("component", name).
//
// Usage:
//
//	log := logging.New(cfg.Logging, version)
//	log.Info("dashboard rendered", "views", 3, "duration_ms", 12)
package logging
