// Package logger provides a small factory around Go's slog package with
// functional options for configuration.
//
// The package standardises structured logging across the service by exposing
// a single factory, New, that creates a *slog.Logger configured by a set of
// Option functions:
//
//   - WithFormat selects text or json output
//   - WithLevel sets the minimum log level
//   - WithOutput redirects the log destination (stdout by default)
//   - WithAttr attaches static attributes applied to every record
//
// NewFromConfig builds a logger from an environment-driven Config, letting
// deployments switch level and format without code changes:
//
//	cfg := config.MustLoad[logger.Config]()
//	log := logger.NewFromConfig(cfg)
//	logger.SetAsDefault(log)
package logger
