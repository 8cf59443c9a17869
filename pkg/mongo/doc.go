// Package mongo provides MongoDB connection management for the submission
// service.
//
// Configuration is entirely environment-driven to simplify deployment across
// development, staging, and production environments. The constructor retries
// the initial connection so that the service survives transient unavailability
// of the database during startup ordering in container environments.
//
// Connection failures are wrapped in package-level sentinel errors so callers
// can inspect them with errors.Is.
package mongo
