// Package email provides a provider-agnostic outbound email channel.
//
// The pipeline consumes a single Sender interface; the concrete transport is
// selected at startup from configuration. Three providers are available:
//
//   - postmark: transactional API, for production
//   - smtp: direct SMTP via gomail, for environments without an API provider
//   - dev: writes the rendered email and its metadata to local files
//
// All send failures are wrapped with ErrFailedToSendEmail so callers can
// classify them with errors.Is without knowing which provider is active.
package email
