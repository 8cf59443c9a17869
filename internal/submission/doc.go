// Package submission implements the submission lifecycle pipeline:
// accept, persist, background render-and-deliver, status reconciliation.
//
// Accept stamps the meta sub-record (received_at, status=received), persists
// the payload through the injected Store, and schedules the deliver phase on
// the background queue without blocking the response path. Deliver resolves
// the recipient, renders the notification, sends it through the email
// channel, and writes the terminal status back by document id.
//
// The status state machine is forward-only: received moves to exactly one of
// email_sent, email_failed, or no_recipient, and terminal states never change
// again. All failures inside the background phase are contained and converted
// into persisted status; only accept-phase failures are caller-visible.
package submission
