package submission

import (
	"encoding/json"
	"time"
)

// MetaKey is the reserved payload key carrying lifecycle metadata. The
// leading underscore marks it internal: renderers skip underscore-prefixed
// keys at every nesting level.
const MetaKey = "_meta"

// Status tracks a submission through its delivery lifecycle.
type Status string

const (
	// StatusReceived is the initial state, set at acceptance.
	StatusReceived Status = "received"
	// StatusEmailSent is terminal: the notification was delivered.
	StatusEmailSent Status = "email_sent"
	// StatusEmailFailed is terminal: rendering or delivery failed.
	// It carries the failure description in Meta.Error.
	StatusEmailFailed Status = "email_failed"
	// StatusNoRecipient is terminal: no recipient could be resolved,
	// so no send was attempted.
	StatusNoRecipient Status = "no_recipient"
)

// transitions defines the forward-only state machine. Terminal states have no
// outgoing edges; no retries happen inside this subsystem.
var transitions = map[Status][]Status{
	StatusReceived: {StatusEmailSent, StatusEmailFailed, StatusNoRecipient},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusEmailSent, StatusEmailFailed, StatusNoRecipient:
		return true
	}
	return false
}

// Terminal reports whether s has no outgoing transitions.
func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Rewriting the current status is allowed so that status updates stay
// idempotent.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Meta is the lifecycle sub-record attached to every stored submission.
// ReceivedAt is set exactly once at acceptance and never changes; Error is
// present only when Status is a failure state.
type Meta struct {
	ReceivedAt string `bson:"received_at" json:"received_at"`
	Status     Status `bson:"status" json:"status"`
	Error      string `bson:"error,omitempty" json:"error,omitempty"`
}

// NewMeta stamps a fresh meta record at the given accept time.
func NewMeta(now time.Time) Meta {
	return Meta{
		ReceivedAt: now.UTC().Format(time.RFC3339Nano),
		Status:     StatusReceived,
	}
}

// Submission is one accepted JSON document plus its lifecycle metadata.
// ID is assigned by the store at insert time and is the sole correlation key
// between the synchronous accept phase and the asynchronous deliver phase.
type Submission struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
	Meta    Meta            `json:"meta"`
}
