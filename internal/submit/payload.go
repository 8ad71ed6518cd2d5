// Package submit delivers completed questionnaires to an external
// webhook. Delivery is fire-and-forget: outcomes are logged but never
// influence completion state.
package submit

import (
	"time"

	"github.com/luminamente/anima/internal/identity"
	"github.com/luminamente/anima/internal/ledger"
)

// Payload is the wire format posted to the webhook on completion.
type Payload struct {
	User        identity.User     `json:"user"`
	TestType    ledger.Instrument `json:"testType"`
	Questions   []ledger.Question `json:"questions"`
	CompletedAt string            `json:"completedAt"`
}

// Result reports the outcome of one delivery attempt back to whoever
// dispatched it.
type Result struct {
	Instrument ledger.Instrument
	Err        error
}

// NewPayload builds the submission payload for a completed ledger,
// stamped with the current time.
func NewPayload(user identity.User, l *ledger.Ledger) Payload {
	return Payload{
		User:        user,
		TestType:    l.Instrument(),
		Questions:   l.Questions(),
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
