package store

import (
	"context"
	"encoding/json"
	"time"
)

// Storage keys, one fixed key per in-memory store.
const (
	KeyQuiz     = "quiz-storage"
	KeyAnamnese = "anamnese-storage"
	KeyBurnout  = "burnout-storage"
	KeyMissions = "mission-storage"
	KeyAuth     = "auth-storage"
)

// StateRepo is the opaque key-value persistence provider. Each store
// saves its entire state as one JSON document under a fixed key.
// Last-write-wins, synchronous.
type StateRepo interface {
	// Load returns the persisted document for key, or nil if none exists.
	Load(ctx context.Context, key string) (json.RawMessage, error)

	// Save stores the document for key, replacing any previous value.
	Save(ctx context.Context, key string, value json.RawMessage) error

	// Delete removes the document for key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}

// SubmissionRecord is one entry in the submission audit log.
type SubmissionRecord struct {
	ID         int64
	Instrument string
	Endpoint   string
	OK         bool
	Error      string
	CreatedAt  time.Time
}

// SubmissionRepo records webhook submission attempts. The log is
// informational only: submission outcomes never feed back into
// completion state.
type SubmissionRepo interface {
	// Append records one submission attempt.
	Append(ctx context.Context, rec SubmissionRecord) error

	// Recent returns the newest records, most recent first.
	Recent(ctx context.Context, limit int) ([]SubmissionRecord, error)
}
