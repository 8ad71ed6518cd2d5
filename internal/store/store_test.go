package store

import (
	"context"
	"encoding/json"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestStateSaveLoadDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	// Missing key loads as nil, not an error.
	got, err := repo.Load(ctx, KeyQuiz)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if got != nil {
		t.Fatal("expected nil document for missing key")
	}

	doc := json.RawMessage(`{"questions":[],"completed":true}`)
	if err := repo.Save(ctx, KeyQuiz, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = repo.Load(ctx, KeyQuiz)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != string(doc) {
		t.Errorf("loaded = %s, want %s", got, doc)
	}

	if err := repo.Delete(ctx, KeyQuiz); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ = repo.Load(ctx, KeyQuiz)
	if got != nil {
		t.Error("document survived delete")
	}

	// Deleting a missing key is fine.
	if err := repo.Delete(ctx, KeyQuiz); err != nil {
		t.Errorf("delete missing key: %v", err)
	}
}

func TestStateLastWriteWins(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, KeyMissions, json.RawMessage(`{"v":1}`)); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, KeyMissions, json.RawMessage(`{"v":2}`)); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Load(ctx, KeyMissions)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"v":2}` {
		t.Errorf("loaded = %s, want second write", got)
	}
}

func TestStateKeysAreIndependent(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, KeyQuiz, json.RawMessage(`{"k":"quiz"}`)); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, KeyBurnout, json.RawMessage(`{"k":"burnout"}`)); err != nil {
		t.Fatal(err)
	}

	quiz, _ := repo.Load(ctx, KeyQuiz)
	burnout, _ := repo.Load(ctx, KeyBurnout)
	if string(quiz) == string(burnout) {
		t.Error("keys bled into each other")
	}
}

func TestSubmissionsAppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.SubmissionRepo()
	ctx := context.Background()

	recs := []SubmissionRecord{
		{Instrument: "burnout", Endpoint: "hooks.example.com", OK: true},
		{Instrument: "anamnese", Endpoint: "hooks.example.com", OK: false, Error: "status 502"},
	}
	for _, rec := range recs {
		if err := repo.Append(ctx, rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("recent count = %d, want 2", len(got))
	}
	// Newest first.
	if got[0].Instrument != "anamnese" || got[0].OK {
		t.Errorf("newest = %+v, want failed anamnese attempt", got[0])
	}
	if got[1].Instrument != "burnout" || !got[1].OK {
		t.Errorf("oldest = %+v, want ok burnout attempt", got[1])
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("append did not stamp created_at")
	}
}
