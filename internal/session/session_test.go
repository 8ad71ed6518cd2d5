package session

import (
	"context"
	"errors"
	"testing"

	"github.com/luminamente/anima/internal/config"
	"github.com/luminamente/anima/internal/ledger"
	"github.com/luminamente/anima/internal/mission"
	"github.com/luminamente/anima/internal/store"
	"github.com/luminamente/anima/internal/submit"
)

func newTestSession(t *testing.T) (*Session, *store.Store) {
	t.Helper()
	st, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	s, err := New(config.Default(), st)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s, st
}

func TestNewStateLoadsCatalogs(t *testing.T) {
	s, _ := newTestSession(t)

	if s.Quiz.Len() != 20 {
		t.Errorf("quiz len = %d, want 20", s.Quiz.Len())
	}
	if s.Anamnese.Len() != 14 {
		t.Errorf("anamnese len = %d, want 14", s.Anamnese.Len())
	}
	if s.Burnout.Len() != 15 {
		t.Errorf("burnout len = %d, want 15", s.Burnout.Len())
	}
	if len(s.Missions.Missions()) != 6 {
		t.Errorf("missions = %d, want 6", len(s.Missions.Missions()))
	}
	if s.Analysis != nil {
		t.Error("analysis provider should be nil without an API key")
	}
}

func TestMissionRulesAreBound(t *testing.T) {
	s, _ := newTestSession(t)

	q, _ := s.Burnout.QuestionAt(0)
	s.Burnout.SetAnswer(q.ID, "C")

	m, ok := s.Missions.Mission(mission.StartBurnout)
	if !ok {
		t.Fatal("start-burnout mission missing")
	}
	if !m.Completed {
		t.Error("answering the first burnout question should complete the start mission")
	}
}

func TestStatePersistsAcrossRestarts(t *testing.T) {
	st, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	s1, err := New(config.Default(), st)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if _, err := s1.Identity.Register("Ana", "ana@example.com", "feminino"); err != nil {
		t.Fatalf("register: %v", err)
	}
	q, _ := s1.Quiz.QuestionAt(0)
	s1.Quiz.SetAnswer(q.ID, "Resposta persistida")
	s1.Burnout.SetAnswer(1, "D")

	// Same database, fresh state: everything should come back.
	s2, err := New(config.Default(), st)
	if err != nil {
		t.Fatalf("reopen session: %v", err)
	}

	if !s2.Identity.Authenticated() {
		t.Error("identity not restored")
	}
	restored, _ := s2.Quiz.Question(q.ID)
	if restored.Answer == nil || *restored.Answer != "Resposta persistida" {
		t.Error("quiz answer not restored")
	}
	m, _ := s2.Missions.Mission(mission.StartBurnout)
	if !m.Completed {
		t.Error("mission progress not restored")
	}
}

func TestRestoreDoesNotReplayMissionEvents(t *testing.T) {
	st, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	s1, err := New(config.Default(), st)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	for _, q := range s1.Burnout.Questions() {
		s1.Burnout.SetAnswer(q.ID, "B")
	}

	logLen := len(s1.Missions.CompletedLog())

	s2, err := New(config.Default(), st)
	if err != nil {
		t.Fatalf("reopen session: %v", err)
	}
	if got := len(s2.Missions.CompletedLog()); got != logLen {
		t.Errorf("completed log grew from %d to %d on restore", logLen, got)
	}
}

func TestSubmitRecordsAudit(t *testing.T) {
	st, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := config.Default()
	cfg.WebhookURL = "https://hooks.example.com/intake"
	s, err := New(cfg, st)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	mock := submit.NewMockSink()
	s.Sink = mock

	if err := s.Submit(context.Background(), ledger.InstrumentBurnout); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("sink calls = %d, want 1", mock.CallCount())
	}

	recent, err := st.SubmissionRepo().Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 || !recent[0].OK || recent[0].Instrument != "burnout" {
		t.Errorf("audit = %+v, want one ok burnout record", recent)
	}
}

func TestSubmitWithoutEndpoint(t *testing.T) {
	s, st := newTestSession(t)

	err := s.Submit(context.Background(), ledger.InstrumentBurnout)
	if !errors.Is(err, submit.ErrNoEndpoint) {
		t.Fatalf("err = %v, want ErrNoEndpoint", err)
	}

	recent, _ := st.SubmissionRepo().Recent(context.Background(), 5)
	if len(recent) != 0 {
		t.Error("disabled submission should not be audited")
	}
}

func TestResetInstruments(t *testing.T) {
	s, _ := newTestSession(t)

	s.Quiz.SetAnswer(1, "x")
	s.Burnout.SetAnswer(1, "E")
	s.ResetInstruments()

	if s.Quiz.AnsweredCount() != 0 || s.Burnout.AnsweredCount() != 0 {
		t.Error("ledgers not cleared")
	}
	if s.Missions.CompletedCount() != 0 {
		t.Error("missions not cleared")
	}
}
