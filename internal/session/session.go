// Package session assembles the per-user application state: ledgers,
// missions, identity, persistence and delivery plumbing.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/luminamente/anima/internal/analysis"
	"github.com/luminamente/anima/internal/catalog"
	"github.com/luminamente/anima/internal/config"
	"github.com/luminamente/anima/internal/identity"
	"github.com/luminamente/anima/internal/ledger"
	"github.com/luminamente/anima/internal/mission"
	"github.com/luminamente/anima/internal/store"
	"github.com/luminamente/anima/internal/submit"
)

const persistTimeout = 5 * time.Second

// Session is the shared application state threaded through every screen.
// It owns the three answer ledgers, the mission tracker, the identity
// store and the persistence and delivery plumbing.
type Session struct {
	Config config.Config

	Identity *identity.Store
	Quiz     *ledger.Ledger
	Anamnese *ledger.Ledger
	Burnout  *ledger.Ledger
	Missions *mission.Tracker

	States      store.StateRepo
	Submissions store.SubmissionRepo
	Sink        submit.Sink
	Analysis    analysis.Provider
}

// New assembles the application state: catalogs are loaded, the
// mission rules are bound, persisted state is restored and change hooks
// are registered so every mutation is written back.
func New(cfg config.Config, st *store.Store) (*Session, error) {
	quiz, err := catalog.Load(ledger.InstrumentQuiz)
	if err != nil {
		return nil, fmt.Errorf("load quiz catalog: %w", err)
	}
	anamnese, err := catalog.Load(ledger.InstrumentAnamnese)
	if err != nil {
		return nil, fmt.Errorf("load anamnese catalog: %w", err)
	}
	burnout, err := catalog.Load(ledger.InstrumentBurnout)
	if err != nil {
		return nil, fmt.Errorf("load burnout catalog: %w", err)
	}

	s := &Session{
		Config:      cfg,
		Identity:    identity.NewStore(),
		Quiz:        ledger.New(ledger.InstrumentQuiz, quiz),
		Anamnese:    ledger.New(ledger.InstrumentAnamnese, anamnese),
		Burnout:     ledger.New(ledger.InstrumentBurnout, burnout),
		Missions:    mission.NewTracker(),
		States:      st.StateRepo(),
		Submissions: st.SubmissionRepo(),
	}

	s.Sink = submit.WithRetry(submit.NewWebhookSink(cfg.WebhookURL), submit.DefaultRetryConfig())

	if cfg.AnalysisEnabled() {
		provider, err := analysis.NewOpenAIProvider(cfg.Analysis)
		if err != nil {
			return nil, fmt.Errorf("analysis provider: %w", err)
		}
		s.Analysis = provider
	}

	// Restore before binding rules so replayed state doesn't re-fire
	// mission events.
	if err := s.restore(); err != nil {
		return nil, err
	}

	mission.BindLedger(s.Missions, s.Anamnese)
	mission.BindLedger(s.Missions, s.Burnout)

	s.registerPersistence()
	return s, nil
}

// Ledger returns the ledger for an instrument.
func (s *Session) Ledger(inst ledger.Instrument) *ledger.Ledger {
	switch inst {
	case ledger.InstrumentQuiz:
		return s.Quiz
	case ledger.InstrumentAnamnese:
		return s.Anamnese
	case ledger.InstrumentBurnout:
		return s.Burnout
	}
	return nil
}

// restore loads each persisted document. Missing documents leave the
// fresh defaults in place; corrupt ones are reported.
func (s *Session) restore() error {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	loads := []struct {
		key  string
		into func([]byte) error
	}{
		{store.KeyAuth, s.Identity.LoadStateJSON},
		{store.KeyQuiz, s.Quiz.LoadStateJSON},
		{store.KeyAnamnese, s.Anamnese.LoadStateJSON},
		{store.KeyBurnout, s.Burnout.LoadStateJSON},
		{store.KeyMissions, s.Missions.LoadStateJSON},
	}

	for _, l := range loads {
		data, err := s.States.Load(ctx, l.key)
		if err != nil {
			return fmt.Errorf("restore %s: %w", l.key, err)
		}
		if data == nil {
			continue
		}
		if err := l.into(data); err != nil {
			return fmt.Errorf("restore %s: %w", l.key, err)
		}
	}
	return nil
}

// registerPersistence wires OnChange hooks that write each store back
// on every mutation. Persistence failures are swallowed: losing a save
// must never break the questionnaire flow.
func (s *Session) registerPersistence() {
	s.Identity.OnChange(func() { s.persist(store.KeyAuth, s.Identity.StateJSON) })
	s.Quiz.OnChange(func() { s.persist(store.KeyQuiz, s.Quiz.StateJSON) })
	s.Anamnese.OnChange(func() { s.persist(store.KeyAnamnese, s.Anamnese.StateJSON) })
	s.Burnout.OnChange(func() { s.persist(store.KeyBurnout, s.Burnout.StateJSON) })
	s.Missions.OnChange(func() { s.persist(store.KeyMissions, s.Missions.StateJSON) })
}

func (s *Session) persist(key string, dump func() ([]byte, error)) {
	data, err := dump()
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	_ = s.States.Save(ctx, key, data)
}

// Submit delivers a completed instrument to the webhook and records the
// attempt in the audit log. The outcome never feeds back into
// completion state.
func (s *Session) Submit(ctx context.Context, inst ledger.Instrument) error {
	l := s.Ledger(inst)
	if l == nil {
		return fmt.Errorf("unknown instrument %q", inst)
	}
	if !s.Config.SubmitEnabled() {
		return submit.ErrNoEndpoint
	}

	user, _ := s.Identity.User()
	payload := submit.NewPayload(user, l)

	err := s.Sink.Submit(ctx, payload)

	rec := store.SubmissionRecord{
		Instrument: string(inst),
		Endpoint:   s.Config.WebhookURL,
		OK:         err == nil,
	}
	if err != nil {
		rec.Error = err.Error()
	}

	auditCtx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	_ = s.Submissions.Append(auditCtx, rec)

	return err
}

// ResetInstruments clears all three ledgers and the mission tracker.
func (s *Session) ResetInstruments() {
	s.Quiz.Reset()
	s.Anamnese.Reset()
	s.Burnout.Reset()
	s.Missions.ResetAll()
}
