package mission

import (
	"github.com/luminamente/anima/internal/ledger"
)

// BindLedger subscribes the tracker to a ledger's events, keeping all
// mission bookkeeping in one coordination point. The ledger stays
// unaware of gamification.
//
// The rules mirror the product flow: starting an instrument completes
// its "start" mission, each anamnese phase advances the journey
// missions, and finishing anamnese or burnout advances the all-tests
// mission by one step each.
func BindLedger(t *Tracker, l *ledger.Ledger) {
	switch l.Instrument() {
	case ledger.InstrumentQuiz, ledger.InstrumentAnamnese:
		l.Subscribe(func(ev ledger.Event) { t.applyAnamnese(ev, l) })
	case ledger.InstrumentBurnout:
		l.Subscribe(func(ev ledger.Event) { t.applyBurnout(ev) })
	}
}

func (t *Tracker) applyAnamnese(ev ledger.Event, l *ledger.Ledger) {
	switch ev.Kind {
	case ledger.EventStarted:
		t.SetProgress(StartAnamnese, 1)
	case ledger.EventPhaseCompleted:
		if ev.Phase == 1 {
			t.SetProgress(CompleteAnamnesePh1, 1)
		}
		// Phases can be finished in any order; progress is the count of
		// sections done, not the index of the one that just closed.
		done := 0
		for _, s := range l.Sections() {
			if l.SectionAnswered(s) {
				done++
			}
		}
		t.SetProgress(CompleteAllAnamnese, float64(done))
	case ledger.EventFullyCompleted:
		t.completeOnce(CompleteAllAnamnese)
		t.AddProgress(CompleteAllTests, 1)
	}
}

func (t *Tracker) applyBurnout(ev ledger.Event) {
	switch ev.Kind {
	case ledger.EventStarted:
		t.SetProgress(StartBurnout, 1)
	case ledger.EventFullyCompleted:
		t.completeOnce(CompleteBurnout)
		t.AddProgress(CompleteAllTests, 1)
	}
}

// completeOnce completes a mission unless it already is, keeping the
// audit log free of event-driven duplicates. Direct Complete calls
// still append unconditionally.
func (t *Tracker) completeOnce(id string) {
	if m, ok := t.Mission(id); ok && m.Completed {
		return
	}
	t.Complete(id)
}
