package mission

import (
	"testing"
)

func TestSeedCatalog(t *testing.T) {
	tr := NewTracker()
	missions := tr.Missions()
	if len(missions) != 6 {
		t.Fatalf("catalog size = %d, want 6", len(missions))
	}
	for _, m := range missions {
		if m.Completed || m.Progress != 0 {
			t.Errorf("mission %s not at seed state: %+v", m.ID, m)
		}
	}
}

func TestSetProgressDerivesCompletion(t *testing.T) {
	tr := NewTracker()

	tr.SetProgress(CompleteAllAnamnese, 3)
	m, _ := tr.Mission(CompleteAllAnamnese)
	if m.Completed {
		t.Error("3 of 5 steps should not complete")
	}
	if m.Progress != 3 {
		t.Errorf("progress = %v, want 3", m.Progress)
	}

	tr.SetProgress(CompleteAllAnamnese, 5)
	m, _ = tr.Mission(CompleteAllAnamnese)
	if !m.Completed {
		t.Error("reaching totalSteps should complete")
	}
}

func TestFractionalProgress(t *testing.T) {
	tr := NewTracker()
	tr.SetProgress(StartBurnout, 0.5)
	m, _ := tr.Mission(StartBurnout)
	if m.Completed || m.Progress != 0.5 {
		t.Errorf("mission = %+v, want in-progress at 0.5", m)
	}
}

func TestProgressAndCompleteConverge(t *testing.T) {
	byProgress := NewTracker()
	byProgress.SetProgress(CompleteBurnout, 1)

	byComplete := NewTracker()
	byComplete.Complete(CompleteBurnout)

	a, _ := byProgress.Mission(CompleteBurnout)
	b, _ := byComplete.Mission(CompleteBurnout)

	if !a.Completed || !b.Completed {
		t.Fatal("both paths must complete")
	}
	if a.Progress != b.Progress {
		t.Errorf("progress diverged: %v vs %v", a.Progress, b.Progress)
	}
	if len(byProgress.CompletedLog()) != 1 || byProgress.CompletedLog()[0] != CompleteBurnout {
		t.Errorf("progress path log = %v", byProgress.CompletedLog())
	}
	if len(byComplete.CompletedLog()) != 1 || byComplete.CompletedLog()[0] != CompleteBurnout {
		t.Errorf("complete path log = %v", byComplete.CompletedLog())
	}
}

func TestSetProgressDoesNotReappendWhenAlreadyComplete(t *testing.T) {
	tr := NewTracker()
	tr.SetProgress(CompleteBurnout, 1)
	tr.SetProgress(CompleteBurnout, 1)
	if got := len(tr.CompletedLog()); got != 1 {
		t.Errorf("log length = %d, want 1", got)
	}
}

func TestCompleteTwiceAppendsTwice(t *testing.T) {
	// The completed log is an audit trail, duplicates included.
	tr := NewTracker()
	tr.Complete(CompleteBurnout)
	tr.Complete(CompleteBurnout)
	if got := len(tr.CompletedLog()); got != 2 {
		t.Errorf("log length = %d, want 2", got)
	}
}

func TestUnknownIDIsNoop(t *testing.T) {
	tr := NewTracker()
	tr.SetProgress("no-such-mission", 1)
	tr.Complete("no-such-mission")
	if len(tr.CompletedLog()) != 0 || tr.CompletedCount() != 0 {
		t.Error("unknown mission id mutated state")
	}
}

func TestByCategoryPreservesOrder(t *testing.T) {
	tr := NewTracker()
	anamnese := tr.ByCategory(CategoryAnamnese)
	want := []string{StartAnamnese, CompleteAnamnesePh1, CompleteAllAnamnese}
	if len(anamnese) != len(want) {
		t.Fatalf("anamnese missions = %d, want %d", len(anamnese), len(want))
	}
	for i, m := range anamnese {
		if m.ID != want[i] {
			t.Errorf("position %d = %s, want %s", i, m.ID, want[i])
		}
	}
	if got := len(tr.ByCategory(CategoryGeneral)); got != 1 {
		t.Errorf("general missions = %d, want 1", got)
	}
}

func TestActivePointer(t *testing.T) {
	tr := NewTracker()
	if _, ok := tr.Active(); ok {
		t.Error("fresh tracker has an active mission")
	}

	tr.SetActive(StartBurnout)
	m, ok := tr.Active()
	if !ok || m.ID != StartBurnout {
		t.Errorf("active = %+v, %v", m, ok)
	}

	tr.SetActive("")
	if _, ok := tr.Active(); ok {
		t.Error("clearing the pointer failed")
	}
}

func TestResetAll(t *testing.T) {
	tr := NewTracker()
	tr.SetProgress(CompleteAllAnamnese, 5)
	tr.Complete(CompleteBurnout)
	tr.SetActive(StartAnamnese)

	tr.ResetAll()

	if tr.CompletedCount() != 0 {
		t.Error("reset left completed missions")
	}
	if _, ok := tr.Active(); ok {
		t.Error("reset left an active mission")
	}
	if len(tr.CompletedLog()) != 0 {
		t.Error("reset left log entries")
	}
	if len(tr.Missions()) != 6 {
		t.Error("reset changed catalog size")
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	tr := NewTracker()
	tr.SetProgress(CompleteAllAnamnese, 2)
	tr.Complete(CompleteBurnout)
	tr.SetActive(CompleteAllAnamnese)

	data, err := tr.StateJSON()
	if err != nil {
		t.Fatalf("state json: %v", err)
	}

	restored := NewTracker()
	if err := restored.LoadStateJSON(data); err != nil {
		t.Fatalf("load: %v", err)
	}

	m, _ := restored.Mission(CompleteAllAnamnese)
	if m.Progress != 2 || m.Completed {
		t.Errorf("restored anamnese mission = %+v", m)
	}
	b, _ := restored.Mission(CompleteBurnout)
	if !b.Completed {
		t.Error("restored burnout mission lost completion")
	}
	if a, ok := restored.Active(); !ok || a.ID != CompleteAllAnamnese {
		t.Error("restored tracker lost active pointer")
	}
	if log := restored.CompletedLog(); len(log) != 1 || log[0] != CompleteBurnout {
		t.Errorf("restored log = %v", log)
	}
}

func TestOnChangeFires(t *testing.T) {
	tr := NewTracker()
	changes := 0
	tr.OnChange(func() { changes++ })

	tr.SetProgress(StartBurnout, 0.5)
	tr.Complete(CompleteBurnout)
	tr.SetActive("")
	tr.ResetAll()

	if changes != 4 {
		t.Errorf("change notifications = %d, want 4", changes)
	}
}
