package catalog

import (
	"testing"

	"github.com/luminamente/anima/internal/ledger"
)

func TestLoadAllInstruments(t *testing.T) {
	tests := []struct {
		instrument ledger.Instrument
		wantLen    int
	}{
		{ledger.InstrumentQuiz, 20},
		{ledger.InstrumentAnamnese, 14},
		{ledger.InstrumentBurnout, 15},
	}

	for _, tt := range tests {
		qs, err := Load(tt.instrument)
		if err != nil {
			t.Fatalf("load %s: %v", tt.instrument, err)
		}
		if len(qs) != tt.wantLen {
			t.Errorf("%s question count = %d, want %d", tt.instrument, len(qs), tt.wantLen)
		}
		for _, q := range qs {
			if q.Answer != nil {
				t.Errorf("%s question %d has a pre-set answer", tt.instrument, q.ID)
			}
		}
	}
}

func TestLoadUnknownInstrument(t *testing.T) {
	if _, err := Load("tarot"); err == nil {
		t.Fatal("expected error for unknown instrument")
	}
}

func TestBurnoutSubQuestions(t *testing.T) {
	qs := MustLoad(ledger.InstrumentBurnout)

	wantSub := map[int]bool{2: true, 5: true, 13: true}
	for _, q := range qs {
		if wantSub[q.ID] && q.Sub == nil {
			t.Errorf("question %d missing sub-question", q.ID)
		}
		if !wantSub[q.ID] && q.Sub != nil {
			t.Errorf("question %d has unexpected sub-question", q.ID)
		}
	}
}

func TestAnamneseHasFivePhases(t *testing.T) {
	l := NewLedger(ledger.InstrumentAnamnese)
	if got := len(l.Sections()); got != 5 {
		t.Errorf("anamnese sections = %d, want 5", got)
	}
}

func TestQuizOptionsAreFreeLabels(t *testing.T) {
	qs := MustLoad(ledger.InstrumentQuiz)
	for _, q := range qs {
		if q.Kind != ledger.KindChoice {
			t.Errorf("quiz question %d kind = %s, want choice", q.ID, q.Kind)
		}
		if len(q.Options) < 2 {
			t.Errorf("quiz question %d has %d options", q.ID, len(q.Options))
		}
	}
}

func TestScaleLabel(t *testing.T) {
	tests := []struct {
		option string
		want   string
	}{
		{"A", "Nunca"},
		{"C", "Às vezes"},
		{"E", "Sempre"},
		{"X", ""},
	}
	for _, tt := range tests {
		if got := ScaleLabel(tt.option); got != tt.want {
			t.Errorf("ScaleLabel(%q) = %q, want %q", tt.option, got, tt.want)
		}
	}
}

func TestFormatAnswer(t *testing.T) {
	scale := []string{"A", "B", "C", "D", "E"}
	d := "D"
	free := "Música ambiente suave"

	tests := []struct {
		name string
		q    ledger.Question
		want string
	}{
		{"unanswered", ledger.Question{Options: scale}, "Não respondido"},
		{"scale", ledger.Question{Options: scale, Answer: &d}, "D - Frequentemente"},
		{"free label", ledger.Question{Options: []string{free, "x"}, Answer: &free}, free},
	}
	for _, tt := range tests {
		if got := FormatAnswer(tt.q); got != tt.want {
			t.Errorf("%s: FormatAnswer = %q, want %q", tt.name, got, tt.want)
		}
	}
}
