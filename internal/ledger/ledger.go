package ledger

import (
	"encoding/json"
	"fmt"
)

// Ledger holds one instrument's fixed question set and its current
// answers. All mutation goes through the operation set below; readers
// get copies. A ledger is single-goroutine by design (one user, one
// active view), so there is no locking.
type Ledger struct {
	instrument  Instrument
	template    []Question // immutable after construction
	questions   []Question
	completed   bool
	subTriggers []string

	subscribers []func(Event)
	onChange    []func()
}

// New creates a ledger from a question template. The template is
// deep-copied: later mutation of the caller's slice cannot leak in,
// and Reset always restores the original text and options.
func New(instrument Instrument, template []Question) *Ledger {
	return &Ledger{
		instrument:  instrument,
		template:    cloneQuestions(template),
		questions:   cloneQuestions(template),
		subTriggers: append([]string(nil), DefaultSubTriggers...),
	}
}

// Instrument returns the instrument this ledger belongs to.
func (l *Ledger) Instrument() Instrument {
	return l.instrument
}

// Len returns the fixed question count.
func (l *Ledger) Len() int {
	return len(l.questions)
}

// SetSubTriggers overrides the answer subset that reveals sub-questions.
func (l *Ledger) SetSubTriggers(triggers []string) {
	l.subTriggers = append([]string(nil), triggers...)
}

// Subscribe registers a handler for ledger events. Handlers run
// synchronously, in registration order, inside the mutating call.
func (l *Ledger) Subscribe(fn func(Event)) {
	l.subscribers = append(l.subscribers, fn)
}

// OnChange registers a hook invoked after every mutating operation,
// regardless of whether a domain event fired. Used for persistence.
func (l *Ledger) OnChange(fn func()) {
	l.onChange = append(l.onChange, fn)
}

// SetAnswer replaces the answer of the question with the given id.
// Any string is accepted, including the empty string. An unknown id is
// a no-op; no other question is ever affected.
func (l *Ledger) SetAnswer(questionID int, answer string) {
	idx := l.indexOf(questionID)
	if idx < 0 {
		return
	}

	started := l.AnsweredCount() == 0 && !l.completed
	section := l.questions[idx].Section
	sectionWasDone := section != "" && l.sectionAnswered(section)
	wasCompleted := l.Completed()

	v := answer
	l.questions[idx].Answer = &v

	if started {
		l.emit(Event{Instrument: l.instrument, Kind: EventStarted})
	}
	if section != "" && !sectionWasDone && l.sectionAnswered(section) {
		l.emit(Event{
			Instrument: l.instrument,
			Kind:       EventPhaseCompleted,
			Section:    section,
			Phase:      l.sectionIndex(section) + 1,
		})
	}
	if !wasCompleted && l.Completed() {
		l.emit(Event{Instrument: l.instrument, Kind: EventFullyCompleted})
	}
	l.changed()
}

// SetSubAnswer replaces the sub-answer of the question with the given
// id. No-op if the id is unknown or the question has no sub-question.
func (l *Ledger) SetSubAnswer(questionID int, answer string) {
	idx := l.indexOf(questionID)
	if idx < 0 || l.questions[idx].Sub == nil {
		return
	}
	v := answer
	l.questions[idx].Sub.Answer = &v
	l.changed()
}

// AnsweredCount returns how many questions have a non-nil answer.
func (l *Ledger) AnsweredCount() int {
	n := 0
	for _, q := range l.questions {
		if q.Answered() {
			n++
		}
	}
	return n
}

// MarkCompleted sets the explicit completion flag. It performs no
// validation; checking that every question is answered is the caller's
// job, done before invoking this.
func (l *Ledger) MarkCompleted() {
	wasCompleted := l.Completed()
	l.completed = true
	if !wasCompleted {
		l.emit(Event{Instrument: l.instrument, Kind: EventFullyCompleted})
	}
	l.changed()
}

// Completed reports whether the instrument is done: either explicitly
// marked, or every question answered. An explicit mark completes even
// with gaps. Read-only and idempotent.
func (l *Ledger) Completed() bool {
	if l.completed {
		return true
	}
	for _, q := range l.questions {
		if !q.Answered() {
			return false
		}
	}
	return true
}

// MarkedCompleted reports only the explicit flag, without the
// all-answered fallback.
func (l *Ledger) MarkedCompleted() bool {
	return l.completed
}

// Reset restores the ledger to its initial state: every answer and
// sub-answer nil, completion flag cleared. Questions are reloaded from
// the template, so any accidental template drift is also undone.
func (l *Ledger) Reset() {
	l.questions = cloneQuestions(l.template)
	l.completed = false
	l.changed()
}

// Questions returns a deep copy of the current question state, in
// presentation order.
func (l *Ledger) Questions() []Question {
	return cloneQuestions(l.questions)
}

// Question returns a copy of the question with the given id.
func (l *Ledger) Question(questionID int) (Question, bool) {
	idx := l.indexOf(questionID)
	if idx < 0 {
		return Question{}, false
	}
	return l.questions[idx].clone(), true
}

// QuestionAt returns a copy of the question at a presentation index.
func (l *Ledger) QuestionAt(i int) (Question, bool) {
	if i < 0 || i >= len(l.questions) {
		return Question{}, false
	}
	return l.questions[i].clone(), true
}

// SubVisible reports whether the sub-question of the given question id
// should currently be presented.
func (l *Ledger) SubVisible(questionID int) bool {
	idx := l.indexOf(questionID)
	if idx < 0 {
		return false
	}
	return SubVisible(l.questions[idx], l.subTriggers)
}

// Sections returns the distinct section labels in presentation order.
// Questions with no section label contribute nothing.
func (l *Ledger) Sections() []string {
	var out []string
	seen := map[string]bool{}
	for _, q := range l.questions {
		if q.Section == "" || seen[q.Section] {
			continue
		}
		seen[q.Section] = true
		out = append(out, q.Section)
	}
	return out
}

// SectionAnswered reports whether every question under the given
// section label has been answered.
func (l *Ledger) SectionAnswered(section string) bool {
	if l.sectionIndex(section) < 0 {
		return false
	}
	return l.sectionAnswered(section)
}

// SectionProgress returns answered and total counts for a section.
func (l *Ledger) SectionProgress(section string) (answered, total int) {
	for _, q := range l.questions {
		if q.Section != section {
			continue
		}
		total++
		if q.Answered() {
			answered++
		}
	}
	return answered, total
}

// persistedState is the JSON shape stored by the persistence provider.
// Field names are part of the persisted format.
type persistedState struct {
	Questions []Question `json:"questions"`
	Completed bool       `json:"completed"`
}

// StateJSON serializes the mutable ledger state for persistence.
func (l *Ledger) StateJSON() ([]byte, error) {
	b, err := json.Marshal(persistedState{
		Questions: l.questions,
		Completed: l.completed,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal %s state: %w", l.instrument, err)
	}
	return b, nil
}

// LoadStateJSON restores answers and the completion flag from a
// persisted snapshot. Answers are copied by question id onto a fresh
// template, so stale or unknown ids in the snapshot are dropped and
// template text/options always win over persisted copies.
func (l *Ledger) LoadStateJSON(data []byte) error {
	var st persistedState
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("unmarshal %s state: %w", l.instrument, err)
	}

	fresh := cloneQuestions(l.template)
	byID := make(map[int]*Question, len(fresh))
	for i := range fresh {
		byID[fresh[i].ID] = &fresh[i]
	}
	for _, old := range st.Questions {
		q, ok := byID[old.ID]
		if !ok {
			continue
		}
		if old.Answer != nil {
			v := *old.Answer
			q.Answer = &v
		}
		if old.Sub != nil && old.Sub.Answer != nil && q.Sub != nil {
			v := *old.Sub.Answer
			q.Sub.Answer = &v
		}
	}

	l.questions = fresh
	l.completed = st.Completed
	return nil
}

func (l *Ledger) indexOf(questionID int) int {
	for i, q := range l.questions {
		if q.ID == questionID {
			return i
		}
	}
	return -1
}

func (l *Ledger) sectionAnswered(section string) bool {
	for _, q := range l.questions {
		if q.Section == section && !q.Answered() {
			return false
		}
	}
	return true
}

func (l *Ledger) sectionIndex(section string) int {
	for i, s := range l.Sections() {
		if s == section {
			return i
		}
	}
	return -1
}

func (l *Ledger) emit(ev Event) {
	for _, fn := range l.subscribers {
		fn(ev)
	}
}

func (l *Ledger) changed() {
	for _, fn := range l.onChange {
		fn()
	}
}
