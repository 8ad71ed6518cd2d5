package ledger

// Instrument identifies one questionnaire variant.
type Instrument string

const (
	InstrumentQuiz     Instrument = "quiz"
	InstrumentAnamnese Instrument = "anamnese"
	InstrumentBurnout  Instrument = "burnout"
)

// Kind distinguishes how a question is answered.
type Kind string

const (
	// KindChoice constrains the answer conceptually to one of Options.
	// The ledger does not enforce this; the input layer does.
	KindChoice Kind = "choice"
	// KindText is a free-form string answer.
	KindText Kind = "text"
)

// SubQuestion is an optional elaboration prompt attached to a question.
// It becomes relevant only when the parent answer falls in the trigger set.
type SubQuestion struct {
	Text   string  `json:"text"`
	Answer *string `json:"answer"`
}

// Question is one questionnaire item: an immutable template part
// (ID, Section, Text, Kind, Options) plus the mutable answer slots.
// JSON field names follow the submission payload wire format.
type Question struct {
	ID      int          `json:"id"`
	Section string       `json:"section,omitempty"`
	Text    string       `json:"text"`
	Kind    Kind         `json:"type"`
	Options []string     `json:"options,omitempty"`
	Answer  *string      `json:"answer"`
	Sub     *SubQuestion `json:"subQuestion,omitempty"`
}

// Answered reports whether the primary answer has been set.
func (q Question) Answered() bool {
	return q.Answer != nil
}

// clone returns a deep copy of the question.
func (q Question) clone() Question {
	c := q
	if q.Options != nil {
		c.Options = append([]string(nil), q.Options...)
	}
	if q.Answer != nil {
		v := *q.Answer
		c.Answer = &v
	}
	if q.Sub != nil {
		sub := SubQuestion{Text: q.Sub.Text}
		if q.Sub.Answer != nil {
			v := *q.Sub.Answer
			sub.Answer = &v
		}
		c.Sub = &sub
	}
	return c
}

// cloneQuestions deep-copies a question slice.
func cloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.clone()
	}
	return out
}

// DefaultSubTriggers is the canonical answer subset that makes a
// sub-question visible: the top three intensity levels of the A-E scale.
var DefaultSubTriggers = []string{"C", "D", "E"}

// SubVisible reports whether q's sub-question should be presented given
// the trigger set. Pure function of current state; never persisted.
func SubVisible(q Question, triggers []string) bool {
	if q.Sub == nil || q.Answer == nil {
		return false
	}
	for _, t := range triggers {
		if *q.Answer == t {
			return true
		}
	}
	return false
}
