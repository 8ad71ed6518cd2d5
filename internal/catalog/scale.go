package catalog

import "github.com/luminamente/anima/internal/ledger"

// scaleLabels maps the A-E frequency scale to its display labels.
var scaleLabels = map[string]string{
	"A": "Nunca",
	"B": "Raramente",
	"C": "Às vezes",
	"D": "Frequentemente",
	"E": "Sempre",
}

// ScaleLabel returns the label for an A-E scale option, or "" when the
// option is not part of the scale.
func ScaleLabel(option string) string {
	return scaleLabels[option]
}

// FormatAnswer renders a question's answer for reports: scale answers
// become "D - Frequentemente", free answers pass through, and an unset
// answer becomes "Não respondido".
func FormatAnswer(q ledger.Question) string {
	if q.Answer == nil {
		return "Não respondido"
	}
	if label := ScaleLabel(*q.Answer); label != "" && isScale(q.Options) {
		return *q.Answer + " - " + label
	}
	return *q.Answer
}

// isScale reports whether the option set is exactly the A-E scale.
func isScale(options []string) bool {
	if len(options) != 5 {
		return false
	}
	for i, letter := range []string{"A", "B", "C", "D", "E"} {
		if options[i] != letter {
			return false
		}
	}
	return true
}
