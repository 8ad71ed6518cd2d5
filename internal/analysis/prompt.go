package analysis

import (
	"fmt"
	"strings"

	"github.com/luminamente/anima/internal/catalog"
	"github.com/luminamente/anima/internal/identity"
	"github.com/luminamente/anima/internal/ledger"
)

// SystemPrompt frames the model as an occupational health specialist.
const SystemPrompt = "Você é um psicólogo especializado em saúde ocupacional e burnout profissional. Forneça análises respeitosas, éticas e úteis com base nas respostas do questionário."

// BuildPrompt renders the user prompt for the burnout analysis from the
// respondent's identity and their answered ledger.
func BuildPrompt(user identity.User, l *ledger.Ledger) string {
	var b strings.Builder

	b.WriteString("Analise as respostas deste questionário de burnout profissional e forneça insights sobre o nível de esgotamento profissional do respondente.\n")
	fmt.Fprintf(&b, "Nome: %s\n", orUnknown(user.Name))
	fmt.Fprintf(&b, "Email: %s\n", orUnknown(user.Email))
	fmt.Fprintf(&b, "Gênero: %s\n", orUnknown(user.Gender))
	b.WriteString("\nRESPOSTAS:\n")
	b.WriteString(formatAnswers(l))
	b.WriteString("\n\n")
	b.WriteString("Por favor, forneça uma análise concisa e respeitosa (em português) sobre o nível de burnout desta pessoa com base nas respostas.\n")
	b.WriteString("Indique o nível geral de burnout (baixo, moderado, alto ou severo) e considere os seguintes aspectos:\n")
	b.WriteString("1. Exaustão emocional\n")
	b.WriteString("2. Despersonalização/cinismo\n")
	b.WriteString("3. Realização profissional\n")
	b.WriteString("4. Sintomas físicos\n")
	b.WriteString("5. Estratégias de enfrentamento\n")
	b.WriteString("6. Recomendações específicas para a pessoa\n")

	return b.String()
}

// formatAnswers renders each question with the scale answer expanded to
// its label. Sub-answers appear only when the trigger made them visible.
func formatAnswers(l *ledger.Ledger) string {
	var parts []string
	for _, q := range l.Questions() {
		answer := "Não respondido"
		if q.Answer != nil {
			if label := catalog.ScaleLabel(*q.Answer); label != "" {
				answer = label
			} else {
				answer = *q.Answer
			}
		}

		entry := fmt.Sprintf("Pergunta: %s\nResposta: %s", q.Text, answer)

		if q.Sub != nil && q.Sub.Answer != nil && ledger.SubVisible(q, ledger.DefaultSubTriggers) {
			entry += fmt.Sprintf("\nSub-pergunta: %s\nResposta: %s", q.Sub.Text, *q.Sub.Answer)
		}

		parts = append(parts, entry)
	}
	return strings.Join(parts, "\n\n")
}

func orUnknown(s string) string {
	if s == "" {
		return "Não informado"
	}
	return s
}
