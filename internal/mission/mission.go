package mission

// Category groups missions by the instrument they track.
type Category string

const (
	CategoryAnamnese Category = "anamnese"
	CategoryBurnout  Category = "burnout"
	CategoryGeneral  Category = "general"
)

// Mission ids, stable keys referenced by the event rules.
const (
	StartAnamnese       = "start-anamnese"
	CompleteAnamnesePh1 = "complete-anamnese-phase1"
	CompleteAllAnamnese = "complete-all-anamnese"
	StartBurnout        = "start-burnout"
	CompleteBurnout     = "complete-burnout"
	CompleteAllTests    = "complete-all-tests"
)

// Mission is one gamification milestone. Completed is derived:
// Progress >= TotalSteps. JSON field names follow the persisted format.
type Mission struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Reward      string   `json:"reward"`
	Icon        string   `json:"icon,omitempty"`
	Category    Category `json:"category"`
	Completed   bool     `json:"completed"`
	Progress    float64  `json:"progress"`
	TotalSteps  int      `json:"totalSteps"`
}

// Seed returns the fixed mission catalog in display order. The tracker
// never adds missions at runtime.
func Seed() []Mission {
	return []Mission{
		{
			ID:          StartAnamnese,
			Title:       "Iniciar sua jornada",
			Description: "Complete a fase 1 da anamnese psicológica",
			Reward:      "Desbloqueia as próximas fases",
			Icon:        "rocket",
			Category:    CategoryAnamnese,
			TotalSteps:  1,
		},
		{
			ID:          CompleteAnamnesePh1,
			Title:       "Autoconhecimento Inicial",
			Description: "Complete todas as questões da fase 1",
			Reward:      "Análise preliminar",
			Icon:        "milestone",
			Category:    CategoryAnamnese,
			TotalSteps:  1,
		},
		{
			ID:          CompleteAllAnamnese,
			Title:       "Jornada Completa",
			Description: "Complete todas as fases da anamnese",
			Reward:      "Relatório completo",
			Icon:        "award",
			Category:    CategoryAnamnese,
			TotalSteps:  5,
		},
		{
			ID:          StartBurnout,
			Title:       "Avaliação Profissional",
			Description: "Inicie o teste de burnout",
			Reward:      "Insights sobre sua saúde mental no trabalho",
			Icon:        "trophy",
			Category:    CategoryBurnout,
			TotalSteps:  1,
		},
		{
			ID:          CompleteBurnout,
			Title:       "Equilíbrio Profissional",
			Description: "Complete o teste de burnout",
			Reward:      "Relatório completo de burnout",
			Icon:        "badge-check",
			Category:    CategoryBurnout,
			TotalSteps:  1,
		},
		{
			ID:          CompleteAllTests,
			Title:       "Explorador Completo",
			Description: "Complete todos os testes disponíveis",
			Reward:      "Visão holística de sua saúde mental",
			Icon:        "star",
			Category:    CategoryGeneral,
			TotalSteps:  2,
		},
	}
}
