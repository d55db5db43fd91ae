package catalog

// DifficultyLevel уровень сложности упражнения
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "Beginner"
	DifficultyIntermediate DifficultyLevel = "Intermediate"
	DifficultyAdvanced     DifficultyLevel = "Advanced"
)

// IsValid проверяет, что уровень сложности входит в допустимый словарь
func (d DifficultyLevel) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// ExerciseRecord запись каталога упражнений — единица анализа пайплайна.
// Все текстовые поля могут быть пустыми: каталог исторически грязный,
// нормализация обязана быть тотальной.
type ExerciseRecord struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	PrimaryMuscleGroup string          `json:"primary_muscle_group"`
	SynergistMuscles   []string        `json:"synergist_muscles,omitempty"`
	Description        string          `json:"description,omitempty"`
	TechniqueText      string          `json:"technique_text,omitempty"`
	CommonMistakes     []string        `json:"common_mistakes,omitempty"`
	Equipment          []string        `json:"equipment,omitempty"`
	DifficultyLevel    DifficultyLevel `json:"difficulty_level"`
	Active             bool            `json:"active"`
	// PlanRefs количество ссылок на запись из тренировочных планов.
	// Поддерживается внешней системой каталога, пайплайн только читает.
	PlanRefs int `json:"plan_refs"`
}

// Completeness грубая мера заполненности записи. Используется при выборе
// выжившей записи среди дубликатов: больше текста — больше шансов выжить.
func (r *ExerciseRecord) Completeness() int {
	return len(r.Description) + len(r.TechniqueText) + len(r.CommonMistakes)
}

// ProposalField поле записи, которое разрешено менять через предложение.
// Пайплайн никогда не пишет другие поля.
type ProposalField string

const (
	FieldName            ProposalField = "name"
	FieldDescription     ProposalField = "description"
	FieldTechniqueText   ProposalField = "technique_text"
	FieldDifficultyLevel ProposalField = "difficulty_level"
)

// IsValid проверяет, что поле входит в разрешённый для записи набор
func (f ProposalField) IsValid() bool {
	switch f {
	case FieldName, FieldDescription, FieldTechniqueText, FieldDifficultyLevel:
		return true
	}
	return false
}

// FieldProposal предложение изменения одного поля одной записи.
// Предложения формируются анализом и применяются отдельным явным шагом;
// предложение либо целиком задаёт поле, либо не трогает его вовсе.
type FieldProposal struct {
	ID     string        `json:"id"`
	Name   string        `json:"name,omitempty"`
	Field  ProposalField `json:"field"`
	Before string        `json:"before"`
	After  string        `json:"after"`
}
