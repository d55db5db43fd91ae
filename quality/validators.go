package quality

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"exercisekb/catalog"
	"exercisekb/normalization"
)

// Validator проверяет внутреннюю согласованность записи: упоминает ли
// техника ожидаемые движения, заявленное оборудование и положение тела,
// и не перегружен ли текст. Неизвестный архетип — не ошибка: проверки
// без опоры деградируют в "pass", чтобы не флаговать записи вне словаря.
type Validator struct {
	stemmer *EnglishStemmer
	logger  *slog.Logger
}

// NewValidator создает новый валидатор согласованности
func NewValidator() *Validator {
	return &Validator{
		stemmer: NewEnglishStemmer(),
		logger:  slog.Default().With("component", "consistency_validator"),
	}
}

// Имена проверок в отчёте
const (
	CheckKeywords   = "keywords"
	CheckEquipment  = "equipment"
	CheckPosition   = "position"
	CheckComplexity = "complexity"
)

// CheckResult результат одной проверки согласованности
type CheckResult struct {
	Check   string `json:"check"`
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}

// ComplexityLevel уровень текстовой сложности техники
type ComplexityLevel string

const (
	ComplexitySimple  ComplexityLevel = "simple"
	ComplexityMedium  ComplexityLevel = "medium"
	ComplexityComplex ComplexityLevel = "complex"
)

// ComplexityScore оценка текстовой перегруженности техники
type ComplexityScore struct {
	Length   int             `json:"length"`
	Level    ComplexityLevel `json:"level"`
	Problems []string        `json:"problems,omitempty"`
}

// ValidationResult итог проверки одной записи
type ValidationResult struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Checks      []CheckResult   `json:"checks"`
	Complexity  ComplexityScore `json:"complexity"`
	Problematic bool            `json:"problematic"`
}

// movementArchetype ожидания по ключевым словам и положению тела
// для архетипа упражнения. Ключи сопоставляются с нормализованным
// именем по подстроке, специфичные раньше общих.
type movementArchetype struct {
	key      string
	keywords []string
	position string
}

var movementArchetypes = []movementArchetype{
	{"bench press", []string{"lie", "bench", "grip", "lower", "chest", "press"}, "lying"},
	{"shoulder press", []string{"press", "overhead", "shoulder", "lower", "extend"}, ""},
	{"leg press", []string{"platform", "feet", "knees", "press", "lower"}, "seated"},
	{"leg curl", []string{"curl", "heels", "knees", "return"}, "lying"},
	{"leg extension", []string{"extend", "knees", "lower"}, "seated"},
	{"deadlift", []string{"hinge", "hips", "back", "stand", "grip", "floor"}, "standing"},
	{"squat", []string{"knees", "hips", "lower", "thighs", "stand", "chest"}, "standing"},
	{"pulldown", []string{"pull", "bar", "chest", "grip"}, "seated"},
	{"pullup", []string{"hang", "pull", "bar", "chin", "lower"}, "suspended"},
	{"pull up", []string{"hang", "pull", "bar", "chin", "lower"}, "suspended"},
	{"chin up", []string{"hang", "pull", "bar", "chin", "lower"}, "suspended"},
	{"press", []string{"press", "lower", "extend", "arms"}, ""},
	{"row", []string{"pull", "back", "torso", "squeeze", "shoulder"}, ""},
	{"curl", []string{"curl", "elbows", "lower", "shoulders"}, ""},
	{"fly", []string{"arms", "arc", "chest", "elbows"}, "lying"},
	{"lunge", []string{"step", "knees", "floor", "push"}, "standing"},
	{"plank", []string{"hold", "core", "straight", "forearms"}, "lying"},
	{"crunch", []string{"curl", "abs", "shoulders", "lower"}, "lying"},
	{"raise", []string{"raise", "lower", "controlled"}, ""},
	{"dip", []string{"lower", "elbows", "press", "shoulders"}, "suspended"},
	{"calf", []string{"heels", "raise", "lower", "toes"}, "standing"},
}

// positionSynonyms токены, подтверждающие положение тела в тексте техники
var positionSynonyms = map[string][]string{
	"lying":     {"lie", "lying", "bench", "floor", "supine", "prone"},
	"standing":  {"stand", "standing", "upright", "feet"},
	"seated":    {"sit", "seated", "seat"},
	"inclined":  {"incline", "inclined", "angle"},
	"suspended": {"hang", "hanging", "suspended", "bar"},
}

// minKeywordShare минимальная доля ожидаемых ключевых слов в технике
const minKeywordShare = 0.3

// ValidateRecord выполняет все проверки согласованности для одной записи
func (v *Validator) ValidateRecord(rec *catalog.ExerciseRecord) ValidationResult {
	archetypes := matchArchetypes(rec.Name)
	technique := normalization.Normalize(rec.TechniqueText)

	checks := []CheckResult{
		v.KeywordCheck(archetypes, technique),
		v.EquipmentCheck(rec.Equipment, technique),
		v.PositionCheck(archetypes, technique),
	}
	complexity := v.Complexity(rec.TechniqueText)
	checks = append(checks, CheckResult{
		Check:   CheckComplexity,
		Passed:  complexity.Level != ComplexityComplex,
		Message: complexityMessage(complexity),
	})

	problematic := false
	for _, c := range checks {
		if !c.Passed {
			problematic = true
			break
		}
	}

	return ValidationResult{
		ID:          rec.ID,
		Name:        rec.Name,
		Checks:      checks,
		Complexity:  complexity,
		Problematic: problematic,
	}
}

// KeywordCheck требует, чтобы техника упоминала не менее трети ожидаемых
// для архетипа ключевых слов. Сравнение идёт по основам слов, чтобы
// "bending" засчитывалось за "bend". Без архетипа проверка проходит.
func (v *Validator) KeywordCheck(archetypes []movementArchetype, technique string) CheckResult {
	result := CheckResult{Check: CheckKeywords, Passed: true}
	if len(archetypes) == 0 {
		return result
	}

	expected := make(map[string]bool)
	for _, a := range archetypes {
		for _, kw := range a.keywords {
			expected[kw] = true
		}
	}
	if len(expected) == 0 {
		return result
	}

	stems := v.stemmer.StemSet(technique)
	matched := 0
	var missing []string
	for kw := range expected {
		if stems[v.stemmer.Stem(kw)] {
			matched++
		} else {
			missing = append(missing, kw)
		}
	}

	share := float64(matched) / float64(len(expected))
	if share >= minKeywordShare {
		return result
	}

	if len(missing) > 3 {
		missing = missing[:3]
	}
	result.Passed = false
	result.Message = fmt.Sprintf("technique mentions %d of %d expected movement keywords, missing: %s",
		matched, len(expected), strings.Join(missing, ", "))
	return result
}

// EquipmentCheck требует текстового упоминания хотя бы одной категории
// заявленного оборудования. Без оборудования и без текста проверка
// проходит: отсутствие данных — не расхождение.
func (v *Validator) EquipmentCheck(equipment []string, technique string) CheckResult {
	result := CheckResult{Check: CheckEquipment, Passed: true}
	if len(equipment) == 0 || technique == "" {
		return result
	}

	categories := normalization.EquipmentCategories(equipment)
	for category := range categories {
		if categoryMentioned(category, technique) {
			return result
		}
	}

	labels := make([]string, 0, len(categories))
	for category := range categories {
		labels = append(labels, string(category))
	}
	result.Passed = false
	result.Message = "technique never mentions the declared equipment: " + strings.Join(labels, ", ")
	return result
}

// categoryMentioned проверяет текстовое упоминание категории оборудования
func categoryMentioned(category normalization.EquipmentCategory, technique string) bool {
	var tokens []string
	switch category {
	case normalization.EquipmentBarbell:
		tokens = []string{"barbell", "bar"}
	case normalization.EquipmentDumbbell:
		tokens = []string{"dumbbell", "dumbbells", "kettlebell", "weight", "weights"}
	case normalization.EquipmentMachine:
		tokens = []string{"machine", "platform", "pad", "handles", "seat"}
	case normalization.EquipmentBodyweight:
		tokens = []string{"body", "bodyweight"}
	default:
		// Нераспознанное оборудование не даёт опоры для проверки
		return true
	}
	for _, t := range tokens {
		if strings.Contains(technique, t) {
			return true
		}
	}
	return false
}

// PositionCheck требует упоминания ожидаемого положения тела или его
// синонима. Без выводимого положения проверка проходит.
func (v *Validator) PositionCheck(archetypes []movementArchetype, technique string) CheckResult {
	result := CheckResult{Check: CheckPosition, Passed: true}
	if technique == "" {
		return result
	}

	expected := ""
	for _, a := range archetypes {
		if a.position != "" {
			expected = a.position
			break
		}
	}
	if expected == "" {
		return result
	}

	// Сравнение по основам слов, а не по подстрокам: иначе "sit"
	// ложно находится внутри "position"
	stems := v.stemmer.StemSet(technique)
	for _, syn := range positionSynonyms[expected] {
		if stems[v.stemmer.Stem(syn)] {
			return result
		}
	}

	result.Passed = false
	result.Message = fmt.Sprintf("technique never confirms the expected %s position", expected)
	return result
}

// Пороги текстовой перегруженности техники
const (
	complexityLongText   = 200
	complexityMediumText = 150
	maxJargonTerms       = 2
	maxCommas            = 5
)

// Complexity оценивает текстовую перегруженность техники
func (v *Validator) Complexity(techniqueText string) ComplexityScore {
	length := utf8.RuneCountInString(strings.TrimSpace(techniqueText))
	score := ComplexityScore{Length: length}

	if length > complexityLongText {
		score.Problems = append(score.Problems, "text is longer than 200 characters")
	}
	if jargon := len(jargonTermPattern.FindAllString(techniqueText, -1)); jargon > maxJargonTerms {
		score.Problems = append(score.Problems, fmt.Sprintf("uses %d biomechanics terms", jargon))
	}
	if commas := strings.Count(techniqueText, ","); commas > maxCommas {
		score.Problems = append(score.Problems, fmt.Sprintf("contains %d commas", commas))
	}

	switch {
	case length > complexityLongText || len(score.Problems) > 2:
		score.Level = ComplexityComplex
	case length > complexityMediumText || len(score.Problems) > 1:
		score.Level = ComplexityMedium
	default:
		score.Level = ComplexitySimple
	}
	return score
}

// complexityMessage формирует сообщение проверки сложности
func complexityMessage(score ComplexityScore) string {
	if score.Level != ComplexityComplex {
		return ""
	}
	return "technique text is overloaded: " + strings.Join(score.Problems, "; ")
}

// matchArchetypes возвращает архетипы, чьи ключи входят в имя
func matchArchetypes(name string) []movementArchetype {
	normalized := normalization.Normalize(name)
	if normalized == "" {
		return nil
	}
	var matched []movementArchetype
	for _, a := range movementArchetypes {
		if strings.Contains(normalized, a.key) {
			matched = append(matched, a)
		}
	}
	return matched
}
