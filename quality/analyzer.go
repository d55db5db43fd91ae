package quality

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"exercisekb/catalog"
	"exercisekb/normalization"
)

// FieldQuality грубая оценка качества текстового поля
type FieldQuality string

const (
	QualityEmpty  FieldQuality = "empty"
	QualityPoor   FieldQuality = "poor"
	QualityMedium FieldQuality = "medium"
	QualityGood   FieldQuality = "good"
)

// FieldScore результат оценки одного текстового поля записи
type FieldScore struct {
	Present     bool         `json:"present"`
	Length      int          `json:"length"`
	Quality     FieldQuality `json:"quality"`
	Suggestions []string     `json:"suggestions,omitempty"`
}

// Analyzer оценивает качество текстовых полей записи и предлагает
// уровень сложности по текстовым признакам
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer создает новый анализатор качества
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		logger: slog.Default().With("component", "quality_analyzer"),
	}
}

// genericPatterns шаблонные обороты, по которым описание признаётся
// сгенерированной заглушкой без содержательной информации
var genericPatterns = []*regexp.Regexp{
	regexp.MustCompile(`exercise for (strengthening|working|developing|training)`),
	regexp.MustCompile(`movement for`),
	regexp.MustCompile(`works the (muscle|muscles|muscle group)`),
	regexp.MustCompile(`focuses on`),
	regexp.MustCompile(`^exercise$`),
	regexp.MustCompile(`^movement$`),
}

// minMeaningfulDescription описания короче считаются шаблонными
const minMeaningfulDescription = 30

// IsGenericDescription определяет, является ли описание шаблонной заглушкой:
// пустое, слишком короткое или построенное по типовому обороту
func (a *Analyzer) IsGenericDescription(text string) bool {
	normalized := normalization.Normalize(text)
	if normalized == "" {
		return true
	}
	if utf8.RuneCountInString(normalized) < minMeaningfulDescription {
		return true
	}
	for _, p := range genericPatterns {
		if p.MatchString(normalized) {
			return true
		}
	}
	return false
}

// muscleKeywords известные названия мышечных групп для проверки
// содержательности описания
var muscleKeywords = []string{
	"chest", "pectoral", "back", "lats", "latissimus", "shoulder", "deltoid",
	"bicep", "tricep", "forearm", "quad", "hamstring", "glute", "calf",
	"calves", "abs", "abdominal", "core", "trapezius", "traps", "leg",
}

// ScoreDescription оценивает описание упражнения по длине и содержанию
func (a *Analyzer) ScoreDescription(text string) FieldScore {
	trimmed := strings.TrimSpace(text)
	score := FieldScore{Present: trimmed != "", Length: utf8.RuneCountInString(trimmed)}

	switch {
	case trimmed == "":
		score.Quality = QualityEmpty
		score.Suggestions = append(score.Suggestions, "add a description of the exercise purpose")
		return score
	case score.Length < 50:
		score.Quality = QualityPoor
		score.Suggestions = append(score.Suggestions, "description is too short, expand to at least 50 characters")
	case score.Length > 500:
		score.Quality = QualityMedium
		score.Suggestions = append(score.Suggestions, "description is too long, shorten to 500 characters or fewer")
	case score.Length >= 100:
		score.Quality = QualityGood
	default:
		score.Quality = QualityMedium
	}

	if !containsAny(normalization.Normalize(trimmed), muscleKeywords) {
		score.Suggestions = append(score.Suggestions, "mention the target muscle group")
	}
	return score
}

// Словари фаз движения и подсказок по форме для оценки техники
var (
	phaseKeywords = []string{"concentric", "eccentric", "initial", "final", "starting", "lower", "raise", "return"}
	cueKeywords   = []string{"posture", "breathing", "breathe", "control", "controlled", "tempo", "slowly"}
)

// ScoreTechnique оценивает текст техники выполнения
func (a *Analyzer) ScoreTechnique(text string) FieldScore {
	trimmed := strings.TrimSpace(text)
	score := FieldScore{Present: trimmed != "", Length: utf8.RuneCountInString(trimmed)}

	switch {
	case trimmed == "":
		score.Quality = QualityEmpty
		score.Suggestions = append(score.Suggestions, "add step-by-step execution instructions")
		return score
	case score.Length < 80:
		score.Quality = QualityPoor
		score.Suggestions = append(score.Suggestions, "technique text is too short, describe the full movement")
	case score.Length >= 150 && score.Length <= 400:
		score.Quality = QualityGood
	default:
		score.Quality = QualityMedium
	}

	normalized := normalization.Normalize(trimmed)
	if !containsAny(normalized, phaseKeywords) {
		score.Suggestions = append(score.Suggestions, "describe the movement phases")
	}
	if !containsAny(normalized, cueKeywords) {
		score.Suggestions = append(score.Suggestions, "add form cues on posture, breathing or tempo")
	}
	return score
}

// ScoreCommonMistakes оценивает список типичных ошибок
func (a *Analyzer) ScoreCommonMistakes(mistakes []string) FieldScore {
	total := 0
	for _, m := range mistakes {
		total += utf8.RuneCountInString(m)
	}
	score := FieldScore{Present: len(mistakes) > 0, Length: total}

	switch {
	case len(mistakes) == 0:
		score.Quality = QualityEmpty
		score.Suggestions = append(score.Suggestions, "list the common mistakes for this exercise")
		return score
	case len(mistakes) < 2:
		score.Quality = QualityPoor
		score.Suggestions = append(score.Suggestions, "list at least two common mistakes")
	case len(mistakes) > 5:
		score.Quality = QualityMedium
		score.Suggestions = append(score.Suggestions, "keep the five most important mistakes")
	default:
		score.Quality = QualityGood
	}

	for _, m := range mistakes {
		trimmed := strings.TrimSpace(m)
		if trimmed == "" {
			score.Quality = QualityPoor
			score.Suggestions = append(score.Suggestions, "remove blank mistake entries")
			break
		}
		if utf8.RuneCountInString(trimmed) < 10 {
			score.Quality = QualityPoor
			score.Suggestions = append(score.Suggestions, "expand one-word mistake entries into full sentences")
			break
		}
	}
	return score
}

// Текстовые признаки уровней сложности
var (
	beginnerCues = []string{"machine", "assisted", "supported", "smith"}
	// Normalize удаляет дефисы без пробела, поэтому словарь держит
	// и раздельные, и слитные формы: "single-leg" -> "singleleg"
	advancedCues = []string{
		"free weight", "freeweight", "unilateral", "explosive", "plyometric",
		"single leg", "singleleg", "single arm", "singlearm",
		"one leg", "oneleg", "one arm", "onearm",
	}
	intermediateCues = []string{"barbell", "dumbbell", "kettlebell", "cable"}
)

// SuggestDifficulty предлагает уровень сложности по текстовым признакам
// имени и техники. Пустая строка означает отсутствие рекомендации,
// а не подтверждение текущего уровня.
func (a *Analyzer) SuggestDifficulty(name, techniqueText string, current catalog.DifficultyLevel) catalog.DifficultyLevel {
	combined := normalization.Normalize(name + " " + techniqueText)
	if combined == "" {
		return ""
	}

	switch {
	case containsAny(combined, beginnerCues):
		if current != catalog.DifficultyBeginner {
			return catalog.DifficultyBeginner
		}
	case containsAny(combined, advancedCues):
		if current != catalog.DifficultyAdvanced {
			return catalog.DifficultyAdvanced
		}
	case containsAny(combined, intermediateCues):
		// Специфичное оборудование повышает только начальный уровень
		if current == catalog.DifficultyBeginner {
			return catalog.DifficultyIntermediate
		}
	}
	return ""
}

// containsAny сообщает, встречается ли в тексте хотя бы одна подстрока
func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
