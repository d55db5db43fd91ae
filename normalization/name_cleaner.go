package normalization

import (
	"regexp"
	"strings"
)

// Имена в каталоге исторически содержат скобочные синонимы
// ("Shoulder Press (Military Press)"), альтернативы через слэш
// ("Hip Thrust / Glute Bridge") и запятые-вариации ("Bench Press, Incline").
// CleanName приводит их к единой форме, не меняя смысла упражнения.

var (
	parentheticalPattern = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	trailingAliasPattern = regexp.MustCompile(`\s*/\s*[^/]+$`)
	danglingCommaPattern = regexp.MustCompile(`,\s*$`)
	doubleCommaPattern   = regexp.MustCompile(`,\s*,`)
	residualCommaPattern = regexp.MustCompile(`^(.+?),\s*(.+)$`)
)

// commaVariantFolds перенос запятой-вариации внутрь имени:
// "Bench Press, Incline" -> "Bench Press Incline"
var commaVariantFolds = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i),\s*inclined?`), " Incline"},
	{regexp.MustCompile(`(?i),\s*declined?`), " Decline"},
	{regexp.MustCompile(`(?i),\s*flat`), " Flat"},
	{regexp.MustCompile(`(?i),\s*seated`), " Seated"},
	{regexp.MustCompile(`(?i),\s*standing`), " Standing"},
	{regexp.MustCompile(`(?i),\s*lying`), " Lying"},
	{regexp.MustCompile(`(?i),\s*with dumbbells`), " with Dumbbells"},
	{regexp.MustCompile(`(?i),\s*with barbell`), " with Barbell"},
}

// prepositionStart части после запятой, начинающиеся с предлога, считаются
// осмысленным продолжением имени и не переносятся
var prepositionStart = regexp.MustCompile(`(?i)^(with|on|in|at|for|to|from|using)\b`)

// CleanName стандартизирует отображаемое имя упражнения: убирает скобочные
// синонимы, хвостовые альтернативы через слэш и запятые-вариации.
// Возвращает имя без изменений, если чистить нечего.
func CleanName(name string) string {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return cleaned
	}

	cleaned = parentheticalPattern.ReplaceAllString(cleaned, " ")
	cleaned = trailingAliasPattern.ReplaceAllString(cleaned, "")

	for _, fold := range commaVariantFolds {
		if fold.pattern.MatchString(cleaned) {
			cleaned = fold.pattern.ReplaceAllString(cleaned, fold.replacement)
			cleaned = doubleCommaPattern.ReplaceAllString(cleaned, ",")
			cleaned = danglingCommaPattern.ReplaceAllString(cleaned, "")
		}
	}

	// Остаточная запятая с короткой вариацией после неё интегрируется в имя
	if m := residualCommaPattern.FindStringSubmatch(cleaned); m != nil {
		head, tail := m[1], strings.TrimSpace(m[2])
		if len(tail) < 30 && !prepositionStart.MatchString(tail) {
			cleaned = head + " " + tail
		}
	}

	return strings.Join(strings.Fields(cleaned), " ")
}
