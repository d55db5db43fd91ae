package quality

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"exercisekb/normalization"
)

// Simplifier переписывает многословные тексты техники в короткую
// каноническую форму. Для известных архетипов упражнений используются
// фиксированные шаблоны, для остальных — структурное упрощение
// исходного текста.
type Simplifier struct {
	logger *slog.Logger
}

// NewSimplifier создает новый упроститель текстов техники
func NewSimplifier() *Simplifier {
	return &Simplifier{
		logger: slog.Default().With("component", "technique_simplifier"),
	}
}

// genericFallback ответ для пустого текста без подходящего шаблона
const genericFallback = "Execute the movement in a controlled manner; maintain correct posture."

// maxSimplifiedLen жёсткий предел длины упрощённого текста
const maxSimplifiedLen = 200

// maxClauses упрощённый текст не длиннее четырёх фраз
const maxClauses = 4

// archetypeTemplate шаблон инструкции для архетипа упражнения.
// Ключи сопоставляются с нормализованным именем по подстроке, поэтому
// специфичные ключи ("bench press", "leg curl") стоят раньше общих
// ("press", "curl").
type archetypeTemplate struct {
	key   string
	build func(variant, implement string) string
}

var archetypeTemplates = []archetypeTemplate{
	{"bench press", func(variant, implement string) string {
		return "Lie on the " + orDefault(variant, "flat") + " bench, lower the " + orDefault(implement, "weight") + " to the chest under control, then press up until the arms are extended."
	}},
	{"shoulder press", func(variant, implement string) string {
		return joinVariant(variant, "Press the "+orDefault(implement, "weight")+" overhead until the arms are extended, then lower under control to shoulder level.")
	}},
	{"leg press", func(_, _ string) string {
		return "Place your feet shoulder-width on the platform, lower it by bending your knees, then press back up without locking out."
	}},
	{"leg curl", func(_, _ string) string {
		return "Curl your heels toward your glutes under control, pause briefly, then return to the starting position."
	}},
	{"leg extension", func(_, _ string) string {
		return "Extend your knees until the legs are straight, pause briefly, then lower under control."
	}},
	{"deadlift", func(_, implement string) string {
		return "Stand with the " + orDefault(implement, "weight") + " over mid-foot, hinge at the hips with a flat back, and drive through the heels to stand up."
	}},
	{"squat", func(variant, _ string) string {
		return joinVariant(variant, "Bend your knees and lower your hips until the thighs are parallel to the floor, keep the chest up, then drive back up.")
	}},
	{"triceps", func(_, implement string) string {
		return "Keep the elbows pinned to your sides, extend the arms until the " + orDefault(implement, "weight") + " is fully pressed down, then return under control."
	}},
	{"press", func(variant, implement string) string {
		return joinVariant(variant, "Press the "+orDefault(implement, "weight")+" away from the body until the arms are extended, then return under control.")
	}},
	{"pulldown", func(_, _ string) string {
		return "Pull the bar down to the upper chest while keeping the torso upright, then let it rise under control."
	}},
	{"pullup", func(_, _ string) string {
		return "Hang from the bar with arms extended, pull your chin above the bar, then lower under control."
	}},
	{"pull up", func(_, _ string) string {
		return "Hang from the bar with arms extended, pull your chin above the bar, then lower under control."
	}},
	{"row", func(variant, implement string) string {
		return joinVariant(variant, "Pull the "+orDefault(implement, "weight")+" toward your torso while keeping the back straight, squeeze the shoulder blades, then return under control.")
	}},
	{"curl", func(variant, implement string) string {
		return joinVariant(variant, "Curl the "+orDefault(implement, "weight")+" toward your shoulders without swinging, then lower under control.")
	}},
	{"fly", func(variant, implement string) string {
		return joinVariant(variant, "Open your arms in a wide arc with a slight elbow bend, then bring the "+orDefault(implement, "weights")+" back together over the chest.")
	}},
	{"lunge", func(_, _ string) string {
		return "Step forward and bend both knees until the rear knee nears the floor, then push back to the starting stance."
	}},
	{"plank", func(_, _ string) string {
		return "Hold the body in a straight line on your forearms and toes, brace the core, and breathe steadily."
	}},
	{"crunch", func(_, _ string) string {
		return "Curl your shoulders toward your hips using the abs, pause briefly, then lower under control."
	}},
	{"calf", func(_, _ string) string {
		return "Rise onto your toes by extending the ankles, pause at the top, then lower the heels under control."
	}},
	{"raise", func(variant, implement string) string {
		return joinVariant(variant, "Raise the "+orDefault(implement, "weight")+" in a controlled arc to shoulder height, then lower slowly.")
	}},
	{"dip", func(_, _ string) string {
		return "Lower your body by bending the elbows until the shoulders reach elbow level, then press back up."
	}},
	{"cardio", func(_, _ string) string {
		return "Maintain a steady sustainable pace, keep an upright posture, and breathe rhythmically."
	}},
	{"run", func(_, _ string) string {
		return "Maintain a steady sustainable pace, keep an upright posture, and breathe rhythmically."
	}},
	{"bike", func(_, _ string) string {
		return "Maintain a steady sustainable pace, keep an upright posture, and breathe rhythmically."
	}},
}

// positionVariants вариации положения, вычленяемые из имени
var positionVariants = []string{"incline", "decline", "seated", "standing", "lying"}

// Simplify переписывает текст техники в короткую форму. При совпадении
// имени с известным архетипом исходный текст игнорируется и возвращается
// детерминированный шаблон. Для непустого входа результат всегда непуст.
func (s *Simplifier) Simplify(currentText, name string, equipment []string) string {
	normalizedName := normalization.Normalize(name)

	for _, tpl := range archetypeTemplates {
		if strings.Contains(normalizedName, tpl.key) {
			return tpl.build(detectVariant(normalizedName), detectImplement(equipment))
		}
	}

	trimmed := strings.TrimSpace(currentText)
	if trimmed == "" {
		return genericFallback
	}

	rewritten := rewriteTechnique(trimmed)
	if rewritten == "" {
		return genericFallback
	}
	return rewritten
}

var (
	jargonTermPattern  = regexp.MustCompile(`(?i)\b(concentric|eccentric|isometric|isotonic)\b`)
	degreesPattern     = regexp.MustCompile(`(?i)\b(?:at\s+)?(?:an?\s+angle\s+of\s+)?\d+\s*(?:degrees?\b|°)`)
	phaseLabelPattern  = regexp.MustCompile(`(?i)\b(?:initial|final|starting)\s+position\s*:|\bphase\s*(?:\d+)?\s*:`)
	connectorPattern   = regexp.MustCompile(`(?i)\b(and|then)(\s+\1)+\b`)
	clauseSplitPattern = regexp.MustCompile(`[.,;]`)
)

// rewriteTechnique структурно упрощает произвольный текст техники:
// убирает биомеханический жаргон, угловые уточнения и метки фаз,
// ограничивает число фраз и общую длину
func rewriteTechnique(text string) string {
	text = jargonTermPattern.ReplaceAllString(text, "")
	text = degreesPattern.ReplaceAllString(text, "")
	text = phaseLabelPattern.ReplaceAllString(text, "")
	text = connectorPattern.ReplaceAllString(text, "$1")
	text = strings.Join(strings.Fields(text), " ")

	clauses := clauseSplitPattern.Split(text, -1)
	kept := make([]string, 0, maxClauses)
	for _, c := range clauses {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		kept = append(kept, c)
		if len(kept) == maxClauses {
			break
		}
	}
	if len(kept) == 0 {
		return ""
	}

	result := strings.Join(kept, ". ")
	result = truncateAtBoundary(result, maxSimplifiedLen)
	result = capitalize(result)
	if result != "" && !strings.HasSuffix(result, ".") {
		result += "."
	}
	return result
}

// truncateAtBoundary обрезает текст до лимита, предпочитая границу
// предложения, затем границу слова
func truncateAtBoundary(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := text[:limit]
	if idx := strings.LastIndex(cut, ". "); idx > 0 {
		return cut[:idx+1]
	}
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		return strings.TrimRight(cut[:idx], ",;")
	}
	return cut
}

// capitalize делает первую букву заглавной
func capitalize(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return text
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// detectVariant вычленяет вариацию положения из нормализованного имени
func detectVariant(normalizedName string) string {
	for _, v := range positionVariants {
		if strings.Contains(normalizedName, v) {
			return v
		}
	}
	return ""
}

// detectImplement выбирает слово для снаряда по категории оборудования
func detectImplement(equipment []string) string {
	categories := normalization.EquipmentCategories(equipment)
	switch {
	case categories[normalization.EquipmentBarbell]:
		return "barbell"
	case categories[normalization.EquipmentDumbbell]:
		return "dumbbells"
	case categories[normalization.EquipmentMachine]:
		return "handles"
	default:
		return ""
	}
}

// joinVariant добавляет префикс положения к инструкции шаблона
func joinVariant(variant, instruction string) string {
	switch variant {
	case "seated":
		return "Sit upright on the bench. " + instruction
	case "standing":
		return "Stand with feet shoulder-width apart. " + instruction
	case "lying":
		return "Lie down in a stable position. " + instruction
	case "incline":
		return "Set the bench to an incline. " + instruction
	case "decline":
		return "Set the bench to a decline. " + instruction
	default:
		return instruction
	}
}

// orDefault возвращает значение или замену для пустой строки
func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
