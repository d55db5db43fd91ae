package quality

import (
	"regexp"
	"strings"

	"exercisekb/catalog"
	"exercisekb/normalization"
)

// Переписывание шаблонных описаний. Заглушки вида "Exercise for
// strengthening the chest" заменяются содержательным описанием,
// построенным из мышечной группы и оборудования записи; осмысленные
// описания лишь чистятся от текстового мусора.

var (
	repeatedWordPattern = regexp.MustCompile(`(?i)\b(\w+)(\s+\1)+\b`)
	doubleDotPattern    = regexp.MustCompile(`\.{2,}`)
)

// groupDescriptions заготовки описаний по мышечным группам
var groupDescriptions = map[string]string{
	"chest":      "Builds the pectoral muscles through a controlled pressing or squeezing motion",
	"back":       "Strengthens the back muscles through a controlled pulling motion",
	"shoulders":  "Develops the deltoid muscles through controlled overhead and lateral work",
	"legs":       "Strengthens the muscles of the legs through a controlled lower-body movement",
	"quadriceps": "Targets the quadriceps through controlled knee extension under load",
	"hamstrings": "Targets the hamstrings through controlled hip hinge and knee flexion",
	"glutes":     "Strengthens the glutes through controlled hip extension under load",
	"biceps":     "Isolates the biceps through controlled elbow flexion",
	"triceps":    "Isolates the triceps through controlled elbow extension",
	"abs":        "Strengthens the abdominal muscles through controlled trunk flexion and bracing",
	"core":       "Builds core stability through controlled bracing under load",
	"calves":     "Strengthens the calves through controlled ankle extension",
}

// ImproveDescription возвращает улучшенное описание записи и признак,
// что оно отличается от исходного. Непустое описание никогда не
// становится пустым, и улучшение не добавляет утверждений об
// оборудовании, которых нет в списке записи.
func (a *Analyzer) ImproveDescription(rec *catalog.ExerciseRecord) (string, bool) {
	current := strings.TrimSpace(rec.Description)

	if a.IsGenericDescription(current) {
		if rewritten := composeDescription(rec); rewritten != "" && rewritten != current {
			return rewritten, true
		}
	}

	if current == "" {
		return current, false
	}

	cleaned := repeatedWordPattern.ReplaceAllString(current, "$1")
	cleaned = doubleDotPattern.ReplaceAllString(cleaned, ".")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" || cleaned == current {
		return current, false
	}
	return cleaned, true
}

// composeDescription собирает описание из мышечной группы и оборудования
func composeDescription(rec *catalog.ExerciseRecord) string {
	base, ok := groupDescriptions[strings.ToLower(strings.TrimSpace(rec.PrimaryMuscleGroup))]
	if !ok {
		if rec.PrimaryMuscleGroup == "" {
			return ""
		}
		base = "Strengthens the " + strings.ToLower(rec.PrimaryMuscleGroup) + " through a controlled movement"
	}

	categories := normalization.EquipmentCategories(rec.Equipment)
	switch {
	case categories[normalization.EquipmentBarbell]:
		base += " using a barbell"
	case categories[normalization.EquipmentDumbbell]:
		base += " using dumbbells"
	case categories[normalization.EquipmentMachine]:
		base += " on a machine"
	case categories[normalization.EquipmentBodyweight]:
		base += " using body weight"
	}

	if len(rec.SynergistMuscles) > 0 {
		base += ", with assistance from the " + strings.ToLower(strings.Join(rec.SynergistMuscles, ", "))
	}
	return base + "."
}
