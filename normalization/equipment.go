package normalization

import "strings"

// EquipmentCategory грубая категория оборудования
type EquipmentCategory string

const (
	EquipmentDumbbell   EquipmentCategory = "dumbbell"
	EquipmentBarbell    EquipmentCategory = "barbell"
	EquipmentMachine    EquipmentCategory = "machine"
	EquipmentBodyweight EquipmentCategory = "bodyweight"
	EquipmentOther      EquipmentCategory = "other"
)

// ClassifyEquipment относит свободную метку оборудования к грубой категории
// по подстрокам без учета регистра. Неопознанные метки попадают в other.
func ClassifyEquipment(label string) EquipmentCategory {
	l := strings.ToLower(label)

	switch {
	case strings.Contains(l, "dumbbell") || strings.Contains(l, "kettlebell"):
		return EquipmentDumbbell
	case strings.Contains(l, "barbell") || strings.Contains(l, "ez bar") ||
		(strings.Contains(l, "bar") && !strings.Contains(l, "cable")):
		return EquipmentBarbell
	case strings.Contains(l, "machine") || strings.Contains(l, "smith") ||
		strings.Contains(l, "apparatus"):
		return EquipmentMachine
	case strings.Contains(l, "bodyweight") ||
		(strings.Contains(l, "body") && strings.Contains(l, "weight")):
		return EquipmentBodyweight
	default:
		return EquipmentOther
	}
}

// EquipmentCategories возвращает множество категорий для списка меток
func EquipmentCategories(labels []string) map[EquipmentCategory]bool {
	if len(labels) == 0 {
		return nil
	}
	categories := make(map[EquipmentCategory]bool, len(labels))
	for _, label := range labels {
		categories[ClassifyEquipment(label)] = true
	}
	return categories
}

// CompatibleEquipment сообщает, совместимы ли два набора оборудования.
// Пустой список означает отсутствие данных, а не реальное расхождение,
// поэтому он совместим с чем угодно.
func CompatibleEquipment(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}

	categoriesA := EquipmentCategories(a)
	for _, label := range b {
		if categoriesA[ClassifyEquipment(label)] {
			return true
		}
	}
	return false
}

// HasCategory сообщает, присутствует ли категория в списке оборудования
func HasCategory(labels []string, category EquipmentCategory) bool {
	for _, label := range labels {
		if ClassifyEquipment(label) == category {
			return true
		}
	}
	return false
}
