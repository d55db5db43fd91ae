package quality

import (
	"strings"
	"testing"

	"exercisekb/catalog"
)

func TestValidateRecordConsistent(t *testing.T) {
	validator := NewValidator()

	rec := &catalog.ExerciseRecord{
		ID:                 "1",
		Name:               "Barbell Squat",
		PrimaryMuscleGroup: "Legs",
		TechniqueText:      "Stand with the barbell on your upper back. Bend your knees and lower your hips until the thighs are parallel, keep the chest up, then stand back up.",
		Equipment:          []string{"Barbell"},
	}

	result := validator.ValidateRecord(rec)
	if result.Problematic {
		for _, c := range result.Checks {
			if !c.Passed {
				t.Errorf("проверка %s неожиданно провалилась: %s", c.Check, c.Message)
			}
		}
	}
}

// TestValidateRecordMissingKeywords техника без ожидаемых движений
// проваливает проверку ключевых слов
func TestValidateRecordMissingKeywords(t *testing.T) {
	validator := NewValidator()

	rec := &catalog.ExerciseRecord{
		ID:                 "2",
		Name:               "Barbell Squat",
		PrimaryMuscleGroup: "Legs",
		TechniqueText:      "Just do it quickly.",
	}

	result := validator.ValidateRecord(rec)
	if !result.Problematic {
		t.Fatal("запись с бессодержательной техникой должна быть проблемной")
	}

	var keywordCheck *CheckResult
	for i := range result.Checks {
		if result.Checks[i].Check == CheckKeywords {
			keywordCheck = &result.Checks[i]
		}
	}
	if keywordCheck == nil || keywordCheck.Passed {
		t.Fatal("проверка ключевых слов должна провалиться")
	}
	if !strings.Contains(keywordCheck.Message, "missing") {
		t.Errorf("сообщение должно перечислять недостающие слова: %q", keywordCheck.Message)
	}
}

// TestValidateRecordUnknownArchetype запись вне известного словаря
// никогда не флагуется проверками без опоры
func TestValidateRecordUnknownArchetype(t *testing.T) {
	validator := NewValidator()

	rec := &catalog.ExerciseRecord{
		ID:                 "3",
		Name:               "Mysterious Movement",
		PrimaryMuscleGroup: "Core",
		TechniqueText:      "Move in an unusual way.",
	}

	result := validator.ValidateRecord(rec)
	if result.Problematic {
		t.Error("неизвестный архетип не должен давать провалов")
	}
}

func TestEquipmentCheck(t *testing.T) {
	validator := NewValidator()

	// Без оборудования проверка проходит автоматически
	if result := validator.EquipmentCheck(nil, "any technique text"); !result.Passed {
		t.Error("проверка без оборудования должна проходить")
	}

	// Оборудование упомянуто в тексте
	if result := validator.EquipmentCheck([]string{"Barbell"}, "grip the bar at shoulder width"); !result.Passed {
		t.Errorf("упоминание грифа должно засчитываться: %s", result.Message)
	}

	// Оборудование не упомянуто
	if result := validator.EquipmentCheck([]string{"Barbell"}, "move your arms in a circle"); result.Passed {
		t.Error("отсутствие упоминания штанги должно проваливать проверку")
	}
}

// TestKeywordCheckStemming словоформы засчитываются через основу слова
func TestKeywordCheckStemming(t *testing.T) {
	validator := NewValidator()

	rec := &catalog.ExerciseRecord{
		ID:                 "4",
		Name:               "Dumbbell Curl",
		PrimaryMuscleGroup: "Biceps",
		TechniqueText:      "Curling the dumbbells while keeping the elbows pinned, then lowering slowly back to the shoulders.",
		Equipment:          []string{"Dumbbell"},
	}

	result := validator.ValidateRecord(rec)
	for _, c := range result.Checks {
		if c.Check == CheckKeywords && !c.Passed {
			t.Errorf("словоформы должны засчитываться по основам: %s", c.Message)
		}
	}
}

// TestPositionCheckWholeWords слово "position" не засчитывается
// за подтверждение сидячего положения
func TestPositionCheckWholeWords(t *testing.T) {
	validator := NewValidator()

	rec := &catalog.ExerciseRecord{
		ID:                 "5",
		Name:               "Leg Extension",
		PrimaryMuscleGroup: "Legs",
		TechniqueText:      "From the starting position, extend your knees fully and lower the weight back down under control.",
	}

	result := validator.ValidateRecord(rec)
	for _, c := range result.Checks {
		if c.Check == CheckPosition && c.Passed {
			t.Error("проверка положения должна провалиться без упоминания сидячей позиции")
		}
	}

	// Явное упоминание положения засчитывается
	rec.TechniqueText = "Sit on the machine, extend your knees fully, then lower the weight under control."
	result = validator.ValidateRecord(rec)
	for _, c := range result.Checks {
		if c.Check == CheckPosition && !c.Passed {
			t.Errorf("упоминание Sit должно пройти проверку: %s", c.Message)
		}
	}
}

func TestComplexity(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		text     string
		expected ComplexityLevel
	}{
		{
			name:     "простой текст",
			text:     "Press the bar up and lower it slowly.",
			expected: ComplexitySimple,
		},
		{
			name:     "длинный текст сложен",
			text:     strings.Repeat("Lower the weight under control and keep the back straight. ", 4),
			expected: ComplexityComplex,
		},
		{
			name:     "средняя длина",
			text:     strings.Repeat("Lower the weight under control slowly. ", 4),
			expected: ComplexityMedium,
		},
		{
			name:     "пустой текст прост",
			text:     "",
			expected: ComplexitySimple,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := validator.Complexity(tt.text)
			if score.Level != tt.expected {
				t.Errorf("Complexity(%d chars) = %q, want %q", score.Length, score.Level, tt.expected)
			}
		})
	}
}

// TestComplexityJargonAndCommas жаргон и перегруз запятыми копятся
// в списке проблем
func TestComplexityJargon(t *testing.T) {
	validator := NewValidator()

	text := "Concentric phase, then eccentric phase, then isometric hold, pause, breathe, reset, repeat."
	score := validator.Complexity(text)
	if len(score.Problems) < 2 {
		t.Errorf("ожидались проблемы с жаргоном и запятыми, получено %v", score.Problems)
	}
	if score.Level == ComplexitySimple {
		t.Error("перегруженный текст не должен быть simple")
	}
}
