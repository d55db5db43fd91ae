package normalization

import "testing"

func TestCleanName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "скобочный синоним",
			input:    "Shoulder Press (Military Press)",
			expected: "Shoulder Press",
		},
		{
			name:     "альтернатива через слэш",
			input:    "Hip Thrust / Glute Bridge",
			expected: "Hip Thrust",
		},
		{
			name:     "вариация через запятую",
			input:    "Bench Press, Incline",
			expected: "Bench Press Incline",
		},
		{
			name:     "вариация seated",
			input:    "Shoulder Press, Seated",
			expected: "Shoulder Press Seated",
		},
		{
			name:     "вариация с оборудованием",
			input:    "Lunge, with dumbbells",
			expected: "Lunge with Dumbbells",
		},
		{
			name:     "остаточная запятая с короткой вариацией",
			input:    "Row, Wide Grip",
			expected: "Row Wide Grip",
		},
		{
			name:     "чистое имя не меняется",
			input:    "Barbell Squat",
			expected: "Barbell Squat",
		},
		{
			name:     "лишние пробелы",
			input:    "  Barbell   Squat  ",
			expected: "Barbell Squat",
		},
		{
			name:     "пустое имя",
			input:    "",
			expected: "",
		},
		{
			name:     "скобки и слэш вместе",
			input:    "Pulldown (Wide Grip) / Lat Pulldown",
			expected: "Pulldown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := CleanName(tt.input); result != tt.expected {
				t.Errorf("CleanName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
