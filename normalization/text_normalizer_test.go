package normalization

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "нижний регистр",
			input:    "Barbell Bench Press",
			expected: "barbell bench press",
		},
		{
			name:     "схлопывание пробелов",
			input:    "  bench   press \t machine ",
			expected: "bench press machine",
		},
		{
			name:     "удаление пунктуации",
			input:    "Lie down, grip the bar; press up!",
			expected: "lie down grip the bar press up",
		},
		{
			name:     "удаление диакритики",
			input:    "Café Crème Élevé",
			expected: "cafe creme eleve",
		},
		{
			name:     "пустая строка",
			input:    "",
			expected: "",
		},
		{
			name:     "только пунктуация",
			input:    "...!!!",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestNormalizeIdempotence нормализация нормализованного текста ничего не меняет
func TestNormalizeIdempotence(t *testing.T) {
	inputs := []string{
		"Barbell Bench Press",
		"  Exercício com  halteres, à máquina!  ",
		"Café Crème",
		"",
		"already normalized text",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize не идемпотентна для %q: %q != %q", input, once, twice)
		}
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "короткие токены отбрасываются",
			input:    "go to the gym and lift",
			expected: []string{"the", "gym", "and", "lift"},
		},
		{
			name:     "пустой вход",
			input:    "",
			expected: nil,
		},
		{
			name:     "только короткие токены",
			input:    "a an to of",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Tokens(tt.input)
			if len(result) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Tokens(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("press the bar press the bar")
	if len(set) != 3 {
		t.Errorf("ожидалось 3 уникальных токена, получено %d: %v", len(set), set)
	}
	for _, token := range []string{"press", "the", "bar"} {
		if !set[token] {
			t.Errorf("токен %q отсутствует в множестве", token)
		}
	}
}
