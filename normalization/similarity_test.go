package normalization

import "testing"

func TestTokenSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"bench press with barbell", "bench press with dumbbells"},
		{"completely different text", "nothing in common here"},
		{"", "some text"},
		{"one", "one"},
		{"Lie on the bench and press", "Lie on the bench and press"},
	}

	for _, pair := range pairs {
		score := TokenSimilarity(pair[0], pair[1])
		if score < 0 || score > 1 {
			t.Errorf("TokenSimilarity(%q, %q) = %f вне [0,1]", pair[0], pair[1], score)
		}
		// Симметрия
		reversed := TokenSimilarity(pair[1], pair[0])
		if score != reversed {
			t.Errorf("TokenSimilarity не симметрична для (%q, %q): %f != %f", pair[0], pair[1], score, reversed)
		}
	}
}

func TestTokenSimilarityIdentity(t *testing.T) {
	// Непустой текст идентичен сам себе
	if score := TokenSimilarity("bench press", "bench press"); score != 1.0 {
		t.Errorf("идентичные тексты: ожидалось 1.0, получено %f", score)
	}
	// Канонически равные тексты тоже идентичны
	if score := TokenSimilarity("Bench  Press!", "bench press"); score != 1.0 {
		t.Errorf("канонически равные тексты: ожидалось 1.0, получено %f", score)
	}
	// Пустой вход всегда даёт 0
	if score := TokenSimilarity("", "anything at all"); score != 0 {
		t.Errorf("пустой вход: ожидалось 0, получено %f", score)
	}
	if score := TokenSimilarity("", ""); score != 0 {
		t.Errorf("оба пустые: ожидалось 0, получено %f", score)
	}
}

func TestTokenSimilarityJaccard(t *testing.T) {
	// Множества {one, two, three} и {two, three, four}: пересечение 2, объединение 4
	score := TokenSimilarity("one two three", "two three four")
	if score != 0.5 {
		t.Errorf("ожидалось 0.5, получено %f", score)
	}
}

func TestNameSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{
			name:     "канонически равные имена",
			a:        "Bench Press",
			b:        "bench  press",
			expected: 1.0,
		},
		{
			name:     "вложение даёт отношение длин",
			a:        "Bench Press",
			b:        "Barbell Bench Press",
			expected: 11.0 / 19.0,
		},
		{
			name:     "пустое имя",
			a:        "",
			b:        "Bench Press",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NameSimilarity(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("NameSimilarity(%q, %q) = %f, want %f", tt.a, tt.b, result, tt.expected)
			}
			// Порядок аргументов не влияет на результат
			if reversed := NameSimilarity(tt.b, tt.a); reversed != result {
				t.Errorf("NameSimilarity зависит от порядка аргументов: %f != %f", result, reversed)
			}
		})
	}
}

func TestNameSimilarityTokenFallback(t *testing.T) {
	// Без вложения: общие токены длиннее двух символов / максимум
	// {dumbbell, curl} и {hammer, curl}: 1 общий из 2
	score := NameSimilarity("Dumbbell Curl", "Hammer Curl")
	if score != 0.5 {
		t.Errorf("ожидалось 0.5, получено %f", score)
	}

	if score := NameSimilarity("Plank", "Deadlift"); score != 0 {
		t.Errorf("несвязанные имена: ожидалось 0, получено %f", score)
	}
}
