package quality

import "testing"

func TestEnglishStemmer(t *testing.T) {
	stemmer := NewEnglishStemmer()

	tests := []struct {
		word     string
		expected string
	}{
		{"bending", "bend"},
		{"lowered", "lower"},
		{"controlled", "control"},
		{"knees", "knee"},
		{"", ""},
		{"  Pressing  ", "press"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if result := stemmer.Stem(tt.word); result != tt.expected {
				t.Errorf("Stem(%q) = %q, want %q", tt.word, result, tt.expected)
			}
		})
	}
}

func TestSameStem(t *testing.T) {
	stemmer := NewEnglishStemmer()

	if !stemmer.SameStem("bending", "bends") {
		t.Error("словоформы одного глагола должны давать одну основу")
	}
	if stemmer.SameStem("press", "pull") {
		t.Error("разные слова не должны давать одну основу")
	}
	if stemmer.SameStem("", "press") {
		t.Error("пустое слово не совпадает ни с чем")
	}
}

func TestStemSet(t *testing.T) {
	set := stemSetOf(t, "lowering the weights while bending the knees")
	for _, stem := range []string{"lower", "weight", "bend", "knee"} {
		if !set[stem] {
			t.Errorf("основа %q отсутствует в множестве: %v", stem, set)
		}
	}
}

func stemSetOf(t *testing.T, text string) map[string]bool {
	t.Helper()
	return NewEnglishStemmer().StemSet(text)
}
