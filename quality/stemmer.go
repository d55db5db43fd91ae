package quality

import (
	"strings"
	"sync"

	"github.com/kljensen/snowball"
)

// EnglishStemmer implements stemming for English catalog text using the
// Snowball algorithm. Technique descriptions use free-form inflections
// ("bending", "bends", "bent"), so keyword checks compare stems instead
// of raw tokens.
type EnglishStemmer struct {
	language string
	cache    map[string]string
	mu       sync.RWMutex
}

// NewEnglishStemmer creates a new English language stemmer with caching
func NewEnglishStemmer() *EnglishStemmer {
	return &EnglishStemmer{
		language: "english",
		cache:    make(map[string]string),
	}
}

// Stem returns the stemmed version of a word using Snowball algorithm
// Example: "bending" -> "bend", "controlled" -> "control"
func (s *EnglishStemmer) Stem(word string) string {
	normalized := strings.ToLower(strings.TrimSpace(word))
	if normalized == "" {
		return ""
	}

	s.mu.RLock()
	if cached, found := s.cache[normalized]; found {
		s.mu.RUnlock()
		return cached
	}
	s.mu.RUnlock()

	stemmed, err := snowball.Stem(normalized, s.language, true)
	if err != nil {
		// If stemming fails, fall back to the normalized word
		stemmed = normalized
	}

	s.mu.Lock()
	s.cache[normalized] = stemmed
	s.mu.Unlock()

	return stemmed
}

// StemTokens returns stemmed versions of multiple words
func (s *EnglishStemmer) StemTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}

	stemmed := make([]string, len(tokens))
	for i, token := range tokens {
		stemmed[i] = s.Stem(token)
	}
	return stemmed
}

// StemSet returns the set of stems present in a text
func (s *EnglishStemmer) StemSet(text string) map[string]bool {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	set := make(map[string]bool, len(words))
	for _, w := range words {
		if stem := s.Stem(w); stem != "" {
			set[stem] = true
		}
	}
	return set
}

// SameStem reports whether two words reduce to the same stem
func (s *EnglishStemmer) SameStem(a, b string) bool {
	sa := s.Stem(a)
	if sa == "" {
		return false
	}
	return sa == s.Stem(b)
}
