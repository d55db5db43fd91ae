package normalization

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minTokenLen токены короче не участвуют в сравнении: артикли, предлоги
// и прочий шум каталога
const minTokenLen = 3

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// Normalize канонизирует свободный текст для сравнения: нижний регистр,
// NFD-разложение с удалением диакритики, удаление пунктуации вне словных
// символов и пробелов, схлопывание пробелов. Тотальная функция: никогда
// не падает, пустое в пустое.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = stripDiacritics(text)
	text = nonWordPattern.ReplaceAllString(text, "")

	return strings.Join(strings.Fields(text), " ")
}

// stripDiacritics раскладывает текст в NFD и удаляет комбинирующие знаки
func stripDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, text)
	if err != nil {
		// Нормализация текста не должна ронять пайплайн
		return text
	}
	return stripped
}

// Tokens возвращает канонические токены текста длиннее двух символов
func Tokens(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	fields := strings.Fields(normalized)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// TokenSet возвращает множество канонических токенов текста
func TokenSet(text string) map[string]bool {
	tokens := Tokens(text)
	if len(tokens) == 0 {
		return nil
	}
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
