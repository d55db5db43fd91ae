package normalization

import "strings"

// TokenSimilarity вычисляет индекс Жаккара между двумя текстами.
// Индекс Жаккара = |A ∩ B| / |A ∪ B| над множествами канонических токенов.
// Значение от 0.0 (нет общих токенов) до 1.0 (канонически идентичные тексты).
func TokenSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	na := Normalize(a)
	nb := Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}

	setA := TokenSet(na)
	setB := TokenSet(nb)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if setB[token] {
			intersection++
		}
	}

	union := len(setA)
	for token := range setB {
		if !setA[token] {
			union++
		}
	}

	return float64(intersection) / float64(union)
}

// NameSimilarity вычисляет сходство двух имён упражнений.
// Канонически равные имена дают 1.0; вложение одного имени в другое —
// отношение длин (короткое к длинному); иначе доля общих токенов от
// большего списка. Применимо в любом порядке аргументов.
func NameSimilarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)

	if na == nb {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0
	}

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		shorter := len(na)
		longer := len(nb)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter) / float64(longer)
	}

	tokensA := Tokens(na)
	tokensB := Tokens(nb)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	setB := make(map[string]bool, len(tokensB))
	for _, t := range tokensB {
		setB[t] = true
	}

	common := 0
	for _, t := range tokensA {
		if setB[t] {
			common++
		}
	}

	total := len(tokensA)
	if len(tokensB) > total {
		total = len(tokensB)
	}

	return float64(common) / float64(total)
}
