package analysis

import (
	"fmt"
	"strings"
)

// reversalPairs lists mirror-letter confusions and whole-word reversals
// commonly associated with dyslexia. The detected form on the right is
// what appears in the writing when the left form was intended.
var reversalPairs = []Reversal{
	{Expected: "b", Detected: "d", Kind: ReversalLetter},
	{Expected: "p", Detected: "q", Kind: ReversalLetter},
	{Expected: "m", Detected: "w", Kind: ReversalLetter},
	{Expected: "n", Detected: "u", Kind: ReversalLetter},
	{Expected: "was", Detected: "saw", Kind: ReversalWord},
	{Expected: "on", Detected: "no", Kind: ReversalWord},
	{Expected: "left", Detected: "felt", Kind: ReversalWord},
}

const complexWordLength = 7

// TextAnalyzer scores free text for dyslexia-associated patterns.
type TextAnalyzer struct{}

// Analyze runs the text heuristics and produces a modality result.
func (TextAnalyzer) Analyze(text string) ModalityResult {
	words := strings.Fields(text)
	wordCount := len(words)

	var totalLen, complexWords int
	for _, w := range words {
		totalLen += len(w)
		if len(w) > complexWordLength {
			complexWords++
		}
	}

	var avgWordLength float64
	if wordCount > 0 {
		avgWordLength = float64(totalLen) / float64(wordCount)
	}

	reversals := detectReversals(text)
	patterns := detectSpellingPatterns(words)

	confidence := 0.3
	if len(reversals) > 0 || len(patterns) > 0 {
		confidence = 0.7
	}

	var indicators []string
	for _, r := range reversals {
		indicators = append(indicators, fmt.Sprintf("%s reversal: %q for %q", r.Kind, r.Detected, r.Expected))
	}
	indicators = append(indicators, patterns...)

	var recommendations []string
	if len(reversals) > 0 {
		recommendations = append(recommendations, "Consider visual processing exercises for letter reversals")
	}
	if wordCount > 0 && avgWordLength < 4 {
		recommendations = append(recommendations, "Encourage reading materials with varied vocabulary")
	}

	return ModalityResult{
		Modality:        ModalityText,
		Confidence:      confidence,
		Indicators:      indicators,
		Recommendations: recommendations,
		Text: &TextDetails{
			WordCount:         wordCount,
			AverageWordLength: avgWordLength,
			ComplexWords:      complexWords,
			Reversals:         reversals,
			SpellingPatterns:  patterns,
		},
	}
}

// detectReversals scans text for the known reversal forms. Letter
// reversals match anywhere; word reversals match whole tokens only.
func detectReversals(text string) []Reversal {
	lower := strings.ToLower(text)
	tokens := tokenSet(lower)

	var found []Reversal
	for _, pair := range reversalPairs {
		switch pair.Kind {
		case ReversalLetter:
			if strings.Contains(lower, pair.Detected) {
				found = append(found, pair)
			}
		case ReversalWord:
			if _, ok := tokens[pair.Detected]; ok {
				found = append(found, pair)
			}
		}
	}
	return found
}

// detectSpellingPatterns flags words whose letters repeat heavily, a
// rough proxy for the doubled-letter spellings seen in dyslexic writing.
func detectSpellingPatterns(words []string) []string {
	var patterns []string
	for _, word := range words {
		w := strings.ToLower(word)
		distinct := make(map[rune]struct{}, len(w))
		runes := 0
		for _, r := range w {
			distinct[r] = struct{}{}
			runes++
		}
		if runes > 1 && float64(len(distinct)) < float64(runes)*0.5 {
			patterns = append(patterns, fmt.Sprintf("possible doubled letters in %q", word))
		}
	}
	return patterns
}

func tokenSet(lower string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		set[tok] = struct{}{}
	}
	return set
}
