package analysis

import (
	"strings"
	"testing"
)

func TestTextAnalyzerCleanSample(t *testing.T) {
	res := TextAnalyzer{}.Analyze("the cat ate big fish")

	if res.Modality != ModalityText {
		t.Errorf("expected text modality, got %s", res.Modality)
	}
	if res.Confidence != 0.3 {
		t.Errorf("expected confidence 0.3 for clean sample, got %v", res.Confidence)
	}
	if res.Text == nil {
		t.Fatal("expected text details")
	}
	if res.Text.WordCount != 5 {
		t.Errorf("expected 5 words, got %d", res.Text.WordCount)
	}
	if len(res.Text.Reversals) != 0 {
		t.Errorf("expected no reversals, got %v", res.Text.Reversals)
	}

	// Short average word length should still produce a vocabulary hint.
	found := false
	for _, rec := range res.Recommendations {
		if strings.Contains(rec, "varied vocabulary") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected vocabulary recommendation, got %v", res.Recommendations)
	}
}

func TestTextAnalyzerDetectsWordReversal(t *testing.T) {
	res := TextAnalyzer{}.Analyze("I saw a big cat")

	if res.Confidence != 0.7 {
		t.Errorf("expected confidence 0.7 with reversals, got %v", res.Confidence)
	}

	foundSaw := false
	for _, r := range res.Text.Reversals {
		if r.Detected == "saw" && r.Expected == "was" && r.Kind == ReversalWord {
			foundSaw = true
		}
	}
	if !foundSaw {
		t.Errorf("expected was/saw reversal, got %v", res.Text.Reversals)
	}

	foundRec := false
	for _, rec := range res.Recommendations {
		if rec == "Consider visual processing exercises for letter reversals" {
			foundRec = true
		}
	}
	if !foundRec {
		t.Errorf("expected reversal recommendation, got %v", res.Recommendations)
	}
}

func TestTextAnalyzerWordReversalNeedsWholeToken(t *testing.T) {
	// "nose" contains "no" as a substring but is not the reversed word.
	res := TextAnalyzer{}.Analyze("the rose has a nose")

	for _, r := range res.Text.Reversals {
		if r.Detected == "no" {
			t.Errorf("substring should not match word reversal: %v", r)
		}
	}
}

func TestTextAnalyzerDetectsSpellingPatterns(t *testing.T) {
	res := TextAnalyzer{}.Analyze("mississippi")

	if len(res.Text.SpellingPatterns) == 0 {
		t.Fatal("expected a doubled-letter pattern")
	}
	if !strings.Contains(res.Text.SpellingPatterns[0], "mississippi") {
		t.Errorf("pattern should name the word, got %q", res.Text.SpellingPatterns[0])
	}
	if res.Confidence != 0.7 {
		t.Errorf("expected confidence 0.7 with spelling patterns, got %v", res.Confidence)
	}
	if res.Text.ComplexWords != 1 {
		t.Errorf("expected one complex word, got %d", res.Text.ComplexWords)
	}
}

func TestTextAnalyzerEmptyInput(t *testing.T) {
	res := TextAnalyzer{}.Analyze("")

	if res.Text.WordCount != 0 {
		t.Errorf("expected zero words, got %d", res.Text.WordCount)
	}
	if res.Text.AverageWordLength != 0 {
		t.Errorf("expected zero average length, got %v", res.Text.AverageWordLength)
	}
	if res.Confidence != 0.3 {
		t.Errorf("expected baseline confidence, got %v", res.Confidence)
	}
	if len(res.Recommendations) != 0 {
		t.Errorf("empty input should not produce recommendations, got %v", res.Recommendations)
	}
}
