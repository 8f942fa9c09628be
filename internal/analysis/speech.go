package analysis

import (
	"fmt"
	"strings"

	"github.com/KRITHIKR007/SIH-ALPHA01/internal/inference"
)

const (
	fluentWordsPerMinute = 100
	accurateReadingScore = 0.8
)

// SpeechAnalyzer scores a reading-aloud recording for fluency and
// accuracy against the expected passage.
type SpeechAnalyzer struct{}

// Analyze derives fluency metrics from a transcription. expectedText is
// the passage the reader was asked to read; when empty, accuracy is not
// assessed and counts as accurate.
func (SpeechAnalyzer) Analyze(t *inference.Transcription, expectedText string) ModalityResult {
	words := strings.Fields(t.Text)

	var wpm float64
	if t.DurationSeconds > 0 {
		wpm = float64(len(words)) / (t.DurationSeconds / 60)
	}

	accuracy := 1.0
	if expectedText != "" {
		accuracy = tokenOverlap(t.Text, expectedText)
	}

	slow := wpm < fluentWordsPerMinute
	inaccurate := accuracy < accurateReadingScore

	confidence := 0.3
	if slow || inaccurate {
		confidence = 0.6
	}

	var indicators []string
	if slow {
		indicators = append(indicators, fmt.Sprintf("reading speed %.0f wpm below fluency threshold", wpm))
	}
	if inaccurate {
		indicators = append(indicators, fmt.Sprintf("reading accuracy %.2f below expected passage match", accuracy))
	}

	var recommendations []string
	if slow {
		recommendations = append(recommendations, "Practice reading fluency exercises")
	}
	if inaccurate {
		recommendations = append(recommendations, "Work on word recognition and pronunciation")
	}

	return ModalityResult{
		Modality:        ModalitySpeech,
		Confidence:      confidence,
		Indicators:      indicators,
		Recommendations: recommendations,
		Speech: &SpeechDetails{
			Transcript:      t.Text,
			DurationSeconds: t.DurationSeconds,
			WordsPerMinute:  wpm,
			Accuracy:        accuracy,
		},
	}
}

// tokenOverlap computes the Jaccard similarity of the two texts' word
// sets.
func tokenOverlap(a, b string) float64 {
	setA := tokenSet(strings.ToLower(a))
	setB := tokenSet(strings.ToLower(b))

	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}

	common := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			common++
		}
	}
	union := len(setA) + len(setB) - common
	if union == 0 {
		return 0
	}
	return float64(common) / float64(union)
}
