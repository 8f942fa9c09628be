package analysis

import (
	"fmt"
	"strings"

	"github.com/KRITHIKR007/SIH-ALPHA01/internal/inference"
)

const legibleClarityScore = 0.7

// HandwritingAnalyzer scores OCR output of a handwriting sample.
type HandwritingAnalyzer struct{}

// Analyze derives reversal and clarity metrics from an OCR result.
// Clarity is the mean per-line recognition confidence: shaky letter
// formation drives OCR confidence down.
func (HandwritingAnalyzer) Analyze(ocr *inference.OCRResult) ModalityResult {
	var lines []string
	var claritySum float64
	for _, line := range ocr.Lines {
		lines = append(lines, line.Text)
		claritySum += line.Confidence
	}
	extracted := strings.Join(lines, "\n")

	var clarity float64
	if len(ocr.Lines) > 0 {
		clarity = claritySum / float64(len(ocr.Lines))
	}

	reversals := detectReversals(extracted)

	confidence := 0.4
	if len(reversals) > 0 {
		confidence = 0.8
	}

	var indicators []string
	for _, r := range reversals {
		indicators = append(indicators, fmt.Sprintf("%s reversal in handwriting: %q for %q", r.Kind, r.Detected, r.Expected))
	}
	if clarity < legibleClarityScore {
		indicators = append(indicators, fmt.Sprintf("writing clarity %.2f below legibility threshold", clarity))
	}

	var recommendations []string
	if len(reversals) > 0 {
		recommendations = append(recommendations, "Practice letter formation exercises")
	}
	if clarity < legibleClarityScore {
		recommendations = append(recommendations, "Work on handwriting clarity and spacing")
	}

	return ModalityResult{
		Modality:        ModalityHandwriting,
		Confidence:      confidence,
		Indicators:      indicators,
		Recommendations: recommendations,
		Handwriting: &HandwritingDetails{
			ExtractedText: extracted,
			Clarity:       clarity,
			Reversals:     reversals,
		},
	}
}
