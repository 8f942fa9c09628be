package analysis

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInsufficientInput is returned when no modality result is supplied.
var ErrInsufficientInput = errors.New("at least one modality result is required")

// Risk thresholds. A score of exactly 0.4 or 0.7 falls toward the lower
// label, i.e. both boundaries are medium.
const (
	riskMediumThreshold = 0.4
	riskHighThreshold   = 0.7
)

// generalRecommendations close out every medium- and high-risk report.
var generalRecommendations = []string{
	"Consider consultation with a learning specialist",
	"Implement multi-sensory learning approaches",
	"Consider assistive technology tools",
	"Break complex tasks into smaller steps",
}

// Aggregate combines the available per-modality results into one
// screening report. Absent modalities are excluded from the average,
// not treated as zero. Deterministic and side-effect free.
func Aggregate(results []ModalityResult) (*Report, error) {
	if len(results) == 0 {
		return nil, ErrInsufficientInput
	}

	ordered := make([]ModalityResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Modality.priority() < ordered[j].Modality.priority()
	})

	var sum float64
	for _, r := range ordered {
		sum += r.Confidence
	}
	score := clamp01(sum / float64(len(ordered)))

	risk := riskFor(score)

	recommendations := mergeRecommendations(ordered)
	if risk != RiskLow {
		recommendations = appendUnique(recommendations, generalRecommendations...)
	}

	return &Report{
		ConfidenceScore: score,
		RiskLevel:       risk,
		Recommendations: recommendations,
		Summary: fmt.Sprintf(
			"Screening indicates %s likelihood of dyslexia indicators (confidence: %.2f)",
			risk, score,
		),
	}, nil
}

// riskFor maps a confidence score to a risk level. Monotonic
// non-decreasing in the score.
func riskFor(score float64) RiskLevel {
	switch {
	case score > riskHighThreshold:
		return RiskHigh
	case score >= riskMediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// mergeRecommendations merges per-modality recommendations in priority
// order, deduplicating by exact string match and keeping the first
// occurrence.
func mergeRecommendations(ordered []ModalityResult) []string {
	merged := make([]string, 0)
	for _, r := range ordered {
		merged = appendUnique(merged, r.Recommendations...)
	}
	return merged
}

func appendUnique(dst []string, items ...string) []string {
	seen := make(map[string]struct{}, len(dst)+len(items))
	for _, s := range dst {
		seen[s] = struct{}{}
	}
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		dst = append(dst, s)
	}
	return dst
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
