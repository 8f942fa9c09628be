package analysis

// Modality identifies one independent channel of screening evidence.
type Modality string

const (
	ModalityText        Modality = "text"
	ModalitySpeech      Modality = "speech"
	ModalityHandwriting Modality = "handwriting"
)

// priority defines the fixed merge order for recommendations:
// text first, then speech, then handwriting.
func (m Modality) priority() int {
	switch m {
	case ModalityText:
		return 0
	case ModalitySpeech:
		return 1
	case ModalityHandwriting:
		return 2
	default:
		return 3
	}
}

// ReversalKind distinguishes single-letter mirror confusions from
// whole-word reversals.
type ReversalKind string

const (
	ReversalLetter ReversalKind = "letter"
	ReversalWord   ReversalKind = "word"
)

// Reversal is one detected letter or word reversal.
type Reversal struct {
	Detected string       `json:"detected"`
	Expected string       `json:"expected"`
	Kind     ReversalKind `json:"kind"`
}

// TextDetails carries the text-modality metrics.
type TextDetails struct {
	WordCount         int        `json:"word_count"`
	AverageWordLength float64    `json:"average_word_length"`
	ComplexWords      int        `json:"complex_words_count"`
	Reversals         []Reversal `json:"reversals_detected,omitempty"`
	SpellingPatterns  []string   `json:"spelling_patterns,omitempty"`
}

// SpeechDetails carries the speech-modality metrics.
type SpeechDetails struct {
	Transcript      string  `json:"transcribed_text"`
	DurationSeconds float64 `json:"audio_duration"`
	WordsPerMinute  float64 `json:"reading_speed_wpm"`
	Accuracy        float64 `json:"accuracy_score"`
}

// HandwritingDetails carries the handwriting-modality metrics.
type HandwritingDetails struct {
	ExtractedText string     `json:"extracted_text"`
	Clarity       float64    `json:"writing_clarity_score"`
	Reversals     []Reversal `json:"letter_reversals,omitempty"`
}

// ModalityResult is the outcome of analyzing one modality. Exactly one
// of the detail fields is set, matching the Modality tag.
type ModalityResult struct {
	Modality        Modality `json:"modality"`
	Confidence      float64  `json:"confidence"`
	Indicators      []string `json:"indicators,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`

	Text        *TextDetails        `json:"text_analysis,omitempty"`
	Speech      *SpeechDetails      `json:"speech_analysis,omitempty"`
	Handwriting *HandwritingDetails `json:"handwriting_analysis,omitempty"`
}

// RiskLevel is the categorical bucket derived from the confidence score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Report is the aggregate screening outcome.
type Report struct {
	ConfidenceScore float64   `json:"confidence_score"`
	RiskLevel       RiskLevel `json:"risk_level"`
	Recommendations []string  `json:"recommendations"`
	Summary         string    `json:"summary"`
}
