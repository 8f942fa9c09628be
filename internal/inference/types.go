package inference

// Transcription is the speech-to-text result returned by the model
// service.
type Transcription struct {
	Text            string  `json:"text"`
	DurationSeconds float64 `json:"duration_seconds"`
	Language        string  `json:"language,omitempty"`
	ModelUsed       string  `json:"model_used,omitempty"`
}

// OCRLine is one recognized line of handwriting with the model's own
// recognition confidence.
type OCRLine struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// OCRResult is the handwriting recognition result.
type OCRResult struct {
	Lines            []OCRLine `json:"lines"`
	ModelUsed        string    `json:"model_used,omitempty"`
	ProcessingTimeMs int       `json:"processing_time_ms,omitempty"`
}

// SynthesisRequest asks the model service to render speech audio.
type SynthesisRequest struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Speed    float64 `json:"speed,omitempty"`
}

// Synthesis is the text-to-speech result.
type Synthesis struct {
	AudioPath       string  `json:"audio_file_path"`
	DurationSeconds float64 `json:"duration_seconds"`
	ModelUsed       string  `json:"model_used,omitempty"`
}
