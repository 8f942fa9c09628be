package tts

import (
	"context"
	"strings"
	"time"

	"github.com/KRITHIKR007/SIH-ALPHA01/internal/inference"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/screening"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/config"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/errors"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/metrics"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/types"
)

// Words longer than this get syllable spacing in phonics mode.
const phonicsWordLength = 6

// Fallback duration estimate when the model service reports none:
// roughly 0.6 seconds of speech per word at normal speed.
const secondsPerWord = 0.6

// SynthesisClient covers the model-service call the TTS flow needs.
type SynthesisClient interface {
	Synthesize(ctx context.Context, req inference.SynthesisRequest) (*inference.Synthesis, error)
}

// SessionLogger records synthesis requests alongside screening
// sessions. Nil disables logging.
type SessionLogger interface {
	Save(ctx context.Context, s *screening.Session) error
}

// Request asks for accessibility-focused speech audio.
type Request struct {
	Text        string  `json:"text"`
	Speed       float64 `json:"speed,omitempty"`
	PhonicsMode bool    `json:"phonics_mode,omitempty"`
	Language    string  `json:"language,omitempty"`
}

// Settings echoes the effective synthesis options back to the caller.
type Settings struct {
	Speed       float64 `json:"speed"`
	PhonicsMode bool    `json:"phonics_mode"`
	Language    string  `json:"language"`
}

// Result is the synthesis outcome.
type Result struct {
	AudioFilePath string   `json:"audio_file_path"`
	Duration      float64  `json:"duration"`
	SettingsUsed  Settings `json:"settings_used"`
}

// Service renders speech audio with accessibility options.
type Service struct {
	models SynthesisClient
	log    SessionLogger
	cfg    config.TTSConfig
}

// NewService creates a new TTS service
func NewService(models SynthesisClient, log SessionLogger, cfg config.TTSConfig) *Service {
	return &Service{models: models, log: log, cfg: cfg}
}

// Synthesize renders speech audio for the request and logs the session.
func (s *Service) Synthesize(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, errors.Validation("text is required", map[string]string{"text": "required"})
	}

	settings := Settings{
		Speed:       req.Speed,
		PhonicsMode: req.PhonicsMode,
		Language:    req.Language,
	}
	if settings.Speed <= 0 {
		settings.Speed = s.cfg.DefaultSpeed
	}
	if settings.Speed <= 0 {
		settings.Speed = 1.0
	}
	if settings.Language == "" {
		settings.Language = s.cfg.DefaultLanguage
	}

	text := req.Text
	if settings.PhonicsMode {
		text = applyPhonics(text)
	}

	synthesis, err := s.models.Synthesize(ctx, inference.SynthesisRequest{
		Text:     text,
		Language: settings.Language,
		Speed:    settings.Speed,
	})
	if err != nil {
		return nil, errors.Wrap(err, "speech synthesis failed")
	}

	duration := synthesis.DurationSeconds
	if duration <= 0 {
		duration = estimateDuration(req.Text, settings.Speed)
	}

	if s.log != nil {
		session := &screening.Session{
			ID:        types.NewID(),
			Kind:      screening.SessionKindTTS,
			InputText: req.Text,
			AudioPath: synthesis.AudioPath,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.log.Save(ctx, session); err != nil {
			return nil, errors.Wrap(err, "failed to log synthesis session")
		}
	}

	metrics.RecordSynthesis()

	return &Result{
		AudioFilePath: synthesis.AudioPath,
		Duration:      duration,
		SettingsUsed:  settings,
	}, nil
}

// applyPhonics inserts pauses into longer words so learners hear
// syllable-sized chunks.
func applyPhonics(text string) string {
	words := strings.Fields(text)
	out := make([]string, 0, len(words))
	for _, word := range words {
		if len([]rune(word)) > phonicsWordLength {
			out = append(out, spaceChunks(word))
		} else {
			out = append(out, word)
		}
	}
	return strings.Join(out, " ")
}

// spaceChunks inserts a space after every third character, except at
// the word boundary.
func spaceChunks(word string) string {
	runes := []rune(word)
	var b strings.Builder
	for i, r := range runes {
		b.WriteRune(r)
		if i > 0 && i%3 == 0 && i < len(runes)-1 {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func estimateDuration(text string, speed float64) float64 {
	words := len(strings.Fields(text))
	return float64(words) * secondsPerWord / speed
}
