package screening

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/KRITHIKR007/SIH-ALPHA01/internal/analysis"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/inference"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/errors"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/events"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/metrics"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/types"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/upload"
)

// EventScreeningCompleted is published after a screening session is
// aggregated and persisted.
const EventScreeningCompleted = "screening.completed"

// InferenceClient covers the model-service calls the screening flow
// needs.
type InferenceClient interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (*inference.Transcription, error)
	ReadHandwriting(ctx context.Context, image []byte, filename string) (*inference.OCRResult, error)
}

// SessionStore covers the persistence the screening flow needs. A nil
// store runs the platform in non-persistent mode.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	FindByID(ctx context.Context, id types.ID) (*Session, error)
}

// FileStore persists raw uploads.
type FileStore interface {
	Save(r io.Reader, filename string) (*upload.StoredFile, error)
}

// FileInput is one uploaded file.
type FileInput struct {
	Data     []byte
	Filename string
}

// ScreenInput carries the optional per-modality inputs. Each modality
// is independent; any non-empty subset is accepted.
type ScreenInput struct {
	Text        string
	Audio       *FileInput
	Handwriting *FileInput
}

// Service runs the screening flow: store uploads, invoke the
// per-modality analyzers, aggregate, persist.
type Service struct {
	store       SessionStore
	files       FileStore
	models      InferenceClient
	bus         *events.Bus
	text        analysis.TextAnalyzer
	speech      analysis.SpeechAnalyzer
	handwriting analysis.HandwritingAnalyzer
}

// NewService creates a new screening service
func NewService(store SessionStore, files FileStore, models InferenceClient, bus *events.Bus) *Service {
	return &Service{
		store:  store,
		files:  files,
		models: models,
		bus:    bus,
	}
}

// Screen runs all supplied modalities and returns the persisted
// session. Returns analysis.ErrInsufficientInput when no modality is
// supplied.
func (s *Service) Screen(ctx context.Context, in ScreenInput) (*Session, error) {
	if in.Text == "" && in.Audio == nil && in.Handwriting == nil {
		return nil, analysis.ErrInsufficientInput
	}

	session := &Session{
		ID:        types.NewID(),
		Kind:      SessionKindScreening,
		InputText: in.Text,
		CreatedAt: time.Now().UTC(),
	}

	var results []analysis.ModalityResult

	if in.Text != "" {
		start := time.Now()
		result := s.text.Analyze(in.Text)
		metrics.RecordAnalyzer(string(analysis.ModalityText), time.Since(start), nil)
		results = append(results, result)
	}

	if in.Audio != nil {
		result, err := s.analyzeAudio(ctx, session, in)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	if in.Handwriting != nil {
		result, err := s.analyzeHandwriting(ctx, session, in.Handwriting)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	report, err := analysis.Aggregate(results)
	if err != nil {
		return nil, err
	}

	session.Results = results
	session.ConfidenceScore = &report.ConfidenceScore
	session.RiskLevel = report.RiskLevel
	session.Recommendations = report.Recommendations
	session.Summary = report.Summary

	if s.store != nil {
		if err := s.store.Save(ctx, session); err != nil {
			return nil, errors.Wrap(err, "failed to persist session")
		}
	}

	metrics.RecordScreening(string(report.RiskLevel), report.ConfidenceScore)

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewEvent(EventScreeningCompleted, "screening-service", map[string]any{
			"session_id":       session.ID.String(),
			"risk_level":       report.RiskLevel,
			"confidence_score": report.ConfidenceScore,
			"modalities":       len(results),
		}))
	}

	return session, nil
}

// GetSession fetches a stored session by ID
func (s *Service) GetSession(ctx context.Context, id types.ID) (*Session, error) {
	if s.store == nil {
		return nil, errors.NotFound("session", id.String())
	}
	return s.store.FindByID(ctx, id)
}

func (s *Service) analyzeAudio(ctx context.Context, session *Session, in ScreenInput) (*analysis.ModalityResult, error) {
	stored, err := s.files.Save(bytes.NewReader(in.Audio.Data), in.Audio.Filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store audio upload")
	}
	session.AudioPath = stored.Path
	session.AudioHash = stored.SHA256

	start := time.Now()
	transcription, err := s.models.Transcribe(ctx, in.Audio.Data, in.Audio.Filename)
	if err != nil {
		metrics.RecordAnalyzer(string(analysis.ModalitySpeech), time.Since(start), err)
		return nil, errors.Wrap(err, "speech analysis failed")
	}

	// The typed passage, when present, doubles as the expected text for
	// the reading-accuracy comparison.
	result := s.speech.Analyze(transcription, in.Text)
	metrics.RecordAnalyzer(string(analysis.ModalitySpeech), time.Since(start), nil)
	return &result, nil
}

func (s *Service) analyzeHandwriting(ctx context.Context, session *Session, file *FileInput) (*analysis.ModalityResult, error) {
	stored, err := s.files.Save(bytes.NewReader(file.Data), file.Filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store handwriting upload")
	}
	session.ImagePath = stored.Path
	session.ImageHash = stored.SHA256

	start := time.Now()
	ocr, err := s.models.ReadHandwriting(ctx, file.Data, file.Filename)
	if err != nil {
		metrics.RecordAnalyzer(string(analysis.ModalityHandwriting), time.Since(start), err)
		return nil, errors.Wrap(err, "handwriting analysis failed")
	}

	result := s.handwriting.Analyze(ocr)
	metrics.RecordAnalyzer(string(analysis.ModalityHandwriting), time.Since(start), nil)
	return &result, nil
}
