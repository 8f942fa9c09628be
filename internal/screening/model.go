package screening

import (
	"time"

	"github.com/KRITHIKR007/SIH-ALPHA01/internal/analysis"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/types"
)

// SessionKind separates screening sessions from logged synthesis
// requests; both live in the same table.
type SessionKind string

const (
	SessionKindScreening SessionKind = "screening"
	SessionKindTTS       SessionKind = "tts"
)

// Session is one recorded interaction with the platform.
type Session struct {
	ID   types.ID    `json:"id"`
	Kind SessionKind `json:"kind"`

	// Input metadata. Uploaded files are stored on disk; the session
	// keeps their path and content hash.
	InputText string `json:"input_text,omitempty"`
	AudioPath string `json:"audio_path,omitempty"`
	AudioHash string `json:"audio_hash,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
	ImageHash string `json:"image_hash,omitempty"`

	// Screening outcome. Nil confidence for TTS sessions.
	Results         []analysis.ModalityResult `json:"results,omitempty"`
	ConfidenceScore *float64                  `json:"confidence_score,omitempty"`
	RiskLevel       analysis.RiskLevel        `json:"risk_level,omitempty"`
	Recommendations []string                  `json:"recommendations,omitempty"`
	Summary         string                    `json:"summary,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Stats summarizes stored sessions for the admin dashboard.
type Stats struct {
	TotalSessions          int64   `json:"total_sessions"`
	AverageConfidenceScore float64 `json:"average_confidence_score"`
	SessionsToday          int64   `json:"sessions_today"`
}
