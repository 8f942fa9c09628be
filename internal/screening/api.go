package screening

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KRITHIKR007/SIH-ALPHA01/internal/analysis"
	apperrors "github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/errors"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/types"
)

const maxMultipartMemory = 32 << 20

// Handler provides HTTP handlers for the screening module
type Handler struct {
	svc *Service
}

// NewHandler creates a new screening handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Routes registers the screening routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateScreening)
	r.Get("/{sessionID}", h.GetScreening)

	return r
}

// ScreeningResponse is the API shape of a completed screening
type ScreeningResponse struct {
	SessionID       string                    `json:"session_id"`
	ConfidenceScore float64                   `json:"confidence_score"`
	RiskLevel       analysis.RiskLevel        `json:"risk_level"`
	Recommendations []string                  `json:"recommendations"`
	Summary         string                    `json:"summary"`
	Results         []analysis.ModalityResult `json:"analysis"`
}

// CreateScreening accepts a multipart form with optional text, audio
// and handwriting fields and runs the screening flow
func (h *Handler) CreateScreening(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, apperrors.BadRequest("expected multipart form: "+err.Error()))
		return
	}

	in := ScreenInput{
		Text: r.FormValue("text"),
	}

	audio, err := readFormFile(r, "audio")
	if err != nil {
		writeError(w, err)
		return
	}
	in.Audio = audio

	handwriting, err := readFormFile(r, "handwriting")
	if err != nil {
		writeError(w, err)
		return
	}
	in.Handwriting = handwriting

	session, err := h.svc.Screen(r.Context(), in)
	if errors.Is(err, analysis.ErrInsufficientInput) {
		writeError(w, apperrors.BadRequest("at least one of text, audio or handwriting must be provided"))
		return
	}
	if err != nil {
		writeError(w, apperrors.Wrap(err, "screening failed"))
		return
	}

	writeJSON(w, http.StatusOK, ScreeningResponse{
		SessionID:       session.ID.String(),
		ConfidenceScore: *session.ConfidenceScore,
		RiskLevel:       session.RiskLevel,
		Recommendations: session.Recommendations,
		Summary:         session.Summary,
		Results:         session.Results,
	})
}

// GetScreening fetches a stored session
func (h *Handler) GetScreening(w http.ResponseWriter, r *http.Request) {
	id, err := types.ParseID(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, apperrors.BadRequest("invalid session ID"))
		return
	}

	session, err := h.svc.GetSession(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func readFormFile(r *http.Request, field string) (*FileInput, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.BadRequest("invalid " + field + " upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.BadRequest("failed to read " + field + " upload")
	}

	return &FileInput{Data: data, Filename: header.Filename}, nil
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		w.WriteHeader(appErr.HTTPStatus)
		json.NewEncoder(w).Encode(map[string]any{
			"error":   appErr.Message,
			"code":    appErr.Code,
			"details": appErr.Details,
		})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
}
