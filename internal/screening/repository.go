package screening

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KRITHIKR007/SIH-ALPHA01/internal/analysis"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/errors"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/metrics"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/types"
)

// Repository provides database operations for sessions
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new session repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Save saves a new session
func (r *Repository) Save(ctx context.Context, s *Session) error {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("session_save", time.Since(start)) }()

	results, err := json.Marshal(s.Results)
	if err != nil {
		return errors.Wrap(err, "failed to encode results")
	}
	recommendations, err := json.Marshal(s.Recommendations)
	if err != nil {
		return errors.Wrap(err, "failed to encode recommendations")
	}

	query := `
		INSERT INTO screening.sessions (
			id, kind, input_text,
			audio_path, audio_hash, image_path, image_hash,
			results, confidence_score, risk_level, recommendations, summary,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = r.pool.Exec(ctx, query,
		s.ID, s.Kind, nullable(s.InputText),
		nullable(s.AudioPath), nullable(s.AudioHash), nullable(s.ImagePath), nullable(s.ImageHash),
		results, s.ConfidenceScore, nullable(string(s.RiskLevel)), recommendations, nullable(s.Summary),
		s.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to save session")
	}

	return nil
}

// FindByID finds a session by ID
func (r *Repository) FindByID(ctx context.Context, id types.ID) (*Session, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("session_find", time.Since(start)) }()

	query := selectColumns + ` WHERE id = $1`

	s, err := scanSession(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, errors.NotFound("session", id.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find session")
	}
	return s, nil
}

// List returns the most recent sessions
func (r *Repository) List(ctx context.Context, limit int) ([]Session, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("session_list", time.Since(start)) }()

	query := selectColumns + ` ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions")
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan session")
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read sessions")
	}

	return sessions, nil
}

// DeleteAll removes every session, returning the count removed
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("session_delete_all", time.Since(start)) }()

	tag, err := r.pool.Exec(ctx, `DELETE FROM screening.sessions`)
	if err != nil {
		return 0, errors.Wrap(err, "failed to clear sessions")
	}
	return tag.RowsAffected(), nil
}

// Stats computes aggregate statistics over stored sessions
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("session_stats", time.Since(start)) }()

	query := `
		SELECT
			COUNT(*),
			COALESCE(AVG(confidence_score), 0),
			COUNT(*) FILTER (WHERE created_at >= date_trunc('day', NOW()))
		FROM screening.sessions`

	stats := &Stats{}
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalSessions,
		&stats.AverageConfidenceScore,
		&stats.SessionsToday,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute stats")
	}
	return stats, nil
}

const selectColumns = `
	SELECT id, kind, input_text,
		audio_path, audio_hash, image_path, image_hash,
		results, confidence_score, risk_level, recommendations, summary,
		created_at
	FROM screening.sessions`

func scanSession(row pgx.Row) (*Session, error) {
	s := &Session{}
	var (
		inputText, audioPath, audioHash, imagePath, imageHash *string
		riskLevel, summary                                    *string
		results, recommendations                              []byte
	)

	err := row.Scan(
		&s.ID, &s.Kind, &inputText,
		&audioPath, &audioHash, &imagePath, &imageHash,
		&results, &s.ConfidenceScore, &riskLevel, &recommendations, &summary,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.InputText = deref(inputText)
	s.AudioPath = deref(audioPath)
	s.AudioHash = deref(audioHash)
	s.ImagePath = deref(imagePath)
	s.ImageHash = deref(imageHash)
	s.RiskLevel = analysis.RiskLevel(deref(riskLevel))
	s.Summary = deref(summary)

	if len(results) > 0 {
		if err := json.Unmarshal(results, &s.Results); err != nil {
			return nil, err
		}
	}
	if len(recommendations) > 0 {
		if err := json.Unmarshal(recommendations, &s.Recommendations); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
