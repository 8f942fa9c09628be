package upload

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/config"
)

// StoredFile describes a persisted upload.
type StoredFile struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

// Store persists uploaded files under a single directory with generated
// names. Only the extension of the client filename is kept.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore creates the upload directory if needed
func NewStore(cfg config.UploadConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &Store{
		dir:      cfg.Dir,
		maxBytes: cfg.MaxBytes,
	}, nil
}

// Save writes the upload to disk, returning its path, size and SHA-256.
// Fails when the content exceeds the configured size limit.
func (s *Store) Save(r io.Reader, filename string) (*StoredFile, error) {
	name := uuid.New().String() + sanitizeExt(filename)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	hash := sha256.New()
	limited := io.LimitReader(r, s.maxBytes+1)

	size, err := io.Copy(io.MultiWriter(f, hash), limited)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}
	if size > s.maxBytes {
		os.Remove(path)
		return nil, fmt.Errorf("upload exceeds maximum size of %d bytes", s.maxBytes)
	}

	return &StoredFile{
		Path:   path,
		Size:   size,
		SHA256: hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

// sanitizeExt keeps a short, lowercase extension and discards anything
// else from the client-supplied filename.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) < 2 || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') {
			return ""
		}
	}
	return ext
}
