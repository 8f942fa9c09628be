package upload

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"
	"testing"

	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/config"
)

func newTestStore(t *testing.T, maxBytes int64) *Store {
	t.Helper()

	store, err := NewStore(config.UploadConfig{
		Dir:      t.TempDir(),
		MaxBytes: maxBytes,
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestSaveWritesFileWithHash(t *testing.T) {
	store := newTestStore(t, 1024)

	content := "spoken passage audio bytes"
	stored, err := store.Save(strings.NewReader(content), "recording.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.Size != int64(len(content)) {
		t.Errorf("expected size %d, got %d", len(content), stored.Size)
	}

	sum := sha256.Sum256([]byte(content))
	if stored.SHA256 != hex.EncodeToString(sum[:]) {
		t.Errorf("hash mismatch: %s", stored.SHA256)
	}

	if !strings.HasSuffix(stored.Path, ".wav") {
		t.Errorf("expected .wav extension, got %s", stored.Path)
	}

	data, err := os.ReadFile(stored.Path)
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if string(data) != content {
		t.Error("stored content mismatch")
	}
}

func TestSaveRejectsOversizedUpload(t *testing.T) {
	store := newTestStore(t, 8)

	_, err := store.Save(strings.NewReader("well over eight bytes"), "big.png")
	if err == nil {
		t.Fatal("expected error for oversized upload")
	}
	if !strings.Contains(err.Error(), "maximum size") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSanitizeExt(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"audio.WAV", ".wav"},
		{"image.png", ".png"},
		{"noext", ""},
		{"../../etc/passwd", ""},
		{"weird.ex!t", ""},
		{"long.extension1", ""},
	}

	for _, tt := range tests {
		if got := sanitizeExt(tt.filename); got != tt.want {
			t.Errorf("sanitizeExt(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
