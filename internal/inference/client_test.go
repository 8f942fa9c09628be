package inference

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/transcribe" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}

		file, header, err := r.FormFile("audio")
		if err != nil {
			t.Fatalf("missing audio form file: %v", err)
		}
		defer file.Close()

		if header.Filename != "reading.wav" {
			t.Errorf("unexpected filename %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "wav-bytes" {
			t.Errorf("unexpected file body %q", data)
		}

		json.NewEncoder(w).Encode(Transcription{
			Text:            "the cat sat",
			DurationSeconds: 2.5,
			Language:        "en",
			ModelUsed:       "whisper-base",
		})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	result, err := client.Transcribe(context.Background(), []byte("wav-bytes"), "reading.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "the cat sat" {
		t.Errorf("unexpected text %q", result.Text)
	}
	if result.DurationSeconds != 2.5 {
		t.Errorf("unexpected duration %v", result.DurationSeconds)
	}
}

func TestReadHandwriting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/ocr" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if _, _, err := r.FormFile("image"); err != nil {
			t.Fatalf("missing image form file: %v", err)
		}

		json.NewEncoder(w).Encode(OCRResult{
			Lines: []OCRLine{
				{Text: "I saw a dog", Confidence: 0.91},
				{Text: "the dog ran", Confidence: 0.87},
			},
			ModelUsed: "trocr-handwritten",
		})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	result, err := client.ReadHandwriting(context.Background(), []byte("png-bytes"), "sample.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(result.Lines))
	}
	if result.Lines[0].Confidence != 0.91 {
		t.Errorf("unexpected confidence %v", result.Lines[0].Confidence)
	}
}

func TestSynthesize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}

		var req SynthesisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Text != "hello there" || req.Speed != 1.5 {
			t.Errorf("unexpected request %+v", req)
		}

		json.NewEncoder(w).Encode(Synthesis{
			AudioPath:       "outputs/tts_1.wav",
			DurationSeconds: 1.2,
		})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	result, err := client.Synthesize(context.Background(), SynthesisRequest{
		Text: "hello there", Language: "en", Speed: 1.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AudioPath != "outputs/tts_1.wav" {
		t.Errorf("unexpected audio path %q", result.AudioPath)
	}
}

func TestErrorResponseIncludesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	_, err := client.Transcribe(context.Background(), []byte("wav-bytes"), "reading.wav")
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
	if !strings.Contains(err.Error(), "status 503") || !strings.Contains(err.Error(), "model not loaded") {
		t.Errorf("error should carry status and body, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	client := NewClient(ClientConfig{BaseURL: healthy.URL})
	if err := client.Health(context.Background()); err != nil {
		t.Errorf("expected healthy, got %v", err)
	}

	unhealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer unhealthy.Close()

	client = NewClient(ClientConfig{BaseURL: unhealthy.URL})
	if err := client.Health(context.Background()); err == nil {
		t.Error("expected error for unhealthy service")
	}
}
