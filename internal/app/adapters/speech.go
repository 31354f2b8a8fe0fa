package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/models"
	"github.com/wayfarer-app/wayfarer/internal/pkg/metrics"
)

const (
	speechBaseURL = "http://www.google.com/speech-api/v2"
	speechTimeout = 15 * time.Second
)

// SpeechClient transcribes captured audio through the Google speech
// recognition endpoint. Audio is captured in the browser and uploaded; the
// server never touches a microphone device.
type SpeechClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

func NewSpeechClient(apiKey string, logger *zap.Logger) *SpeechClient {
	return &SpeechClient{
		baseURL: speechBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: speechTimeout},
		logger:  logger,
	}
}

type speechResult struct {
	Result []struct {
		Alternative []struct {
			Transcript string `json:"transcript"`
		} `json:"alternative"`
	} `json:"result"`
}

// Transcribe sends FLAC audio and returns the best transcript. A response
// with no transcript maps to models.ErrUnrecognizedSpeech; transport failures
// map to models.ErrServiceUnavailable. Callers show a per-kind message and
// keep the session alive.
func (s *SpeechClient) Transcribe(ctx context.Context, audio []byte, sampleRate int) (string, error) {
	l := s.logger.With(zap.String("method", "Transcribe"), zap.Int("bytes", len(audio)))

	q := url.Values{}
	q.Set("output", "json")
	q.Set("lang", "en-US")
	q.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/recognize?"+q.Encode(), bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("building speech request: %w", err)
	}
	req.Header.Set("Content-Type", fmt.Sprintf("audio/x-flac; rate=%d", sampleRate))

	resp, err := s.client.Do(req)
	metrics.ObserveAdapter("speech", err)
	if err != nil {
		l.Error("Speech request failed", zap.Error(err))
		return "", fmt.Errorf("speech request failed: %w", models.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.Error("Speech service returned non-200", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("speech service status %d: %w", resp.StatusCode, models.ErrServiceUnavailable)
	}

	// The endpoint streams one JSON document per line; the first line with a
	// non-empty result carries the transcript.
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return "", fmt.Errorf("reading speech response: %w", models.ErrServiceUnavailable)
	}

	for _, line := range strings.Split(buf.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var parsed speechResult
		if err := json.Unmarshal([]byte(line), &parsed); err != nil {
			continue
		}
		for _, r := range parsed.Result {
			if len(r.Alternative) > 0 && r.Alternative[0].Transcript != "" {
				return r.Alternative[0].Transcript, nil
			}
		}
	}

	return "", fmt.Errorf("no transcript in speech response: %w", models.ErrUnrecognizedSpeech)
}
