package services

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mohitcdry/automatic-recruitment-system/internal/config"
)

// SpeechService wraps the hosted speech REST endpoints: text-to-speech for
// interviewer questions and speech-to-text for candidate answers.
type SpeechService interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Recognize(ctx context.Context, audio []byte, contentType string) (string, error)
}

const (
	ttsOutputFormat = "audio-16khz-128kbitrate-mono-mp3"
	sttProfanity    = "masked"
)

type speechService struct {
	apiKey     string
	region     string
	voice      string
	language   string
	httpClient *http.Client
	log        *zap.Logger
}

func NewSpeechService(cfg config.SpeechConfig, log *zap.Logger) (SpeechService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("speech api key is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("speech region is required")
	}

	return &speechService{
		apiKey:   cfg.APIKey,
		region:   cfg.Region,
		voice:    cfg.Voice,
		language: cfg.Language,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}, nil
}

func (s *speechService) ttsEndpoint() string {
	return fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", s.region)
}

func (s *speechService) sttEndpoint() string {
	return fmt.Sprintf(
		"https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1?language=%s&profanity=%s",
		s.region, s.language, sttProfanity,
	)
}

// Synthesize implements SpeechService. Returns MP3 audio bytes.
func (s *speechService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("text to synthesize is empty")
	}

	body := buildSSML(s.language, s.voice, text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ttsEndpoint(), strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build TTS request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", s.apiKey)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", ttsOutputFormat)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("TTS endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read TTS response: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("TTS endpoint returned no audio")
	}

	s.log.Debug("synthesized speech",
		zap.Int("text_len", len(text)),
		zap.Int("audio_bytes", len(audio)),
	)

	return audio, nil
}

type recognitionResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
}

// supportedRecognitionType reports whether the short-audio recognition
// endpoint can decode the given container. It only takes WAV/PCM and
// OGG/OPUS; anything else (notably webm from a default MediaRecorder)
// gets rejected up front instead of failing downstream.
func supportedRecognitionType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	return strings.HasPrefix(ct, "audio/wav") ||
		strings.HasPrefix(ct, "audio/x-wav") ||
		strings.HasPrefix(ct, "audio/ogg")
}

// Recognize implements SpeechService. The audio is expected to be WAV
// (16 kHz mono PCM is what the endpoint handles best).
func (s *speechService) Recognize(ctx context.Context, audio []byte, contentType string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("audio payload is empty")
	}
	if contentType == "" {
		contentType = "audio/wav"
	}
	if !supportedRecognitionType(contentType) {
		return "", fmt.Errorf("unsupported audio format %q: recognition accepts WAV or OGG/OPUS", contentType)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.sttEndpoint(), bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("failed to build STT request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", s.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("STT request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("STT endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var result recognitionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode STT response: %w", err)
	}

	if result.RecognitionStatus != "Success" {
		return "", fmt.Errorf("no speech could be recognized: %s", result.RecognitionStatus)
	}
	if strings.TrimSpace(result.DisplayText) == "" {
		return "", fmt.Errorf("no speech could be recognized")
	}

	return result.DisplayText, nil
}

// buildSSML renders the synthesis request body. Text is XML-escaped; model
// output regularly contains ampersands and angle brackets.
func buildSSML(language, voice, text string) string {
	var escaped bytes.Buffer
	xml.EscapeText(&escaped, []byte(text))

	return fmt.Sprintf(
		`<speak version='1.0' xml:lang='%s'><voice xml:lang='%s' name='%s'>%s</voice></speak>`,
		language, language, voice, escaped.String(),
	)
}
