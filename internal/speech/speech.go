// Package speech turns narration text into audio.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyText is returned for blank input.
var ErrEmptyText = errors.New("speech: empty text")

// Synthesizer converts text to encoded audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// Format is the audio container produced, e.g. "mp3".
	Format() string
}

// Config selects the OpenAI speech model and voice.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Voice   string
}

// OpenAISynthesizer uses the OpenAI audio speech endpoint.
type OpenAISynthesizer struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

func NewOpenAISynthesizer(cfg Config) (*OpenAISynthesizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("speech API key is required")
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	s := &OpenAISynthesizer{
		client: openai.NewClientWithConfig(oc),
		model:  openai.TTSModel1,
		voice:  openai.VoiceAlloy,
	}
	if cfg.Model != "" {
		s.model = openai.SpeechModel(cfg.Model)
	}
	if cfg.Voice != "" {
		s.voice = openai.SpeechVoice(cfg.Voice)
	}
	return s, nil
}

func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          s.model,
		Input:          text,
		Voice:          s.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech: %w", err)
	}
	return audio, nil
}

func (s *OpenAISynthesizer) Format() string {
	return "mp3"
}

// Mock returns fixed audio, or Err when set, and records inputs.
type Mock struct {
	Audio []byte
	Err   error

	mu    sync.Mutex
	Texts []string
}

func (m *Mock) Synthesize(_ context.Context, text string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Texts = append(m.Texts, text)
	if m.Err != nil {
		return nil, m.Err
	}
	if text == "" {
		return nil, ErrEmptyText
	}
	return m.Audio, nil
}

func (m *Mock) Format() string {
	return "mp3"
}
