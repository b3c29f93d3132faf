// Package tutor explains practice questions, as text or spoken audio.
// Both paths degrade to scripted content when the LLM or the speech
// backend is unavailable.
package tutor

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/mathdrill/internal/llm"
	"github.com/abhisek/mathdrill/internal/logger"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/speech"
)

// Help is a structured explanation of one question.
type Help struct {
	Analysis string   `json:"help_content"`
	Thinking string   `json:"thinking_process"`
	Steps    []string `json:"solution_steps"`

	// Fallback is set when the scripted text was used.
	Fallback bool `json:"fallback"`
}

// Narration is a spoken explanation. Audio is empty when synthesis failed.
type Narration struct {
	Text     string `json:"text"`
	Audio    []byte `json:"-"`
	Format   string `json:"format,omitempty"`
	Fallback bool   `json:"fallback"`
}

// Tutor produces help and narration. A nil provider always uses scripted
// text; a nil synthesizer never produces audio.
type Tutor struct {
	provider llm.Provider
	synth    speech.Synthesizer
	cfg      Config
	log      *logger.Logger
}

func New(provider llm.Provider, synth speech.Synthesizer, cfg Config, log *logger.Logger) *Tutor {
	return &Tutor{
		provider: provider,
		synth:    synth,
		cfg:      cfg,
		log:      logger.OrNop(log).With("component", "tutor"),
	}
}

type helpOutput struct {
	Analysis string   `json:"analysis"`
	Thinking string   `json:"thinking"`
	Steps    []string `json:"steps"`
}

// Help explains q. It never fails: any provider problem yields the
// scripted explanation.
func (t *Tutor) Help(ctx context.Context, q *problemgen.Question) Help {
	if t.provider == nil {
		return scriptedHelp(q)
	}

	resp, err := t.provider.Generate(llm.WithPurpose(ctx, "help"), llm.Request{
		System:      helpSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildHelpMessage(q)}},
		Schema:      HelpSchema,
		MaxTokens:   t.cfg.HelpMaxTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		t.log.Warn("help generation failed, using scripted help", "question_id", q.ID, "error", err)
		return scriptedHelp(q)
	}

	var out helpOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		t.log.Warn("unreadable help response, using scripted help", "question_id", q.ID, "error", err)
		return scriptedHelp(q)
	}

	h := Help{
		Analysis: strings.TrimSpace(out.Analysis),
		Thinking: strings.TrimSpace(out.Thinking),
	}
	for _, s := range out.Steps {
		if s = strings.TrimSpace(s); s != "" {
			h.Steps = append(h.Steps, s)
		}
	}
	if h.Analysis == "" || h.Thinking == "" || len(h.Steps) == 0 {
		t.log.Warn("incomplete help response, using scripted help", "question_id", q.ID)
		return scriptedHelp(q)
	}
	return h
}

// Narrate produces a spoken explanation of q. Synthesis failure returns
// the text without audio and sets Fallback.
func (t *Tutor) Narrate(ctx context.Context, q *problemgen.Question) Narration {
	text, scripted := t.narrationText(ctx, q)
	n := Narration{Text: text, Fallback: scripted}

	if t.synth == nil {
		n.Fallback = true
		return n
	}
	audio, err := t.synth.Synthesize(ctx, text)
	if err != nil || len(audio) == 0 {
		t.log.Warn("speech synthesis failed", "question_id", q.ID, "error", err)
		n.Fallback = true
		return n
	}
	n.Audio = audio
	n.Format = t.synth.Format()
	return n
}

// narrationText returns the oral script and whether it is the scripted one.
func (t *Tutor) narrationText(ctx context.Context, q *problemgen.Question) (string, bool) {
	if t.provider == nil {
		return scriptedNarration(q), true
	}

	maxTokens, minLen := t.cfg.NarrationMaxTokens, t.cfg.MinArithmeticNarration
	if q.Kind == problemgen.KindColumnar {
		minLen = t.cfg.MinColumnarNarration
	}

	resp, err := t.provider.Generate(llm.WithPurpose(ctx, "voice-help"), llm.Request{
		System:      narrationSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildNarrationMessage(q)}},
		MaxTokens:   maxTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		t.log.Warn("narration generation failed, using scripted text", "question_id", q.ID, "error", err)
		return scriptedNarration(q), true
	}
	text, err := resp.Text()
	text = strings.TrimSpace(text)
	if err != nil || utf8.RuneCountInString(text) < minLen {
		t.log.Warn("narration too short, using scripted text", "question_id", q.ID, "length", utf8.RuneCountInString(text))
		return scriptedNarration(q), true
	}
	return text, false
}
