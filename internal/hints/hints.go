package hints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/catalog"
	"github.com/abhisek/levelup/internal/llm"
)

// ErrRevealsAnswer is returned when the model's hint contains the answer.
var ErrRevealsAnswer = errors.New("hint reveals the correct answer")

// Config tunes hint generation.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

func DefaultConfig() Config {
	return Config{MaxTokens: 160, Temperature: 0.3, Timeout: 20 * time.Second}
}

// Input describes the question the player just got wrong.
type Input struct {
	Level    int
	Question catalog.Question
	Chosen   string
}

func (in Input) key() string {
	return in.Question.Prompt + "\x00" + in.Chosen
}

// Hint is a nudge toward the right option for one question.
type Hint struct {
	Prompt string // the question the hint belongs to
	Text   string
}

// Service generates hints in the background. At most one result is pending;
// a newer request overwrites an unconsumed older one.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger

	mu      sync.Mutex
	pending *Hint
	ready   bool
	cache   map[string]string
}

func NewService(provider llm.Provider, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, log: log, cache: map[string]string{}}
}

// RequestHint starts generating a hint for in. The result is picked up with
// ConsumeHint. Failures are logged and produce no hint.
func (s *Service) RequestHint(ctx context.Context, in Input) {
	s.mu.Lock()
	if text, ok := s.cache[in.key()]; ok {
		s.pending, s.ready = &Hint{Prompt: in.Question.Prompt, Text: text}, true
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	go func() {
		h, err := s.Generate(ctx, in)
		if err != nil {
			s.log.Warn("hint generation failed", zap.Int("level_number", in.Level), zap.Error(err))
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if h != nil {
			s.cache[in.key()] = h.Text
		}
		s.pending, s.ready = h, true
	}()
}

// ConsumeHint returns the finished hint, if any, and clears the slot.
func (s *Service) ConsumeHint() (*Hint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false
	}
	h := s.pending
	s.pending, s.ready = nil, false
	return h, h != nil
}

type hintOutput struct {
	Hint string `json:"hint"`
}

// Generate produces a hint synchronously.
func (s *Service) Generate(ctx context.Context, in Input) (*Hint, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeHint)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := llm.Ask(systemPrompt, userPrompt(in), Schema, s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("hint generation: %w", err)
	}

	var out hintOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse hint response: %w", err)
	}
	text := strings.TrimSpace(out.Hint)
	if text == "" {
		return nil, fmt.Errorf("empty hint")
	}
	if strings.Contains(strings.ToLower(text), strings.ToLower(in.Question.Correct)) {
		return nil, ErrRevealsAnswer
	}
	return &Hint{Prompt: in.Question.Prompt, Text: text}, nil
}
