// Package enhance wraps the remote model call used to clean up note text
// before it is saved. The call is optional and strictly best-effort: a
// failed enhancement never blocks the surrounding save.
package enhance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Instruction is the fixed system prompt. The model is asked for the
// corrected text and nothing else.
const Instruction = "You are a helpful assistant that corrects grammar. " +
	"Do not include any other information in the response other than the corrected notes."

const (
	DefaultModel           = "gemini-2.0-flash"
	DefaultMaxOutputTokens = 150
	DefaultTemperature     = 0.7
)

// Enhancer rewrites a note string. Implementations must be safe to call
// with arbitrary user text.
type Enhancer interface {
	Enhance(ctx context.Context, text string) (string, error)
}

// Options configure the remote call. Zero values fall back to the defaults
// above.
type Options struct {
	Model           string
	MaxOutputTokens int
	Temperature     float64
}

// Service is the Gemini-backed Enhancer.
type Service struct {
	client *genai.Client
	opts   Options
}

// NewService creates the Gemini client. A missing API key is an error; the
// caller decides whether that is fatal (it is, at startup, unless the
// enhancer is disabled in config).
func NewService(ctx context.Context, apiKey string, opts Options) (*Service, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable is not set")
	}

	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if opts.Temperature <= 0 {
		opts.Temperature = DefaultTemperature
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Service{client: client, opts: opts}, nil
}

// Enhance sends the note text and returns the corrected version.
func (s *Service) Enhance(ctx context.Context, text string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.opts.Model, contents,
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(Instruction, genai.RoleUser),
			Temperature:       genai.Ptr(float32(s.opts.Temperature)),
			MaxOutputTokens:   int32(s.opts.MaxOutputTokens),
		},
	)
	if err != nil {
		return "", fmt.Errorf("enhance request failed: %w", err)
	}

	improved := strings.TrimSpace(result.Text())
	if improved == "" {
		return "", errors.New("enhance returned an empty response")
	}

	return improved, nil
}

// EnhanceOrOriginal encodes the failure semantics every caller wants: on any
// error the original text comes back unchanged, along with the error so the
// caller can surface a warning.
func EnhanceOrOriginal(ctx context.Context, e Enhancer, text string) (string, error) {
	if e == nil {
		return text, nil
	}

	improved, err := e.Enhance(ctx, text)
	if err != nil {
		return text, err
	}

	return improved, nil
}
