// Package summarize produces natural-language summaries of retrieved patent
// passages. The primary path calls a generative provider; provider outages
// degrade silently to a local extractive summary.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gcbaptista/patent-semantic-search/services"
)

const (
	// maxInputChars bounds the combined passage text sent to the provider.
	maxInputChars = 8000

	// fallbackBudget bounds the extractive fallback summary length.
	fallbackBudget = 500

	noDescriptionsMessage      = "No descriptions available for summarization."
	noValidDescriptionsMessage = "No valid descriptions found for summarization."

	fallbackNote = "[Note: This summary was generated using a simple extraction method. " +
		"For better summaries, ensure the generative provider is available.]"

	systemPrompt = "You are a technical expert specializing in patent analysis and summarization."

	userPromptTemplate = `Please provide a comprehensive summary of the following patent descriptions.
Focus on the main innovations, technical solutions, and key features described.
Make the summary technical yet accessible, highlighting the practical applications and benefits:

%s

Summary:`
)

// GenerativeClient is the contract for the primary synthesis provider.
// Implementations must return a *ProviderError for transport, auth, quota,
// and malformed-response failures so the service can distinguish provider
// outages from programmer errors.
type GenerativeClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ProviderError wraps any failure of the generative provider itself.
// Only this error variant triggers the extractive fallback.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("generative provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Service implements services.Summarizer.
type Service struct {
	client GenerativeClient
	logger *slog.Logger
}

var _ services.Summarizer = (*Service)(nil)

// NewService creates a summarization service backed by the given provider
// client.
func NewService(client GenerativeClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, logger: logger}
}

// Summarize produces a single summary of the given passages. It never
// returns an error:
//   - empty or all-blank input yields a fixed sentinel message without any
//     provider call,
//   - a provider failure silently degrades to a local extractive summary
//     carrying a disclosure note,
//   - any other failure degrades to an error-description string.
func (s *Service) Summarize(ctx context.Context, passages []string) string {
	if len(passages) == 0 {
		return noDescriptionsMessage
	}

	nonEmpty := make([]string, 0, len(passages))
	for _, passage := range passages {
		if passage != "" {
			nonEmpty = append(nonEmpty, passage)
		}
	}
	combined := strings.Join(nonEmpty, "\n\n")
	if strings.TrimSpace(combined) == "" {
		return noValidDescriptionsMessage
	}

	summary, err := s.generate(ctx, combined)
	if err == nil {
		return summary
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		s.logger.Warn("generative provider failed, using extractive fallback", "error", err)
		return extractiveSummary(combined)
	}

	s.logger.Error("summarization failed", "error", err)
	return "Error generating summary: " + err.Error()
}

// generate runs the primary synthesis path against the provider.
func (s *Service) generate(ctx context.Context, text string) (string, error) {
	if len(text) > maxInputChars {
		text = text[:maxInputChars] + "..."
	}

	completion, err := s.client.Complete(ctx, systemPrompt, fmt.Sprintf(userPromptTemplate, text))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(completion), nil
}

// extractiveSummary builds a summary by greedily accumulating leading
// sentences while the running length stays under the fallback budget, then
// appends the fixed disclosure note.
func extractiveSummary(text string) string {
	sentences := strings.Split(text, ". ")

	var picked []string
	length := 0
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if length+len(sentence) >= fallbackBudget {
			break
		}
		picked = append(picked, sentence)
		length += len(sentence)
	}

	// Budget smaller than the first sentence: keep that sentence anyway so
	// the fallback never returns an empty summary.
	if len(picked) == 0 && len(sentences) > 0 {
		picked = append(picked, strings.TrimSpace(sentences[0]))
	}

	summary := strings.Join(picked, ". ")
	if !strings.HasSuffix(summary, ".") {
		summary += "."
	}
	return summary + "\n\n" + fallbackNote
}
