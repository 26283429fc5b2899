package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/rplmatch/internal/common"
	"github.com/Veraticus/rplmatch/internal/model"
	"github.com/Veraticus/rplmatch/internal/service"
)

const (
	// FallbackSummary is returned whenever a summary cannot be generated.
	FallbackSummary = "Summary unavailable. Review the Medium and Low confidence matches manually."
	// NoIssuesSummary is returned when there are no uncertain matches to describe.
	NoIssuesSummary = "No uncertain matches were found. All records matched with high confidence or had no plausible match."

	systemPrompt = "You are a data quality analyst reviewing fuzzy name matches against a restricted party list. Reply with plain text only."
)

// Summarizer writes short data-quality notes about uncertain matches.
// It satisfies service.Summarizer and never returns an error.
type Summarizer struct {
	client      Client
	cache       *summaryCache
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   service.RetryOptions
}

var _ service.Summarizer = (*Summarizer)(nil)

// NewSummarizer creates a Summarizer backed by the configured provider.
func NewSummarizer(cfg Config, logger *slog.Logger) (*Summarizer, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return NewSummarizerWithClient(client, cfg, logger), nil
}

// NewSummarizerWithClient wraps an existing client. A nil client yields a
// Summarizer that always answers with FallbackSummary.
func NewSummarizerWithClient(client Client, cfg Config, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Summarizer{
		client:      client,
		cache:       newSummaryCache(cfg.CacheTTL),
		logger:      logger,
		retryOpts:   retryOpts,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}
}

// Summarize returns a short note about the given samples.
func (s *Summarizer) Summarize(ctx context.Context, samples []model.MatchResult) string {
	if len(samples) == 0 {
		return NoIssuesSummary
	}
	if s == nil || s.client == nil {
		return FallbackSummary
	}

	prompt := buildSummaryPrompt(samples)
	key := cacheKey(systemPrompt, prompt)
	if summary, found := s.cache.get(key); found {
		s.logger.Debug("summary cache hit", "samples", len(samples))
		return summary
	}

	var reply string
	err := common.WithRetry(ctx, func() error {
		if err := s.rateLimiter.wait(ctx); err != nil {
			return err
		}
		var callErr error
		reply, callErr = s.client.Complete(ctx, systemPrompt, prompt)
		return callErr
	}, s.retryOpts)
	if err != nil {
		s.logger.Warn("failed to generate summary", "error", err, "samples", len(samples))
		return FallbackSummary
	}

	summary := cleanSummary(reply)
	if summary == "" {
		s.logger.Warn("provider returned an empty summary", "samples", len(samples))
		return FallbackSummary
	}

	s.cache.set(key, summary)
	s.logger.Info("summary generated", "samples", len(samples))
	return summary
}

// buildSummaryPrompt lists each sample with its best match and score.
func buildSummaryPrompt(samples []model.MatchResult) string {
	var b strings.Builder
	b.WriteString("The following customer names were matched against a restricted party list with only medium or low confidence.\n\n")
	for i, r := range samples {
		fmt.Fprintf(&b, "%d. Customer: %q | Best match: %q | Similarity: %.2f%% | Confidence: %s\n",
			i+1, r.CustomerText, r.MatchedReferenceText, r.SimilarityPercent, r.Tier)
	}
	b.WriteString(`
In two or three sentences, describe any data quality issues these matches suggest
(typos, abbreviations, reordered words, missing legal suffixes) and whether any look like
true matches that need manual review. Do not use markdown.`)
	return b.String()
}

// cleanSummary strips code fences and surrounding quotes some models add.
func cleanSummary(reply string) string {
	text := strings.TrimSpace(reply)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = text[nl+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	text = strings.TrimSpace(text)
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return strings.TrimSpace(text)
}
