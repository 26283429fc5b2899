package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rplmatch/internal/common"
	"github.com/Veraticus/rplmatch/internal/model"
)

type fakeClient struct {
	err     error
	reply   string
	prompts []string
	calls   int
	mu      sync.Mutex
}

func (f *fakeClient) Complete(_ context.Context, _, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	return Config{MaxRetries: 2, RetryDelay: time.Millisecond, RateLimit: 6000}
}

func sampleResults() []model.MatchResult {
	return []model.MatchResult{
		{CustomerText: "jon smith", MatchedReferenceText: "John Smith Ltd", Tier: model.TierMedium, Similarity: 0.6429, SimilarityPercent: 64.29},
		{CustomerText: "Acme", MatchedReferenceText: "ACME Corporation", Tier: model.TierLow, Similarity: 0.25, SimilarityPercent: 25},
	}
}

func TestSummarizer_NoSamples(t *testing.T) {
	client := &fakeClient{reply: "unused"}
	s := NewSummarizerWithClient(client, testConfig(), quietLogger())

	assert.Equal(t, NoIssuesSummary, s.Summarize(context.Background(), nil))
	assert.Equal(t, 0, client.calls)
}

func TestSummarizer_NilClient(t *testing.T) {
	s := NewSummarizerWithClient(nil, testConfig(), quietLogger())
	assert.Equal(t, FallbackSummary, s.Summarize(context.Background(), sampleResults()))

	var nilSummarizer *Summarizer
	assert.Equal(t, FallbackSummary, nilSummarizer.Summarize(context.Background(), sampleResults()))
}

func TestSummarizer_Success(t *testing.T) {
	client := &fakeClient{reply: "```\nTwo names look like typos of listed parties.\n```"}
	s := NewSummarizerWithClient(client, testConfig(), quietLogger())

	got := s.Summarize(context.Background(), sampleResults())
	assert.Equal(t, "Two names look like typos of listed parties.", got)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], `Customer: "jon smith"`)
	assert.Contains(t, client.prompts[0], `Best match: "John Smith Ltd"`)
	assert.Contains(t, client.prompts[0], "64.29%")
	assert.Contains(t, client.prompts[0], "Confidence: Low")
}

func TestSummarizer_CachesBySamples(t *testing.T) {
	client := &fakeClient{reply: "cached note"}
	s := NewSummarizerWithClient(client, testConfig(), quietLogger())

	first := s.Summarize(context.Background(), sampleResults())
	second := s.Summarize(context.Background(), sampleResults())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, 1, s.cache.size())

	s.Summarize(context.Background(), sampleResults()[:1])
	assert.Equal(t, 2, client.calls)
}

func TestSummarizer_FailuresFallBack(t *testing.T) {
	tests := []struct {
		name      string
		client    *fakeClient
		wantCalls int
	}{
		{
			name:      "transient error exhausts retries",
			client:    &fakeClient{err: errors.New("connection reset")},
			wantCalls: 2,
		},
		{
			name:      "permanent error stops immediately",
			client:    &fakeClient{err: common.Permanent(errors.New("unauthorized"))},
			wantCalls: 1,
		},
		{
			name:      "blank reply",
			client:    &fakeClient{reply: "  ``` \n```  "},
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSummarizerWithClient(tt.client, testConfig(), quietLogger())
			assert.Equal(t, FallbackSummary, s.Summarize(context.Background(), sampleResults()))
			assert.Equal(t, tt.wantCalls, tt.client.calls)
			assert.Equal(t, 0, s.cache.size())
		})
	}
}

func TestSummarizer_CanceledContext(t *testing.T) {
	client := &fakeClient{reply: "never"}
	s := NewSummarizerWithClient(client, testConfig(), quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, FallbackSummary, s.Summarize(ctx, sampleResults()))
	assert.Equal(t, 0, client.calls)
}

func TestNewSummarizer_UnknownProvider(t *testing.T) {
	_, err := NewSummarizer(Config{Provider: "nope", APIKey: "k"}, quietLogger())
	require.Error(t, err)
}

func TestCleanSummary(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "  padded  \n", want: "padded"},
		{in: "```text\nfenced\n```", want: "fenced"},
		{in: "```\nmulti\nline\n```", want: "multi\nline"},
		{in: `"quoted"`, want: "quoted"},
		{in: `"`, want: `"`},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanSummary(tt.in))
		})
	}
}
