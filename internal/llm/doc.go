// Package llm provides language model clients used to write short
// data-quality summaries of match results. It supports OpenAI and Anthropic,
// with retry logic, rate limiting, and response caching. Summaries are
// best-effort: the Summarizer never returns an error.
package llm
