package cli

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Progress renders match progress as a percentage bar. Its Update method
// fits engine.ProgressFunc.
type Progress struct {
	bar  *progressbar.ProgressBar
	last int
	mu   sync.Mutex
}

// NewProgress creates a bar writing to w. A nil writer yields a Progress
// that draws nothing.
func NewProgress(w io.Writer, description string) *Progress {
	if w == nil {
		return &Progress{last: -1}
	}

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan][bold]%s[reset]", description)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)

	return &Progress{bar: bar, last: -1}
}

// Update moves the bar to percent. Repeated values are ignored.
func (p *Progress) Update(percent int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if percent == p.last {
		return
	}
	p.last = percent

	if p.bar == nil {
		return
	}
	if err := p.bar.Set(percent); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Percent returns the last reported percentage, or -1 before any update.
func (p *Progress) Percent() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Finish completes the bar if the run ended early.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil || p.bar.IsFinished() {
		return
	}
	if err := p.bar.Exit(); err != nil {
		slog.Warn("Failed to close progress bar", "error", err)
	}
}
