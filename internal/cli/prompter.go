package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/rplmatch/internal/model"
)

// ErrInvalidChoice is returned when an answer names no known column.
var ErrInvalidChoice = errors.New("invalid column choice")

// Prompter asks the user to confirm or change the matching columns.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewCLIPrompter creates a new CLI prompter with the given reader and writer.
func NewCLIPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// ConfirmColumns lists headers with the suggested selection and reads an
// answer. An empty answer accepts the suggestion; otherwise the answer is
// "customer,reference" as column numbers or names.
func (p *Prompter) ConfirmColumns(ctx context.Context, headers []string, suggested model.FieldSelector) (model.FieldSelector, error) {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Columns") + "\n")
	for i, h := range headers {
		marker := "  "
		switch h {
		case suggested.CustomerField:
			marker = SuccessStyle.Render("C ")
		case suggested.ReferenceField:
			marker = InfoStyle.Render("R ")
		}
		if h == suggested.CustomerField && h == suggested.ReferenceField {
			marker = WarningStyle.Render("CR")
		}
		fmt.Fprintf(&b, "%s %2d. %s\n", marker, i+1, h)
	}
	fmt.Fprintf(&b, "\nCustomer: %s   Reference: %s\n",
		BoldStyle.Render(suggested.CustomerField),
		BoldStyle.Render(suggested.ReferenceField))
	b.WriteString(SubtleStyle.Render("Press Enter to accept, or type customer,reference (numbers or names)") + "\n")
	b.WriteString(FormatPrompt("Columns"))

	if _, err := fmt.Fprint(p.writer, b.String()); err != nil {
		return model.FieldSelector{}, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return suggested, nil
		}
		return model.FieldSelector{}, err
	}

	return ParseColumnChoice(answer, headers, suggested)
}

// ParseColumnChoice interprets a column answer against headers.
func ParseColumnChoice(answer string, headers []string, suggested model.FieldSelector) (model.FieldSelector, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return suggested, nil
	}

	parts := strings.Split(answer, ",")
	if len(parts) != 2 {
		return model.FieldSelector{}, fmt.Errorf("%w: expected two columns separated by a comma", ErrInvalidChoice)
	}

	customer, err := resolveColumn(parts[0], headers)
	if err != nil {
		return model.FieldSelector{}, err
	}
	reference, err := resolveColumn(parts[1], headers)
	if err != nil {
		return model.FieldSelector{}, err
	}

	return model.FieldSelector{CustomerField: customer, ReferenceField: reference}, nil
}

func resolveColumn(token string, headers []string) (string, error) {
	token = strings.TrimSpace(token)
	if n, err := strconv.Atoi(token); err == nil {
		if n < 1 || n > len(headers) {
			return "", fmt.Errorf("%w: column %d out of range 1-%d", ErrInvalidChoice, n, len(headers))
		}
		return headers[n-1], nil
	}
	for _, h := range headers {
		if strings.EqualFold(h, token) {
			return h, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidChoice, token)
}
