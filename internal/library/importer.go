package library

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mmcdole/cinelog/internal/domain"
)

// importFieldCount is the number of comma separated values per line
const importFieldCount = 6

// SkippedLine records an input line that was not imported
type SkippedLine struct {
	Line   int    `json:"line" yaml:"line"`
	Text   string `json:"text" yaml:"text"`
	Reason string `json:"reason" yaml:"reason"`
}

// ImportSummary reports the outcome of one import run
type ImportSummary struct {
	RunID    string        `json:"run_id" yaml:"run_id"`
	Lines    int           `json:"lines" yaml:"lines"`
	Accepted int           `json:"accepted" yaml:"accepted"`
	Skipped  []SkippedLine `json:"skipped" yaml:"skipped"`
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Import reads one movie per line (title,year,genre,director,rating,watched)
// and adds every line that passes validation. A bad line is skipped whole;
// it never aborts the run. The summary covers the lines processed so far even
// when an error is returned.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportSummary, error) {
	summary := ImportSummary{RunID: newRunID()}
	log := s.logger.With("run_id", summary.RunID)

	reader := bufio.NewReader(r)
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			log.Error("failed to read import source", "error", readErr)
			return summary, fmt.Errorf("%w: import: %w", domain.ErrRead, readErr)
		}
		if line == "" && readErr != nil {
			break
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		summary.Lines++
		text := strings.TrimRight(line, "\r\n")

		skip := func(reason string) {
			summary.Skipped = append(summary.Skipped, SkippedLine{Line: summary.Lines, Text: text, Reason: reason})
			log.Info("skipping import line", "line", summary.Lines, "reason", reason)
		}

		parts := strings.Split(text, ",")
		if len(parts) != importFieldCount {
			skip(fmt.Sprintf("expected %d fields, got %d", importFieldCount, len(parts)))
		} else if err := s.AddFields(ctx, parts); err != nil {
			skip(domain.Reason(err))
		} else {
			summary.Accepted++
		}

		if readErr != nil {
			break
		}
	}

	log.Info("import finished", "lines", summary.Lines, "accepted", summary.Accepted, "skipped", len(summary.Skipped))
	return summary, nil
}

// ImportFile opens path and imports it
func (s *Service) ImportFile(ctx context.Context, path string) (ImportSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("%w: open %s: %w", domain.ErrRead, path, err)
	}
	defer f.Close()

	return s.Import(ctx, f)
}
