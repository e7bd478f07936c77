package merge

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	kmerrors "kiro.dev/kiro-merge/internal/errors"
)

// AppendHeader precedes every block of appended lines. %s is the source path.
const AppendHeader = "\n\n# --- MERGE APPEND (unique lines) from: %s ---\n"

// UniqueLineStrategy appends the source lines the destination does not
// already contain. It skips the merge when either file is not text.
type UniqueLineStrategy struct{}

// NewUniqueLineStrategy creates a UniqueLineStrategy
func NewUniqueLineStrategy() *UniqueLineStrategy {
	return &UniqueLineStrategy{}
}

// Name returns the strategy name used in reports
func (s *UniqueLineStrategy) Name() string {
	return "unique-append"
}

// Apply appends unique lines from req.Source to req.Dest
func (s *UniqueLineStrategy) Apply(_ context.Context, req Request) (Result, error) {
	for _, path := range []string{req.Source, req.Dest} {
		text, err := IsTextFile(path)
		if err != nil {
			return Result{}, err
		}
		if !text {
			return Result{
				Outcome: OutcomeSkippedBinary,
				Detail:  kmerrors.NewEncodingMismatchError(path),
			}, nil
		}
	}

	lines, err := uniqueLinesFromFiles(req.Source, req.Dest)
	if err != nil {
		return Result{}, err
	}
	if len(lines) == 0 {
		return Result{Outcome: OutcomeNoNewLines}, nil
	}

	if err := appendLines(req.Dest, req.Source, lines); err != nil {
		return Result{}, err
	}
	return Result{Outcome: OutcomeAppended, Appended: len(lines)}, nil
}

func uniqueLinesFromFiles(src, dest string) ([]string, error) {
	destFile, err := os.Open(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dest, err)
	}
	defer destFile.Close()

	srcFile, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer srcFile.Close()

	return UniqueLines(srcFile, destFile)
}

// UniqueLines returns the lines of src, in order and with their line endings,
// whose content is not a line of dest. Each source line is checked only
// against dest, so repeated source lines are all kept.
func UniqueLines(src, dest io.Reader) ([]string, error) {
	existing := map[string]struct{}{}
	err := eachLine(dest, func(line string) {
		existing[lineKey(line)] = struct{}{}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read destination: %w", err)
	}

	var unique []string
	err = eachLine(src, func(line string) {
		if _, ok := existing[lineKey(line)]; !ok {
			unique = append(unique, line)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return unique, nil
}

// eachLine calls fn with every line of r including its trailing newline.
// The last line may have none. There is no line length limit.
func eachLine(r io.Reader, fn func(string)) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			fn(line)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// lineKey is the line content compared between files: no LF or CRLF ending.
// A trailing "\r" is dropped too, so "a\r\n" and "a\n" are the same line and
// rerunning against a file whose line endings were converted appends nothing.
// Appended lines are still written verbatim.
func lineKey(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

func appendLines(dest, src string, lines []string) error {
	f, err := os.OpenFile(dest, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", dest, err)
	}

	w := bufio.NewWriter(f)
	_, _ = fmt.Fprintf(w, AppendHeader, src)
	for _, line := range lines {
		_, _ = w.WriteString(line)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append to %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dest, err)
	}
	return nil
}
