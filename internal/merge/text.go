package merge

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// SampleSize is how many leading bytes are inspected to decide whether a file is text.
const SampleSize = 4096

// IsTextFile reports whether the first SampleSize bytes of path are valid UTF-8.
func IsTextFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return isText(f)
}

func isText(r io.Reader) (bool, error) {
	buf := make([]byte, SampleSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, fmt.Errorf("failed to sample: %w", err)
	}

	sample := buf[:n]
	if n == SampleSize {
		// The sample may end part-way through a multi-byte rune.
		sample = trimPartialRune(sample)
	}
	return utf8.Valid(sample), nil
}

// trimPartialRune drops an incomplete rune at the end of b. The sample is a
// prefix of the file, so a multi-byte character cut by the sample size is not
// evidence of binary content and still counts as text.
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if !utf8.RuneStart(b[len(b)-i]) {
			continue
		}
		if !utf8.FullRune(b[len(b)-i:]) {
			return b[:len(b)-i]
		}
		return b
	}
	return b
}
