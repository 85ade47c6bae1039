package colorrange

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	C "cxd/common/constant"

	"github.com/charmbracelet/log"
)

// ParseError describes a descriptor line that was rejected.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseLine decodes a single "start,length[,color[,comment]]" entry.
// The comment is the remainder of the line and may itself contain commas.
func ParseLine(line string) (Range, error) {
	fields := strings.SplitN(line, ",", 4)
	if len(fields) < 2 {
		return Range{}, fmt.Errorf("%w: expected at least start,length", ErrInvalidRange)
	}
	start, err := parseNumber(fields[0])
	if err != nil {
		return Range{}, fmt.Errorf("%w: start: %v", ErrInvalidRange, err)
	}
	length, err := parseNumber(fields[1])
	if err != nil {
		return Range{}, fmt.Errorf("%w: length: %v", ErrInvalidRange, err)
	}
	r := Range{Start: start, Length: length}
	if len(fields) > 2 {
		color, err := C.ParseColor(fields[2])
		if err != nil {
			return Range{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
		r.Color = color
	}
	if len(fields) > 3 {
		r.Comment = fields[3]
	}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// parseNumber accepts decimal or 0x-prefixed hexadecimal. A leading zero is not octal.
func parseNumber(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return strconv.ParseInt(s[2:], 16, 64)
	}
	return strconv.ParseInt(s, 10, 64)
}

// Parse reads descriptor lines from r. Blank lines are skipped, bad lines are
// logged and skipped; only a read error stops the scan. Lines have no length limit.
func Parse(r io.Reader) ([]Range, error) {
	var ranges []Range
	reader := bufio.NewReader(r)
	lineNo := 0
	for {
		line, rerr := reader.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return ranges, fmt.Errorf("failed to read ranges: %w", rerr)
		}
		if line == "" && rerr == io.EOF {
			break
		}
		lineNo++
		text := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(text) != "" {
			rg, err := ParseLine(text)
			if err != nil {
				perr := &ParseError{Line: lineNo, Text: text, Err: err}
				log.Warn("Skipping range descriptor line", "error", perr)
			} else {
				ranges = append(ranges, rg)
			}
		}
		if rerr == io.EOF {
			break
		}
	}
	log.Debugf("Parsed %d ranges from %d lines", len(ranges), lineNo)
	return ranges, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) ([]Range, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

// Write serializes ranges one per line, in the given order.
func Write(w io.Writer, ranges []Range) error {
	bw := bufio.NewWriter(w)
	for _, r := range ranges {
		if _, err := bw.WriteString(r.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func WriteFile(path string, ranges []Range) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, ranges); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
