package stringscan

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"

	"cxd/common/colorrange"
	C "cxd/common/constant"

	"github.com/charmbracelet/log"
)

// MinLength is the shortest run reported, in characters.
const MinLength = 4

// Analyzer finds printable text the way `strings -n 4` and `strings -el -n 4`
// do: runs of ASCII characters and runs of UTF-16LE characters. The detected
// text becomes the range comment.
type Analyzer struct {
	path   string
	colors []C.Color
	check  *bool
	ranges []colorrange.Range
}

func New(path string, colors []C.Color) *Analyzer {
	return &Analyzer{path: path, colors: colors}
}

func isText(b byte) bool {
	return (b >= 0x20 && b <= 0x7e) || b == '\t'
}

func (a *Analyzer) Check() bool {
	if a.check == nil {
		ok := false
		info, err := os.Stat(a.path)
		switch {
		case err != nil:
			log.Errorf("Cannot read %s: %v", a.path, err)
		case !info.Mode().IsRegular():
			log.Errorf("Cannot read %s: not a regular file", a.path)
		default:
			ok = true
		}
		a.check = &ok
	}
	return *a.check
}

func (a *Analyzer) Parse() []colorrange.Range {
	if a.ranges != nil {
		return a.ranges
	}
	a.ranges = []colorrange.Range{}
	if !a.Check() {
		return a.ranges
	}
	file, err := os.Open(a.path)
	if err != nil {
		log.Errorf("Cannot read %s: %v", a.path, err)
		return a.ranges
	}
	defer file.Close()

	ascii, wide, err := Scan(bufio.NewReaderSize(file, C.BlockSize))
	if err != nil {
		log.Errorf("Failed to scan %s: %v", a.path, err)
	}
	cycle := colorrange.NewCycle(a.colors)
	for _, found := range [][]Match{ascii, wide} {
		for _, m := range found {
			a.ranges = append(a.ranges, colorrange.Range{Start: m.Offset, Length: m.Length, Color: cycle.Next(), Comment: m.Text})
		}
	}
	log.Infof("Found %d ascii and %d utf-16 strings in %s", len(ascii), len(wide), a.path)
	return a.ranges
}

// Match is one detected string. Length counts bytes, so a UTF-16 match is
// twice as long as its Text.
type Match struct {
	Offset int64
	Length int64
	Text   string
}

// run accumulates consecutive text characters of one encoding.
type run struct {
	start int64
	text  []byte
}

func (r *run) flush(out *[]Match, width int64) {
	if len(r.text) >= MinLength {
		// blanks around the text are not part of the string
		text := string(r.text)
		lead := len(text) - len(strings.TrimLeft(text, " \t"))
		text = strings.TrimSpace(text)
		if text != "" {
			*out = append(*out, Match{
				Offset: r.start + int64(lead)*width,
				Length: int64(len(text)) * width,
				Text:   text,
			})
		}
	}
	r.text = r.text[:0]
}

// Scan reads r to the end and returns its ASCII and UTF-16LE strings, each list
// ordered by offset. UTF-16 characters are looked for at even and odd offsets.
func Scan(r io.ByteReader) (ascii, wide []Match, err error) {
	var (
		narrow  run
		pairs   [2]run
		prev    byte
		offset  int64
		hasPrev bool
	)
	for {
		b, rerr := r.ReadByte()
		if rerr != nil {
			if rerr != io.EOF {
				err = rerr
			}
			break
		}

		if isText(b) {
			if len(narrow.text) == 0 {
				narrow.start = offset
			}
			narrow.text = append(narrow.text, b)
		} else {
			narrow.flush(&ascii, 1)
		}

		// the pair (prev, b) starts at offset-1
		if hasPrev {
			p := &pairs[(offset-1)%2]
			if isText(prev) && b == 0 {
				if len(p.text) == 0 {
					p.start = offset - 1
				}
				p.text = append(p.text, prev)
			} else {
				p.flush(&wide, 2)
			}
		}
		prev, hasPrev = b, true
		offset++
	}
	narrow.flush(&ascii, 1)
	pairs[0].flush(&wide, 2)
	pairs[1].flush(&wide, 2)
	sort.SliceStable(wide, func(i, j int) bool { return wide[i].Offset < wide[j].Offset })
	return ascii, wide, err
}
