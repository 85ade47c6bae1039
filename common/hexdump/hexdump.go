package hexdump

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"cxd/common/colorrange"
	"cxd/common/config"
	C "cxd/common/constant"
	"cxd/common/noisyreader"
	"cxd/common/paint"

	"github.com/charmbracelet/log"
)

// Dumper renders byte sequences as colorized hex dumps.
// A Dumper holds no per-render state and can serve several renders in turn.
type Dumper struct {
	cfg     config.Config
	index   *Index
	painter paint.Painter
	out     io.Writer
}

type Option func(*Dumper)

// WithWriter sends the dump to w instead of standard output.
func WithWriter(w io.Writer) Option {
	return func(d *Dumper) { d.out = w }
}

// WithPainter replaces the ANSI painter selected by the configured color mode.
func WithPainter(p paint.Painter) Option {
	return func(d *Dumper) { d.painter = p }
}

// renderState lives for a single Print, PrintReader or PrintFile call.
type renderState struct {
	suppressing bool
	cursor      *Cursor
}

// New validates cfg and indexes ranges. A nil cfg means config.Default().
func New(cfg *config.Config, ranges []colorrange.Range, opts ...Option) (*Dumper, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}

	d := &Dumper{cfg: *cfg, out: os.Stdout}
	for _, opt := range opts {
		opt(d)
	}
	if d.painter == nil {
		f, _ := d.out.(*os.File)
		p, err := paint.NewANSI(d.cfg.ColorMode, f)
		if err != nil {
			return nil, &ConfigError{Err: err}
		}
		d.painter = p
	}
	d.index = NewIndex(ranges, &d.cfg)
	return d, nil
}

// ColorFor resolves the color of byte b at a data-relative offset.
func (d *Dumper) ColorFor(offset int64, b byte) C.Color {
	return d.index.ColorFor(offset, b)
}

func (d *Dumper) newState() *renderState {
	st := &renderState{}
	if d.cfg.MemorizeLastColorRange {
		st.cursor = &Cursor{}
	}
	return st
}

// Print dumps an in-memory buffer.
func (d *Dumper) Print(data []byte) error {
	return d.PrintReader(bytes.NewReader(data))
}

// PrintFile streams the file at path in blocks of constant.BlockSize bytes.
// A missing path or one that is not a regular file yields an error and no output.
// The error is returned, not logged; reporting it is left to the caller.
func (d *Dumper) PrintFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	log.Debug("Dumping file", "path", path, "size", info.Size())
	return d.PrintReader(noisyreader.New(file))
}

// PrintReader dumps everything r yields until EOF.
func (d *Dumper) PrintReader(r io.Reader) error {
	w := bufio.NewWriter(d.out)
	err := d.render(w, bufio.NewReaderSize(r, C.BlockSize), d.newState())
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	return err
}

func (d *Dumper) render(w *bufio.Writer, r *bufio.Reader, st *renderState) error {
	if d.cfg.ShowColumnsNameAtStart {
		d.writeColumnsName(w)
	}

	chunk := make([]byte, d.cfg.ChunkLength)
	var offset int64
	for {
		n, err := io.ReadFull(r, chunk)
		if err == io.EOF {
			break
		}
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("read at offset %d: %w", offset, err)
		}
		last := n < len(chunk)
		if !last {
			if _, err := r.Peek(1); err == io.EOF {
				last = true
			} else if err != nil {
				return fmt.Errorf("read at offset %d: %w", offset+int64(n), err)
			}
		}
		d.writeChunk(w, st, chunk[:n], offset, last)
		offset += int64(n)
		if last {
			break
		}
	}

	if d.cfg.ShowColumnsNameAtEnd {
		d.writeColumnsName(w)
	}
	return nil
}

// writeChunk applies zero-line elision. The first and the last chunk are always
// rendered so the dump keeps its anchors.
func (d *Dumper) writeChunk(w *bufio.Writer, st *renderState, chunk []byte, offset int64, last bool) {
	if d.cfg.HideNullLines && offset != 0 && !last && len(chunk) == d.cfg.ChunkLength && isZero(chunk) {
		if !st.suppressing {
			st.suppressing = true
			d.writeSnip(w, offset)
		}
		return
	}
	st.suppressing = false
	d.writeLine(w, chunk, offset, st.cursor)
}
