package hexdump

import (
	"bufio"
	"fmt"
	"strings"

	C "cxd/common/constant"
)

func (d *Dumper) address(offset int64) string {
	return d.painter.Paint(fmt.Sprintf("%0*x", C.AddressWidth, d.cfg.AddressShift+offset), d.cfg.AddressColor)
}

// writeLine renders one chunk: address, hex grid and ascii column. Colors are
// looked up with the data-relative offset, the address shift is display only.
// A short chunk is padded so that its ascii column lines up with the others.
func (d *Dumper) writeLine(w *bufio.Writer, chunk []byte, offset int64, cur *Cursor) {
	w.WriteString(d.address(offset))
	w.WriteString(d.cfg.ColumnSeparator)

	var ascii strings.Builder
	for i, b := range chunk {
		color := d.index.colorFor(offset+int64(i), b, cur)
		w.WriteString(d.painter.Paint(hexByte(b), color))
		w.WriteByte(' ')
		ascii.WriteString(d.painter.Paint(Glyph(b, d.cfg.ReplaceNotPrintable), color))
	}
	if missing := d.cfg.ChunkLength - len(chunk); missing > 0 {
		w.WriteString(strings.Repeat(" ", 3*missing))
	}

	w.WriteString(d.cfg.ColumnSeparator)
	w.WriteString(ascii.String())
	w.WriteByte('\n')
}

// writeSnip stands in for a run of hidden all-zero lines.
func (d *Dumper) writeSnip(w *bufio.Writer, offset int64) {
	w.WriteString(d.address(offset))
	w.WriteString(d.cfg.ColumnSeparator)
	w.WriteString("*\n")
}

// writeColumnsName prints the column index of every byte position. Indexes wrap
// at 0x100 in the hex grid and at 0x10 in the ascii column so every label keeps
// the width of the cell below it.
func (d *Dumper) writeColumnsName(w *bufio.Writer) {
	var hex, ascii strings.Builder
	for i := 0; i < d.cfg.ChunkLength; i++ {
		hex.WriteString(hexByte(byte(i)))
		hex.WriteByte(' ')
		ascii.WriteByte(hexDigits[i%16])
	}
	title := d.cfg.TitleColor
	w.WriteString(d.painter.Paint(fmt.Sprintf("%-*s", C.AddressWidth, "Offset"), title))
	w.WriteString(d.cfg.ColumnSeparator)
	w.WriteString(d.painter.Paint(hex.String(), title))
	w.WriteString(d.cfg.ColumnSeparator)
	w.WriteString(d.painter.Paint(ascii.String(), title))
	w.WriteByte('\n')
}
