package noisyreader

import (
	"io"

	"github.com/charmbracelet/log"
)

// NoisyReader is a wrapper around io.Reader that adds debug logging for every block read.
type NoisyReader struct {
	io.Reader
	offset int64
}

func New(r io.Reader) *NoisyReader {
	return &NoisyReader{Reader: r}
}

func (nr *NoisyReader) Read(b []byte) (n int, err error) {
	n, err = nr.Reader.Read(b)
	if n > 0 {
		log.Debug("NoisyReader: Read block", "offset", nr.offset, "bytes", n)
		nr.offset += int64(n)
	}
	if err != nil && err != io.EOF {
		log.Error("Error reading block", "offset", nr.offset, "error", err)
	}
	return n, err
}

// Offset returns the number of bytes read so far.
func (nr *NoisyReader) Offset() int64 {
	return nr.offset
}
