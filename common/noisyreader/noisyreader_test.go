package noisyreader

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestNoisyReaderCountsBytes(t *testing.T) {
	nr := New(iotest.OneByteReader(strings.NewReader("hello")))
	data, err := io.ReadAll(nr)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("data = %q", data)
	}
	if nr.Offset() != 5 {
		t.Errorf("Offset() = %d, want 5", nr.Offset())
	}
}

func TestNoisyReaderPassesErrors(t *testing.T) {
	boom := errors.New("boom")
	nr := New(iotest.ErrReader(boom))
	if _, err := nr.Read(make([]byte, 4)); !errors.Is(err, boom) {
		t.Errorf("Read error = %v, want %v", err, boom)
	}
}
