package printer

import (
	"bytes"
	"io"
)

// DeferredWriter buffers everything written to it until Flush is called.
type DeferredWriter struct {
	buff   bytes.Buffer
	writer io.Writer
}

func NewDeferedWriter(w io.Writer) *DeferredWriter {
	return &DeferredWriter{
		writer: w,
	}
}

func (dw *DeferredWriter) Write(p []byte) (int, error) {
	return dw.buff.Write(p)
}

// Flush writes the buffered output to the underlying writer.
func (dw *DeferredWriter) Flush() error {
	_, err := dw.buff.WriteTo(dw.writer)
	return err
}
