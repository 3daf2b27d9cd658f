package printer

import (
	"context"
	"io"
)

type ctxkey string

const writerKey = ctxkey("writerKey")

// WithWriter stores the writer used for results by printers derived with
// [Printer.Ctx].
func WithWriter(ctx context.Context, writer io.Writer) context.Context {
	return context.WithValue(ctx, writerKey, writer)
}

// GetWriter returns the writer stored in ctx.
func GetWriter(ctx context.Context) (io.Writer, bool) {
	w, ok := ctx.Value(writerKey).(io.Writer)
	return w, ok
}
