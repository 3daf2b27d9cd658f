// Package printer writes user facing output. Results go to the standard
// writer, fatal errors to the error writer.
package printer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hay-kot/makeconfig/pkgs/styles"
)

type Printer struct {
	writer    io.Writer
	errWriter io.Writer
}

// New returns a printer writing results and errors to w.
func New(w io.Writer) *Printer {
	return &Printer{writer: w, errWriter: w}
}

// WithErrWriter returns a copy of the printer sending errors to w.
func (p *Printer) WithErrWriter(w io.Writer) *Printer {
	cp := *p
	cp.errWriter = w
	return &cp
}

// Ctx returns a copy of the printer using the writer stored in ctx, if any.
func (p *Printer) Ctx(ctx context.Context) *Printer {
	w, ok := GetWriter(ctx)
	if !ok {
		return p
	}

	cp := *p
	cp.writer = w
	return &cp
}

// Processing lists the templates about to be rendered.
func (p *Printer) Processing(names []string) {
	_, _ = fmt.Fprintf(p.writer, "Processing %s\n", strings.Join(names, ", "))
}

// FileOK reports an output file that was written and validated.
func (p *Printer) FileOK(path string, n int) {
	_, _ = fmt.Fprintf(p.writer, "%s:%s, %d bytes\n", path, styles.Success("OK"), n)
}

// Converted reports a file replaced by its encrypted or decrypted form.
func (p *Printer) Converted(from, to string) {
	_, _ = fmt.Fprintf(p.writer, "%s %s%s\n", styles.Check, styles.Bold(from), styles.Subtle("-> "+to))
}

// FatalError writes the message of err, if it has one.
func (p *Printer) FatalError(err error) {
	if err == nil || err.Error() == "" {
		return
	}
	_, _ = fmt.Fprintln(p.errWriter, err.Error())
}
