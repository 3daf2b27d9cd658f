// Package commands contains the CLI commands for the application
package commands

import (
	"context"
	"io"
	"os"

	"github.com/hay-kot/makeconfig/internal/core"
	"github.com/hay-kot/makeconfig/pkgs/cll"
	"github.com/hay-kot/makeconfig/pkgs/printer"
)

var envvars = cll.EnvWithPrefix(core.EnvPrefix)

// stdout returns the result writer stored in ctx, falling back to os.Stdout.
func stdout(ctx context.Context) io.Writer {
	if w, ok := printer.GetWriter(ctx); ok {
		return w
	}
	return os.Stdout
}

// resolvePath resolves p against the working directory, expanding a leading ~.
func resolvePath(p string) (string, error) {
	return core.PathResolver{}.Resolve(p)
}
