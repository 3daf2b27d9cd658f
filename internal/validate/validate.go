// Package validate checks that written output files are well-formed property
// lists.
package validate

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
	"howett.net/plist"
)

const (
	NameAuto    = "auto"
	NameBuiltin = "builtin"
	NamePlutil  = "plutil"
)

// Validator reports whether the file at path is structurally valid.
type Validator interface {
	Validate(ctx context.Context, path string) bool
}

// Func adapts a function to a [Validator].
type Func func(ctx context.Context, path string) bool

func (f Func) Validate(ctx context.Context, path string) bool {
	return f(ctx, path)
}

var _ Validator = &Command{}

// Command validates a file by running an external program with the path as
// its final argument. A zero exit status means the file is valid.
type Command struct {
	Name   string
	Args   []string
	Stdout io.Writer
	Stderr io.Writer
}

// Plutil returns the macOS plist linter in silent mode.
func Plutil() *Command {
	return &Command{Name: "plutil", Args: []string{"-s", "--"}}
}

func (c *Command) Validate(ctx context.Context, path string) bool {
	args := append(append([]string{}, c.Args...), path)

	cmd := exec.CommandContext(ctx, c.Name, args...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		log.Debug().Err(err).Str("command", c.Name).Str("path", path).Msg("validation command failed")
		return false
	}

	return true
}

// Builtin validates files in-process. XML, binary, OpenStep and GNUStep
// property lists are accepted.
type Builtin struct{}

func (Builtin) Validate(ctx context.Context, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("failed to read file for validation")
		return false
	}

	var v any
	format, err := plist.Unmarshal(data, &v)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("invalid property list")
		return false
	}

	log.Debug().Str("path", path).Int("format", format).Msg("valid property list")
	return true
}

// New returns the validator selected by name: "auto" uses plutil when it is
// installed and the builtin checker otherwise, "builtin" and "plutil" pick one
// explicitly and anything else is run as a command line. Command output is
// forwarded to w.
func New(name string, w io.Writer) (Validator, error) {
	switch name {
	case "", NameAuto:
		if _, err := exec.LookPath(NamePlutil); err == nil {
			return withOutput(Plutil(), w), nil
		}
		log.Debug().Msg("plutil not found, using builtin plist validator")
		return Builtin{}, nil
	case NameBuiltin:
		return Builtin{}, nil
	case NamePlutil:
		return withOutput(Plutil(), w), nil
	}

	fields := strings.Fields(name)
	if len(fields) == 0 {
		return nil, fmt.Errorf("invalid validator %q", name)
	}

	return withOutput(&Command{Name: fields[0], Args: fields[1:]}, w), nil
}

func withOutput(c *Command, w io.Writer) *Command {
	c.Stdout = w
	c.Stderr = w
	return c
}
