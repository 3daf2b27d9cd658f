package cll

import (
	"strings"

	"github.com/urfave/cli/v3"
)

// StripUnknownFlags removes flag tokens root does not define from args so that
// they are ignored instead of failing the parse. Only the tokens before the
// first subcommand name or "--" are filtered; args[0] is kept as the program
// name. The removed tokens are returned as ignored.
func StripUnknownFlags(root *cli.Command, args []string) (kept, ignored []string) {
	if len(args) == 0 {
		return args, nil
	}

	known := map[string]cli.Flag{}
	for _, f := range append([]cli.Flag{cli.HelpFlag, cli.VersionFlag}, root.Flags...) {
		if f == nil {
			continue
		}
		for _, name := range f.Names() {
			known[name] = f
		}
	}

	subcommands := map[string]bool{}
	for _, c := range root.Commands {
		subcommands[c.Name] = true
		for _, alias := range c.Aliases {
			subcommands[alias] = true
		}
	}

	kept = append(kept, args[0])

	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]

		if arg == "--" || subcommands[arg] {
			kept = append(kept, rest[i:]...)
			break
		}

		if len(arg) < 2 || arg[0] != '-' {
			kept = append(kept, arg)
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		f, ok := known[name]
		if !ok {
			ignored = append(ignored, arg)
			continue
		}

		kept = append(kept, arg)

		// "--in DIR" carries its value in the next token
		if !hasValue && takesValue(f) && i+1 < len(rest) {
			i++
			kept = append(kept, rest[i])
		}
	}

	return kept, ignored
}

func takesValue(f cli.Flag) bool {
	_, isBool := f.(*cli.BoolFlag)
	return !isBool
}
