// Package cll provides utilities for building CLI applications with urfave/cli/v3.
package cll

import "github.com/urfave/cli/v3"

// Registerable is implemented by commands that attach themselves to a root
// command, either as a subcommand or as the root action.
type Registerable interface {
	Register(*cli.Command) *cli.Command
}

// Register applies each Registerable to root in order.
//
//	root := &cli.Command{Name: "makeconfig"}
//	root = cll.Register(root, generateCmd, patchCmd)
func Register(root *cli.Command, subs ...Registerable) *cli.Command {
	for _, s := range subs {
		root = s.Register(root)
	}

	return root
}

// EnvWithPrefix returns a constructor for environment variable sources that
// all share prefix.
//
//	env := cll.EnvWithPrefix("MAKECONFIG_")
//	flag := &cli.StringFlag{
//		Name:    "serials",
//		Sources: env("SERIALS"), // reads MAKECONFIG_SERIALS
//	}
func EnvWithPrefix(prefix string) func(strs ...string) cli.ValueSourceChain {
	return func(names ...string) cli.ValueSourceChain {
		keys := make([]string, len(names))
		for i, name := range names {
			keys[i] = prefix + name
		}

		return cli.EnvVars(keys...)
	}
}
