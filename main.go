package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/makeconfig/internal/commands"
	"github.com/hay-kot/makeconfig/internal/core"
	"github.com/hay-kot/makeconfig/pkgs/cll"
	"github.com/hay-kot/makeconfig/pkgs/printer"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "v0.1.0-develop"
	commit  = "HEAD"
	date    = time.Now().Format(time.DateTime)
)

var envvars = cll.EnvWithPrefix(core.EnvPrefix)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !term.IsTerminal(int(os.Stderr.Fd())),
	})

	var (
		ctx    = context.Background()
		writer = printer.NewDeferedWriter(os.Stdout)
	)

	ctx = printer.WithWriter(ctx, writer)
	printer.ConsolePrinter = printer.Ctx(ctx)

	exitCode := run(ctx, os.Args)

	if err := writer.Flush(); err != nil {
		panic(err)
	}
	os.Exit(exitCode)
}

// run executes the command line in args and returns the process status.
// Unknown root flags are ignored.
func run(ctx context.Context, args []string) int {
	flags := &core.Flags{}
	app := newApp(flags, core.Defaults(core.ExecutableDir()))

	if w, ok := printer.GetWriter(ctx); ok {
		app.Writer = w
	}

	args, flags.Ignored = cll.StripUnknownFlags(app, args)

	err := app.Run(ctx, args)
	if core.HasMessage(err) {
		printer.FatalError(err)
	}

	return core.ExitCode(err)
}

func newApp(flags *core.Flags, defaults core.Config) *cli.Command {
	app := &cli.Command{
		Name:    "makeconfig",
		Usage:   "render plist templates from a serials file and validate the results",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Aliases:     []string{"l"},
				Usage:       "set the logging verbosity level",
				Value:       "info",
				Sources:     envvars("LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "in",
				Usage:       "directory containing the *.plist templates",
				Value:       defaults.InputDir,
				Sources:     envvars("IN"),
				Destination: &flags.InputDir,
			},
			&cli.StringFlag{
				Name:        "out",
				Usage:       "directory the rendered files are written to",
				Value:       defaults.OutputDir,
				Sources:     envvars("OUT"),
				Destination: &flags.OutputDir,
			},
			&cli.StringFlag{
				Name:        "serials",
				Usage:       "YAML file mapping placeholder keys to values, optionally .age encrypted",
				Value:       defaults.SerialsFile,
				Sources:     envvars("SERIALS"),
				Destination: &flags.SerialsFile,
			},
			&cli.StringFlag{
				Name:        "identity",
				Usage:       "age identity file used to decrypt .age serials files",
				Sources:     envvars("IDENTITY"),
				Destination: &flags.IdentityFile,
			},
			&cli.StringFlag{
				Name:        "validator",
				Usage:       `plist validator: "auto", "builtin", "plutil" or a command line`,
				Value:       defaults.Validator,
				Sources:     envvars("VALIDATOR"),
				Destination: &flags.Validator,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(flags.LogLevel)
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)

			log.Debug().
				Str("log-level", flags.LogLevel).
				Str("in", flags.InputDir).
				Str("out", flags.OutputDir).
				Str("serials", flags.SerialsFile).
				Strs("ignored", flags.Ignored).
				Msg("global flags")

			return ctx, nil
		},
		OnUsageError: func(ctx context.Context, cmd *cli.Command, err error, isSubcommand bool) error {
			return err
		},
	}

	return cll.Register(app,
		commands.NewGenerateCmd(flags, defaults),
		commands.NewPatchCmd(),
		commands.NewEncryptCmd(flags, defaults),
	)
}
