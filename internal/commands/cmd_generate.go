package commands

import (
	"context"
	"os"

	"github.com/hay-kot/makeconfig/internal/core"
	"github.com/hay-kot/makeconfig/internal/generator"
	"github.com/hay-kot/makeconfig/internal/serials"
	"github.com/hay-kot/makeconfig/internal/validate"
	"github.com/hay-kot/makeconfig/pkgs/printer"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

// GenerateCmd renders the templates. It is the action of the root command.
type GenerateCmd struct {
	coreFlags *core.Flags
	defaults  core.Config
}

func NewGenerateCmd(coreFlags *core.Flags, defaults core.Config) *GenerateCmd {
	return &GenerateCmd{coreFlags: coreFlags, defaults: defaults}
}

func (gc *GenerateCmd) Register(app *cli.Command) *cli.Command {
	app.Description = `Renders every *.plist template in the input directory into the output
directory, replacing :key: placeholders with the values of the serials file,
and validates each written file.

The serials file is a YAML mapping of placeholder keys to scalar values:

  SystemSerialNumber: C02XXXXXXXXX
  MLB: C02XXXXXXXXXXXXXX

Serials files ending in .age are decrypted with the age identity given by
--identity.

Exit codes:
  0  all files written and valid, or no templates found
  2  the input or output directory is not usable
  3  the serials file is not readable
  4  the serials file is empty, malformed or cannot be decrypted
  5  one or more written files failed validation`
	app.Action = gc.generate
	return app
}

func (gc *GenerateCmd) generate(ctx context.Context, c *cli.Command) error {
	cfg, err := core.Resolve(gc.defaults, *gc.coreFlags)
	if err != nil {
		return core.Exit(core.ExitFailure, err)
	}

	log.Debug().
		Str("in", cfg.InputDir).
		Str("out", cfg.OutputDir).
		Str("serials", cfg.SerialsFile).
		Str("validator", cfg.Validator).
		Msg("resolved config")

	v, err := validate.New(cfg.Validator, os.Stderr)
	if err != nil {
		return core.Exit(core.ExitFailure, err)
	}

	return Generate(ctx, cfg, v, printer.Ctx(ctx))
}

// Generate runs the template pipeline for cfg. Fatal conditions are returned
// as a [*core.ExitError] carrying the process status.
func Generate(ctx context.Context, cfg core.Config, v validate.Validator, p *printer.Printer) error {
	if err := core.CheckPreconditions(cfg); err != nil {
		return err
	}

	s, err := serials.Load(cfg.SerialsFile, cfg.IdentityFile)
	if err != nil {
		return core.Exit(core.ExitNoSerials, err)
	}

	results, err := generator.New(cfg.InputDir, cfg.OutputDir, s, v, p).Generate(ctx)
	if err != nil {
		return core.Exit(core.ExitBadDirectory, err)
	}

	if !generator.AllValid(results) {
		return core.Exit(core.ExitInvalidFile, nil)
	}

	return nil
}
