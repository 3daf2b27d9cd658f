package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/hay-kot/makeconfig/internal/patch"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type PatchFlags struct {
	Debug   bool
	Product string
	MLB     string
	ROM     string
	Serial  string
	UUID    string
}

type PatchCmd struct {
	flags PatchFlags
}

func NewPatchCmd() *PatchCmd {
	return &PatchCmd{}
}

func (pc *PatchCmd) Register(app *cli.Command) *cli.Command {
	cmd := &cli.Command{
		Name:      "patch",
		Usage:     "apply an instruction file to a base plist",
		ArgsUsage: "BASE_PLIST INSTRUCTIONS",
		Description: `Decodes BASE_PLIST, applies every instruction in INSTRUCTIONS and writes the
result as an XML property list to standard output.

Each non-blank line of the instruction file is an expression. Lines starting
with // are comments. Available functions:

  set(path, value)     replace the value at a dotted path
  append(path, value)  append value to the array at path
  delete(path)         remove a dictionary key or array element

Helpers build OpenCore entries from files on disk:

  helpers.Kext(path)  helpers.ACPI(path)  helpers.Tool(path)  helpers.Driver(path)

Machine values are available as vars.Debug, vars.Product, vars.MLB, vars.ROM,
vars.SerialNumber and vars.UUID.

Example instructions:
  // set the serial
  set("PlatformInfo.Generic.SystemSerialNumber", vars.SerialNumber)
  append("Kernel.Add", helpers.Kext("EFI/OC/Kexts/Lilu.kext"))
  vars.Debug ? true : delete("Misc.Debug")`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "expose vars.Debug as true",
				Sources:     envvars("PATCH_DEBUG"),
				Destination: &pc.flags.Debug,
			},
			&cli.StringFlag{
				Name:        "product",
				Usage:       "SMBIOS product name",
				Required:    true,
				Sources:     envvars("PRODUCT"),
				Destination: &pc.flags.Product,
			},
			&cli.StringFlag{
				Name:        "mlb",
				Usage:       "main logic board serial",
				Required:    true,
				Sources:     envvars("MLB"),
				Destination: &pc.flags.MLB,
			},
			&cli.StringFlag{
				Name:        "rom",
				Usage:       "base64 encoded ROM value",
				Required:    true,
				Sources:     envvars("ROM"),
				Destination: &pc.flags.ROM,
			},
			&cli.StringFlag{
				Name:        "serial",
				Usage:       "system serial number",
				Required:    true,
				Sources:     envvars("SERIAL"),
				Destination: &pc.flags.Serial,
			},
			&cli.StringFlag{
				Name:        "uuid",
				Usage:       "system UUID",
				Required:    true,
				Sources:     envvars("UUID"),
				Destination: &pc.flags.UUID,
			},
		},
		Action: pc.patch,
	}

	app.Commands = append(app.Commands, cmd)
	return app
}

func (pc *PatchCmd) patch(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected BASE_PLIST and INSTRUCTIONS arguments, got %d", c.Args().Len())
	}

	vars, err := pc.flags.variables()
	if err != nil {
		return err
	}

	return Patch(ctx, c.Args().Get(0), c.Args().Get(1), vars)
}

func (pf PatchFlags) variables() (patch.Variables, error) {
	rom, err := base64.StdEncoding.DecodeString(pf.ROM)
	if err != nil {
		return patch.Variables{}, fmt.Errorf("invalid --rom value: %w", err)
	}

	return patch.Variables{
		Debug:        pf.Debug,
		Product:      pf.Product,
		MLB:          pf.MLB,
		ROM:          rom,
		SerialNumber: pf.Serial,
		UUID:         pf.UUID,
	}, nil
}

// Patch applies the instruction file to the base plist and writes the result
// to the writer stored in ctx.
func Patch(ctx context.Context, basePath, instructionsPath string, vars patch.Variables) error {
	base, err := os.Open(basePath)
	if err != nil {
		return fmt.Errorf("failed to open base plist: %w", err)
	}
	defer func() { _ = base.Close() }()

	data, err := patch.Decode(base)
	if err != nil {
		return fmt.Errorf("failed to read base plist %s: %w", basePath, err)
	}

	insFile, err := os.Open(instructionsPath)
	if err != nil {
		return fmt.Errorf("failed to open instructions: %w", err)
	}
	defer func() { _ = insFile.Close() }()

	instructions, err := patch.ReadInstructions(insFile)
	if err != nil {
		return fmt.Errorf("failed to read instructions %s: %w", instructionsPath, err)
	}

	log.Debug().
		Str("base", basePath).
		Int("instructions", len(instructions)).
		Msg("patching plist")

	if err := patch.Apply(data, instructions, vars); err != nil {
		return err
	}

	return patch.Encode(stdout(ctx), data)
}
