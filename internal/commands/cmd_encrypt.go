package commands

import (
	"context"
	"fmt"

	"github.com/hay-kot/makeconfig/internal/core"
	"github.com/hay-kot/makeconfig/pkgs/fcrypt"
	"github.com/hay-kot/makeconfig/pkgs/printer"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type EncryptCmd struct {
	coreFlags *core.Flags
	defaults  core.Config
	recipient string
}

func NewEncryptCmd(coreFlags *core.Flags, defaults core.Config) *EncryptCmd {
	return &EncryptCmd{coreFlags: coreFlags, defaults: defaults}
}

func (ec *EncryptCmd) Register(app *cli.Command) *cli.Command {
	cmds := []*cli.Command{
		{
			Name:      "encrypt",
			Usage:     "encrypt the serials file in-place",
			ArgsUsage: "[FILE]",
			Description: `Encrypts FILE, or the serials file when omitted, to FILE.age using age
encryption with an ASCII armored output.

The plain file is removed after encryption. The command refuses to overwrite
an existing .age file. Encrypted serials files are read transparently by the
template run when --identity is given.`,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "recipient",
					Aliases:     []string{"r"},
					Usage:       "age public key (age1...) to encrypt to",
					Required:    true,
					Sources:     envvars("RECIPIENT"),
					Destination: &ec.recipient,
				},
			},
			Action: ec.encrypt,
		},
		{
			Name:      "decrypt",
			Usage:     "decrypt an encrypted serials file in-place",
			ArgsUsage: "[FILE.age]",
			Description: `Decrypts FILE.age, or the serials file with a .age suffix when omitted,
using the age identity given by --identity.

The encrypted file is removed after decryption. The command refuses to
overwrite an existing plain file.`,
			Action: ec.decrypt,
		},
	}

	app.Commands = append(app.Commands, cmds...)
	return app
}

// target returns the file named on the command line or the configured serials
// file. With encrypted set the default names the .age form of the serials file.
func (ec *EncryptCmd) target(c *cli.Command, encrypted bool) (string, error) {
	if c.Args().Len() > 1 {
		return "", fmt.Errorf("expected at most one file argument, got %d", c.Args().Len())
	}

	file := c.Args().First()
	if file == "" {
		cfg, err := core.Resolve(ec.defaults, *ec.coreFlags)
		if err != nil {
			return "", err
		}
		file = cfg.SerialsFile
		if encrypted && !fcrypt.IsEncrypted(file) {
			file += fcrypt.Ext
		}
	}

	return resolvePath(file)
}

func (ec *EncryptCmd) encrypt(ctx context.Context, c *cli.Command) error {
	recipient, err := fcrypt.LoadPublicKey(ec.recipient)
	if err != nil {
		return fmt.Errorf("failed to load public key: %w", err)
	}

	file, err := ec.target(c, false)
	if err != nil {
		return err
	}

	log.Debug().Str("file", file).Msg("encrypting file")

	out, err := fcrypt.EncryptInPlace(file, recipient)
	if err != nil {
		return fmt.Errorf("failed to encrypt %s: %w", file, err)
	}

	printer.Ctx(ctx).Converted(file, out)
	return nil
}

func (ec *EncryptCmd) decrypt(ctx context.Context, c *cli.Command) error {
	if ec.coreFlags.IdentityFile == "" {
		return fmt.Errorf("no identity file given, use --identity")
	}

	identityFile, err := resolvePath(ec.coreFlags.IdentityFile)
	if err != nil {
		return err
	}

	identity, err := core.ReadIdentity(identityFile)
	if err != nil {
		return err
	}

	file, err := ec.target(c, true)
	if err != nil {
		return err
	}

	log.Debug().Str("file", file).Msg("decrypting file")

	out, err := fcrypt.DecryptInPlace(file, identity)
	if err != nil {
		return fmt.Errorf("failed to decrypt %s: %w", file, err)
	}

	printer.Ctx(ctx).Converted(file, out)
	return nil
}
