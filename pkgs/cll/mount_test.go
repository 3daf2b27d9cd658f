package cll

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/urfave/cli/v3"
)

type addCmd string

func (a addCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{Name: string(a)})
	return root
}

func TestRegister(t *testing.T) {
	root := Register(&cli.Command{Name: "makeconfig"}, addCmd("patch"), addCmd("encrypt"))

	if len(root.Commands) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(root.Commands))
	}
	if root.Commands[0].Name != "patch" || root.Commands[1].Name != "encrypt" {
		t.Errorf("commands registered out of order: %s, %s", root.Commands[0].Name, root.Commands[1].Name)
	}
}

func TestEnvWithPrefix(t *testing.T) {
	t.Setenv("MAKECONFIG_SERIALS", "/etc/serials.yml")

	var got string
	cmd := &cli.Command{
		Name: "makeconfig",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "serials",
				Sources:     EnvWithPrefix("MAKECONFIG_")("SERIALS"),
				Destination: &got,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error { return nil },
	}

	if err := cmd.Run(context.Background(), []string{"makeconfig"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != "/etc/serials.yml" {
		t.Errorf("serials = %q, want value from environment", got)
	}
}

func TestStripUnknownFlags(t *testing.T) {
	root := &cli.Command{
		Name: "makeconfig",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in"},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}},
		},
		Commands: []*cli.Command{{Name: "patch"}},
	}

	tests := []struct {
		name        string
		args        []string
		wantKept    []string
		wantIgnored []string
	}{
		{
			name:     "known flags kept",
			args:     []string{"makeconfig", "--in=templates", "-l", "debug"},
			wantKept: []string{"makeconfig", "--in=templates", "-l", "debug"},
		},
		{
			name:        "unknown flags dropped",
			args:        []string{"makeconfig", "--foo=bar", "--in", "templates", "--verbose"},
			wantKept:    []string{"makeconfig", "--in", "templates"},
			wantIgnored: []string{"--foo=bar", "--verbose"},
		},
		{
			name:     "value that looks like a subcommand",
			args:     []string{"makeconfig", "--in", "patch"},
			wantKept: []string{"makeconfig", "--in", "patch"},
		},
		{
			name:     "help and version are known",
			args:     []string{"makeconfig", "--help", "-v"},
			wantKept: []string{"makeconfig", "--help", "-v"},
		},
		{
			name:        "subcommand flags untouched",
			args:        []string{"makeconfig", "--foo", "patch", "--foo"},
			wantKept:    []string{"makeconfig", "patch", "--foo"},
			wantIgnored: []string{"--foo"},
		},
		{
			name:     "terminator stops filtering",
			args:     []string{"makeconfig", "--", "--foo"},
			wantKept: []string{"makeconfig", "--", "--foo"},
		},
		{
			name:     "positional arguments kept",
			args:     []string{"makeconfig", "extra", "-"},
			wantKept: []string{"makeconfig", "extra", "-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, ignored := StripUnknownFlags(root, tt.args)

			if diff := cmp.Diff(tt.wantKept, kept); diff != "" {
				t.Errorf("kept mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantIgnored, ignored); diff != "" {
				t.Errorf("ignored mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
