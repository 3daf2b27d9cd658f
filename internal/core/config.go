package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const (
	DefaultInputDir    = "templates"
	DefaultOutputDir   = "out"
	DefaultSerialsFile = "serials.yml"
	DefaultValidator   = "auto"
)

// Config is the resolved configuration for a single run. It is built once at
// startup and passed by value.
type Config struct {
	InputDir     string
	OutputDir    string
	SerialsFile  string
	IdentityFile string
	Validator    string
}

// Defaults returns the built-in configuration with every path rooted at
// baseDir.
func Defaults(baseDir string) Config {
	return Config{
		InputDir:    filepath.Join(baseDir, DefaultInputDir),
		OutputDir:   filepath.Join(baseDir, DefaultOutputDir),
		SerialsFile: filepath.Join(baseDir, DefaultSerialsFile),
		Validator:   DefaultValidator,
	}
}

// ExecutableDir returns the directory containing the running binary with
// symlinks evaluated. The working directory is used when the executable path
// cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}

	log.Debug().Err(err).Msg("unable to locate executable, using working directory")

	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// Resolve merges flags over defaults and turns every path into an absolute
// one. Empty flag values fall back to the matching default.
func Resolve(defaults Config, flags Flags) (Config, error) {
	cfg := Config{
		InputDir:     firstNonEmpty(flags.InputDir, defaults.InputDir),
		OutputDir:    firstNonEmpty(flags.OutputDir, defaults.OutputDir),
		SerialsFile:  firstNonEmpty(flags.SerialsFile, defaults.SerialsFile),
		IdentityFile: firstNonEmpty(flags.IdentityFile, defaults.IdentityFile),
		Validator:    firstNonEmpty(flags.Validator, defaults.Validator),
	}

	pr := PathResolver{}

	for _, p := range []*string{&cfg.InputDir, &cfg.OutputDir, &cfg.SerialsFile, &cfg.IdentityFile} {
		if *p == "" {
			continue
		}

		resolved, err := pr.Resolve(*p)
		if err != nil {
			return cfg, fmt.Errorf("failed to resolve path %s: %w", *p, err)
		}
		*p = resolved
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
