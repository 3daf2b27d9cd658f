package core

import (
	"fmt"
	"os"
)

// CheckPreconditions verifies, in order, that the input directory is readable,
// the output directory writable and the serials file readable. The first
// failing check is returned as an [ExitError].
func CheckPreconditions(cfg Config) error {
	if !isDir(cfg.InputDir) || !readable(cfg.InputDir) {
		return Exit(ExitBadDirectory, fmt.Errorf("Input directory %s is not readable", cfg.InputDir))
	}

	if !isDir(cfg.OutputDir) || !writable(cfg.OutputDir) {
		return Exit(ExitBadDirectory, fmt.Errorf("Output directory %s is not writable", cfg.OutputDir))
	}

	if !isFile(cfg.SerialsFile) || !readable(cfg.SerialsFile) {
		return Exit(ExitBadSerials, fmt.Errorf("File %s is not readable", cfg.SerialsFile))
	}

	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
