package core

import (
	"os"
	"path/filepath"
	"strings"
)

// PathResolver turns relative paths, and paths starting with '~', into
// absolute paths. Relative paths are rooted at the working directory.
type PathResolver struct{}

func (pr PathResolver) Resolve(ip string) (string, error) {
	if ip == "~" || strings.HasPrefix(ip, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		ip = filepath.Join(homeDir, strings.TrimPrefix(ip, "~"))
	}

	if filepath.IsAbs(ip) {
		return filepath.Clean(ip), nil
	}

	absPath, err := filepath.Abs(ip)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
