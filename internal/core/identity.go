package core

import (
	"fmt"
	"os"
	"strings"

	"filippo.io/age"
	"github.com/hay-kot/makeconfig/pkgs/fcrypt"
)

// ReadIdentity loads the age private key stored in path. The first line that is
// neither blank nor a '#' comment is used as the key.
func ReadIdentity(path string) (age.Identity, error) {
	if path == "" {
		return nil, fmt.Errorf("no identity file configured")
	}

	identityData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read identity file %s: %w", path, err)
	}

	var keyLine string
	for _, line := range strings.Split(string(identityData), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			keyLine = line
			break
		}
	}

	if keyLine == "" {
		return nil, fmt.Errorf("no valid key found in identity file %s", path)
	}

	identity, err := fcrypt.LoadPrivateKey(keyLine)
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}

	return identity, nil
}
