package serials

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/makeconfig/internal/core"
	"github.com/hay-kot/makeconfig/pkgs/fcrypt"
	"github.com/rs/zerolog/log"
)

// Load reads and parses the serials file at path. Encrypted files are
// decrypted in memory with the identity stored in identityFile.
//
// Returned errors name the file and wrap [ErrEmpty], [ErrNotMapping] or a
// [*ValueError] as appropriate.
func Load(path, identityFile string) (Serials, error) {
	data, err := read(path, identityFile)
	if err != nil {
		return nil, err
	}

	s, err := Parse(data)
	if err != nil {
		var ve *ValueError
		if errors.As(err, &ve) {
			return nil, fmt.Errorf("File %s: %w", path, err)
		}
		return nil, fmt.Errorf("File %s %w", path, err)
	}

	log.Debug().Str("path", path).Int("count", len(s)).Msg("loaded serials")

	return s, nil
}

func read(path, identityFile string) ([]byte, error) {
	if !fcrypt.IsEncrypted(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read serials file %s: %w", path, err)
		}
		return data, nil
	}

	identity, err := core.ReadIdentity(identityFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity for %s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read serials file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	log.Debug().Str("path", path).Msg("decrypting serials file")

	var buff bytes.Buffer
	if err := fcrypt.DecryptReader(file, &buff, identity); err != nil {
		return nil, fmt.Errorf("failed to decrypt serials file %s: %w", path, err)
	}

	return buff.Bytes(), nil
}
