package fcrypt

import (
	"fmt"
	"os"
	"strings"

	"filippo.io/age"
)

// Ext is the suffix of encrypted files.
const Ext = ".age"

// IsEncrypted reports whether path carries the [Ext] suffix.
func IsEncrypted(path string) bool {
	return strings.HasSuffix(path, Ext)
}

// EncryptInPlace replaces <name> with an encrypted <name>.age. The plain file
// is removed without confirmation. The path of the encrypted file is returned.
func EncryptInPlace(filepath string, pubkey age.Recipient) (string, error) {
	if IsEncrypted(filepath) {
		return "", fmt.Errorf("file %s is already encrypted", filepath)
	}

	outputPath := filepath + Ext
	if _, err := os.Stat(outputPath); err == nil {
		return "", fmt.Errorf("encrypted file %s already exists", outputPath)
	}

	return outputPath, EncryptFile(filepath, outputPath, pubkey)
}

// DecryptInPlace replaces <name>.age with the decrypted <name>. The path of the
// decrypted file is returned.
func DecryptInPlace(filepath string, privatekey age.Identity) (string, error) {
	if !IsEncrypted(filepath) {
		return "", fmt.Errorf("file %s does not have %s extension", filepath, Ext)
	}

	outputPath := strings.TrimSuffix(filepath, Ext)
	if _, err := os.Stat(outputPath); err == nil {
		return "", fmt.Errorf("decrypted file %s already exists", outputPath)
	}

	if err := DecryptFile(filepath, outputPath, privatekey); err != nil {
		return "", err
	}

	return outputPath, os.Remove(filepath)
}
