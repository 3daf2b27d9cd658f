package fcrypt

import (
	"fmt"
	"io"
	"os"

	"filippo.io/age"
	"filippo.io/age/armor"
)

// EncryptReader encrypts r to recipient and writes the ASCII armored result to w.
func EncryptReader(r io.Reader, w io.Writer, recipient age.Recipient) error {
	armorWriter := armor.NewWriter(w)

	encryptor, err := age.Encrypt(armorWriter, recipient)
	if err != nil {
		_ = armorWriter.Close()
		return fmt.Errorf("failed to create encryptor: %w", err)
	}

	if _, err = io.Copy(encryptor, r); err != nil {
		_ = encryptor.Close()
		_ = armorWriter.Close()
		return fmt.Errorf("failed to encrypt: %w", err)
	}

	// close in reverse order so the armor footer follows the final chunk
	if err = encryptor.Close(); err != nil {
		_ = armorWriter.Close()
		return fmt.Errorf("failed to finalize encryption: %w", err)
	}
	if err = armorWriter.Close(); err != nil {
		return fmt.Errorf("failed to finalize armor: %w", err)
	}

	return nil
}

// EncryptFile encrypts inputPath into outputPath and removes inputPath.
func EncryptFile(inputPath, outputPath string, recipient age.Recipient) error {
	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() {
		_ = inputFile.Close()
	}()

	outputFile, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := EncryptReader(inputFile, outputFile, recipient); err != nil {
		_ = outputFile.Close()
		_ = os.Remove(outputPath)
		return err
	}

	if err := outputFile.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	return os.Remove(inputPath)
}

// DecryptReader decrypts the ASCII armored data in r and writes the plain text to w.
func DecryptReader(r io.Reader, w io.Writer, identity age.Identity) error {
	armorReader := armor.NewReader(r)

	decryptor, err := age.Decrypt(armorReader, identity)
	if err != nil {
		return fmt.Errorf("failed to create decryptor: %w", err)
	}

	if _, err = io.Copy(w, decryptor); err != nil {
		return fmt.Errorf("failed to decrypt: %w", err)
	}

	return nil
}

// DecryptFile decrypts inputPath into outputPath, leaving inputPath in place.
func DecryptFile(inputPath, outputPath string, identity age.Identity) error {
	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() {
		_ = inputFile.Close()
	}()

	outputFile, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := DecryptReader(inputFile, outputFile, identity); err != nil {
		_ = outputFile.Close()
		_ = os.Remove(outputPath)
		return err
	}

	return outputFile.Close()
}
