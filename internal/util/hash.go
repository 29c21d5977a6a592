package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

func SHA256HexFromReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func SHA256Hex(b []byte) string {
	x := sha256.Sum256(b)
	return hex.EncodeToString(x[:])
}

func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()
	sum, err := SHA256HexFromReader(f)
	if err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return sum, nil
}
