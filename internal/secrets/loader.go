// Package secrets resolves credential values from configuration or files,
// keeping key material out of command lines and logs.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a secret comes from. File wins over Value, so a
// key file can override an inline configuration entry.
type Source struct {
	// Name appears in error messages, e.g. "gemini api key".
	Name string
	// Value is an inline secret from configuration.
	Value string
	// File is a path to a file holding the secret.
	File string
}

// Load resolves and trims the secret. It fails when the source yields
// nothing usable, naming the secret and the file involved.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	value := src.Value
	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		value = string(data)
	}

	secret := strings.TrimSpace(value)
	if secret != "" {
		return secret, nil
	}

	if file != "" {
		return "", fmt.Errorf("%s file %q is empty", name, file)
	}
	return "", fmt.Errorf("%s is not configured", name)
}
