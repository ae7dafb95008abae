package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadProgram resolves path to an absolute location and loads the program
// source it names.
func ReadProgram(path string) (source string, fullPath string, err error) {
	fullPath, err = filepath.Abs(path)
	if err != nil {
		return "", "", err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", "", fmt.Errorf("read program %q: %w", path, err)
	}

	return string(data), fullPath, nil
}
