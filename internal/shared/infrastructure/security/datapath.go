// Package security validates file locations taken from the environment.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MemoryPath is the SQLite in-memory database name, passed through unchanged.
const MemoryPath = ":memory:"

// forbiddenChars are shell metacharacters never expected in a data path.
var forbiddenChars = []string{";", "&", "|", "$", "`", "<", ">", "!", "\n", "\r"}

// CleanDataPath validates a database or preferences file location and
// returns it absolute, with symlinks resolved when the file already exists.
func CleanDataPath(path string) (string, error) {
	if path == MemoryPath {
		return path, nil
	}
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("data path cannot be empty")
	}
	for _, char := range forbiddenChars {
		if strings.Contains(path, char) {
			return "", fmt.Errorf("data path contains forbidden character %q: %s", char, path)
		}
	}

	clean, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("resolve data path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(clean)
	if err != nil {
		if os.IsNotExist(err) {
			return clean, nil
		}
		return "", fmt.Errorf("resolve data path: %w", err)
	}
	if info, err := os.Stat(resolved); err == nil && info.IsDir() {
		return "", fmt.Errorf("data path is a directory: %s", path)
	}
	return resolved, nil
}
