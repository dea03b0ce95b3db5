package cliutil

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

// ExpandDir expands a leading "~" in dir (the -i/--dir flag) and
// returns a cleaned, existence-checked absolute-ish path.
func ExpandDir(dir string) (string, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("expand directory %q: %w", dir, err)
	}
	expanded = filepath.Clean(expanded)

	info, err := os.Stat(expanded)
	if err != nil {
		return "", fmt.Errorf("directory %q: %w", expanded, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", expanded)
	}
	return expanded, nil
}
