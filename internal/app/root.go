package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aurceive/ttk_roster/internal/config"
)

var ErrRootNotFound = errors.New("app root not found")

// FindRoot walks up from the working directory to the first directory
// holding the run configuration file.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findRootFrom(cwd)
}

func findRootFrom(start string) (string, error) {
	// Support running from repo root or from cmd/*.
	dir := start
	for i := 0; i < 10; i++ {
		probe := filepath.Join(dir, config.FileName)
		if _, err := os.Stat(probe); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%w from %q (expected to find %s in this dir or any parent)", ErrRootNotFound, start, config.FileName)
}

// resolvePath makes config-relative paths absolute against the app root.
func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
