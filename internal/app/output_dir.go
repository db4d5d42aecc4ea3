package app

import (
	"os"
	"path/filepath"
)

func ensureOutputDir(appRoot string) (string, error) {
	outDir := filepath.Join(appRoot, "output", "ttk_roster")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	return outDir, nil
}
