package path

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindRoot walks up from startDir until it finds an entry named targetName
// of the requested kind, and returns the directory holding it. Used to
// locate the repo root (.env, migrations/) from wherever a binary runs.
func FindRoot(startDir, targetName string, isDir bool) (string, error) {
	dir := startDir

	for {
		fullPath := filepath.Join(dir, targetName)
		if info, err := os.Stat(fullPath); err == nil && info.IsDir() == isDir {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find %s starting from %s", targetName, startDir)
		}
		dir = parent
	}
}
