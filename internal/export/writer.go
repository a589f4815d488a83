package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteDir materializes a bundle under dir, creating it if necessary.
// Bundle paths are flat forward-slash relatives; anything that would escape
// the target directory is rejected.
func WriteDir(files map[string]string, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, name := range sortedPaths(files) {
		if strings.Contains(name, "..") || strings.HasPrefix(name, "/") {
			return fmt.Errorf("unsafe bundle path %q", name)
		}
		target := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("create subdirectories for %s: %w", name, err)
		}
		if err := os.WriteFile(target, []byte(files[name]), 0644); err != nil {
			return fmt.Errorf("write file %s: %w", name, err)
		}
	}
	return nil
}
