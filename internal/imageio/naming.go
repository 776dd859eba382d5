package imageio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"pixel-veil/internal/models"
)

// NextFilename returns dir/base_N.png for the lowest N >= 1 that does not
// exist yet, creating dir when needed. It does not reserve the name.
func NextFilename(dir, base string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", models.ErrWrite, dir, err)
	}

	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d.png", base, i))
		_, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", models.ErrWrite, err)
		}
	}
}
