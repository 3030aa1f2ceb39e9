package layout

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dasdy/keyview/model"
)

// OpenPath opens path, resolving relative paths against base when base is set.
func OpenPath(base, path string) (*os.File, error) {
	if !filepath.IsAbs(path) && base != "" {
		path = filepath.Join(base, path)
	}

	slog.Debug("Opening path", "path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file %s: %w", path, err)
	}

	return file, nil
}

// ReadText reads the whole file at path.
func ReadText(base, path string) (string, error) {
	file, err := OpenPath(base, path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("could not read file %s: %w", path, err)
	}

	return string(content), nil
}

// LoadFiles reads a position file and an optional keymap file. The layout is named
// after the position file.
func LoadFiles(positionsPath, keymapPath string, scaleFactor float64) (*model.Layout, error) {
	positions, err := ReadText("", positionsPath)
	if err != nil {
		return nil, err
	}

	var keymap string

	if keymapPath != "" {
		keymap, err = ReadText("", keymapPath)
		if err != nil {
			return nil, err
		}
	}

	name := strings.TrimSuffix(filepath.Base(positionsPath), filepath.Ext(positionsPath))

	result, err := LoadText(name, positions, keymap, scaleFactor)
	if err != nil {
		return nil, fmt.Errorf("could not load layout %s: %w", positionsPath, err)
	}

	slog.Info("Loaded layout",
		"name", name,
		"keys", len(result.Keys),
		"labels", len(result.Labels),
		"layers", len(result.Layers))

	return result, nil
}
