// Package catalog lists keyboards stored as a directory of layout and keymap files.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dasdy/keyview/layout"
	"github.com/dasdy/keyview/model"
	"gopkg.in/yaml.v3"
)

var IndexFilenames = []string{"index.yaml", "index.yml", "index.json"}

var (
	ErrNoIndex          = errors.New("no catalog index")
	ErrUnknownKeyboard  = errors.New("unknown keyboard")
	ErrNoPositionsFound = errors.New("no layout file")
)

// Keyboard is one catalog entry. Its files live in <catalog>/<id>/.
type Keyboard struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Author string `yaml:"author,omitempty" json:"author,omitempty"`

	dir string
}

// Title is the name shown to users.
func (k Keyboard) Title() string {
	if k.Author == "" {
		return k.Name
	}

	return fmt.Sprintf("%s (by %s)", k.Name, k.Author)
}

type index struct {
	Keyboards []Keyboard `yaml:"keyboards"`
}

type Catalog struct {
	Dir       string
	Keyboards []Keyboard
}

// Load reads the first index file found in dir. JSON indexes are read by the YAML
// decoder as well.
func Load(dir string) (*Catalog, error) {
	for _, name := range IndexFilenames {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		var idx index
		if err := yaml.Unmarshal(data, &idx); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}

		c := &Catalog{Dir: dir, Keyboards: make([]Keyboard, 0, len(idx.Keyboards))}

		for _, k := range idx.Keyboards {
			if k.ID == "" {
				continue
			}

			if k.Name == "" {
				k.Name = k.ID
			}

			k.dir = filepath.Join(dir, k.ID)
			c.Keyboards = append(c.Keyboards, k)
		}

		return c, nil
	}

	return nil, fmt.Errorf("%w in %s", ErrNoIndex, dir)
}

func (c *Catalog) Find(id string) (Keyboard, error) {
	for _, k := range c.Keyboards {
		if k.ID == id {
			return k, nil
		}
	}

	return Keyboard{}, fmt.Errorf("%w: %s", ErrUnknownKeyboard, id)
}

// Files returns the position file and the keymap file of the keyboard. The keymap is
// empty when the position file carries its own bindings or no keymap exists.
func (k Keyboard) Files() (string, string, error) {
	var positions string

	for _, ext := range []string{".json", ".csv", ".keymap"} {
		path := filepath.Join(k.dir, k.ID+ext)
		if fileExists(path) {
			positions = path

			break
		}
	}

	if positions == "" {
		return "", "", fmt.Errorf("%w for %s in %s", ErrNoPositionsFound, k.ID, k.dir)
	}

	for _, name := range []string{k.ID + ".keymap", k.ID + "_keymap.csv", "keymap.c"} {
		path := filepath.Join(k.dir, name)
		if path != positions && fileExists(path) {
			return positions, path, nil
		}
	}

	return positions, "", nil
}

// Open loads the keyboard's layout.
func (k Keyboard) Open(scaleFactor float64) (*model.Layout, error) {
	positions, keymap, err := k.Files()
	if err != nil {
		return nil, err
	}

	l, err := layout.LoadFiles(positions, keymap, scaleFactor)
	if err != nil {
		return nil, err
	}

	l.Name = k.ID

	return l, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
