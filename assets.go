package marionette

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// ErrAssetsNotFound is returned by FindAssetsDir when no folder matched.
var ErrAssetsNotFound = errors.New("marionette: assets folder not found")

// FindAssetsDir looks for a directory called name, first in start and up to
// parents of its ancestors, then among start's descendants down to kids
// levels. Ancestors win over descendants; shallower descendants win over
// deeper ones.
func FindAssetsDir(start, name string, parents, kids int) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("marionette: find assets: %w", err)
	}
	for i := 0; i <= parents; i++ {
		candidate := filepath.Join(dir, name)
		if isDir(candidate) {
			return candidate, nil
		}
		up := filepath.Dir(dir)
		if up == dir {
			break
		}
		dir = up
	}

	frontier := []string{filepath.Clean(start)}
	for depth := 1; depth <= kids && len(frontier) > 0; depth++ {
		var next []string
		for _, d := range frontier {
			entries, err := os.ReadDir(d)
			if err != nil {
				continue
			}
			for _, e := range entries {
				if !e.IsDir() {
					continue
				}
				sub := filepath.Join(d, e.Name())
				if e.Name() == name {
					return sub, nil
				}
				next = append(next, sub)
			}
		}
		frontier = next
	}
	return "", fmt.Errorf("%w: %q from %s", ErrAssetsNotFound, name, start)
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// LoadTexture decodes an image file into a texture.
func LoadTexture(path string) (*EbitenTexture, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, &AssetLoadError{Kind: AssetTexture, Path: path, Err: err}
	}
	return NewEbitenTexture(img), nil
}

// LoadFont reads and parses a TrueType font file. An empty path returns
// DefaultFont.
func LoadFont(path string) (*TTFFont, error) {
	if path == "" {
		return DefaultFont()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &AssetLoadError{Kind: AssetFont, Path: path, Err: err}
	}
	f, err := LoadTTFFont(data)
	if err != nil {
		return nil, &AssetLoadError{Kind: AssetFont, Path: path, Err: err}
	}
	return f, nil
}
