package profiles

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// AvatarProvider supplies a default avatar path for profiles created without
// one. It is an interface so tests can fake the asset directory.
type AvatarProvider interface {
	Random() (string, error)
}

type dirAvatarProvider struct {
	dir string
}

// NewDirAvatarProvider serves avatars from a directory of image assets.
func NewDirAvatarProvider(dir string) AvatarProvider {
	return &dirAvatarProvider{dir: dir}
}

func (p *dirAvatarProvider) Random() (string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return "", fmt.Errorf("failed to read avatar directory %s: %w", p.dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png", ".webp", ".svg":
			candidates = append(candidates, entry.Name())
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no avatar assets in %s", p.dir)
	}

	return filepath.ToSlash(filepath.Join(p.dir, candidates[rand.Intn(len(candidates))])), nil
}

// StaticAvatarProvider returns paths from a fixed list. Useful for tests and
// deployments that bundle avatars elsewhere.
type StaticAvatarProvider struct {
	Paths []string
}

func (p *StaticAvatarProvider) Random() (string, error) {
	if len(p.Paths) == 0 {
		return "", fmt.Errorf("no avatar paths configured")
	}
	return p.Paths[rand.Intn(len(p.Paths))], nil
}
