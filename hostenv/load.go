package hostenv

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gizzahub/lpmcore/errs"
)

// Overlay is the optional YAML configuration file backing the
// NO_NETWORK/NO_GIT/default-URL environment overrides: a small typed
// struct unmarshaled directly from YAML, with every field optional so an
// absent or partial file just leaves Globals' environment-derived
// defaults untouched.
type Overlay struct {
	NoNetwork         *bool  `yaml:"no_network"`
	NoGit             *bool  `yaml:"no_git"`
	DefaultRepoURL    string `yaml:"default_repo_url"`
	DefaultReleaseURL string `yaml:"default_release_url"`
}

// Load reads and parses an Overlay from path. A missing file is not an
// error: it returns a zero-value Overlay, the same "absent config is the
// default config" behavior internal/config.Load used.
func Load(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Overlay{}, nil
	}
	if err != nil {
		return nil, &errs.PathError{Op: "read", Path: path, Err: err}
	}

	var overlay Overlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, &errs.PathError{Op: "parse", Path: path, Err: err}
	}
	return &overlay, nil
}

// Apply merges overlay into g in place, overriding only the fields the
// overlay actually set.
func (g *Globals) Apply(overlay *Overlay) {
	if overlay == nil {
		return
	}
	if overlay.NoNetwork != nil {
		g.NoNetwork = *overlay.NoNetwork
	}
	if overlay.NoGit != nil {
		g.NoGit = *overlay.NoGit
	}
	if overlay.DefaultRepoURL != "" {
		g.DefaultRepoURL = overlay.DefaultRepoURL
	}
	if overlay.DefaultReleaseURL != "" {
		g.DefaultReleaseURL = overlay.DefaultReleaseURL
	}
}
