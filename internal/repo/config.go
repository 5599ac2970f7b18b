package repo

import (
	"github.com/taskrevolution/ttr/internal/codec"
	"github.com/taskrevolution/ttr/internal/entity"
)

// ConfigRepo loads and persists the single workspace-wide Config manifest.
type ConfigRepo struct {
	ws *Workspace
}

func (w *Workspace) Config() *ConfigRepo { return &ConfigRepo{ws: w} }

// Load reads config.yaml from the workspace root.
func (r *ConfigRepo) Load() (*entity.Config, error) {
	path := r.ws.ConfigPath()
	data, err := readFile(path)
	if err != nil {
		return nil, &NotFoundError{Kind: "config", Code: "config.yaml"}
	}
	c, _, err := codec.DecodeConfig(path, data)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return c, nil
}

// Exists reports whether config.yaml is already present, used by `init`
// to refuse re-initializing a workspace without --force (§4.E).
func (r *ConfigRepo) Exists() bool {
	_, err := readFile(r.ws.ConfigPath())
	return err == nil
}

// Save creates or overwrites config.yaml.
func (r *ConfigRepo) Save(c *entity.Config) error {
	data, err := codec.EncodeConfig(c)
	if err != nil {
		return err
	}
	return WriteAtomic(r.ws.ConfigPath(), data)
}
