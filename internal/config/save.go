package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Save writes cfg to the path given by the write-config flag. It returns
// whether a path was given.
func (f *Flags) Save(cfg *Config) (bool, error) {
	if f == nil || f.SavePath == "" {
		return false, nil
	}
	return true, cfg.SaveTo(f.SavePath)
}
