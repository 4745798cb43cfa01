// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads rootPath/.driftwood.yaml. A missing file is not an error; the
// zero Config stands in for it so callers never branch on presence.
func Load(rootPath string) (*Config, error) {
	path := filepath.Join(rootPath, FileName)
	data, err := os.ReadFile(path) //nolint:gosec // user-provided root path
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Config{}, nil
	case err != nil:
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Write encodes cfg as two-space-indented YAML.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
