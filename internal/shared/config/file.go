package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// File mirrors the optional config.toml.
type File struct {
	Database DatabaseSection `toml:"database"`
	Server   struct {
		Port string `toml:"port"`
	} `toml:"server"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
	Report struct {
		OutputDir      string `toml:"output_dir"`
		DefaultFormat  string `toml:"default_format"`
		BatchedActions bool   `toml:"batched_actions"`
	} `toml:"report"`
}

// DatabaseSection holds the connection parameters of the [database] table.
type DatabaseSection struct {
	Server   string `toml:"server"`
	Port     int    `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	SSLMode  string `toml:"sslmode"`
}

// LoadFile parses the TOML file at path. A missing file yields an empty File.
func LoadFile(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}
