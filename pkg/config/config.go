// Package config loads the sizing parameters an [arena.Arena] needs at
// construction time from a YAML document. It exists only to serve
// cmd/kvarena; the core arena package never touches a filesystem.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flier/kvarena/pkg/arena"
	"github.com/flier/kvarena/pkg/xerrors"
)

// Config describes the fixed-size buffer an arena should be built over.
type Config struct {
	// Size is the total buffer size in bytes.
	Size int `yaml:"size"`
	// HunkSize is the value-side allocation granularity, in bytes.
	HunkSize int `yaml:"hunk_size"`
	// MaxKeyLength bounds key length in bytes, excluding the NUL terminator.
	MaxKeyLength int `yaml:"max_key_length"`
}

// Default is the configuration cmd/kvarena falls back to when no file is
// given: a 1 MiB arena, 64-byte hunks, 64-byte keys.
var Default = Config{
	Size:         1 << 20,
	HunkSize:     64,
	MaxKeyLength: 64,
}

// Load parses a YAML document from r, filling in any field left zero with
// [Default]'s corresponding value.
func Load(r io.Reader) (Config, error) {
	cfg := Config{}
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		if typeErr, ok := xerrors.AsA[*yaml.TypeError](err); ok {
			return Config{}, fmt.Errorf("config: decode: %s", strings.Join(typeErr.Errors, "; "))
		}
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if cfg.Size == 0 {
		cfg.Size = Default.Size
	}
	if cfg.HunkSize == 0 {
		cfg.HunkSize = Default.HunkSize
	}
	if cfg.MaxKeyLength == 0 {
		cfg.MaxKeyLength = Default.MaxKeyLength
	}

	return cfg, cfg.Validate()
}

// LoadFile opens path and calls [Load] on its contents.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Validate reports whether every field is positive. It does not check that
// Size leaves room for the arena header; [Config.NewArena] reports that case.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("config: size must be positive, got %d", c.Size)
	}
	if c.HunkSize <= 0 {
		return fmt.Errorf("config: hunk_size must be positive, got %d", c.HunkSize)
	}
	if c.MaxKeyLength <= 0 {
		return fmt.Errorf("config: max_key_length must be positive, got %d", c.MaxKeyLength)
	}
	return nil
}

// NewArena allocates a fresh buffer of c.Size bytes and initializes an
// arena over it.
func (c Config) NewArena() (*arena.Arena, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	buf := make([]byte, c.Size)
	a, err := arena.Init(buf, uint32(c.HunkSize), uint32(c.MaxKeyLength))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return a, nil
}
