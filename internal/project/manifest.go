package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultLibraryPrefix names standard-library imports when [library].prefix is unset.
const DefaultLibraryPrefix = "std"

var (
	ErrPackageSectionMissing = errors.New("missing [package]")
	ErrPackageNameMissing    = errors.New("missing [package].name")
)

// Manifest is a decoded zephyr.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Library LibraryConfig `toml:"library"`
	Check   CheckConfig   `toml:"check"`
}

type PackageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version,omitempty"`
}

// LibraryConfig points at the standard library sources. Path is relative to the
// manifest directory unless absolute.
type LibraryConfig struct {
	Path   string `toml:"path,omitempty"`
	Prefix string `toml:"prefix,omitempty"`
}

type CheckConfig struct {
	MaxDiagnostics int `toml:"max_diagnostics,omitempty"`
	Jobs           int `toml:"jobs,omitempty"`
}

// Load finds and decodes the manifest governing startDir. ok is false when no
// manifest exists up to the filesystem root.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadFile(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadFile decodes and validates the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(meta, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

func validate(meta toml.MetaData, cfg *Config) error {
	if !meta.IsDefined("package") {
		return ErrPackageSectionMissing
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return ErrPackageNameMissing
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("[check].max_diagnostics must not be negative, got %d", cfg.Check.MaxDiagnostics)
	}
	if cfg.Check.Jobs < 0 {
		return fmt.Errorf("[check].jobs must not be negative, got %d", cfg.Check.Jobs)
	}
	if p := strings.TrimSpace(cfg.Library.Prefix); p != "" && strings.ContainsAny(p, ":/\\ ") {
		return fmt.Errorf("[library].prefix %q must be a bare identifier", p)
	}
	return nil
}

// LibraryDir returns the absolute standard-library directory, or "" when unset.
func (m *Manifest) LibraryDir() string {
	if m == nil {
		return ""
	}
	p := strings.TrimSpace(m.Config.Library.Path)
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}

// LibraryPrefix returns the import prefix for standard-library modules.
func (m *Manifest) LibraryPrefix() string {
	if m == nil || strings.TrimSpace(m.Config.Library.Prefix) == "" {
		return DefaultLibraryPrefix
	}
	return strings.TrimSpace(m.Config.Library.Prefix)
}
