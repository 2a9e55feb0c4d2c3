package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// MainFile is the entry point written by Init.
const MainFile = "main.zph"

// InitResult lists what Init wrote.
type InitResult struct {
	Root        string
	Manifest    string
	CreatedMain bool
}

// Init creates dir if needed and writes a zephyr.toml named after it plus a
// starter main.zph. An existing manifest is an error; an existing main.zph is kept.
func Init(dir string) (InitResult, error) {
	target, err := filepath.Abs(dir)
	if err != nil {
		return InitResult{}, err
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return InitResult{}, err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return InitResult{}, fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return InitResult{}, fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return InitResult{}, fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	data, err := EncodeConfig(DefaultConfig(projectName(target)))
	if err != nil {
		return InitResult{}, err
	}
	if err := os.WriteFile(manifestPath, data, 0o600); err != nil {
		return InitResult{}, fmt.Errorf("failed to write manifest: %w", err)
	}

	res := InitResult{Root: target, Manifest: manifestPath}
	mainPath := filepath.Join(target, MainFile)
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMain), 0o600); err != nil {
			return res, fmt.Errorf("failed to write %s: %w", MainFile, err)
		}
		res.CreatedMain = true
	}
	return res, nil
}

func projectName(dir string) string {
	name := strings.TrimSpace(filepath.Base(dir))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "zephyr-project"
	}
	return name
}

// DefaultConfig is the manifest written for a fresh project.
func DefaultConfig(name string) Config {
	return Config{
		Package: PackageConfig{Name: name, Version: "0.1.0"},
		Library: LibraryConfig{Prefix: DefaultLibraryPrefix},
	}
}

func EncodeConfig(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# Zephyr project manifest\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

const defaultMain = `native type Console;

type Main {
    pub shared fn main() {
        Console.print(greeting());
    }

    shared fn greeting(): string {
        return "hello, zephyr";
    }
}
`
