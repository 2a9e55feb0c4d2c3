// Package library indexes standard-library sources so that `std:` imports can be
// resolved to files.
package library

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	DefaultPrefix = "std"
	FileExt       = ".zph"
)

type Options struct {
	// Prefix is the import scheme, "std" when empty.
	Prefix string
	// CacheDir overrides the on-disk cache location; see DefaultCacheDir.
	CacheDir string
	// NoCache disables reading and writing the on-disk cache.
	NoCache bool
}

// Index maps qualified module names to absolute source paths.
type Index struct {
	Dir    string
	Prefix string
	// FromCache reports whether the module table was restored from disk.
	FromCache bool

	modules map[string]string
	names   []string
}

// Open indexes every .zph file under dir. A valid cache entry for the same
// directory and modification fingerprint skips rebuilding the table; cache
// failures fall back to the fresh result silently.
func Open(ctx context.Context, dir string, opts Options) (*Index, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("library: resolve %q: %w", dir, err)
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("library: %s is not a directory", abs)
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	files, fp, err := scan(ctx, abs)
	if err != nil {
		return nil, err
	}

	var cache *diskCache
	if !opts.NoCache {
		cache = openCache(opts.CacheDir)
	}
	key := cacheKey(abs, prefix)
	if payload, ok := cache.get(key); ok && payload.Fingerprint == fp {
		return newIndex(abs, prefix, payload.Modules, true), nil
	}

	modules := make(map[string]string, len(files))
	for _, rel := range files {
		modules[moduleName(rel)] = filepath.Join(abs, rel)
	}
	cache.put(key, &cachePayload{
		Schema:      cacheSchemaVersion,
		Dir:         abs,
		Prefix:      prefix,
		Fingerprint: fp,
		Modules:     modules,
	})
	return newIndex(abs, prefix, modules, false), nil
}

func newIndex(dir, prefix string, modules map[string]string, cached bool) *Index {
	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return &Index{Dir: dir, Prefix: prefix, FromCache: cached, modules: modules, names: names}
}

// Resolve returns the file of module name, given with or without the prefix.
func (ix *Index) Resolve(name string) (string, bool) {
	if ix == nil {
		return "", false
	}
	name = strings.TrimPrefix(name, ix.Prefix+":")
	p, ok := ix.modules[name]
	return p, ok
}

// Names lists every module as "<prefix>:<name>", sorted.
func (ix *Index) Names() []string {
	if ix == nil {
		return nil
	}
	out := make([]string, len(ix.names))
	for i, n := range ix.names {
		out[i] = ix.Prefix + ":" + n
	}
	return out
}

func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.modules)
}

// moduleName turns "io/console.zph" into "io.console".
func moduleName(rel string) string {
	rel = strings.TrimSuffix(filepath.ToSlash(rel), FileExt)
	return strings.ReplaceAll(rel, "/", ".")
}

// scan lists source files relative to dir, sorted, and hashes their paths,
// sizes and modification times. Hidden directories are skipped.
func scan(ctx context.Context, dir string) ([]string, [32]byte, error) {
	var files []string
	h := sha256.New()
	var buf [16]byte
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != FileExt {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		h.Write([]byte(filepath.ToSlash(rel)))
		binary.LittleEndian.PutUint64(buf[:8], uint64(info.Size()))
		binary.LittleEndian.PutUint64(buf[8:], uint64(info.ModTime().UnixNano()))
		h.Write(buf[:])
		return nil
	})
	var fp [32]byte
	if err != nil {
		return nil, fp, fmt.Errorf("library: scan %s: %w", dir, err)
	}
	copy(fp[:], h.Sum(nil))
	return files, fp, nil
}
