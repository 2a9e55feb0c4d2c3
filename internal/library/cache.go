package library

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// bump when cachePayload changes shape
const cacheSchemaVersion uint16 = 1

type cachePayload struct {
	Schema      uint16
	Dir         string
	Prefix      string
	Fingerprint [32]byte
	Modules     map[string]string
}

type diskCache struct {
	dir string
}

// DefaultCacheDir is $XDG_CACHE_HOME/zephyr/library or its platform equivalent.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "zephyr", "library"), nil
}

// openCache returns nil when no cache directory is usable; a nil cache misses
// every lookup and drops every write.
func openCache(dir string) *diskCache {
	if dir == "" {
		d, err := DefaultCacheDir()
		if err != nil {
			return nil
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil
	}
	return &diskCache{dir: dir}
}

func cacheKey(dir, prefix string) string {
	sum := sha256.Sum256([]byte(prefix + "\x00" + dir))
	return hex.EncodeToString(sum[:])
}

func (c *diskCache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".mp")
}

func (c *diskCache) get(key string) (*cachePayload, bool) {
	if c == nil {
		return nil, false
	}
	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	defer f.Close()
	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false
	}
	return &payload, true
}

func (c *diskCache) put(key string, payload *cachePayload) {
	if c == nil {
		return
	}
	_ = c.write(c.pathFor(key), payload)
}

func (c *diskCache) write(path string, payload *cachePayload) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(f.Name()))
		}
	}()
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), path)
}
