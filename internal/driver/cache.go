package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// diskCacheSchemaVersion is bumped whenever ReportPayload's wire shape
// changes, so a stale cache entry is rejected with an error rather than
// misdecoded.
const diskCacheSchemaVersion uint16 = 1

// ReportEntry is one cached sample's result, trimmed to what's worth
// persisting (a layout.Error doesn't round-trip usefully, so failures are
// recorded as a message instead).
type ReportEntry struct {
	Name      string
	SizeBytes uint64
	SizeBits  uint64
	Align     uint64
	Ok        bool
	Err       string
}

// ReportPayload is a full Batch run for one target, the unit msgpack
// serializes to disk.
type ReportPayload struct {
	Schema uint16
	Target string
	Lang   string
	Results []ReportEntry
}

// DiskCache persists ReportPayloads under $XDG_CACHE_HOME/ctypec (or
// ~/.cache/ctypec), one file per target+dialect key, the way the teacher's
// DiskCache persists one file per ModuleHash.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes the cache directory.
func OpenDiskCache() (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, "ctypec")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func cacheKey(target, lang string) string {
	sum := sha256.Sum256([]byte(target + "|" + lang))
	return hex.EncodeToString(sum[:])
}

func (c *DiskCache) pathFor(target, lang string) string {
	return filepath.Join(c.dir, cacheKey(target, lang)+".mp")
}

// Export writes payload to the disk cache, atomically (write to a temp file,
// then rename).
func (c *DiskCache) Export(payload *ReportPayload) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskCacheSchemaVersion
	p := c.pathFor(payload.Target, payload.Lang)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return "", err
	}
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	if err := os.Rename(f.Name(), p); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return p, nil
}

// ExportTo writes payload to an explicit path instead of the standard cache
// location, for the CLI's "cache export <path>" subcommand.
func ExportTo(path string, payload *ReportPayload) error {
	payload.Schema = diskCacheSchemaVersion
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return msgpack.NewEncoder(f).Encode(payload)
}

// ImportFrom reads a ReportPayload previously written by Export/ExportTo.
func ImportFrom(path string) (*ReportPayload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var payload ReportPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, errors.New("ctypec: cache schema mismatch, discard and re-export")
	}
	return &payload, nil
}

// Import reads target/lang's cached payload from the standard cache
// location, reporting ok=false (not an error) when nothing is cached yet.
func (c *DiskCache) Import(target, lang string) (*ReportPayload, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(target, lang)
	payload, err := ImportFrom(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}
