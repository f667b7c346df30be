package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/i474232898/stormwind/internal/common"
	"github.com/i474232898/stormwind/internal/config"
	"github.com/i474232898/stormwind/internal/weather"
)

// FileName is the cache file created inside the user cache directory.
const FileName = "stormwind.cache"

// Record positions inside a cache entry.
const (
	recVersion = iota
	recLat
	recLon
	recLang
	recUnits
	recBody
	recordCount
)

// FileCache keeps the last decoded weather report in a single file, keyed by
// program version, coordinates, lang and units.
type FileCache struct {
	path    string
	version string
	now     func() time.Time
}

// New returns a cache backed by the file at path. Entries written by a
// different version are treated as misses.
func New(path, version string) *FileCache {
	return &FileCache{
		path:    path,
		version: version,
		now:     time.Now,
	}
}

// DefaultPath returns <user-cache-dir>/stormwind.cache.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache directory: %w", err)
	}
	return filepath.Join(dir, FileName), nil
}

// Path returns the file backing the cache.
func (c *FileCache) Path() string {
	return c.path
}

// Fresh reports whether a file modified at mtime may still be used at now.
// A modification time in the future counts as stale.
func Fresh(mtime, now time.Time, seconds uint16) bool {
	age := now.Unix() - mtime.Unix()
	return age >= 0 && age < int64(seconds)
}

// Read returns the cached report for cfg. Every failure is a miss; entries
// that are malformed or keyed for another configuration are truncated.
func (c *FileCache) Read(cfg config.Config) (weather.Report, bool) {
	info, err := os.Stat(c.path)
	if err != nil {
		return weather.Report{}, false
	}
	if !Fresh(info.ModTime(), c.now(), cfg.CacheSeconds) {
		return weather.Report{}, false
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return weather.Report{}, false
	}

	records := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(records) < 2 || records[recVersion] != c.version {
		c.truncate()
		return weather.Report{}, false
	}
	if len(records) < recordCount || !matches(records, cfg) {
		c.truncate()
		return weather.Report{}, false
	}

	report, err := weather.DecodeReport(strings.NewReader(records[recBody]))
	if err != nil {
		c.truncate()
		return weather.Report{}, false
	}
	return report, true
}

func matches(records []string, cfg config.Config) bool {
	return records[recLat] == common.FormatFloat(cfg.Lat) &&
		records[recLon] == common.FormatFloat(cfg.Lon) &&
		records[recLang] == cfg.Lang &&
		records[recUnits] == string(cfg.Units)
}

func (c *FileCache) truncate() {
	_ = os.Truncate(c.path, 0)
}

// Write replaces the cache file with a new entry for report. The entry is
// written to a temporary file in the same directory and renamed into place.
func (c *FileCache) Write(report weather.Report, cfg config.Config) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	var buf bytes.Buffer
	for _, rec := range []string{
		c.version,
		common.FormatFloat(cfg.Lat),
		common.FormatFloat(cfg.Lon),
		cfg.Lang,
		string(cfg.Units),
	} {
		buf.WriteString(rec)
		buf.WriteByte('\n')
	}
	buf.Write(body)
	buf.WriteByte('\n')

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, FileName+".*")
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}
