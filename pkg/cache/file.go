package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
)

// FileCache implements a file-based cache for CLI usage.
// Cache entries are stored as JSON files holding zstd-compressed data and
// an expiration time.
type FileCache struct {
	dir string
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &FileCache{dir: dir, enc: enc, dec: dec}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// cacheEntry wraps cached data with metadata.
type cacheEntry struct {
	Data      []byte    `json:"data"` // zstd frame
	Size      int       `json:"size"` // uncompressed length
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Size < 0 {
		// Invalid cache entry - treat as miss
		_ = os.Remove(path)
		return nil, false, nil
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	data, err := c.dec.DecodeAll(entry.Data, make([]byte, 0, entry.Size))
	if err != nil || len(data) != entry.Size {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores a value in the cache.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := cacheEntry{
		Data: c.enc.EncodeAll(data, nil),
		Size: len(data),
	}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	entryData, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Write to a temp file first so concurrent readers never see a partial entry.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, entryData, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every entry and returns how many files were deleted.
// Empty shard directories are removed as well; the cache directory stays.
func (c *FileCache) Clear(ctx context.Context) (int, error) {
	shards, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	count := 0
	for _, shard := range shards {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		shardPath := filepath.Join(c.dir, shard.Name())
		if !shard.IsDir() {
			if os.Remove(shardPath) == nil {
				count++
			}
			continue
		}
		files, err := os.ReadDir(shardPath)
		if err != nil {
			continue
		}
		for _, f := range files {
			if os.Remove(filepath.Join(shardPath, f.Name())) == nil {
				count++
			}
		}
		_ = os.Remove(shardPath)
	}
	return count, nil
}

// Close releases the compression state.
func (c *FileCache) Close() error {
	c.dec.Close()
	return c.enc.Close()
}

// path converts a cache key to a file path.
// Uses a simple hash-based directory structure to avoid too many files in one dir.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	// Use first 2 chars as subdirectory for distribution
	subdir := hash[:2]
	filename := hash[2:] + ".json"
	return filepath.Join(c.dir, subdir, filename)
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
