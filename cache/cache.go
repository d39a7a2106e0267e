// Package cache provides ward.TreeCache implementations: an in-process
// map and a directory of zstd-compressed JSON files that survives restarts.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/TrevorS/ward"
)

// Memory is an in-process tree cache. It is safe for concurrent use.
// Stored trees are shared between callers and must not be modified.
type Memory struct {
	mu    sync.RWMutex
	trees map[uint64]*ward.Tree
}

var (
	_ ward.TreeCache = (*Memory)(nil)
	_ ward.TreeCache = (*Disk)(nil)
)

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{trees: make(map[uint64]*ward.Tree)}
}

// Get implements ward.TreeCache.
func (m *Memory) Get(key uint64) (*ward.Tree, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trees[key]
	return t, ok, nil
}

// Put implements ward.TreeCache.
func (m *Memory) Put(key uint64, t *ward.Tree) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trees[key] = t
	return nil
}

// Len returns the number of stored trees.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trees)
}

// Disk stores one zstd-compressed JSON file per tree in a directory.
// Writes go to a temporary file that is renamed into place, so concurrent
// readers never see a partial entry.
type Disk struct {
	dir string
}

// NewDisk returns a cache rooted at dir, creating it if needed.
func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create %s: %w", dir, err)
	}
	return &Disk{dir: dir}, nil
}

func (d *Disk) path(key uint64) string {
	return filepath.Join(d.dir, fmt.Sprintf("%016x.json.zst", key))
}

// Get implements ward.TreeCache.
func (d *Disk) Get(key uint64) (*ward.Tree, bool, error) {
	f, err := os.Open(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, false, fmt.Errorf("cache: open decoder: %w", err)
	}
	defer dec.Close()

	var t ward.Tree
	if err := json.NewDecoder(dec).Decode(&t); err != nil {
		return nil, false, fmt.Errorf("cache: decode %s: %w", f.Name(), err)
	}
	return &t, true, nil
}

// Put implements ward.TreeCache.
func (d *Disk) Put(key uint64, t *ward.Tree) (err error) {
	tmp, err := os.CreateTemp(d.dir, "tree-*.tmp")
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	enc, err := zstd.NewWriter(tmp)
	if err != nil {
		return fmt.Errorf("cache: open encoder: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(t); err != nil {
		enc.Close()
		return fmt.Errorf("cache: encode tree: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("cache: flush encoder: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.path(key)); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}
