package index

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

const (
	indexFileName    = "index.gob"
	registryFileName = "registry.gob"
)

// registryRecord is the gob-encodable projection of TrackRegistry, whose
// fields are kept unexported to protect the dense-ID invariant from direct
// mutation elsewhere in the package tree.
type registryRecord struct {
	Labels map[uint32]string
	NextID uint32
}

// Save writes idx and registry to dir as index.gob and registry.gob. Each
// file is written to a *.tmp sibling, fsync'd and then renamed into place,
// so neither file is ever seen half-written. The index is written and
// renamed first, and only then is the registry written and renamed; the two
// renames are not atomic as a pair, so a crash between them leaves the new
// index beside the previous registry.
func Save(dir string, idx Index, registry *TrackRegistry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("index: creating snapshot dir: %w", err)
	}

	if err := writeGobAtomic(filepath.Join(dir, indexFileName), idx); err != nil {
		return fmt.Errorf("index: writing index snapshot: %w", err)
	}

	record := registryRecord{Labels: registry.labels, NextID: registry.nextID}
	if err := writeGobAtomic(filepath.Join(dir, registryFileName), record); err != nil {
		return fmt.Errorf("index: writing registry snapshot: %w", err)
	}

	return nil
}

// Load reads a previously Saved snapshot from dir.
func Load(dir string) (Index, *TrackRegistry, error) {
	var idx Index
	if err := readGob(filepath.Join(dir, indexFileName), &idx); err != nil {
		return nil, nil, fmt.Errorf("index: reading index snapshot: %w", err)
	}

	var record registryRecord
	if err := readGob(filepath.Join(dir, registryFileName), &record); err != nil {
		return nil, nil, fmt.Errorf("index: reading registry snapshot: %w", err)
	}

	registry := &TrackRegistry{labels: record.Labels, nextID: record.NextID}
	if registry.labels == nil {
		registry.labels = make(map[uint32]string)
	}

	return idx, registry, nil
}

// Exists reports whether a complete snapshot is present in dir.
func Exists(dir string) bool {
	_, errIdx := os.Stat(filepath.Join(dir, indexFileName))
	_, errReg := os.Stat(filepath.Join(dir, registryFileName))
	return errIdx == nil && errReg == nil
}

func writeGobAtomic(path string, value interface{}) error {
	tmpPath := path + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	if err := gob.NewEncoder(f).Encode(value); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}

func readGob(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gob.NewDecoder(f).Decode(out)
}
