package storage

import (
	"errors"
	"fmt"
	"maps"
	"nutriscan/internal/providers"
	"nutriscan/internal/storage/interfaces"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
)

var (
	ErrCorruptStore = errors.New("store file is corrupt")
	ErrInvalidValue = errors.New("value is not valid JSON")
)

// FileStore keeps every document in memory and mirrors the whole map into a
// single zstd-compressed file on Flush.
type FileStore struct {
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger

	mu    sync.RWMutex
	data  map[string]json.RawMessage
	dirty bool
}

func NewFileStore(path string, compressor interfaces.CompressorInterface, logger providers.Logger) *FileStore {
	return &FileStore{
		path:       path,
		compressor: compressor,
		logger:     logger,
		data:       make(map[string]json.RawMessage),
	}
}

func (f *FileStore) Get(key string) ([]byte, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	val, ok := f.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

func (f *FileStore) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("set %s: %w", key, ErrInvalidValue)
	}
	stored := make(json.RawMessage, len(value))
	copy(stored, value)

	f.mu.Lock()
	f.data[key] = stored
	f.dirty = true
	f.mu.Unlock()
	return nil
}

func (f *FileStore) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.data[key]; ok {
		delete(f.data, key)
		f.dirty = true
	}
	return nil
}

// Load replaces the in-memory map with the file contents. A missing file
// leaves the store empty. A file that cannot be decoded also leaves it empty
// and is reported as ErrCorruptStore.
func (f *FileStore) Load() error {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	data := make(map[string]json.RawMessage)
	decompressed, err := f.compressor.Decompress(raw)
	if err == nil {
		err = json.Unmarshal(decompressed, &data)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.data = make(map[string]json.RawMessage)
		f.dirty = false
		return fmt.Errorf("%w: %s: %w", ErrCorruptStore, f.path, err)
	}
	if data == nil {
		data = make(map[string]json.RawMessage)
	}
	f.data = data
	f.dirty = false
	return nil
}

// Flush writes the map to disk through a temp file and rename. Nothing is
// written when the map has not changed since the last flush.
func (f *FileStore) Flush() error {
	f.mu.Lock()
	if !f.dirty {
		f.mu.Unlock()
		return nil
	}
	snapshot := maps.Clone(f.data)
	f.dirty = false
	f.mu.Unlock()

	if err := f.writeSnapshot(snapshot); err != nil {
		f.mu.Lock()
		f.dirty = true
		f.mu.Unlock()
		return err
	}
	f.logger.Debugf(providers.TypeStore, "Flushed %d keys to %s", len(snapshot), f.path)
	return nil
}

func (f *FileStore) writeSnapshot(snapshot map[string]json.RawMessage) error {
	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}

func (f *FileStore) Close() error {
	err := f.Flush()
	f.compressor.Close()
	return err
}
