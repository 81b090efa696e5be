package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileRecorder writes one flat JSON file per token, overwritten with the
// latest discovery. Useful when no database is wanted.
type FileRecorder struct {
	dir string
	mu  sync.Mutex
}

// NewFileRecorder creates the record directory if needed.
func NewFileRecorder(dir string) (*FileRecorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create record dir: %w", err)
	}
	return &FileRecorder{dir: dir}, nil
}

func (r *FileRecorder) RecordDiscovery(rec *DiscoveryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal discovery: %w", err)
	}

	path := filepath.Join(r.dir, rec.Symbol+".json")
	// Write via temp file + rename so readers never see a partial record.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write discovery: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename discovery: %w", err)
	}
	return nil
}

func (r *FileRecorder) Close() error { return nil }

// LoadDiscovery reads a token's last recorded discovery. Returns nil without
// error when no record exists yet.
func (r *FileRecorder) LoadDiscovery(symbol string) (*DiscoveryRecord, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, symbol+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var rec DiscoveryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
