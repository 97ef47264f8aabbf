package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wfunc/bingoserver/models"
)

// FileStore keeps the snapshot as a single JSON file, rewritten after
// every mutation. Writes go through a temp file plus rename so a crash
// mid-write never corrupts the previous snapshot.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Save(rooms map[string]models.RoomState) error {
	data, err := json.MarshalIndent(rooms, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (f *FileStore) Load() (map[string]models.RoomState, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]models.RoomState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	rooms := make(map[string]models.RoomState)
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return rooms, nil
}

func (f *FileStore) Close() error {
	return nil
}
