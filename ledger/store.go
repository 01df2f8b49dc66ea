package ledger

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Store is the persistence contract the ledger needs: load a snapshot if one
// exists, save after every mutation. A store must degrade to "no snapshot"
// on corruption or absence, never surface a fault into the engine.
type Store interface {
	Load() (*State, bool)
	Save(*State)
}

// NopStore discards snapshots. Used for ephemeral ledgers and in tests.
type NopStore struct{}

func (NopStore) Load() (*State, bool) { return nil, false }
func (NopStore) Save(*State)          {}

// FileStore keeps the snapshot in ledger.json under dataDir.
type FileStore struct {
	mu      sync.Mutex
	dataDir string
}

func NewFileStore(dataDir string) *FileStore {
	if dataDir == "" {
		dataDir = "data"
	}
	return &FileStore{dataDir: dataDir}
}

func (fs *FileStore) path() string {
	return filepath.Join(fs.dataDir, "ledger.json")
}

func (fs *FileStore) ensureDir() error {
	return os.MkdirAll(fs.dataDir, 0755)
}

func (fs *FileStore) Load() (*State, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	data, err := os.ReadFile(fs.path())
	if err != nil {
		return nil, false
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("ledger: discarding corrupt snapshot %s: %v", fs.path(), err)
		return nil, false
	}
	return &s, true
}

func (fs *FileStore) Save(s *State) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		log.Printf("ledger: marshal snapshot: %v", err)
		return
	}
	if err := fs.ensureDir(); err != nil {
		log.Printf("ledger: %v", err)
		return
	}
	if err := os.WriteFile(fs.path(), data, 0644); err != nil {
		log.Printf("ledger: write snapshot: %v", err)
	}
}
