package mines

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Store persists active mines rounds to mines_rounds.json so a session in
// flight is not lost on restart. Resolved rounds are dropped on load.
//
// All round transitions go through Reveal and Cashout, which run under the
// store lock: the state check and the transition are one atomic step, so two
// racing requests can never both resolve the same round. Accessors hand out
// copies, never the live round.
type Store struct {
	mu      sync.Mutex
	rounds  map[string]*Round
	dataDir string
}

func NewStore(dataDir string) *Store {
	if dataDir == "" {
		dataDir = "data"
	}
	s := &Store{
		rounds:  make(map[string]*Round),
		dataDir: dataDir,
	}
	s.load()
	return s
}

func (s *Store) path() string {
	return filepath.Join(s.dataDir, "mines_rounds.json")
}

func (s *Store) ensureDir() error {
	return os.MkdirAll(s.dataDir, 0755)
}

func (s *Store) load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path())
	if err != nil {
		return
	}
	var list []*Round
	if err := json.Unmarshal(data, &list); err != nil {
		return
	}
	for _, r := range list {
		if r != nil && r.RoundID != "" && r.State == StateActive {
			s.rounds[r.RoundID] = r
		}
	}
}

func (s *Store) save() error {
	list := make([]*Round, 0, len(s.rounds))
	for _, r := range s.rounds {
		list = append(list, r)
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0644)
}

// snapshot copies a round so callers read it without holding the lock.
func snapshot(r *Round) *Round {
	c := *r
	c.Mines = append([]int(nil), r.Mines...)
	c.Revealed = append([]int(nil), r.Revealed...)
	return &c
}

func (s *Store) Put(r *Round) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds[r.RoundID] = r
	_ = s.save()
}

func (s *Store) Get(roundID string) (*Round, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rounds[roundID]
	if !ok {
		return nil, false
	}
	return snapshot(r), true
}

// Reveal opens a cell on a stored round. A round that resolves leaves the
// store in the same locked step, so it can be settled exactly once.
func (s *Store) Reveal(roundID string, cell int) (*Round, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rounds[roundID]
	if !ok {
		return nil, false
	}
	r.Reveal(cell)
	if r.Resolved() {
		delete(s.rounds, roundID)
	}
	_ = s.save()
	return snapshot(r), true
}

// Cashout settles a stored round at its current multiplier and removes it.
// A nil round means the id is unknown; ok=false on a known round means the
// cashout was rejected (nothing revealed yet). Only one caller can ever get
// ok=true for a given round.
func (s *Store) Cashout(roundID string) (round *Round, multiplier float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, found := s.rounds[roundID]
	if !found {
		return nil, 0, false
	}
	mult, ok := r.Cashout()
	if !ok {
		return snapshot(r), 0, false
	}
	delete(s.rounds, roundID)
	_ = s.save()
	return snapshot(r), mult, true
}

func (s *Store) Delete(roundID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rounds, roundID)
	_ = s.save()
}
