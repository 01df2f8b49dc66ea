package ledger

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atlasplay/wager-engine/games"
)

// InitialBalance is the bankroll a fresh profile starts with.
const InitialBalance = 1000

// MaxHistory bounds the bet log; the oldest entry is dropped on overflow.
const MaxHistory = 100

// Leveling: one level per levelStep wagered, xp in [0, 100) as percent
// progress to the next level.
const (
	levelStep = 500
	xpStep    = levelStep / 100
)

// Bet is one settled wager. Immutable once appended to the history.
type Bet struct {
	ID         string     `json:"id"`
	Game       games.Kind `json:"game"`
	Amount     float64    `json:"amount"`
	Multiplier float64    `json:"multiplier"`
	Payout     float64    `json:"payout"`
	Win        bool       `json:"win"`
	Timestamp  time.Time  `json:"timestamp"`
}

// State is the persisted ledger snapshot. Level and XP are always derived
// from TotalWagered and never stored, so the two can never drift apart.
type State struct {
	Username     string  `json:"username"`
	Balance      float64 `json:"balance"`
	IsVerified   bool    `json:"isVerified"`
	TotalWins    int     `json:"totalWins"`
	TotalLosses  int     `json:"totalLosses"`
	TotalWagered float64 `json:"totalWagered"`
	Profit       float64 `json:"profit"`
	Bets         []*Bet  `json:"bets"`

	Level int `json:"-"`
	XP    int `json:"-"`

	// Most recent stake and payout, for the UI. Session-scoped.
	LastBet float64 `json:"-"`
	LastWin float64 `json:"-"`
}

func (s *State) deriveLevel() {
	s.Level = int(math.Floor(s.TotalWagered/levelStep)) + 1
	s.XP = int(math.Floor(math.Mod(s.TotalWagered, levelStep) / xpStep))
}

func defaultState(username string) *State {
	s := &State{
		Username: username,
		Balance:  InitialBalance,
		Bets:     []*Bet{},
	}
	s.deriveLevel()
	return s
}

// Ledger owns the money state. Every mutation runs under the lock, so bet
// placement and settlement each apply atomically, and the snapshot is
// flushed to the store after every mutating call.
type Ledger struct {
	mu    sync.Mutex
	state *State
	store Store
}

// New loads the snapshot from store, or starts a fresh profile when nothing
// usable is stored.
func New(store Store, username string) *Ledger {
	state, ok := store.Load()
	if !ok || state == nil {
		state = defaultState(username)
	}
	if state.Bets == nil {
		state.Bets = []*Bet{}
	}
	state.deriveLevel()
	return &Ledger{state: state, store: store}
}

// persist flushes the current state. Callers hold l.mu. Durability is the
// store's problem; a failed save never fails the ledger operation.
func (l *Ledger) persist() {
	l.store.Save(l.state)
}

// PlaceBet deducts the stake and counts it toward leveling. It reports false
// and leaves the ledger untouched when the amount is non-positive or exceeds
// the balance. From the moment it returns true the stake is at risk.
func (l *Ledger) PlaceBet(amount float64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if amount <= 0 || amount > l.state.Balance {
		return false
	}
	l.state.Balance -= amount
	l.state.TotalWagered += amount
	l.state.LastBet = amount
	l.state.LastWin = 0
	l.state.deriveLevel()
	l.persist()
	return true
}

// Settle credits the outcome of a placed bet: payout on a win, nothing on a
// loss. The realized multiplier recorded in the history is zero for losses.
// Settlement trusts the caller to pass the same amount it placed; bets are
// not correlated by id.
func (l *Ledger) Settle(game games.Kind, amount, multiplier float64, win bool) *Bet {
	l.mu.Lock()
	defer l.mu.Unlock()
	payout := 0.0
	if win {
		payout = amount * multiplier
	} else {
		multiplier = 0
	}
	l.state.Balance += payout
	if win {
		l.state.TotalWins++
	} else {
		l.state.TotalLosses++
	}
	l.state.Profit += payout - amount
	l.state.LastWin = payout

	bet := &Bet{
		ID:         uuid.New().String(),
		Game:       game,
		Amount:     amount,
		Multiplier: multiplier,
		Payout:     payout,
		Win:        win,
		Timestamp:  time.Now(),
	}
	l.state.Bets = append([]*Bet{bet}, l.state.Bets...)
	if len(l.state.Bets) > MaxHistory {
		l.state.Bets = l.state.Bets[:MaxHistory]
	}
	l.persist()
	return bet
}

// Reset restores the starting balance and clears counters and history.
// Username and verification survive a reset.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fresh := defaultState(l.state.Username)
	fresh.IsVerified = l.state.IsVerified
	l.state = fresh
	l.persist()
}

// AddFunds credits promotional balance. No upper bound.
func (l *Ledger) AddFunds(amount float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Balance += amount
	l.persist()
}

// SetVerified records the session gate result from the external
// verification flow. The engine itself never verifies anyone.
func (l *Ledger) SetVerified(verified bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.IsVerified = verified
	l.persist()
}

func (l *Ledger) SetUsername(username string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Username = username
	l.persist()
}

func (l *Ledger) IsVerified() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.IsVerified
}

func (l *Ledger) Balance() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Balance
}

func copyBets(bets []*Bet, n int) []*Bet {
	out := make([]*Bet, n)
	for i := 0; i < n; i++ {
		b := *bets[i]
		out[i] = &b
	}
	return out
}

// Snapshot returns a copy of the state for reads. The bet records are copied
// too: a settled bet is immutable, and no caller can reach the live history
// through the snapshot.
func (l *Ledger) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := *l.state
	s.Bets = copyBets(l.state.Bets, len(l.state.Bets))
	return s
}

// History returns up to n most recent bets, newest first.
func (l *Ledger) History(n int) []*Bet {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || n > len(l.state.Bets) {
		n = len(l.state.Bets)
	}
	return copyBets(l.state.Bets, n)
}
