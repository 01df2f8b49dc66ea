package mines

import (
	"time"

	"github.com/atlasplay/wager-engine/games"
)

// GridSize is the number of cells on the board (5x5).
const GridSize = 25

// Mine count bounds. At least one cell stays safe.
const (
	MinMines = 1
	MaxMines = 24
)

// payoutFactor applies a 3% house edge to the fair survival odds.
const payoutFactor = 0.97

// State of a mines round.
type State string

const (
	StateActive State = "active"
	StateWon    State = "won"
	StateLost   State = "lost"
)

// Round is one mines session: stake placed, mines hidden, cells revealed one
// at a time until a mine is hit, the player cashes out, or every safe cell is
// open. Persisted to JSON so an active round survives a restart.
type Round struct {
	RoundID    string    `json:"roundId"`
	Amount     float64   `json:"amount"`
	MinesCount int       `json:"minesCount"`
	Mines      []int     `json:"mines"`
	Revealed   []int     `json:"revealed"`
	State      State     `json:"state"`
	StartedAt  time.Time `json:"startedAt"`
}

// ClampMines forces the mine count into [MinMines, MaxMines].
func ClampMines(n int) int {
	if n < MinMines {
		return MinMines
	}
	if n > MaxMines {
		return MaxMines
	}
	return n
}

// NewRound hides minesCount mines on distinct cells and opens the round.
func NewRound(roundID string, amount float64, minesCount int, src games.Source) *Round {
	minesCount = ClampMines(minesCount)
	cells := make([]int, GridSize)
	for i := range cells {
		cells[i] = i
	}
	// Partial Fisher-Yates: the first minesCount cells are a uniform sample
	// without replacement.
	for i := 0; i < minesCount; i++ {
		j := i + src.Intn(GridSize-i)
		cells[i], cells[j] = cells[j], cells[i]
	}
	return &Round{
		RoundID:    roundID,
		Amount:     amount,
		MinesCount: minesCount,
		Mines:      cells[:minesCount:minesCount],
		Revealed:   []int{},
		State:      StateActive,
		StartedAt:  time.Now(),
	}
}

// Multiplier is the payout multiplier after k safe reveals with minesCount
// mines: payoutFactor times the product of S/(S-i) over the survived draws,
// where S is the number of safe cells. Zero reveals pay even money.
func Multiplier(minesCount, revealed int) float64 {
	if revealed <= 0 {
		return 1
	}
	s := float64(GridSize - ClampMines(minesCount))
	m := payoutFactor
	for i := 0; i < revealed; i++ {
		m *= s / (s - float64(i))
	}
	return m
}

// SafeCells returns how many cells hold no mine.
func (r *Round) SafeCells() int {
	return GridSize - r.MinesCount
}

// CurrentMultiplier is the cashout multiplier at the round's current progress.
func (r *Round) CurrentMultiplier() float64 {
	return Multiplier(r.MinesCount, len(r.Revealed))
}

func (r *Round) isMine(cell int) bool {
	for _, m := range r.Mines {
		if m == cell {
			return true
		}
	}
	return false
}

func (r *Round) isRevealed(cell int) bool {
	for _, c := range r.Revealed {
		if c == cell {
			return true
		}
	}
	return false
}

// Reveal opens a cell. Hitting a mine resolves the round as a loss; opening
// the last safe cell forces a cashout at the maximum multiplier. Reveals on a
// resolved round or an already-open cell are ignored (changed=false).
func (r *Round) Reveal(cell int) (changed bool) {
	if r.State != StateActive {
		return false
	}
	if cell < 0 {
		cell = 0
	} else if cell >= GridSize {
		cell = GridSize - 1
	}
	if r.isRevealed(cell) {
		return false
	}
	if r.isMine(cell) {
		r.Revealed = append(r.Revealed, cell)
		r.State = StateLost
		return true
	}
	r.Revealed = append(r.Revealed, cell)
	if len(r.Revealed) == r.SafeCells() {
		r.State = StateWon
	}
	return true
}

// Cashout settles an active round at the current multiplier. It requires at
// least one revealed cell; an untouched board cannot be cashed out.
func (r *Round) Cashout() (multiplier float64, ok bool) {
	if r.State != StateActive || len(r.Revealed) == 0 {
		return 0, false
	}
	r.State = StateWon
	return r.CurrentMultiplier(), true
}

// Resolved reports whether the round has reached a terminal state.
func (r *Round) Resolved() bool {
	return r.State == StateWon || r.State == StateLost
}
