package coinflip

import "github.com/atlasplay/wager-engine/games"

// Side is a face of the coin.
type Side string

const (
	Heads Side = "heads"
	Tails Side = "tails"
)

// Multiplier is the fixed payout on a correct call (1% house edge on a fair coin).
const Multiplier = 1.98

// Outcome is the result of one flip.
type Outcome struct {
	Side       Side    `json:"side"`
	Choice     Side    `json:"choice"`
	Win        bool    `json:"win"`
	Multiplier float64 `json:"multiplier"`
}

// Flip tosses a fair coin against the player's call.
func Flip(choice Side, src games.Source) Outcome {
	if choice != Heads && choice != Tails {
		choice = Heads
	}
	side := Tails
	if src.Float64() > 0.5 {
		side = Heads
	}
	return Outcome{
		Side:       side,
		Choice:     choice,
		Win:        side == choice,
		Multiplier: Multiplier,
	}
}
