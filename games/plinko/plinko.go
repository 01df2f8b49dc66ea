package plinko

import "github.com/atlasplay/wager-engine/games"

// Risk selects one of the three fixed multiplier tables.
type Risk string

const (
	Low    Risk = "low"
	Medium Risk = "medium"
	High   Risk = "high"
)

// Rows of pegs the ball falls through.
const Rows = 10

// SlotCount is the number of landing slots under the board.
const SlotCount = 11

// Tables are the fixed landing multipliers per risk level, symmetric around
// the center slot.
var Tables = map[Risk][SlotCount]float64{
	Low:    {1.2, 1.1, 1, 0.7, 0.5, 0.3, 0.5, 0.7, 1, 1.1, 1.2},
	Medium: {2, 1.5, 1.1, 0.7, 0.3, 0.2, 0.3, 0.7, 1.1, 1.5, 2},
	High:   {5.6, 2.1, 1.1, 0.5, 0.2, 0, 0.2, 0.5, 1.1, 2.1, 5.6},
}

// Outcome is the result of one ball drop.
type Outcome struct {
	Risk       Risk    `json:"risk"`
	Path       []int   `json:"path"`
	Slot       int     `json:"slot"`
	Multiplier float64 `json:"multiplier"`
	Win        bool    `json:"win"`
}

// Drop releases a ball from the center and walks it left or right through
// each peg row, clamped to the board. The landing slot's table entry is the
// realized multiplier; only a zero slot loses. Unknown risk defaults to medium.
func Drop(risk Risk, src games.Source) Outcome {
	table, ok := Tables[risk]
	if !ok {
		risk = Medium
		table = Tables[Medium]
	}
	pos := SlotCount / 2
	path := make([]int, 0, Rows)
	for i := 0; i < Rows; i++ {
		if src.Float64() > 0.5 {
			pos++
		} else {
			pos--
		}
		if pos < 0 {
			pos = 0
		} else if pos > SlotCount-1 {
			pos = SlotCount - 1
		}
		path = append(path, pos)
	}
	mult := table[pos]
	return Outcome{
		Risk:       risk,
		Path:       path,
		Slot:       pos,
		Multiplier: mult,
		Win:        mult > 0,
	}
}
