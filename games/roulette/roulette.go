package roulette

import "github.com/atlasplay/wager-engine/games"

// Color of a wheel slot.
type Color string

const (
	Red   Color = "red"
	Black Color = "black"
	Green Color = "green"
)

// BetType is an outside bet on the European wheel.
type BetType string

const (
	BetRed   BetType = "red"
	BetBlack BetType = "black"
	BetGreen BetType = "green"
	BetOdd   BetType = "odd"
	BetEven  BetType = "even"
)

// Slots on a European wheel: 0 plus 1-36.
const Slots = 37

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// ColorOf maps a slot number to its color. Slot 0 is always green.
func ColorOf(n int) Color {
	if n == 0 {
		return Green
	}
	if redNumbers[n] {
		return Red
	}
	return Black
}

// Multiplier returns the payout multiplier for a bet type.
func Multiplier(bet BetType) float64 {
	if bet == BetGreen {
		return 14
	}
	return 2
}

// Outcome is the result of one spin.
type Outcome struct {
	Slot       int     `json:"slot"`
	Color      Color   `json:"color"`
	Bet        BetType `json:"bet"`
	Win        bool    `json:"win"`
	Multiplier float64 `json:"multiplier"`
}

// Spin draws a slot uniformly and resolves the bet. Unknown bet types
// default to red.
func Spin(bet BetType, src games.Source) Outcome {
	switch bet {
	case BetRed, BetBlack, BetGreen, BetOdd, BetEven:
	default:
		bet = BetRed
	}
	slot := src.Intn(Slots)
	color := ColorOf(slot)
	var win bool
	switch bet {
	case BetRed:
		win = color == Red
	case BetBlack:
		win = color == Black
	case BetGreen:
		win = color == Green
	case BetOdd:
		win = slot != 0 && slot%2 == 1
	case BetEven:
		win = slot != 0 && slot%2 == 0
	}
	return Outcome{
		Slot:       slot,
		Color:      color,
		Bet:        bet,
		Win:        win,
		Multiplier: Multiplier(bet),
	}
}
