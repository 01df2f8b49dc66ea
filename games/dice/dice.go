package dice

import (
	"math"

	"github.com/atlasplay/wager-engine/games"
)

// Condition says which side of the target the roll must land on.
type Condition string

const (
	Over  Condition = "over"
	Under Condition = "under"
)

// Target bounds for the roll-over/roll-under slider.
const (
	TargetMin = 2
	TargetMax = 98
)

// Outcome is the result of one dice roll.
type Outcome struct {
	Roll       float64   `json:"roll"`
	Target     int       `json:"target"`
	Condition  Condition `json:"condition"`
	Win        bool      `json:"win"`
	Multiplier float64   `json:"multiplier"`
}

// ClampTarget forces target into [TargetMin, TargetMax].
func ClampTarget(target int) int {
	if target < TargetMin {
		return TargetMin
	}
	if target > TargetMax {
		return TargetMax
	}
	return target
}

// WinChance returns the win probability in percent for a target and condition.
// The missing percentage point versus a fair game is the house edge.
func WinChance(target int, cond Condition) float64 {
	if cond == Over {
		return float64(99 - target)
	}
	return float64(target - 1)
}

// Multiplier returns the payout multiplier: 99 / winChance.
func Multiplier(target int, cond Condition) float64 {
	wc := WinChance(target, cond)
	if wc <= 0 {
		return 0
	}
	return 99 / wc
}

// Roll draws a number in [0, 100) to two decimals and resolves the bet.
func Roll(target int, cond Condition, src games.Source) Outcome {
	target = ClampTarget(target)
	if cond != Over && cond != Under {
		cond = Over
	}
	roll := math.Round(src.Float64()*100*100) / 100
	var win bool
	if cond == Over {
		win = roll > float64(target)
	} else {
		win = roll < float64(target)
	}
	return Outcome{
		Roll:       roll,
		Target:     target,
		Condition:  cond,
		Win:        win,
		Multiplier: Multiplier(target, cond),
	}
}
