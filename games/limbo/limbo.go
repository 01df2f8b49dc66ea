package limbo

import (
	"math"

	"github.com/atlasplay/wager-engine/games"
)

const (
	// MinTarget is the lowest target multiplier a player may choose.
	MinTarget = 1.01
	// MaxCrash caps the generated crash value.
	MaxCrash = 1000
	// edge scales the inverse distribution so expected return is 99%.
	edge = 0.99
)

// Outcome is the result of one limbo round.
type Outcome struct {
	Crash      float64 `json:"crash"`
	Target     float64 `json:"target"`
	Win        bool    `json:"win"`
	Multiplier float64 `json:"multiplier"`
}

// ClampTarget forces the target multiplier to at least MinTarget.
func ClampTarget(target float64) float64 {
	if target < MinTarget {
		return MinTarget
	}
	return target
}

// Play generates a crash value from the inverse distribution edge/u for
// uniform u in (0, 1], capped at MaxCrash and rounded to two decimals. The
// player wins when the crash value reaches their target, and is paid at the
// target, not at the crash value.
func Play(target float64, src games.Source) Outcome {
	target = ClampTarget(target)
	u := 1 - src.Float64() // (0, 1]
	crash := math.Min(MaxCrash, edge/u)
	crash = math.Round(crash*100) / 100
	win := crash >= target
	mult := 0.0
	if win {
		mult = target
	}
	return Outcome{
		Crash:      crash,
		Target:     target,
		Win:        win,
		Multiplier: mult,
	}
}
