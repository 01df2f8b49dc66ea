package slots

import "github.com/atlasplay/wager-engine/games"

// Grid dimensions: 5 reels of 3 rows.
const (
	Reels = 5
	Rows  = 3
)

// Symbol names on the reels.
const (
	SymbolSeven   = "seven"
	SymbolDiamond = "diamond"
	SymbolStar    = "star"
	SymbolBell    = "bell"
	SymbolGrapes  = "grapes"
	SymbolOrange  = "orange"
	SymbolLemon   = "lemon"
	SymbolCherry  = "cherry"
)

var symbols = []string{
	SymbolSeven, SymbolDiamond, SymbolStar, SymbolBell,
	SymbolGrapes, SymbolOrange, SymbolLemon, SymbolCherry,
}

// BasePayout is the per-symbol multiplier for a three-of-a-kind row.
var BasePayout = map[string]float64{
	SymbolSeven:   50,
	SymbolDiamond: 25,
	SymbolStar:    10,
	SymbolBell:    8,
	SymbolGrapes:  5,
	SymbolOrange:  4,
	SymbolLemon:   3,
	SymbolCherry:  2,
}

// matchBonus scales the base payout by run length: 3 symbols pay the base,
// 4 double it, a full row pays five times.
func matchBonus(count int) float64 {
	switch count {
	case 5:
		return 5
	case 4:
		return 2
	default:
		return 1
	}
}

// RowWin is one winning payline.
type RowWin struct {
	Row        int     `json:"row"`
	Symbol     string  `json:"symbol"`
	Count      int     `json:"count"`
	Multiplier float64 `json:"multiplier"`
}

// Outcome is the result of one spin.
type Outcome struct {
	Grid       [Reels][Rows]string `json:"grid"`
	RowWins    []RowWin            `json:"rowWins"`
	Multiplier float64             `json:"multiplier"`
	Win        bool                `json:"win"`
}

// Generate fills the grid with symbols drawn uniformly per cell.
func Generate(src games.Source) [Reels][Rows]string {
	var grid [Reels][Rows]string
	for r := 0; r < Reels; r++ {
		for row := 0; row < Rows; row++ {
			grid[r][row] = symbols[src.Intn(len(symbols))]
		}
	}
	return grid
}

// Evaluate scores a grid: each row wins when at least three identical
// symbols run contiguously from reel 0. Winning rows stack into the total
// multiplier.
func Evaluate(grid [Reels][Rows]string) Outcome {
	out := Outcome{Grid: grid}
	for row := 0; row < Rows; row++ {
		first := grid[0][row]
		count := 1
		for r := 1; r < Reels; r++ {
			if grid[r][row] != first {
				break
			}
			count++
		}
		if count < 3 {
			continue
		}
		mult := BasePayout[first] * matchBonus(count)
		out.RowWins = append(out.RowWins, RowWin{
			Row:        row,
			Symbol:     first,
			Count:      count,
			Multiplier: mult,
		})
		out.Multiplier += mult
	}
	out.Win = len(out.RowWins) > 0
	return out
}

// Spin draws a fresh grid and scores it.
func Spin(src games.Source) Outcome {
	return Evaluate(Generate(src))
}
