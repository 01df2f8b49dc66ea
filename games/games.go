package games

// Kind identifies one of the supported game variants.
type Kind string

const (
	KindDice     Kind = "dice"
	KindCoinFlip Kind = "coinflip"
	KindMines    Kind = "mines"
	KindRoulette Kind = "roulette"
	KindLimbo    Kind = "limbo"
	KindPlinko   Kind = "plinko"
	KindSlots    Kind = "slots"
)

// All lists every game variant, in the order the lobby shows them.
var All = []Kind{KindDice, KindCoinFlip, KindMines, KindRoulette, KindLimbo, KindPlinko, KindSlots}

func (k Kind) Valid() bool {
	switch k {
	case KindDice, KindCoinFlip, KindMines, KindRoulette, KindLimbo, KindPlinko, KindSlots:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}
