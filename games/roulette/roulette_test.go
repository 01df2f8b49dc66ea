package roulette

import "testing"

type slotSource struct{ slot int }

func (s slotSource) Float64() float64 { return 0 }
func (s slotSource) Intn(n int) int   { return s.slot % n }

func TestColorOf_Exhaustive(t *testing.T) {
	var reds, blacks, greens int
	for n := 0; n < Slots; n++ {
		switch ColorOf(n) {
		case Red:
			reds++
		case Black:
			blacks++
		case Green:
			greens++
		default:
			t.Fatalf("slot %d has no color", n)
		}
	}
	if greens != 1 || ColorOf(0) != Green {
		t.Errorf("exactly slot 0 must be green (greens=%d)", greens)
	}
	if reds != 18 || blacks != 18 {
		t.Errorf("reds=%d blacks=%d want 18/18", reds, blacks)
	}
}

func TestMultiplier(t *testing.T) {
	if Multiplier(BetGreen) != 14 {
		t.Errorf("green pays %v want 14", Multiplier(BetGreen))
	}
	for _, b := range []BetType{BetRed, BetBlack, BetOdd, BetEven} {
		if Multiplier(b) != 2 {
			t.Errorf("%s pays %v want 2", b, Multiplier(b))
		}
	}
}

func TestSpin(t *testing.T) {
	cases := []struct {
		slot int
		bet  BetType
		win  bool
	}{
		{0, BetGreen, true},
		{0, BetRed, false},
		{0, BetOdd, false},  // zero is neither odd nor even
		{0, BetEven, false}, // zero loses even too
		{1, BetRed, true},
		{1, BetOdd, true},
		{2, BetBlack, true},
		{2, BetEven, true},
		{36, BetRed, true},
		{36, BetBlack, false},
	}
	for _, c := range cases {
		o := Spin(c.bet, slotSource{c.slot})
		if o.Slot != c.slot {
			t.Fatalf("slot %d drawn as %d", c.slot, o.Slot)
		}
		if o.Win != c.win {
			t.Errorf("slot %d bet %s: win=%v want %v", c.slot, c.bet, o.Win, c.win)
		}
	}
}

func TestSpin_UnknownBetDefaultsRed(t *testing.T) {
	o := Spin(BetType("lucky7"), slotSource{1})
	if o.Bet != BetRed || !o.Win {
		t.Errorf("unknown bet should clamp to red: %+v", o)
	}
}
