package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/atlasplay/wager-engine/games"
	"github.com/atlasplay/wager-engine/games/coinflip"
	"github.com/atlasplay/wager-engine/games/dice"
	"github.com/atlasplay/wager-engine/games/limbo"
	"github.com/atlasplay/wager-engine/games/mines"
	"github.com/atlasplay/wager-engine/games/plinko"
	"github.com/atlasplay/wager-engine/games/roulette"
	"github.com/atlasplay/wager-engine/games/slots"
	"github.com/atlasplay/wager-engine/ledger"
)

// playResponse wraps a settled single-shot bet.
type playResponse struct {
	Outcome interface{} `json:"outcome"`
	Bet     *ledger.Bet `json:"bet"`
	Balance float64     `json:"balance"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return false
	}
	return true
}

// placeOrReject runs the placement half of a bet. Insufficient funds is a
// routine rejection, reported as 400, never a fault.
func (s *Server) placeOrReject(w http.ResponseWriter, amount float64) bool {
	if !s.ledger.PlaceBet(amount) {
		writeError(w, http.StatusBadRequest, "invalid bet amount or insufficient balance", "BET_REJECTED")
		return false
	}
	return true
}

func (s *Server) handleDice(w http.ResponseWriter, r *http.Request) {
	if !s.requireVerified(w) {
		return
	}
	var req struct {
		Amount    float64 `json:"amount"`
		Target    int     `json:"target"`
		Condition string  `json:"condition"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.placeOrReject(w, req.Amount) {
		return
	}
	out := dice.Roll(req.Target, dice.Condition(req.Condition), s.rng)
	bet := s.ledger.Settle(games.KindDice, req.Amount, out.Multiplier, out.Win)
	writeJSON(w, http.StatusOK, playResponse{Outcome: out, Bet: bet, Balance: s.ledger.Balance()})
}

func (s *Server) handleCoinFlip(w http.ResponseWriter, r *http.Request) {
	if !s.requireVerified(w) {
		return
	}
	var req struct {
		Amount float64 `json:"amount"`
		Choice string  `json:"choice"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.placeOrReject(w, req.Amount) {
		return
	}
	out := coinflip.Flip(coinflip.Side(req.Choice), s.rng)
	bet := s.ledger.Settle(games.KindCoinFlip, req.Amount, out.Multiplier, out.Win)
	writeJSON(w, http.StatusOK, playResponse{Outcome: out, Bet: bet, Balance: s.ledger.Balance()})
}

func (s *Server) handleRoulette(w http.ResponseWriter, r *http.Request) {
	if !s.requireVerified(w) {
		return
	}
	var req struct {
		Amount float64 `json:"amount"`
		Bet    string  `json:"bet"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.placeOrReject(w, req.Amount) {
		return
	}
	out := roulette.Spin(roulette.BetType(req.Bet), s.rng)
	bet := s.ledger.Settle(games.KindRoulette, req.Amount, out.Multiplier, out.Win)
	writeJSON(w, http.StatusOK, playResponse{Outcome: out, Bet: bet, Balance: s.ledger.Balance()})
}

func (s *Server) handleLimbo(w http.ResponseWriter, r *http.Request) {
	if !s.requireVerified(w) {
		return
	}
	var req struct {
		Amount float64 `json:"amount"`
		Target float64 `json:"target"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.placeOrReject(w, req.Amount) {
		return
	}
	out := limbo.Play(req.Target, s.rng)
	bet := s.ledger.Settle(games.KindLimbo, req.Amount, out.Multiplier, out.Win)
	writeJSON(w, http.StatusOK, playResponse{Outcome: out, Bet: bet, Balance: s.ledger.Balance()})
}

func (s *Server) handlePlinko(w http.ResponseWriter, r *http.Request) {
	if !s.requireVerified(w) {
		return
	}
	var req struct {
		Amount float64 `json:"amount"`
		Risk   string  `json:"risk"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.placeOrReject(w, req.Amount) {
		return
	}
	out := plinko.Drop(plinko.Risk(req.Risk), s.rng)
	bet := s.ledger.Settle(games.KindPlinko, req.Amount, out.Multiplier, out.Win)
	writeJSON(w, http.StatusOK, playResponse{Outcome: out, Bet: bet, Balance: s.ledger.Balance()})
}

func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	if !s.requireVerified(w) {
		return
	}
	var req struct {
		Amount float64 `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.placeOrReject(w, req.Amount) {
		return
	}
	out := slots.Spin(s.rng)
	bet := s.ledger.Settle(games.KindSlots, req.Amount, out.Multiplier, out.Win)
	writeJSON(w, http.StatusOK, playResponse{Outcome: out, Bet: bet, Balance: s.ledger.Balance()})
}

// minesRoundView is the client-facing round. Mine locations stay hidden
// until the round is resolved.
type minesRoundView struct {
	RoundID    string      `json:"roundId"`
	Amount     float64     `json:"amount"`
	MinesCount int         `json:"minesCount"`
	Revealed   []int       `json:"revealed"`
	State      mines.State `json:"state"`
	Multiplier float64     `json:"multiplier"`
	Mines      []int       `json:"mines,omitempty"`
}

func viewOf(round *mines.Round) minesRoundView {
	v := minesRoundView{
		RoundID:    round.RoundID,
		Amount:     round.Amount,
		MinesCount: round.MinesCount,
		Revealed:   round.Revealed,
		State:      round.State,
		Multiplier: round.CurrentMultiplier(),
	}
	if round.Resolved() {
		v.Mines = round.Mines
	}
	return v
}

type minesResponse struct {
	Round   minesRoundView `json:"round"`
	Bet     *ledger.Bet    `json:"bet,omitempty"`
	Balance float64        `json:"balance"`
}

func (s *Server) handleMinesStart(w http.ResponseWriter, r *http.Request) {
	if !s.requireVerified(w) {
		return
	}
	var req struct {
		Amount     float64 `json:"amount"`
		MinesCount int     `json:"minesCount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.placeOrReject(w, req.Amount) {
		return
	}
	round := mines.NewRound(uuid.New().String(), req.Amount, req.MinesCount, s.rng)
	s.minesStore.Put(round)
	writeJSON(w, http.StatusOK, minesResponse{Round: viewOf(round), Balance: s.ledger.Balance()})
}

func (s *Server) handleMinesReveal(w http.ResponseWriter, r *http.Request) {
	if !s.requireVerified(w) {
		return
	}
	var req struct {
		RoundID string `json:"roundId"`
		Cell    int    `json:"cell"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	// The store applies the reveal under its lock and hands back a resolved
	// round at most once, so settlement below cannot double up.
	round, ok := s.minesStore.Reveal(req.RoundID, req.Cell)
	if !ok {
		writeError(w, http.StatusNotFound, "round not found", "ROUND_NOT_FOUND")
		return
	}
	resp := minesResponse{Round: viewOf(round)}
	switch round.State {
	case mines.StateLost:
		resp.Bet = s.ledger.Settle(games.KindMines, round.Amount, 0, false)
	case mines.StateWon:
		// Last safe cell opened: implicit cashout at max multiplier.
		resp.Bet = s.ledger.Settle(games.KindMines, round.Amount, round.CurrentMultiplier(), true)
	}
	resp.Balance = s.ledger.Balance()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMinesCashout(w http.ResponseWriter, r *http.Request) {
	if !s.requireVerified(w) {
		return
	}
	var req struct {
		RoundID string `json:"roundId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	round, mult, ok := s.minesStore.Cashout(req.RoundID)
	if round == nil {
		writeError(w, http.StatusNotFound, "round not found", "ROUND_NOT_FOUND")
		return
	}
	if !ok {
		writeError(w, http.StatusBadRequest, "nothing to cash out", "CASHOUT_REJECTED")
		return
	}
	bet := s.ledger.Settle(games.KindMines, round.Amount, mult, true)
	writeJSON(w, http.StatusOK, minesResponse{Round: viewOf(round), Bet: bet, Balance: s.ledger.Balance()})
}
