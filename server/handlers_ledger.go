package server

import (
	"net/http"
	"strconv"

	"github.com/atlasplay/wager-engine/ledger"
)

// ledgerView is the read model for the profile screen. Level and xp are the
// derived values, never raw storage.
type ledgerView struct {
	Username     string  `json:"username"`
	Balance      float64 `json:"balance"`
	IsVerified   bool    `json:"isVerified"`
	TotalWins    int     `json:"totalWins"`
	TotalLosses  int     `json:"totalLosses"`
	TotalWagered float64 `json:"totalWagered"`
	Profit       float64 `json:"profit"`
	Level        int     `json:"level"`
	XP           int     `json:"xp"`
	LastBet      float64 `json:"lastBet"`
	LastWin      float64 `json:"lastWin"`
}

func toView(s ledger.State) ledgerView {
	return ledgerView{
		Username:     s.Username,
		Balance:      s.Balance,
		IsVerified:   s.IsVerified,
		TotalWins:    s.TotalWins,
		TotalLosses:  s.TotalLosses,
		TotalWagered: s.TotalWagered,
		Profit:       s.Profit,
		Level:        s.Level,
		XP:           s.XP,
		LastBet:      s.LastBet,
		LastWin:      s.LastWin,
	}
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toView(s.ledger.Snapshot()))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	n := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		if v, err := strconv.Atoi(q); err == nil {
			n = v
		}
	}
	writeJSON(w, http.StatusOK, s.ledger.History(n))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.ledger.Reset()
	writeJSON(w, http.StatusOK, toView(s.ledger.Snapshot()))
}

func (s *Server) handleAddFunds(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive", "BAD_AMOUNT")
		return
	}
	s.ledger.AddFunds(req.Amount)
	writeJSON(w, http.StatusOK, toView(s.ledger.Snapshot()))
}

func (s *Server) handleSetUsername(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "username must not be empty", "BAD_USERNAME")
		return
	}
	s.ledger.SetUsername(req.Username)
	writeJSON(w, http.StatusOK, toView(s.ledger.Snapshot()))
}

// handleVerify records the result reported by the external identity
// verification flow. The engine trusts the caller; verification logic is not
// its concern.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Verified bool `json:"verified"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.ledger.SetVerified(req.Verified)
	writeJSON(w, http.StatusOK, toView(s.ledger.Snapshot()))
}
