package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atlasplay/wager-engine/config"
	"github.com/atlasplay/wager-engine/ledger"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := &config.Config{Port: 0, DataDir: t.TempDir(), Username: "tester"}
	s := New(cfg)
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return s, ts
}

func post(t *testing.T, ts *httptest.Server, path string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestSessionGate(t *testing.T) {
	_, ts := newTestServer(t)

	resp := post(t, ts, "/api/games/dice/roll", map[string]interface{}{"amount": 10, "target": 50, "condition": "over"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unverified play got %d want 403", resp.StatusCode)
	}
	var apiErr APIError
	json.NewDecoder(resp.Body).Decode(&apiErr)
	resp.Body.Close()
	if apiErr.Code != "NOT_VERIFIED" {
		t.Errorf("error code %q want NOT_VERIFIED", apiErr.Code)
	}

	resp = post(t, ts, "/api/session/verify", map[string]bool{"verified": true})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify got %d", resp.StatusCode)
	}

	resp = post(t, ts, "/api/games/dice/roll", map[string]interface{}{"amount": 10, "target": 50, "condition": "over"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verified play got %d want 200", resp.StatusCode)
	}
}

func TestPlay_Conservation(t *testing.T) {
	s, ts := newTestServer(t)
	s.ledger.SetVerified(true)
	before := s.ledger.Balance()

	resp := post(t, ts, "/api/games/coinflip/flip", map[string]interface{}{"amount": 50, "choice": "heads"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("flip got %d", resp.StatusCode)
	}
	var body struct {
		Bet     *ledger.Bet `json:"bet"`
		Balance float64     `json:"balance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Bet == nil {
		t.Fatal("settled play must return a bet record")
	}
	if want := before - 50 + body.Bet.Payout; body.Balance != want {
		t.Errorf("balance %v want %v", body.Balance, want)
	}
}

func TestPlay_RejectsBadStake(t *testing.T) {
	s, ts := newTestServer(t)
	s.ledger.SetVerified(true)

	for _, amount := range []float64{0, -10, 1e9} {
		resp := post(t, ts, "/api/games/slots/spin", map[string]interface{}{"amount": amount})
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("stake %v got %d want 400", amount, resp.StatusCode)
		}
	}
	if got := s.ledger.Balance(); got != ledger.InitialBalance {
		t.Errorf("rejected stakes moved the balance to %v", got)
	}
}

func TestMines_CashoutRequiresReveal(t *testing.T) {
	s, ts := newTestServer(t)
	s.ledger.SetVerified(true)

	resp := post(t, ts, "/api/games/mines/start", map[string]interface{}{"amount": 10, "minesCount": 3})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("start got %d", resp.StatusCode)
	}
	var started struct {
		Round struct {
			RoundID string `json:"roundId"`
			Mines   []int  `json:"mines"`
		} `json:"round"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&started); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if len(started.Round.Mines) != 0 {
		t.Error("mine locations must stay hidden while the round is active")
	}

	resp = post(t, ts, "/api/games/mines/cashout", map[string]string{"roundId": started.Round.RoundID})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("cashout with no reveals got %d want 400", resp.StatusCode)
	}

	resp = post(t, ts, "/api/games/mines/reveal", map[string]interface{}{"roundId": "nope", "cell": 3})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown round got %d want 404", resp.StatusCode)
	}
}
