package mines

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/atlasplay/wager-engine/games"
)

func writeGarbage(dir string) error {
	return os.WriteFile(filepath.Join(dir, "mines_rounds.json"), []byte("{not json"), 0644)
}

func TestStore_PutGetDelete(t *testing.T) {
	s := NewStore(t.TempDir())
	r := NewRound("round-1", 25, 3, games.CryptoSource{})
	s.Put(r)

	got, ok := s.Get("round-1")
	if !ok || got.Amount != 25 {
		t.Fatalf("Get returned %+v ok=%v", got, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("Get of unknown round must fail")
	}
	s.Delete("round-1")
	if _, ok := s.Get("round-1"); ok {
		t.Error("deleted round still present")
	}
}

func TestStore_RevealResolvesOnce(t *testing.T) {
	s := NewStore(t.TempDir())
	r := NewRound("round-1", 10, 3, games.CryptoSource{})
	s.Put(r)

	got, ok := s.Reveal("round-1", r.Mines[0])
	if !ok || got.State != StateLost {
		t.Fatalf("mine reveal returned %+v ok=%v", got, ok)
	}
	// The resolved round left the store in the same step, so nobody else
	// can observe (and settle) the loss a second time.
	if _, ok := s.Reveal("round-1", 0); ok {
		t.Error("second reveal on a resolved round must report not found")
	}
	if _, _, ok := s.Cashout("round-1"); ok {
		t.Error("cashout on a resolved round must report not found")
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore(t.TempDir())
	s.Put(NewRound("round-1", 10, 3, games.CryptoSource{}))

	got, ok := s.Get("round-1")
	if !ok {
		t.Fatal("Get failed")
	}
	got.State = StateLost
	got.Revealed = append(got.Revealed, 7)

	again, _ := s.Get("round-1")
	if again.State != StateActive || len(again.Revealed) != 0 {
		t.Error("Get must hand out a copy, not the live round")
	}
}

func TestStore_ConcurrentCashoutSettlesOnce(t *testing.T) {
	s := NewStore(t.TempDir())
	r := NewRound("round-1", 10, 3, games.CryptoSource{})
	for c := 0; c < GridSize; c++ {
		if !r.isMine(c) {
			r.Reveal(c)
			break
		}
	}
	s.Put(r)

	var wg sync.WaitGroup
	var wins int32
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, ok := s.Cashout("round-1"); ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Errorf("%d concurrent cashouts succeeded, want exactly 1", wins)
	}
	if _, ok := s.Get("round-1"); ok {
		t.Error("cashed-out round must leave the store")
	}
}

func TestStore_CashoutRejectedKeepsRound(t *testing.T) {
	s := NewStore(t.TempDir())
	s.Put(NewRound("round-1", 10, 3, games.CryptoSource{}))

	round, _, ok := s.Cashout("round-1")
	if ok {
		t.Fatal("cashout with no reveals must be rejected")
	}
	if round == nil {
		t.Fatal("rejected cashout on a known round must still return it")
	}
	if _, found := s.Get("round-1"); !found {
		t.Error("rejected cashout must leave the round in the store")
	}
}

func TestStore_ActiveRoundsSurviveReload(t *testing.T) {
	dir := t.TempDir()
	s1 := NewStore(dir)
	active := NewRound("active", 10, 3, games.CryptoSource{})
	s1.Put(active)

	lost := NewRound("lost", 10, 24, games.CryptoSource{})
	lost.Reveal(lost.Mines[0])
	s1.Put(lost)

	s2 := NewStore(dir)
	got, ok := s2.Get("active")
	if !ok {
		t.Fatal("active round should survive reload")
	}
	if got.MinesCount != 3 || got.State != StateActive {
		t.Errorf("reloaded round %+v", got)
	}
	if _, ok := s2.Get("lost"); ok {
		t.Error("resolved round must be dropped on load")
	}
}

func TestStore_CorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	s1 := NewStore(dir)
	s1.Put(NewRound("r", 10, 3, games.CryptoSource{}))

	// Clobber the file, then reload: a fresh empty store, no fault.
	if err := writeGarbage(dir); err != nil {
		t.Fatal(err)
	}
	s2 := NewStore(dir)
	if _, ok := s2.Get("r"); ok {
		t.Error("corrupt store should start empty")
	}
}
