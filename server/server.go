package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/atlasplay/wager-engine/config"
	"github.com/atlasplay/wager-engine/games"
	"github.com/atlasplay/wager-engine/games/mines"
	"github.com/atlasplay/wager-engine/ledger"
)

// Server is the thin HTTP shell around the wager engine. All money logic
// lives in the ledger and game packages; handlers only decode, gate, and
// relay.
type Server struct {
	cfg        *config.Config
	ledger     *ledger.Ledger
	minesStore *mines.Store
	rng        games.Source
}

func New(cfg *config.Config) *Server {
	var store ledger.Store
	if cfg.DatabaseURL != "" {
		pg, err := ledger.NewPostgresStore(cfg.DatabaseURL, cfg.Username)
		if err != nil {
			log.Printf("server: postgres unavailable, falling back to file store: %v", err)
			store = ledger.NewFileStore(cfg.DataDir)
		} else {
			store = pg
		}
	} else {
		store = ledger.NewFileStore(cfg.DataDir)
	}
	return &Server{
		cfg:        cfg,
		ledger:     ledger.New(store, cfg.Username),
		minesStore: mines.NewStore(cfg.DataDir),
		rng:        games.CryptoSource{},
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/ledger", s.handleLedger)
	mux.HandleFunc("GET /api/ledger/history", s.handleHistory)
	mux.HandleFunc("POST /api/ledger/reset", s.handleReset)
	mux.HandleFunc("POST /api/ledger/funds", s.handleAddFunds)
	mux.HandleFunc("POST /api/ledger/username", s.handleSetUsername)
	mux.HandleFunc("POST /api/session/verify", s.handleVerify)

	mux.HandleFunc("POST /api/games/dice/roll", s.handleDice)
	mux.HandleFunc("POST /api/games/coinflip/flip", s.handleCoinFlip)
	mux.HandleFunc("POST /api/games/roulette/spin", s.handleRoulette)
	mux.HandleFunc("POST /api/games/limbo/play", s.handleLimbo)
	mux.HandleFunc("POST /api/games/plinko/drop", s.handlePlinko)
	mux.HandleFunc("POST /api/games/slots/spin", s.handleSlots)
	mux.HandleFunc("POST /api/games/mines/start", s.handleMinesStart)
	mux.HandleFunc("POST /api/games/mines/reveal", s.handleMinesReveal)
	mux.HandleFunc("POST /api/games/mines/cashout", s.handleMinesCashout)

	return mux
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	log.Printf("wager engine listening on %s (data dir %s)", addr, s.cfg.DataDir)
	return http.ListenAndServe(addr, s.routes())
}

// requireVerified enforces the session gate. The gate is flipped once by the
// external verification flow; until then no game route is playable.
func (s *Server) requireVerified(w http.ResponseWriter) bool {
	if !s.ledger.IsVerified() {
		writeError(w, http.StatusForbidden, "age verification required", "NOT_VERIFIED")
		return false
	}
	return true
}
