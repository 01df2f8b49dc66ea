package ledger

import (
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore keeps the snapshot in a single-row-per-profile table. It is
// selected over the file store when DATABASE_URL is set.
type PostgresStore struct {
	db  *sql.DB
	key string
}

// NewPostgresStore opens the pool and ensures the snapshot table exists.
// key names the profile row the snapshot lives under; it stays fixed even
// when the cosmetic username changes.
func NewPostgresStore(dsn, key string) (*PostgresStore, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	// Avoid "prepared statement already exists" with PgBouncer/Supabase: use
	// simple protocol (no server-side prepared statements).
	cfg.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	db := stdlib.OpenDB(*cfg)
	db.SetConnMaxIdleTime(4 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS ledger_snapshots (
		profile    TEXT PRIMARY KEY,
		state      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresStore{db: db, key: key}, nil
}

func (ps *PostgresStore) Load() (*State, bool) {
	var raw []byte
	err := ps.db.QueryRow(
		`SELECT state FROM ledger_snapshots WHERE profile = $1`, ps.key,
	).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("ledger: load snapshot %q: %v", ps.key, err)
		}
		return nil, false
	}
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		log.Printf("ledger: discarding corrupt snapshot %q: %v", ps.key, err)
		return nil, false
	}
	return &s, true
}

func (ps *PostgresStore) Save(s *State) {
	raw, err := json.Marshal(s)
	if err != nil {
		log.Printf("ledger: marshal snapshot: %v", err)
		return
	}
	_, err = ps.db.Exec(`
	INSERT INTO ledger_snapshots (profile, state, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (profile) DO UPDATE SET state = $2, updated_at = now()`,
		ps.key, raw)
	if err != nil {
		log.Printf("ledger: save snapshot %q: %v", ps.key, err)
	}
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
