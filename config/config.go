package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        int
	DataDir     string
	DatabaseURL string // when set, ledger snapshots go to Postgres instead of DataDir
	Username    string // default profile name when no snapshot exists
}

func Load() *Config {
	port := 8090
	// Prefer PORT (Render, Fly.io, Railway, etc.) then ENGINE_PORT
	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			port = v
		}
	} else if p := os.Getenv("ENGINE_PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			port = v
		}
	}
	dataDir := os.Getenv("ENGINE_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	username := os.Getenv("ENGINE_USERNAME")
	if username == "" {
		username = "player"
	}
	return &Config{
		Port:        port,
		DataDir:     dataDir,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Username:    username,
	}
}
