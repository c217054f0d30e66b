package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pullblock/internal/httpserver"
	"github.com/robalobadob/pullblock/internal/library"
	"github.com/robalobadob/pullblock/internal/service"
	"github.com/robalobadob/pullblock/internal/solver"
	"github.com/robalobadob/pullblock/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := library.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load puzzle library")
	}
	log.Info().Int("puzzles", library.Stats()).Msg("puzzle library loaded")

	var archive store.Store
	if path := os.Getenv("DB_PATH"); path != "" || !envSet("DB_PATH") {
		if path == "" {
			path = "./data/pullblock.db"
		}
		db, err := store.OpenSQLite(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("open database")
		}
		defer db.Close()
		archive = db
		log.Info().Str("path", path).Msg("sqlite archive")
	} else {
		archive = store.NewMemoryStore()
		log.Info().Msg("in-memory archive")
	}

	svc, err := service.New(library.Default(), archive, service.Config{
		MaxDepth:  envInt("SOLVE_MAX_DEPTH", solver.DefaultMaxDepth),
		CacheSize: envInt("SOLVE_CACHE_SIZE", 256),
		DailySalt: getEnv("DAILY_SALT", "local_dev_salt"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("service config")
	}

	srv := httpserver.New(svc, httpserver.Options{
		ClientOrigin:   os.Getenv("CLIENT_ORIGIN"),
		Timeout:        time.Duration(envInt("REQUEST_TIMEOUT_SEC", 10)) * time.Second,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiresDays: envInt("JWT_EXPIRES_DAYS", 14),
		AdminKeyHash:   os.Getenv("ADMIN_KEY_HASH"),
	})
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting pullblock server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envSet distinguishes DB_PATH= (memory store) from an unset DB_PATH.
func envSet(k string) bool {
	_, ok := os.LookupEnv(k)
	return ok
}

func envInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}
