// cmd/gentoken emite um bearer token para um vendedor.
// Uso: go run ./cmd/gentoken -vendedor ana -ttl 720h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"erpvendas/internal/config"
	"erpvendas/internal/middleware"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	vendedor := flag.String("vendedor", cfg.DefaultSellerID, "vendedor_id claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is empty: tokens would not be checked")
	}

	token, err := middleware.NewSellerToken(cfg.JWTSecret, *vendedor, *ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("sign token")
	}
	fmt.Println(token)
}
