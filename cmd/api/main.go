package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/vhce/collegehub/internal/pkg/logger"
	"github.com/vhce/collegehub/internal/server"
)

func main() {
	// Optional .env for local development; the real environment wins.
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}
}
