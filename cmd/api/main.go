package main

import (
	"context"
	"os"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/server"
)

// @title Registrar API
// @version 1.0
// @description Back-office API for managing courses, batches and enrolled students.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// Details are logged by the bootstrap step that failed.
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
