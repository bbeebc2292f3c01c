// Package main starts the API to manage users, accounts and transactions.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/o-lebedeva/tx-bank/cmd/httpserver"
	"github.com/o-lebedeva/tx-bank/internal/middleware"
	"github.com/o-lebedeva/tx-bank/migrations"
	"github.com/o-lebedeva/tx-bank/pkg/configpkg"
	"github.com/o-lebedeva/tx-bank/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	if err := dbpkg.RunMigrations(config.DBSource, migrations.FS); err != nil {
		logger.Fatal().Err(err).Msg("cannot apply migrations")
	}

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("TRANSACTION API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
