package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/epic-events/epic-events/cmd/epicevents/cli"
	"github.com/epic-events/epic-events/internal/app"
	"github.com/epic-events/epic-events/internal/clients"
	"github.com/epic-events/epic-events/internal/collaborators"
	"github.com/epic-events/epic-events/internal/contracts"
	"github.com/epic-events/epic-events/internal/events"
	"github.com/epic-events/epic-events/internal/identity"
	"github.com/epic-events/epic-events/internal/platform/db"
	"github.com/epic-events/epic-events/internal/rbac"
	"github.com/epic-events/epic-events/internal/session"
	"github.com/epic-events/epic-events/internal/token"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	store := session.NewStore(cfg.TokenFile)
	codec, err := token.NewCodec(cfg.AuthSecret, cfg.AuthAlgorithm, cfg.TokenTTL, store)
	if err != nil {
		logger.Error("configure token codec", slog.Any("error", err))
		os.Exit(1)
	}

	rbacService := rbac.NewService(rbac.NewPGRepository(pool), logger)
	collaboratorService := collaborators.NewService(collaborators.NewPGRepository(pool), rbacService)
	clientService := clients.NewService(clients.NewPGRepository(pool))
	eventRepo := events.NewPGRepository(pool)
	contractService := contracts.NewService(contracts.NewPGRepository(pool), clientService, collaboratorService, eventRepo)
	eventService := events.NewService(eventRepo, contractService, collaboratorService)

	resolver := identity.NewResolver(store, codec, collaboratorService)

	application := cli.New(cli.Deps{
		Logger:        logger,
		Pool:          pool,
		Store:         store,
		Codec:         codec,
		Identity:      resolver,
		RBAC:          rbacService,
		Collaborators: collaboratorService,
		Clients:       clientService,
		Contracts:     contractService,
		Events:        eventService,

		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})

	os.Exit(application.Run(ctx, os.Args[1:]))
}
