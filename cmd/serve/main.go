package main

import (
	"log/slog"
	"os"

	"github.com/confdeck/deck-manager/internal/handler"
	"github.com/confdeck/deck-manager/internal/log"
	"github.com/confdeck/deck-manager/internal/middleware"
	"github.com/confdeck/deck-manager/internal/server"
	"github.com/confdeck/deck-manager/pkg/config"
	"github.com/confdeck/deck-manager/pkg/event"
	"github.com/confdeck/deck-manager/pkg/live"
	"github.com/confdeck/deck-manager/pkg/proposal"
	"github.com/confdeck/deck-manager/pkg/storage"
	"github.com/confdeck/deck-manager/pkg/token"
	"github.com/confdeck/deck-manager/pkg/user"
	"github.com/confdeck/deck-manager/pkg/vote"
	"github.com/go-mail/mail"
)

func main() {
	logger := slog.New(log.New(slog.NewJSONHandler(os.Stdout, nil)))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Exiting", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	if err := handler.RegisterValidation(); err != nil {
		return err
	}

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	redis, err := storage.NewRedis(cfg.Redis.Host, cfg.Redis.Port)
	if err != nil {
		return err
	}

	tokenRepository := token.NewRepository(redis)
	tokenService := token.NewService(
		tokenRepository,
		cfg.PrivateKey,
		cfg.AccessTokenExpirationSeconds,
		cfg.RefreshTokenSecretKey,
		cfg.RefreshTokenExpirationSeconds,
	)

	dialer := mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	userRepository := user.NewRepository(db)
	userService := user.NewService(cfg.UIURL, userRepository, dialer)
	userHandler := user.NewHandler(userService, tokenService)

	eventRepository := event.NewRepository(db)
	eventService := event.NewService(eventRepository)
	eventHandler := event.NewHandler(eventService)

	proposalRepository := proposal.NewRepository(db)
	proposalService := proposal.NewService(proposalRepository, eventService)
	proposalHandler := proposal.NewHandler(proposalService)

	broker := live.NewBroker()
	liveHandler := live.NewHandler(logger, broker)

	voteRepository := vote.NewRepository(db)
	voteService := vote.NewService(voteRepository, proposalService, broker)
	voteHandler := vote.NewHandler(voteService)

	authMiddleware := middleware.NewAuthentication(&cfg.PrivateKey.PublicKey, userService)

	r := server.GetEngine(logger, eventHandler, proposalHandler, voteHandler, userHandler, liveHandler, authMiddleware)
	return r.Run()
}
