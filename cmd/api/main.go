package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devconnector/devconnector-go/internal/config"
	"github.com/devconnector/devconnector-go/internal/crypto"
	"github.com/devconnector/devconnector-go/internal/github"
	"github.com/devconnector/devconnector-go/internal/handler"
	"github.com/devconnector/devconnector-go/internal/middleware"
	"github.com/devconnector/devconnector-go/internal/repository"
	"github.com/devconnector/devconnector-go/internal/service"
)

type stores struct {
	users    service.UserStore
	profiles service.ProfileStore
	posts    service.PostStore
	accounts service.AccountStore
	db       *sql.DB
}

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogger(cfg)
	if envErr != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("opening store")
	}
	if st.db != nil {
		defer st.db.Close()
	}

	tokens, err := crypto.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		log.Fatal().Err(err).Msg("creating token issuer")
	}
	gh := github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken, cfg.GitHubTimeout)

	router := handler.NewRouter(handler.Deps{
		Auth:     service.NewAuthService(st.users, tokens),
		Profiles: service.NewProfileService(st.profiles, st.accounts, gh),
		Posts:    service.NewPostService(st.posts, st.users),
		Tokens:   tokens,
		Limiter:  middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:   log.Logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("store", cfg.Store).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced shutdown")
	}

	log.Info().Msg("server stopped")
}

func setupLogger(cfg config.Config) {
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	if cfg.Store == "memory" {
		log.Warn().Msg("using in-memory store, data is lost on exit")
		mem := repository.NewMemoryStore()
		return stores{
			users:    mem.Users(),
			profiles: mem.Profiles(),
			posts:    mem.Posts(),
			accounts: mem.Accounts(),
		}, nil
	}

	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return stores{}, err
	}
	if cfg.Migrate {
		if err := repository.Migrate(ctx, db); err != nil {
			db.Close()
			return stores{}, err
		}
		log.Info().Msg("migrations applied")
	}
	return stores{
		users:    repository.NewUserRepository(db),
		profiles: repository.NewProfileRepository(db),
		posts:    repository.NewPostRepository(db),
		accounts: repository.NewAccountRepository(db),
		db:       db,
	}, nil
}
