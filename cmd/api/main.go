package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"NutriGini/internal/assistant"
	"NutriGini/internal/chain"
	"NutriGini/internal/completion"
	"NutriGini/internal/config"
	"NutriGini/internal/prompts"
	"NutriGini/internal/server"
	"NutriGini/internal/utility"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Configuration is read once; nothing looks at the environment after this.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Fatal error: could not load configuration")
	}
	utility.SetupLogger(os.Stderr, cfg.LogLevel, cfg.IsProduction())

	// 2. Template registry
	registry, err := prompts.Load(cfg.PromptsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.PromptsFile).Msg("Fatal error: could not load prompt templates")
	}

	// 3. Completion service, chains and dispatcher
	completer, err := completion.New(cfg.LLM, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Fatal error: could not initialize completion service")
	}
	dispatcher := chain.Build(completer, registry)

	// 4. HTTP server
	srv, err := server.New(cfg, registry, assistant.New(dispatcher, nil))
	if err != nil {
		log.Fatal().Err(err).Msg("Fatal error: could not create server")
	}
	httpServer := srv.HTTPServer()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("addr", httpServer.Addr).
			Str("provider", cfg.LLM.Provider).
			Str("model", cfg.LLM.Model).
			Int("prompts", registry.Len()).
			Msg("NutriGini server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
		stop() // Allow Ctrl+C to force shutdown

		// The server has 5 seconds to finish the requests it is currently handling.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		srv.Shutdown()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server error")
	}
	log.Info().Msg("Graceful shutdown complete.")
}
