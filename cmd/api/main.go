package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gurukul-labs/tutor-backend/internal/config"
	"github.com/gurukul-labs/tutor-backend/internal/handler"
	"github.com/gurukul-labs/tutor-backend/internal/model/tier"
	aiservice "github.com/gurukul-labs/tutor-backend/internal/service/ai"
	chatservice "github.com/gurukul-labs/tutor-backend/internal/service/chat"
	tutorservice "github.com/gurukul-labs/tutor-backend/internal/service/tutor"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	tierStore := tier.NewMemoryStore(tier.Seed())
	chatSvc := chatservice.NewService()

	// The completion gateway is optional: without provider credentials the
	// service still answers greetings and enforces admission, and admitted
	// questions degrade to a 502.
	var aiSvc *aiservice.Service
	if cfg.AI.Enabled() {
		aiSvc, err = aiservice.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize completion gateway: %v", err)
			log.Println("continuing without completion functionality")
		} else {
			log.Println("completion gateway initialized successfully")
		}
	} else {
		log.Println("provider credentials not configured, skipping completion gateway")
	}

	var completer tutorservice.Completer
	if aiSvc != nil {
		completer = aiSvc
	}
	tutorSvc := tutorservice.NewService(chatSvc, tierStore, completer, cfg.Session.TTL)

	router := handler.NewRouter(tutorSvc, chatSvc, aiSvc, tierStore, cfg)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("tutor backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
