package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"quickchat/api"
	"quickchat/auth"
	"quickchat/infrastructure/storage"
	"quickchat/internal"
	"quickchat/media"
	"quickchat/moderation"
	"quickchat/observability"
	"quickchat/runtime"
	"quickchat/runtime/workers"
	"quickchat/services"
	"quickchat/sink"
	"quickchat/ws"
)

const (
	exitOK = iota
	exitConfig
	exitRuntime
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes
// error reporting so that every defer executes before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)
	auth.SetSigningKey([]byte(config.AuthSigningKey))

	// 2. Storage (BadgerDB + Bluge index + uploads)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing search index...")
		_ = blugeWriter.Close()
	}()

	uploads, err := media.NewStore(log, config.UploadDir, "/uploads")
	if err != nil {
		return exitRuntime, fmt.Errorf("upload dir setup failed: %w", err)
	}

	// 3. Moderation
	words, err := runtime.LoadCensoredWords()
	if err != nil {
		return exitRuntime, fmt.Errorf("loading censored words failed: %w", err)
	}
	moderator, err := moderation.NewModerator(words, config.CharacterRune())
	if err != nil {
		return exitRuntime, fmt.Errorf("building moderator failed: %w", err)
	}

	// 4. Supervision & Orchestration
	stats := observability.NewStats()
	sup := workers.NewSupervisor(log, config.RestartInterval)
	registry := runtime.NewRegistry()
	messageRepository := storage.NewMessageRepository(db, log)
	userRepository := storage.NewUserRepository(db)
	searchRepository := storage.NewSearchRepository(blugeWriter, log, config.SearchLimit)

	orchestrator := runtime.NewOrchestrator(log, sup, registry, messageRepository,
		&moderator, stats, config.BufferSize, config.MetricInterval)
	orchestrator.Add(sink.NewSearchSink(searchRepository, stats, log))

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 2)
	go func() {
		if err := orchestrator.Start(ctx); err != nil {
			errChan <- fmt.Errorf("orchestrator error: %w", err)
		}
	}()

	// 6. HTTP surface: REST + websocket + static uploads
	authService := services.NewAuthService(log, userRepository, uploads, config.AuthTokenDuration)
	chatService := services.NewChatService(log, orchestrator, userRepository, searchRepository, uploads)

	router := api.NewServer(log, authService, chatService).Router()
	router.Handle("/ws", ws.NewHandler(log, orchestrator, config.ConnectionBufferSize, config.SinkTimeout))
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploads.Dir()))))

	if config.Debug {
		internal.StartDebugServer(db, config.DebugPort, nil, stats.Snapshot)
		log.Info("Debug inspector started", "port", config.DebugPort)
	}

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	orchestrator.Stop()
	log.Info("Program stopped cleanly")

	return exitOK, nil
}
