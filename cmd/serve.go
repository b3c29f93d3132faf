package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/httpapi"
	"github.com/abhisek/mathdrill/internal/llm"
	"github.com/abhisek/mathdrill/internal/logger"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/speech"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/tutor"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the practice HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "Listen port (overrides server.port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}

	log, err := logger.New(cfg.Server.Mode, cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionStore, events, closer, err := openSessionStore(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	composer := problemgen.New(nil, problemgen.DefaultConfig(), log)
	sessCfg := session.DefaultConfig()
	sessCfg.DefaultQuestions = cfg.Session.DefaultQuestions
	sessions := session.NewService(sessionStore, composer, sessCfg, log)

	provider, err := llm.NewProvider(ctx, cfg.LLMConfig(), events, log)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	var synth speech.Synthesizer
	if cfg.SpeechEnabled() {
		s, err := speech.NewOpenAISynthesizer(cfg.SpeechConfig())
		if err != nil {
			return fmt.Errorf("speech: %w", err)
		}
		synth = s
	}
	tu := tutor.New(provider, synth, tutor.DefaultConfig(), log)

	handler := httpapi.NewRouter(httpapi.NewHandler(sessions, tu, log), httpapi.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
	})
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			"addr", srv.Addr,
			"store", cfg.Store.Driver,
			"llm", cfg.LLMConfig().Provider,
			"speech", cfg.SpeechEnabled())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openSessionStore builds the configured session store. Only the SQLite
// store records events.
func openSessionStore(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (session.Store, store.EventRepo, io.Closer, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		path, err := resolveDBPath(cmd, cfg.Store.Path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open database: %w", err)
		}
		return s.Sessions(), s.EventRepo(), s, nil
	case "redis":
		ttl := cfg.Store.SessionTTL
		if ttl == 0 {
			ttl = store.DefaultSessionTTL
		}
		r, err := store.NewRedisStore(ctx, cfg.Store.RedisAddr, ttl)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return r, nil, r, nil
	default:
		return session.NewMemoryStore(), nil, nopCloser{}, nil
	}
}
