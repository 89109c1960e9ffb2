package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tailscale.com/client/local"
	"tailscale.com/tsnet"

	"github.com/claude/replog/internal/catalog"
	"github.com/claude/replog/internal/config"
	"github.com/claude/replog/internal/ingest/logtext"
	"github.com/claude/replog/internal/llm"
	"github.com/claude/replog/internal/parse"
	"github.com/claude/replog/internal/server"
	"github.com/claude/replog/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("RepLog starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Run migrations
	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	// Connect database
	ctx := context.Background()
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Parse engine, optionally behind a remote language-model parser
	cat, err := catalog.Default()
	if err != nil {
		log.Error("failed to load exercise catalog", "error", err)
		os.Exit(1)
	}
	parser := parse.New(cat, parse.Options{DefaultUnit: cfg.Parser.Unit()})

	var llmClient *llm.Client
	if cfg.LLM.Enabled {
		llmClient = llm.NewClient(cfg.LLM.Endpoint, cfg.LLM.APIKey)
		log.Info("llm fallback enabled", "endpoint", cfg.LLM.Endpoint)
	}
	engine := llm.NewFallback(parser, llmClient, log)

	provider := logtext.NewProvider(db, engine, log)

	// Create server
	srv := server.New(db, provider, engine, parser, cat, cfg.Auth.APIKey, log)

	// Start server — tsnet or plain HTTP
	var listener net.Listener
	var handler http.Handler = srv

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		lc, err := tsServer.LocalClient()
		if err != nil {
			log.Error("tsnet local client failed", "error", err)
			os.Exit(1)
		}
		handler = server.Identity(tailscaleResolver(ctx, db, lc, log))(srv)

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		handler = server.DevIdentity(srv)

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: handler}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// tailscaleResolver maps each request's tailnet identity to a database user,
// creating the user row on first sight. Lookups that fail (tagged nodes,
// funnel traffic) leave the request on the default user.
func tailscaleResolver(ctx context.Context, db *storage.DB, lc *local.Client, log *slog.Logger) func(*http.Request) (int, server.UserInfo, bool) {
	return func(r *http.Request) (int, server.UserInfo, bool) {
		who, err := lc.WhoIs(r.Context(), r.RemoteAddr)
		if err != nil || who.UserProfile == nil || who.UserProfile.LoginName == "" {
			return 0, server.UserInfo{}, false
		}

		info := server.UserInfo{
			Login:       who.UserProfile.LoginName,
			DisplayName: who.UserProfile.DisplayName,
		}
		id, err := db.GetOrCreateUser(ctx, info.Login, info.DisplayName)
		if err != nil {
			log.Warn("user lookup failed", "login", info.Login, "error", err)
			return 0, server.UserInfo{}, false
		}
		return id, info, true
	}
}
