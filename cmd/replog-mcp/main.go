package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/replog/internal/catalog"
	"github.com/claude/replog/internal/config"
	"github.com/claude/replog/internal/mcp"
	"github.com/claude/replog/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "RepLog server URL (e.g. https://replog.tail1234.ts.net); queries go over HTTP")
	configPath := flag.String("config", "", "path to config file; queries go straight to Postgres")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("replog-mcp", Version)
		return
	}

	// stdout carries the MCP protocol, so logs go to stderr
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if (*serverURL == "") == (*configPath == "") {
		fmt.Fprintf(os.Stderr, "Usage: replog-mcp -server <URL> | -config config.yaml\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var ds mcp.DataSource
	if *serverURL != "" {
		ds = mcp.NewHTTPClient(strings.TrimRight(*serverURL, "/"))
		log.Info("using remote server", "url", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
		log.Info("using local database", "host", cfg.Database.Host)
	}

	cat, err := catalog.Default()
	if err != nil {
		log.Error("failed to load exercise catalog", "error", err)
		os.Exit(1)
	}
	s := mcp.New(ds, cat, Version, log)

	log.Info("RepLog MCP server starting on stdio", "version", Version)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
