package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claude/replog/internal/catalog"
	"github.com/claude/replog/internal/journal"
	"github.com/claude/replog/internal/models"
	"github.com/claude/replog/internal/parse"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	text := flag.String("text", "", "workout log text to journal")
	file := flag.String("file", "", "file containing workout log text")
	date := flag.String("date", "", "log date (YYYY-MM-DD, default today)")
	unit := flag.String("unit", "lbs", "default weight unit (lbs or kg)")
	dir := flag.String("dir", "", "journal directory (default ~/.replog-journal)")
	serverURL := flag.String("server", "", "RepLog server URL to push journaled logs to")
	apiKey := flag.String("api-key", os.Getenv("REPLOG_API_KEY"), "API key for the server")
	push := flag.Bool("push", false, "push pending journal entries to the server")
	dryRun := flag.Bool("dry-run", false, "parse and print but don't journal")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("replog-journal", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *text == "" && *file == "" && !*push {
		fmt.Fprintf(os.Stderr, "Usage: replog-journal -text \"bench 3x10 at 185\" [-date YYYY-MM-DD] [-push -server <URL>]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	rawText := *text
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Error("failed to read file", "path", *file, "error", err)
			os.Exit(1)
		}
		rawText = string(data)
	}

	loggedAt := time.Now()
	if *date != "" {
		d, err := time.ParseInLocation("2006-01-02", *date, time.Local)
		if err != nil {
			log.Error("invalid -date, want YYYY-MM-DD", "date", *date)
			os.Exit(1)
		}
		loggedAt = d
	}

	defaultUnit := models.UnitPounds
	if *unit == string(models.UnitKilograms) {
		defaultUnit = models.UnitKilograms
	}
	cat, err := catalog.Default()
	if err != nil {
		log.Error("failed to load exercise catalog", "error", err)
		os.Exit(1)
	}
	parser := parse.New(cat, parse.Options{DefaultUnit: defaultUnit})

	if rawText != "" {
		exercises := parser.Parse(rawText)
		printExercises(exercises)

		if *dryRun {
			log.Info("DRY RUN mode — nothing journaled")
			return
		}

		j, err := openJournal(*dir)
		if err != nil {
			log.Error("failed to open journal", "error", err)
			os.Exit(1)
		}
		defer j.Close()

		added, err := j.Add(rawText, loggedAt, exercises)
		if err != nil {
			log.Error("failed to journal entry", "error", err)
			os.Exit(1)
		}
		if !added {
			log.Info("already journaled today, skipping")
		} else {
			log.Info("journaled", "logged_at", loggedAt.Format("2006-01-02"), "exercises", len(exercises))
		}
	}

	if *push {
		if *serverURL == "" {
			fmt.Fprintf(os.Stderr, "Error: -push requires -server\n")
			os.Exit(1)
		}

		j, err := openJournal(*dir)
		if err != nil {
			log.Error("failed to open journal", "error", err)
			os.Exit(1)
		}
		defer j.Close()

		client := journal.NewClient(strings.TrimRight(*serverURL, "/"), *apiKey)
		pushed, err := journal.Push(j, client, log)
		if err != nil {
			log.Error("push failed", "pushed", pushed, "error", err)
			os.Exit(1)
		}
		log.Info("push complete", "pushed", pushed)
	}
}

func openJournal(dir string) (*journal.Journal, error) {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".replog-journal")
	}
	return journal.Open(dir)
}

func printExercises(exercises []models.ParsedExercise) {
	if len(exercises) == 0 {
		fmt.Println("No exercises recognized.")
		return
	}
	for _, ex := range exercises {
		fmt.Printf("%s (%s, %s)\n", ex.Name, ex.Category, ex.Equipment)
		for _, set := range ex.Sets {
			fmt.Printf("  set %d: %s\n", set.SetNumber, describeSet(set))
		}
	}
}

func describeSet(set models.ParsedSet) string {
	var parts []string
	if set.DurationSeconds > 0 {
		parts = append(parts, fmt.Sprintf("%ds", set.DurationSeconds))
	} else {
		parts = append(parts, fmt.Sprintf("%d reps", set.Reps))
	}
	if set.Weight > 0 {
		parts = append(parts, fmt.Sprintf("%g %s", set.Weight, set.Unit))
	}
	if set.RPE > 0 {
		parts = append(parts, fmt.Sprintf("RPE %g", set.RPE))
	}
	if set.RIR != nil {
		parts = append(parts, fmt.Sprintf("%d RIR", *set.RIR))
	}
	if set.SetType != "" && set.SetType != models.SetNormal {
		parts = append(parts, string(set.SetType))
	}
	return strings.Join(parts, ", ")
}
