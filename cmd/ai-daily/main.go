package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mkobayashi/ai-daily/internal/ai"
	"github.com/mkobayashi/ai-daily/internal/config"
	"github.com/mkobayashi/ai-daily/internal/feed"
	"github.com/mkobayashi/ai-daily/internal/fetcher"
	"github.com/mkobayashi/ai-daily/internal/publisher"
	"github.com/mkobayashi/ai-daily/internal/report"
	"github.com/mkobayashi/ai-daily/internal/runner"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional, env vars suffice)")
	hours := flag.Int("hours", 0, "time window in hours (overrides config)")
	topN := flag.Int("top-n", 0, "number of top articles to include (overrides config)")
	lang := flag.String("lang", "", "summary language: zh or en (overrides config)")
	var output string
	flag.StringVar(&output, "output", "", "output file path for the file publisher (overrides config)")
	flag.StringVar(&output, "o", "", "output file path (shorthand)")
	once := flag.Bool("once", false, "run the pipeline once and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg, *hours, *topN, *lang, output)

	setupLogging(cfg.LogLevel)

	sources := feed.DefaultCatalog()
	if cfg.FeedsFile != "" {
		sources, err = feed.LoadCatalog(cfg.FeedsFile)
		if err != nil {
			slog.Error("failed to load feed catalog", "path", cfg.FeedsFile, "error", err)
			os.Exit(1)
		}
	}

	client := ai.NewClient(cfg.AI.APIKey, cfg.AI.APIBase, cfg.AI.Model)
	slog.Info("ai provider configured", "api_base", client.APIBase(), "model", client.Model())

	f := fetcher.New(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second, cfg.Fetch.Concurrency)

	var pubs []publisher.Publisher
	var webPub *publisher.WebPublisher

	switch cfg.Publisher.Type {
	case "stdout":
		pubs = append(pubs, publisher.NewStdoutPublisher())
	case "file":
		pubs = append(pubs, publisher.NewFilePublisher(cfg.Output))
	case "email":
		pubs = append(pubs, publisher.NewEmailPublisher(
			cfg.Publisher.Email.SMTPHost,
			cfg.Publisher.Email.SMTPPort,
			cfg.Publisher.Email.Username,
			cfg.Publisher.Email.Password,
			cfg.Publisher.Email.From,
			cfg.Publisher.Email.To,
		))
	case "web":
		webPub = publisher.NewWebPublisher(cfg.Publisher.Web.Addr)
		pubs = append(pubs, webPub)
	case "discord":
		pubs = append(pubs, publisher.NewDiscordPublisher(cfg.Publisher.Discord.WebhookURL))
	}

	if webPub != nil {
		if err := webPub.Start(); err != nil {
			slog.Error("failed to start web publisher", "error", err)
			os.Exit(1)
		}
	}

	r := runner.New(sources, cfg.Hours, cfg.TopN, cfg.Lang, f, client, pubs)

	// Single-run mode: run the pipeline once and exit.
	if *once {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		digest, err := r.Run(ctx, time.Now())
		if err != nil {
			slog.Error("pipeline failed", "error", err)
			os.Exit(1)
		}
		printPreview(digest)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.RunOnStart {
		slog.Info("running initial digest")
		if _, err := r.Run(ctx, time.Now()); err != nil {
			slog.Error("initial run failed", "error", err)
		}
	}

	c := cron.New()
	_, err = c.AddFunc(cfg.Schedule, func() {
		slog.Info("cron triggered, running digest")
		if _, err := r.Run(ctx, time.Now()); err != nil {
			slog.Error("scheduled run failed", "error", err)
		}
	})
	if err != nil {
		slog.Error("failed to set up cron schedule", "schedule", cfg.Schedule, "error", err)
		os.Exit(1)
	}
	c.Start()
	slog.Info("digest scheduled", "schedule", cfg.Schedule)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("shutting down", "signal", sig.String())

	cancel()
	c.Stop()

	if webPub != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := webPub.Shutdown(shutdownCtx); err != nil {
			slog.Error("web server shutdown error", "error", err)
		}
	}

	slog.Info("shutdown complete")
}

// applyFlagOverrides lets command-line flags win over the config file.
func applyFlagOverrides(cfg *config.Config, hours, topN int, lang, output string) {
	if hours > 0 {
		cfg.Hours = hours
	}
	if topN > 0 {
		cfg.TopN = topN
	}
	if lang != "" {
		cfg.Lang = lang
	}
	if output != "" {
		cfg.Output = output
		cfg.Publisher.Type = "file"
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// printPreview shows the top entries of a finished digest on the console.
func printPreview(digest *report.Digest) {
	if len(digest.Articles) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Top picks:")
	for i, a := range digest.Articles {
		if i >= 3 {
			break
		}
		fmt.Printf("  %d. %s\n", i+1, a.DisplayTitle())
		if a.Summary.Body != "" {
			body := []rune(a.Summary.Body)
			if len(body) > 80 {
				body = body[:80]
			}
			fmt.Printf("     %s...\n", string(body))
		}
	}
}
