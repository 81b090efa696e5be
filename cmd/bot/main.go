package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"AthSentinel/internal/config"
	"AthSentinel/internal/engine"
	"AthSentinel/internal/gain"
	"AthSentinel/internal/notifier"
	"AthSentinel/internal/recorder"
	"AthSentinel/internal/scheduler"
	"AthSentinel/internal/source"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] AthSentinel starting...")

	// .env is optional; real env vars win either way.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init chart source
	src := source.NewChartSource(cfg.Chart.BaseURL, cfg.Chart.APIKey,
		cfg.Chart.CoarseTag, cfg.Chart.FineTag, cfg.ChartTimeout(), cfg.Proxy)
	log.Printf("[INFO] bar source: %s", src.Name())

	// Init discovery engine
	resolver := engine.NewPeakResolver(
		engine.NewCoarseScanner(src, cfg.CoarseLookback()),
		engine.NewPrecisionRefiner(src, cfg.FineBuffer()),
		gain.NewClassifier(cfg.Engine.Tiers.Excellent, cfg.Engine.Tiers.Great,
			cfg.Engine.Tiers.Good, cfg.Engine.Tiers.Fair),
	)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder: SQLite preferred, flat JSON files as fallback
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, trying file recorder: %v", err)
			fr, ferr := recorder.NewFileRecorder(cfg.Record.Dir)
			if ferr != nil {
				log.Printf("[WARN] init file recorder failed, using noop: %v", ferr)
				rec = recorder.NewNoopRecorder()
			} else {
				rec = fr
			}
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		fr, err := recorder.NewFileRecorder(cfg.Record.Dir)
		if err != nil {
			log.Printf("[WARN] init file recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = fr
		}
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, resolver, cfg.Watchlist, cfg.Schedule.MaxConcurrent, tn, rec)
	if err := sched.Register(cfg.Schedule.DiscoveryCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing discovery sweep now")
		go sched.RunNow()
	}

	log.Println("[INFO] AthSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] AthSentinel stopped")
}
