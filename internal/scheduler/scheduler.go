package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"AthSentinel/internal/config"
	"AthSentinel/internal/engine"
	"AthSentinel/internal/notifier"
	"AthSentinel/internal/recorder"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Scheduler runs periodic ATH discovery sweeps over the watchlist.
type Scheduler struct {
	Cron          *cron.Cron
	Resolver      *engine.PeakResolver
	Watchlist     []config.TokenEntry
	MaxConcurrent int
	Notifier      *notifier.TelegramNotifier
	Recorder      recorder.Recorder
	Ctx           context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, resolver *engine.PeakResolver, watchlist []config.TokenEntry, maxConcurrent int, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:          cron.New(cron.WithSeconds()),
		Resolver:      resolver,
		Watchlist:     watchlist,
		MaxConcurrent: maxConcurrent,
		Notifier:      tn,
		Recorder:      rec,
		Ctx:           ctx,
	}
}

// Register registers the discovery sweep on the given cron spec.
func (s *Scheduler) Register(discoveryCron string) error {
	if _, err := s.Cron.AddFunc(discoveryCron, s.sweepTask); err != nil {
		return fmt.Errorf("register discovery sweep: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes a full sweep immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.sweepTask()
}

// sweepTask discovers the ATH of every watched token. Discoveries for
// different tokens are independent and stateless, so they fan out
// concurrently up to MaxConcurrent; a failed token never aborts the sweep.
func (s *Scheduler) sweepTask() {
	started := time.Now()
	log.Printf("[INFO] running discovery sweep over %d tokens", len(s.Watchlist))

	var failed atomic.Int64
	g, ctx := errgroup.WithContext(s.Ctx)
	g.SetLimit(s.MaxConcurrent)

	for _, tok := range s.Watchlist {
		local := tok
		g.Go(func() error {
			if err := s.discoverToken(ctx, local); err != nil {
				failed.Add(1)
				log.Printf("[ERROR] discover %s: %v", local.Symbol, err)
				s.trySend(notifier.FormatFailure(local.Symbol, err))
			}
			return nil
		})
	}
	g.Wait()

	nf := int(failed.Load())
	s.trySend(notifier.FormatSweepSummary(len(s.Watchlist), len(s.Watchlist)-nf, nf, started))
}

func (s *Scheduler) discoverToken(ctx context.Context, tok config.TokenEntry) error {
	discovery, err := s.Resolver.Discover(ctx, tok.PoolID, tok.BaselinePrice)
	if err != nil {
		return err
	}

	rec := &recorder.DiscoveryRecord{
		Symbol:        tok.Symbol,
		PoolID:        tok.PoolID,
		BaselinePrice: tok.BaselinePrice,
		Ath:           discovery.Ath,
		Gain:          discovery.Gain,
		DiscoveredAt:  time.Now().Unix(),
	}
	s.trySend(notifier.FormatDiscovery(rec))

	if err := s.Recorder.RecordDiscovery(rec); err != nil {
		log.Printf("[ERROR] record discovery %s: %v", tok.Symbol, err)
	}
	return nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch {
	case command == "/sweep":
		go s.sweepTask()
		return "Sweep started."
	case command == "/list":
		var b strings.Builder
		b.WriteString("Watched tokens:\n")
		for _, tok := range s.Watchlist {
			b.WriteString(fmt.Sprintf("• %s (baseline $%g)\n", tok.Symbol, tok.BaselinePrice))
		}
		return b.String()
	case strings.HasPrefix(command, "/ath "):
		symbol := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(command, "/ath ")))
		for _, tok := range s.Watchlist {
			if strings.ToUpper(tok.Symbol) == symbol {
				if err := s.discoverToken(s.Ctx, tok); err != nil {
					return fmt.Sprintf("Discovery failed: %v", err)
				}
				return ""
			}
		}
		return fmt.Sprintf("Unknown token %q, try /list", symbol)
	default:
		return "Commands:\n• /sweep — discover all tokens now\n• /ath SYMBOL — discover one token\n• /list — show the watchlist"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
