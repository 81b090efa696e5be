package notifier

import (
	"fmt"
	"strings"
	"time"

	"AthSentinel/internal/model"
	"AthSentinel/internal/recorder"
)

var tierEmoji = map[model.GainTier]string{
	model.TierPoor:      "🪨",
	model.TierFair:      "🌱",
	model.TierGood:      "📈",
	model.TierGreat:     "🚀",
	model.TierExcellent: "💎",
}

// FormatDiscovery formats a single ATH discovery into a Telegram message.
func FormatDiscovery(rec *recorder.DiscoveryRecord) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s <b>%s</b> ATH discovery\n\n", tierEmoji[rec.Gain.Tier], rec.Symbol))
	b.WriteString(fmt.Sprintf("ATH: %s", formatPrice(rec.Ath.Value)))
	if rec.Ath.Precise {
		b.WriteString(" (minute precision)\n")
	} else {
		b.WriteString(" (~daily precision)\n")
	}
	b.WriteString(fmt.Sprintf("Baseline: %s\n", formatPrice(rec.BaselinePrice)))
	b.WriteString(fmt.Sprintf("Gain: %+.1f%% | Tier: %s\n", rec.Gain.GainPercent, rec.Gain.Tier))
	b.WriteString(fmt.Sprintf("\nDiscovered: %s", time.Unix(rec.DiscoveredAt, 0).UTC().Format("2006-01-02 15:04 UTC")))

	return b.String()
}

// FormatSweepSummary formats the outcome of a full watchlist sweep.
func FormatSweepSummary(total, succeeded, failed int, started time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔭 <b>Sweep complete</b> | %s\n\n", started.UTC().Format("2006-01-02 15:04 UTC")))
	b.WriteString(fmt.Sprintf("Tokens: %d | OK: %d | Failed: %d\n", total, succeeded, failed))
	b.WriteString(fmt.Sprintf("Duration: %s", time.Since(started).Round(time.Second)))
	return b.String()
}

// FormatFailure formats a per-token discovery failure notice.
func FormatFailure(symbol string, err error) string {
	return fmt.Sprintf("❌ <b>%s</b> discovery failed: %v", symbol, err)
}

// formatPrice renders small DEX prices without losing leading zeros.
func formatPrice(v float64) string {
	switch {
	case v >= 1:
		return fmt.Sprintf("$%.4f", v)
	case v >= 0.0001:
		return fmt.Sprintf("$%.6f", v)
	default:
		return fmt.Sprintf("$%.10f", v)
	}
}
