package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"truthlens/internal/session"
)

// ShareTitle is the title passed to share targets
const ShareTitle = "Reporte TruthLens"

// Sink is a destination for share text (clipboard, chat, ...)
type Sink interface {
	Name() string
	Share(ctx context.Context, title, text string) error
}

// ShareText formats the current result as plain text for sharing.
func ShareText(snap session.Snapshot) string {
	p := snap.Presentation
	return fmt.Sprintf("📰 TruthLens\n\nResultado: %s (%s)\nConfianza: %d%%\n\n%s\n\nExtracto:\n%s",
		p.Title, p.Badge, p.GaugePercent, p.Description, snap.Preview)
}

// Share hands text to every sink. Failures are logged and otherwise ignored;
// the number of sinks that accepted the text is returned.
func Share(ctx context.Context, logger *zap.Logger, text string, sinks ...Sink) int {
	if logger == nil {
		logger = zap.NewNop()
	}
	delivered := 0
	for _, s := range sinks {
		if s == nil {
			continue
		}
		if err := s.Share(ctx, ShareTitle, text); err != nil {
			logger.Warn("Share failed", zap.String("sink", s.Name()), zap.Error(err))
			continue
		}
		logger.Debug("Shared report", zap.String("sink", s.Name()))
		delivered++
	}
	return delivered
}
