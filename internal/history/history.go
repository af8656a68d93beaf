// Package history keeps the capped, most-recent-first log of past analyses
// for the current session. Nothing is persisted.
package history

import (
	"html"
	"sync"
	"time"

	"truthlens/internal/models"
	"truthlens/internal/presenter"
)

const (
	// MaxEntries is the number of analyses kept per session.
	MaxEntries = 15
	// MaxSnippetRunes is the longest snippet stored without truncation.
	MaxSnippetRunes = 90
)

// Entry is one recorded analysis
type Entry struct {
	Snippet     string             `json:"snippet"`
	Probability int                `json:"probability"`
	Prediction  string             `json:"prediction"`
	Label       int                `json:"label"`
	Tier        presenter.Tier     `json:"tier"`
	Title       string             `json:"title"`
	Status      string             `json:"status"`
	Severity    presenter.Severity `json:"severity"`
	RecordedAt  time.Time          `json:"recorded_at"`
}

// Log is a bounded history. The zero value is not usable; call New.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	max     int
	now     func() time.Time
}

// New creates an empty log holding at most MaxEntries items.
func New() *Log {
	return &Log{max: MaxEntries, now: time.Now}
}

// Record prepends an analysis and evicts the oldest entries beyond the cap.
// probability is the fake percentage (0-100) as shown to the user.
func (l *Log) Record(snippet string, probability int, prediction string, label int) Entry {
	if prediction == "" {
		prediction = models.PredictionUnknown
	}
	fake := prediction == models.PredictionFake || label == 1
	style := presenter.StyleFor(presenter.TierFor(probability, fake))

	entry := Entry{
		Snippet:     html.EscapeString(Truncate(snippet)),
		Probability: probability,
		Prediction:  prediction,
		Label:       label,
		Tier:        style.Tier,
		Title:       style.HistoryTitle,
		Status:      style.HistoryStatus,
		Severity:    style.Severity,
		RecordedAt:  l.now(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]Entry{entry}, l.entries...)
	for len(l.entries) > l.max {
		l.entries = l.entries[:len(l.entries)-1]
	}
	return entry
}

// Entries returns a copy of the log, most recent first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of stored entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Reset drops every entry.
func (l *Log) Reset() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}

// Truncate shortens s to MaxSnippetRunes, replacing the tail with an ellipsis.
func Truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxSnippetRunes {
		return s
	}
	return string(runes[:MaxSnippetRunes-3]) + "…"
}
