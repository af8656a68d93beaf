package clipboard

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
)

// Sink copies share text to the system clipboard.
type Sink struct {
	write func(string) error
}

// New returns a clipboard sink backed by the OS clipboard.
func New() *Sink {
	return &Sink{write: clipboard.WriteAll}
}

// Available reports whether the OS clipboard can be used on this machine.
func Available() bool {
	return !clipboard.Unsupported
}

func (s *Sink) Name() string {
	return "clipboard"
}

// Share implements report.Sink. Only the text is copied; title is dropped.
func (s *Sink) Share(ctx context.Context, _ string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.write(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
