package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

const loadingText = "Analizando contenido..."

// clearLine returns the cursor to column 0 and erases the line.
const clearLine = "\r\x1b[K"

// Indicator animates a spinner line while an analysis runs. Hide stops the
// animation and erases the line.
type Indicator struct {
	w       io.Writer
	styles  Styles
	spinner spinner.Spinner

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewIndicator(w io.Writer, styles Styles) *Indicator {
	return &Indicator{w: w, styles: styles, spinner: spinner.Dot}
}

func (i *Indicator) Show() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.stop != nil {
		return
	}

	i.draw(0)
	i.stop = make(chan struct{})
	i.done = make(chan struct{})
	go i.animate(i.stop, i.done)
}

func (i *Indicator) Hide() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.stop == nil {
		return
	}

	close(i.stop)
	<-i.done
	i.stop, i.done = nil, nil
	fmt.Fprint(i.w, clearLine)
}

func (i *Indicator) animate(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(i.spinner.FPS)
	defer ticker.Stop()

	for frame := 1; ; frame++ {
		select {
		case <-stop:
			return
		case <-ticker.C:
			i.draw(frame)
		}
	}
}

func (i *Indicator) draw(frame int) {
	f := i.spinner.Frames[frame%len(i.spinner.Frames)]
	fmt.Fprint(i.w, clearLine+i.styles.Highlight.Render(f)+" "+i.styles.Muted.Render(loadingText))
}
