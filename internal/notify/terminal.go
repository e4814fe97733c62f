package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// TerminalChannel prints notifications to the terminal.
type TerminalChannel struct {
	writer  io.Writer
	enabled bool
	mu      sync.Mutex

	alertStyle *color.Color
	gttStyle   *color.Color
	errStyle   *color.Color
	infoStyle  *color.Color
	dimStyle   *color.Color
}

// NewTerminalChannel creates a terminal channel writing to stdout.
func NewTerminalChannel(enabled bool) *TerminalChannel {
	return &TerminalChannel{
		writer:     os.Stdout,
		enabled:    enabled,
		alertStyle: color.New(color.FgYellow, color.Bold),
		gttStyle:   color.New(color.FgCyan, color.Bold),
		errStyle:   color.New(color.FgRed, color.Bold),
		infoStyle:  color.New(color.FgGreen),
		dimStyle:   color.New(color.Faint),
	}
}

// SetWriter redirects output, used by tests.
func (t *TerminalChannel) SetWriter(w io.Writer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writer = w
}

// Name implements Channel.
func (t *TerminalChannel) Name() string { return "terminal" }

// IsEnabled implements Channel.
func (t *TerminalChannel) IsEnabled() bool { return t.enabled }

// Send implements Channel.
func (t *TerminalChannel) Send(ctx context.Context, n Notification) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := t.infoStyle
	prefix := "INFO"
	switch n.Type {
	case TypeAlert:
		style = t.alertStyle
		prefix = "ALERT"
	case TypeGTT:
		style = t.gttStyle
		prefix = "GTT"
	case TypeError:
		style = t.errStyle
		prefix = "ERROR"
	}

	ts := n.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	fmt.Fprintf(t.writer, "%s %s %s\n",
		t.dimStyle.Sprint(ts.Format("15:04:05")),
		style.Sprintf("[%s]", prefix),
		n.Title)
	if n.Message != "" {
		fmt.Fprintf(t.writer, "         %s\n", n.Message)
	}
	return nil
}
