package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Progress draws a spinner while a slow call runs. Outside a terminal it
// only logs the message.
type Progress struct {
	out         io.Writer
	interactive bool
	interval    time.Duration
}

// NewProgress creates a Progress writing to out
func NewProgress(out io.Writer) *Progress {
	return &Progress{
		out:         out,
		interactive: isTerminal(out),
		interval:    100 * time.Millisecond,
	}
}

// ShowProgress runs fn behind a spinner on stderr
func ShowProgress(ctx context.Context, message string, fn func() error) error {
	return NewProgress(os.Stderr).Run(ctx, message, fn)
}

// Run calls fn and returns its error. If ctx ends first, Run still waits
// for fn to return and then reports ctx.Err().
func (p *Progress) Run(ctx context.Context, message string, fn func() error) error {
	if !p.interactive {
		LogInfo(message)
		return fn()
	}

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case err := <-done:
			if err != nil {
				_, _ = fmt.Fprintf(p.out, "\r%s %s\n", errorStyle.Render("✗"), message)
				return err
			}
			_, _ = fmt.Fprintf(p.out, "\r%s %s\n", successStyle.Render("✓"), message)
			return nil
		case <-ctx.Done():
			_, _ = fmt.Fprintf(p.out, "\r%s %s\n", warningStyle.Render("⚠"), message)
			<-done
			return ctx.Err()
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			_, _ = fmt.Fprintf(p.out, "\r%s %s", progressStyle.Render(frame), message)
		}
	}
}

// isTerminal reports whether w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PrintSuccess prints a success message to stdout
func PrintSuccess(message string) {
	printStatus(os.Stdout, successStyle, "✓", "", message)
}

// PrintError prints an error message to stderr
func PrintError(message string) {
	printStatus(os.Stderr, errorStyle, "✗", "", message)
}

// PrintWarning prints a warning message to stderr
func PrintWarning(message string) {
	printStatus(os.Stderr, warningStyle, "⚠", "WARNING: ", message)
}

// printStatus marks message with a styled symbol on a terminal and with
// plainPrefix everywhere else
func printStatus(w io.Writer, style lipgloss.Style, mark, plainPrefix, message string) {
	if isTerminal(w) {
		_, _ = fmt.Fprintf(w, "%s %s\n", style.Render(mark), message)
		return
	}
	_, _ = fmt.Fprintf(w, "%s%s\n", plainPrefix, message)
}
