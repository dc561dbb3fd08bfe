package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/devbush/swiftconvert/internal/ports"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	linkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Underline(true)
)

// ConsoleNotifier prints notifications as styled lines, the terminal
// equivalent of toasts. Errors and successes are shown even when quiet.
type ConsoleNotifier struct {
	out   io.Writer
	quiet bool
	mu    sync.Mutex
}

// NewConsoleNotifier creates a notifier writing to out
func NewConsoleNotifier(out io.Writer, quiet bool) *ConsoleNotifier {
	return &ConsoleNotifier{out: out, quiet: quiet}
}

func (n *ConsoleNotifier) Info(message string) {
	if n.quiet {
		return
	}
	n.println(infoStyle.Render("ℹ " + message))
}

func (n *ConsoleNotifier) Warn(message string) {
	if n.quiet {
		return
	}
	n.println(warnStyle.Render("! " + message))
}

func (n *ConsoleNotifier) Error(message string) {
	n.println(errorStyle.Render("✗ " + message))
}

func (n *ConsoleNotifier) Success(title, message string, link *ports.Link) {
	n.println(successStyle.Render("✓ " + title))
	if message != "" {
		n.println("  " + message)
	}
	if link != nil {
		n.println(fmt.Sprintf("  %s: %s", link.Text, linkStyle.Render(link.Href)))
	}
}

func (n *ConsoleNotifier) println(s string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, s)
}
