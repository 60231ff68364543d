// Package console renders the chat client's terminal output.
package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const bannerWidth = 80

// Printer writes styled lines to an output stream. Styles degrade to plain
// text when the stream is not a terminal.
type Printer struct {
	out     io.Writer
	you     lipgloss.Style
	persona lipgloss.Style
	err     lipgloss.Style
}

// New builds a Printer bound to out.
func New(out io.Writer) *Printer {
	if out == nil {
		out = io.Discard
	}
	r := lipgloss.NewRenderer(out)
	white := lipgloss.Color("7")
	return &Printer{
		out:     out,
		you:     r.NewStyle().Foreground(lipgloss.Color("4")).Background(white).Bold(true),
		persona: r.NewStyle().Foreground(lipgloss.Color("1")).Background(white).Bold(true),
		err:     r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Greeting prints the welcome line.
func (p *Printer) Greeting(text string) {
	_, _ = fmt.Fprintf(p.out, "\n%s\n", text)
}

// Prompt prints the user input label.
func (p *Printer) Prompt() {
	_, _ = fmt.Fprintf(p.out, "\n%s: ", p.you.Render("You"))
}

// Reply prints one agent answer followed by the turn banner.
func (p *Printer) Reply(persona, reply string, elapsed time.Duration, instruction string) {
	_, _ = fmt.Fprintf(p.out, "\n%s: \n%s\n\n%s\nExecution time: %s seconds\n%s\n%s\n",
		p.persona.Render(persona), reply, rule(), seconds(elapsed), instruction, rule())
}

// Farewell prints the closing summary.
func (p *Printer) Farewell(modelID string, total time.Duration) {
	_, _ = fmt.Fprintf(p.out, "\nBye! Have a great day!\n\n%s\nFoundation model = %s | Total Bedrock Agent execution time ~ %s seconds.\n%s\n",
		rule(), modelID, seconds(total), rule())
}

// Error prints msg in red, followed by detail on its own line when set.
// Lines are styled one at a time so none of them picks up padding.
func (p *Printer) Error(msg, detail string) {
	lines := []string{msg}
	if detail != "" {
		lines = append(lines, strings.Split(detail, "\n")...)
	}
	_, _ = fmt.Fprintln(p.out)
	for _, line := range lines {
		_, _ = fmt.Fprintln(p.out, p.err.Render(line))
	}
}

func rule() string { return strings.Repeat("*", bannerWidth) }

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.2f", d.Seconds())
}
