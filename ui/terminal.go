package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	indent "github.com/openconfig/goyang/pkg/indent"
	"golang.org/x/term"
)

const (
	indentUnit   = "  "
	sectionWidth = 50
)

var sectionStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderBottom(true).
	Bold(true)

// TerminalUI is the production UI implementation. It writes coloured output
// to os.Stdout; colours and the spinner are enabled only when stdout is a
// real terminal.
type TerminalUI struct {
	out        io.Writer
	au         aurora.Aurora
	isTerminal bool
	spin       *spinner.Spinner
}

func NewTerminalUI() *TerminalUI {
	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	return &TerminalUI{
		out:        os.Stdout,
		au:         aurora.NewAurora(isTerminal),
		isTerminal: isTerminal,
	}
}

func (u *TerminalUI) writeLine(line string) {
	fmt.Fprintf(u.out, "%s\n", line)
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.writeLine(fmt.Sprintf(format, args...))
}

func (u *TerminalUI) Success(format string, args ...any) {
	u.writeLine(u.au.Green(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Warn(format string, args ...any) {
	u.writeLine(u.au.Yellow(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Error(format string, args ...any) {
	u.writeLine(u.au.Red(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Section(title string) {
	u.writeLine("")
	u.writeLine(sectionStyle.Width(sectionWidth).Render(title))
}

func (u *TerminalUI) Table(rows [][]string) {
	widths := []int{}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		u.writeLine(strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

func (u *TerminalUI) Block(text string) {
	fmt.Fprint(u.out, indent.String(indentUnit, strings.TrimRight(text, "\n")+"\n"))
}

func (u *TerminalUI) Busy(message string) {
	if !u.isTerminal {
		u.writeLine(message + "...")
		return
	}
	u.Done()
	u.spin = spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	u.spin.Suffix = " " + message
	u.spin.Start()
}

func (u *TerminalUI) Done() {
	if u.spin != nil {
		u.spin.Stop()
		u.spin = nil
	}
}
