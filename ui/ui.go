// Package ui provides the terminal output layer for abiscope commands.
//
// Production code uses TerminalUI (coloured output to os.Stdout, a spinner
// during network stages); tests use RecordingUI, which captures every call
// for assertions. The resolver core never talks to a UI directly; commands
// adapt a UI into the resolver's progress/error hooks.
package ui

// Severity classifies the visual weight of a piece of output. The terminal
// maps each value to a colour; the recording UI keeps plain text.
type Severity uint8

const (
	SeverityInfo    Severity = iota // plain
	SeveritySuccess                 // green, known / positive
	SeverityWarn                    // yellow, uncertain
	SeverityError                   // red, failure
)

// UI is the output surface commands print through.
//
// Busy/Done bracket a long-running network stage: Busy shows what the tool
// is waiting on (with a spinner on a real terminal), Done clears it. Calls
// may be nested in sequence but not overlapped.
type UI interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)

	// Section prints a visually separated heading.
	Section(title string)

	// Table prints aligned rows; each row is a slice of cells.
	Table(rows [][]string)

	// Block prints preformatted multi-line text at one indent level.
	Block(text string)

	Busy(message string)
	Done()
}
