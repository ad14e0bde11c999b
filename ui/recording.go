package ui

import (
	"fmt"
	"strings"
)

// Entry records a single UI method call for test assertions.
type Entry struct {
	Method string
	Value  string
}

// RecordingUI implements UI for tests: every call is captured in an entry
// log that can be inspected with Entries and HasMessage.
type RecordingUI struct {
	entries []Entry
}

func NewRecordingUI() *RecordingUI {
	return &RecordingUI{}
}

func (r *RecordingUI) record(method, value string) {
	r.entries = append(r.entries, Entry{Method: method, Value: value})
}

func (r *RecordingUI) Entries() []Entry {
	return r.entries
}

// HasMessage reports whether any recorded call's value contains substr.
func (r *RecordingUI) HasMessage(substr string) bool {
	for _, e := range r.entries {
		if strings.Contains(e.Value, substr) {
			return true
		}
	}
	return false
}

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Warn(format string, args ...any) {
	r.record("Warn", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Section(title string) {
	r.record("Section", title)
}

func (r *RecordingUI) Table(rows [][]string) {
	for _, row := range rows {
		r.record("Table", strings.Join(row, " | "))
	}
}

func (r *RecordingUI) Block(text string) {
	r.record("Block", text)
}

func (r *RecordingUI) Busy(message string) {
	r.record("Busy", message)
}

func (r *RecordingUI) Done() {
	r.record("Done", "")
}
