package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Level is the severity of a message.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

// Message is a structured CLI message with optional suggestions and hints.
type Message struct {
	Level       Level
	Context     string
	Problem     string
	Suggestions []string
	Hints       []string
	NoColor     bool
}

// Format renders m, e.g.
//
//	❌ MODULE NOT FOUND: estat
//	   Did you mean: estate?
//	   → List modules: onoffice-structure modules
func (m Message) Format() string {
	var b strings.Builder

	var header *color.Color
	var symbol string
	switch m.Level {
	case LevelError:
		header, symbol = color.New(color.FgRed, color.Bold), "❌"
	case LevelWarning:
		header, symbol = color.New(color.FgYellow, color.Bold), "⚠️"
	default:
		header, symbol = color.New(color.FgCyan, color.Bold), "ℹ️"
	}
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)
	if m.NoColor {
		header.DisableColor()
		yellow.DisableColor()
		cyan.DisableColor()
	}

	if m.Context != "" {
		header.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(m.Context), m.Problem)
	} else {
		header.Fprintf(&b, "%s %s\n", symbol, m.Problem)
	}
	if len(m.Suggestions) > 0 {
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(m.Suggestions, ", "))
	}
	for _, hint := range m.Hints {
		cyan.Fprintf(&b, "   → %s\n", hint)
	}
	return b.String()
}

// Write writes the formatted message to w.
func (m Message) Write(w io.Writer) {
	fmt.Fprint(w, m.Format())
}

// NotFound reports an unknown name of the given kind ("module", "field",
// "format") together with close matches from known.
func NotFound(kind, name string, known []string, noColor bool) Message {
	return Message{
		Level:       LevelError,
		Context:     kind + " not found",
		Problem:     name,
		Suggestions: Suggest(name, known, 3),
		Hints:       []string{"Known: " + strings.Join(known, ", ")},
		NoColor:     noColor,
	}
}

// ConfigError reports a configuration problem.
func ConfigError(problem string, noColor bool) Message {
	return Message{
		Level:   LevelError,
		Context: "configuration error",
		Problem: problem,
		Hints: []string{
			"Set api.token and api.secret in onoffice-structure.yaml",
			"Or export ONOFFICE_STRUCTURE_API_TOKEN and ONOFFICE_STRUCTURE_API_SECRET",
		},
		NoColor: noColor,
	}
}

// Success formats a success line.
func Success(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}
