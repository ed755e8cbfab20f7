// Package ui renders command results for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorMarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("216"))
	warnMarkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("210")).Bold(true)
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("120"))
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	listStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("183"))
	atStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	borderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// UI writes styled messages. With color off every style renders as plain text.
type UI struct {
	writer   io.Writer
	useColor bool
}

// NewUI creates a UI writing to w.
func NewUI(w io.Writer, useColor bool) *UI {
	return &UI{writer: w, useColor: useColor}
}

func (u *UI) style(message string, style lipgloss.Style) string {
	if !u.useColor {
		return message
	}
	return style.Render(message)
}

func (u *UI) Print(message string) {
	fmt.Fprint(u.writer, message)
}

func (u *UI) Printf(format string, args ...interface{}) {
	fmt.Fprintf(u.writer, format, args...)
}

func (u *UI) Println(message string) {
	fmt.Fprintln(u.writer, message)
}

func (u *UI) Error(message string) {
	u.Printf("%s %s\n", u.style("!", errorMarkStyle), u.style(message, errorStyle))
}

func (u *UI) Success(message string) {
	u.Println(u.style(message, successStyle))
}

func (u *UI) Warning(message string) {
	u.Printf("%s %s\n", u.style("?", warnMarkStyle), u.style(message, warnStyle))
}

func (u *UI) Info(message string) {
	u.Println(u.style(message, infoStyle))
}

// PromptString builds "user @ list > ", or "> " when nobody is logged in.
func (u *UI) PromptString(user, list string) string {
	var b strings.Builder
	if user != "" {
		b.WriteString(u.style(user, userStyle))
		if list != "" {
			b.WriteString(u.style(" @ ", atStyle))
			b.WriteString(u.style(list, listStyle))
		}
		b.WriteString(" ")
	}
	b.WriteString(u.style("> ", promptStyle))
	return b.String()
}
