// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tally/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tally/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateCounting State = "counting"
	StateReady    State = "ready"
	StateError    State = "error"
)

// Bar displays count totals and keybinding hints.
type Bar struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	state      State
	message    string
	terms      int
	matched    int
	grandTotal int
	hideZero   bool
	width      int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateCounting,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	style := s.styles.StatusBar
	inner := s.width - style.GetHorizontalFrameSize()

	left := s.renderLeft()
	right := s.renderRight(inner - lipgloss.Width(left) - 1)

	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Width(s.width).MaxHeight(1).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateCounting:
		return s.styles.Muted.Render("Counting...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateReady:
	}

	text := fmt.Sprintf("%d/%d terms matched | Total Occurrences: %d", s.matched, s.terms, s.grandTotal)
	if s.hideZero {
		text += " | zeros hidden"
	}
	return s.styles.Normal.Render(text)
}

// renderRight joins the key hints, dropping the leading ones until the
// text fits in maxWidth columns.
func (s *Bar) renderRight(maxWidth int) string {
	bindings := s.keymap.ShortHelp()

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	for len(hints) > 0 && lipgloss.Width(strings.Join(hints, " | ")) > maxWidth {
		hints = hints[1:]
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetTotals records the term count, matched term count and grand total.
func (s *Bar) SetTotals(terms, matched, grandTotal int) {
	s.terms = terms
	s.matched = matched
	s.grandTotal = grandTotal
}

// SetHideZero records whether zero rows are hidden.
func (s *Bar) SetHideZero(hide bool) {
	s.hideZero = hide
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
