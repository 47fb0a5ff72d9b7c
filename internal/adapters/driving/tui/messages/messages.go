// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/tally/internal/core/domain"
)

// CountRequested asks the app to re-read the document and count again.
type CountRequested struct{}

// ReportLoaded carries a finished count back to the model.
type ReportLoaded struct {
	Report *domain.Report
	Err    error
}

// ZeroRowsToggled is sent when zero rows are shown or hidden.
type ZeroRowsToggled struct {
	Hidden bool
}

// ErrorOccurred is sent when an error happens outside a count.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
