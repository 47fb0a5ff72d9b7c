package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tally/internal/adapters/driving/tui/components/results"
	"github.com/custodia-labs/tally/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/tally/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tally/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tally/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tally/internal/core/domain"
)

// detailHeight is the number of lines taken by the detail pane, border included.
const detailHeight = 6

// App is the results viewer following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	table  *results.Table
	status *status.Bar

	// report is the last successful count.
	report *domain.Report

	// err holds the last error that occurred.
	err error

	showHelp bool

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		table:  results.New(s),
		status: status.NewBar(s, km),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It starts the first count.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("tally"),
		a.count(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(key, a.keymap.Help):
			a.showHelp = !a.showHelp
			a.layout()
			return a, nil
		case keymap.Matches(key, a.keymap.ToggleZero):
			hidden := !a.table.HideZero()
			return a, func() tea.Msg { return messages.ZeroRowsToggled{Hidden: hidden} }
		case keymap.Matches(key, a.keymap.Recount):
			return a, func() tea.Msg { return messages.CountRequested{} }
		}
		a.table, cmd = a.table.Update(msg)
		return a, cmd

	case messages.ZeroRowsToggled:
		a.table.SetHideZero(msg.Hidden)
		a.status.SetHideZero(msg.Hidden)
		return a, nil

	case messages.CountRequested:
		a.status.SetState(status.StateCounting)
		return a, a.count()

	case messages.ReportLoaded:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.err = nil
		a.report = msg.Report
		a.table.SetRows(msg.Report.Table.Rows)
		a.status.SetState(status.StateReady)
		a.status.SetTotals(
			len(msg.Report.Table.Rows),
			len(msg.Report.Table.Matched()),
			msg.Report.Table.GrandTotal,
		)
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	sections := []string{a.viewHeader(), a.table.View(), a.viewDetail()}
	if a.showHelp {
		sections = append(sections, a.viewHelp())
	}
	sections = append(sections, a.status.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) viewHeader() string {
	if a.report == nil {
		return a.styles.Title.Render("tally")
	}

	title := a.report.Document.Title
	if title == "" {
		title = a.report.Document.URI
	}
	taxonomy := a.report.Taxonomy
	if taxonomy == "" {
		taxonomy = "(inline)"
	}
	return a.styles.Title.Render("Document: "+title) + "  " +
		a.styles.Muted.Render("Taxonomy: "+taxonomy)
}

func (a *App) viewDetail() string {
	width := a.width - 2
	if width < 20 {
		width = 20
	}
	pane := a.styles.Pane.Width(width)

	row, ok := a.table.Selected()
	if !ok {
		return pane.Render(a.styles.Muted.Render("Nothing selected"))
	}

	total := a.styles.Muted.Render("0")
	if row.Total > 0 {
		total = a.styles.Count.Render(fmt.Sprint(row.Total))
	}

	lines := []string{
		a.styles.Subtitle.Render(row.Index+"  "+row.Term) + "  " + total,
	}
	if row.Total == 0 {
		lines = append(lines, a.styles.Muted.Render(row.Detail))
	} else {
		lines = append(lines, a.styles.Normal.Render(row.Detail))
	}
	return pane.Render(strings.Join(lines, "\n"))
}

func (a *App) viewHelp() string {
	groups := a.keymap.FullHelp()
	lines := make([]string, 0, len(groups))
	for _, group := range groups {
		hints := make([]string, 0, len(group))
		for _, b := range group {
			h := b.Help()
			hints = append(hints, fmt.Sprintf("%-4s %s", h.Key, h.Desc))
		}
		lines = append(lines, strings.Join(hints, "   "))
	}
	return a.styles.Muted.Render(strings.Join(lines, "\n"))
}

// count loads the document and counts it off the UI goroutine.
func (a *App) count() tea.Cmd {
	ctx := a.ctx
	ports := a.ports
	return func() tea.Msg {
		raw, err := ports.Document(ctx)
		if err != nil {
			return messages.ReportLoaded{Err: err}
		}
		report, err := ports.Tally.CountDocumentWith(ctx, raw, ports.Taxonomy, ports.Options)
		return messages.ReportLoaded{Report: report, Err: err}
	}
}

func (a *App) setError(err error) {
	a.err = err
	a.status.SetState(status.StateError)
	if err != nil {
		a.status.SetMessage(err.Error())
	}
}

func (a *App) layout() {
	// Header, detail pane and status bar.
	used := 1 + detailHeight + 1
	if a.showHelp {
		used += len(a.keymap.FullHelp())
	}
	a.table.SetSize(a.width, a.height-used)
	a.status.SetWidth(a.width)
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Report returns the last successful count.
func (a *App) Report() *domain.Report {
	return a.report
}

// Table returns the result table component.
func (a *App) Table() *results.Table {
	return a.table
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.layout()
}
