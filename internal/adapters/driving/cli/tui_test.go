package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tally/internal/adapters/driving/tui"
	"github.com/custodia-labs/tally/internal/core/domain"
)

func stubTerminal(t *testing.T, isTerminal bool, program func(*tui.App) error) {
	t.Helper()
	origTerminal, origProgram := stdoutIsTerminal, runProgram
	stdoutIsTerminal = func() bool { return isTerminal }
	runProgram = program
	t.Cleanup(func() {
		stdoutIsTerminal, runProgram = origTerminal, origProgram
	})
}

func TestTUICmd_RunsApp(t *testing.T) {
	env := newTestEnv(t)
	doc := env.writeFile(t, "report.txt", sampleText)
	tax := env.writeFile(t, "finance.yaml", financeYAML)

	var started *tui.App
	stubTerminal(t, true, func(app *tui.App) error {
		started = app
		return nil
	})

	_, err := run(t, "", "tui", doc, "--taxonomy", tax)

	require.NoError(t, err)
	require.NotNil(t, started)
	assert.Nil(t, started.Report(), "counting starts when the program runs")
}

func TestTUICmd_NeedsTerminal(t *testing.T) {
	env := newTestEnv(t)
	doc := env.writeFile(t, "report.txt", sampleText)
	stubTerminal(t, false, func(*tui.App) error {
		t.Fatal("program should not start")
		return nil
	})

	_, err := run(t, "", "tui", doc)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a terminal")
}

func TestTUICmd_MissingFile(t *testing.T) {
	env := newTestEnv(t)
	stubTerminal(t, true, func(*tui.App) error { return nil })

	_, err := run(t, "", "tui", env.dir+"/missing.pdf")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTUICmd_ProgramError(t *testing.T) {
	env := newTestEnv(t)
	doc := env.writeFile(t, "report.txt", sampleText)
	stubTerminal(t, true, func(*tui.App) error { return errors.New("no tty") })

	_, err := run(t, "", "tui", doc)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "TUI error: no tty")
}

func TestTUICmd_RequiresFile(t *testing.T) {
	_ = newTestEnv(t)

	_, err := run(t, "", "tui")

	assert.Error(t, err)
}
