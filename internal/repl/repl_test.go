package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlcalc/internal/calculator"
)

// scriptReader returns its lines in order, then io.EOF.
type scriptReader struct {
	lines []string
	next  int
}

func (r *scriptReader) ReadLine() (string, error) {
	if r.next >= len(r.lines) {
		return "", io.EOF
	}
	line := r.lines[r.next]
	r.next++
	return line, nil
}

type failingReader struct{}

func (failingReader) ReadLine() (string, error) { return "", errors.New("tty gone") }

func runSession(t *testing.T, lines ...string) (string, *calculator.Agent) {
	t.Helper()
	agent, err := calculator.NewAgent(calculator.Options{ChartDir: t.TempDir(), PlotSamples: 11})
	require.NoError(t, err)

	var out bytes.Buffer
	s := NewSession(agent, &scriptReader{lines: lines}, &out, PlainStyles(), nil)
	require.NoError(t, s.Run(context.Background()))
	return out.String(), agent
}

func TestSessionCalculates(t *testing.T) {
	out, _ := runSession(t, "2 + 3", "ans * 4", "What is 15 plus 27?")

	assert.Contains(t, out, Prompt)
	assert.Contains(t, out, "2 + 3 = 5")
	assert.Contains(t, out, "5 * 4 = 20")
	assert.Contains(t, out, "15 + 27 = 42")
}

func TestSessionPrintsErrorsAndContinues(t *testing.T) {
	out, agent := runSession(t, "hello there", "1 + 1")

	assert.Contains(t, out, "Error: ")
	assert.Contains(t, out, "1 + 1 = 2")
	assert.Len(t, agent.History(0), 1)
}

func TestSessionMetaCommands(t *testing.T) {
	out, agent := runSession(t,
		"help",
		"1 + 1",
		"2 + 2",
		"history 1",
		"recall 2",
		"recall 9",
		"history x",
		"info",
		"examples",
		"clear",
		"history",
	)

	assert.Contains(t, out, "history [n]")
	assert.Contains(t, out, "  1. [arithmetic] 2 + 2  →  2 + 2 = 4")
	assert.Contains(t, out, "  2. [arithmetic] 1 + 1  →  1 + 1 = 2")
	assert.Contains(t, out, "Error: no history entry 9")
	assert.Contains(t, out, `Error: "x" is not a non-negative number`)
	assert.Contains(t, out, "Capabilities")
	assert.Contains(t, out, "convert 32 fahrenheit to celsius")
	assert.Contains(t, out, "History cleared.")
	assert.Contains(t, out, "No calculations yet.")
	assert.Empty(t, agent.History(0))
}

func TestSessionExitStopsReading(t *testing.T) {
	out, agent := runSession(t, "1 + 1", "quit", "2 + 2")

	assert.Contains(t, out, "Goodbye.")
	assert.NotContains(t, out, "2 + 2 = 4")
	assert.Len(t, agent.History(0), 1)
}

func TestSessionReadError(t *testing.T) {
	agent, err := calculator.NewAgent(calculator.Options{ChartDir: t.TempDir()})
	require.NoError(t, err)

	s := NewSession(agent, failingReader{}, io.Discard, PlainStyles(), nil)
	assert.ErrorContains(t, s.Run(context.Background()), "tty gone")
}

func TestSessionStopsOnCancelledContext(t *testing.T) {
	agent, err := calculator.NewAgent(calculator.Options{ChartDir: t.TempDir()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSession(agent, &scriptReader{lines: []string{"1 + 1"}}, io.Discard, PlainStyles(), nil)
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
	assert.Empty(t, agent.History(0))
}

func TestLineReader(t *testing.T) {
	r := NewLineReader(strings.NewReader("  2 + 3 \nlast"))

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "2 + 3", line)

	line, err = r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineModelHistoryNavigation(t *testing.T) {
	ti := textinput.New()
	ti.Focus()
	var m tea.Model = lineModel{input: ti, history: []string{"1 + 1", "2 + 2"}, index: -1}

	key := func(k tea.KeyType) {
		m, _ = m.Update(tea.KeyMsg{Type: k})
	}
	value := func() string { return m.(lineModel).input.Value() }

	key(tea.KeyUp)
	assert.Equal(t, "2 + 2", value())
	key(tea.KeyUp)
	assert.Equal(t, "1 + 1", value())
	key(tea.KeyUp)
	assert.Equal(t, "1 + 1", value())
	key(tea.KeyDown)
	assert.Equal(t, "2 + 2", value())
	key(tea.KeyDown)
	assert.Equal(t, "", value())

	key(tea.KeyCtrlD)
	assert.True(t, m.(lineModel).eof)
}

func TestInteractiveReaderHistoryIsBoundedAndDeduplicated(t *testing.T) {
	r := NewInteractiveInputReader(nil, 2)
	for _, line := range []string{"a", "a", "b", "c"} {
		r.remember(line)
	}
	assert.Equal(t, []string{"b", "c"}, r.history)
}
