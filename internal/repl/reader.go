package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// InputReader yields one line of user input per call and io.EOF when the
// input is exhausted.
type InputReader interface {
	ReadLine() (string, error)
}

// PromptingInputReader draws its own prompt. The loop prints the prompt
// itself for readers that do not implement it.
type PromptingInputReader interface {
	InputReader
	SetPrompt(prompt string)
}

// NewInputReader returns an interactive reader with up/down history when in
// is a terminal, and a plain line reader otherwise.
func NewInputReader(in *os.File, maxHistory int) InputReader {
	fd := in.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return NewLineReader(in)
	}
	return NewInteractiveInputReader(in, maxHistory)
}

// LineReader reads newline-terminated lines from any reader.
type LineReader struct {
	reader *bufio.Reader
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{reader: bufio.NewReader(r)}
}

// ReadLine returns the next trimmed line. A final line without a trailing
// newline is still returned before io.EOF.
func (r *LineReader) ReadLine() (string, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// InteractiveInputReader edits lines with bubbletea and keeps an in-memory
// history browsable with the arrow keys.
type InteractiveInputReader struct {
	in         *os.File
	history    []string
	maxHistory int
	prompt     string
}

func NewInteractiveInputReader(in *os.File, maxHistory int) *InteractiveInputReader {
	if maxHistory < 1 {
		maxHistory = 1
	}
	return &InteractiveInputReader{
		in:         in,
		history:    make([]string, 0, maxHistory),
		maxHistory: maxHistory,
		prompt:     Prompt,
	}
}

func (r *InteractiveInputReader) SetPrompt(prompt string) {
	r.prompt = prompt
}

// ReadLine runs one bubbletea program for a single line. Ctrl+C clears the
// line and returns "", Ctrl+D on an empty line returns io.EOF.
func (r *InteractiveInputReader) ReadLine() (string, error) {
	ti := textinput.New()
	ti.Prompt = r.prompt
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = 80

	m := lineModel{
		input:   ti,
		history: r.history,
		index:   -1,
	}

	p := tea.NewProgram(m, tea.WithInput(r.in), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", err
	}

	result, ok := final.(lineModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type %T", final)
	}
	if result.eof {
		return "", io.EOF
	}

	line := strings.TrimSpace(result.input.Value())
	if line != "" {
		r.remember(line)
	}
	return line, nil
}

func (r *InteractiveInputReader) remember(line string) {
	if n := len(r.history); n > 0 && r.history[n-1] == line {
		return
	}
	r.history = append(r.history, line)
	if len(r.history) > r.maxHistory {
		r.history = r.history[1:]
	}
}

// lineModel is the bubbletea model behind InteractiveInputReader.
type lineModel struct {
	input   textinput.Model
	history []string
	index   int    // -1 while editing a fresh line
	draft   string // the fresh line, kept while browsing history
	done    bool
	eof     bool
}

func (m lineModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.Type {
	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit

	case tea.KeyCtrlC:
		m.input.SetValue("")
		m.done = true
		return m, tea.Quit

	case tea.KeyCtrlD:
		if m.input.Value() != "" {
			return m, nil
		}
		m.eof = true
		m.done = true
		return m, tea.Quit

	case tea.KeyUp:
		if len(m.history) == 0 {
			return m, nil
		}
		switch {
		case m.index == -1:
			m.draft = m.input.Value()
			m.index = len(m.history) - 1
		case m.index > 0:
			m.index--
		}
		m.input.SetValue(m.history[m.index])
		m.input.CursorEnd()
		return m, nil

	case tea.KeyDown:
		if m.index == -1 {
			return m, nil
		}
		if m.index < len(m.history)-1 {
			m.index++
			m.input.SetValue(m.history[m.index])
		} else {
			m.index = -1
			m.input.SetValue(m.draft)
		}
		m.input.CursorEnd()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m lineModel) View() string {
	if m.done {
		return ""
	}
	return m.input.View()
}
