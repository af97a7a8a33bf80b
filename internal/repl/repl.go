// Package repl runs the interactive calculator prompt.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"nlcalc/internal/calculator"
)

// Prompt is shown before every input line.
const Prompt = "calc> "

const helpText = `Type a calculation in symbols or plain English, for example "2 + 3 * 4"
or "convert 5 km to miles". Use "ans" for the previous answer.

Commands:
  help           show this help
  history [n]    list the n most recent calculations (all by default)
  recall [i]     show the i-th most recent calculation (1 by default)
  clear          clear history and the previous answer
  info           list capabilities, functions and units
  examples       show sample inputs
  exit, quit     leave`

// Session ties an input reader and a printer to one Agent.
type Session struct {
	agent   *calculator.Agent
	in      InputReader
	printer Printer
	logger  *zap.Logger
}

// NewSession builds a session that prints to out with styles. A reader that
// draws its own prompt is given Prompt; logger may be nil.
func NewSession(agent *calculator.Agent, in InputReader, out io.Writer, styles Styles, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if p, ok := in.(PromptingInputReader); ok {
		p.SetPrompt(Prompt)
	}
	return &Session{
		agent:   agent,
		in:      in,
		printer: Printer{Out: out, Styles: styles},
		logger:  logger,
	}
}

// Run reads and answers lines until exit, end of input or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.printer.Muted(`Natural-language calculator. Type "help" for commands, "exit" to quit.`)

	_, prompting := s.in.(PromptingInputReader)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !prompting {
			fmt.Fprint(s.printer.Out, Prompt)
		}

		line, err := s.in.ReadLine()
		if errors.Is(err, io.EOF) {
			if !prompting {
				fmt.Fprintln(s.printer.Out)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		if line == "" {
			continue
		}
		if quit := s.handle(ctx, line); quit {
			return nil
		}
	}
}

// handle answers one line and reports whether the session should end.
func (s *Session) handle(ctx context.Context, line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	cmd, args := fields[0], fields[1:]

	switch {
	case (cmd == "exit" || cmd == "quit") && len(args) == 0:
		s.printer.Muted("Goodbye.")
		return true
	case cmd == "help" && len(args) == 0:
		s.printer.line(helpText)
		return false
	case cmd == "clear" && len(args) == 0:
		s.agent.ClearHistory()
		s.printer.Muted("History cleared.")
		return false
	case cmd == "info" && len(args) == 0:
		s.printer.Info(s.agent.Info())
		return false
	case cmd == "examples" && len(args) == 0:
		s.printer.Examples(calculator.Examples())
		return false
	case cmd == "history" && len(args) <= 1:
		if n, ok := s.intArg(args, 0); ok {
			s.printer.History(s.agent.History(n))
		}
		return false
	case cmd == "recall" && len(args) <= 1:
		if i, ok := s.intArg(args, 1); ok {
			s.recall(i)
		}
		return false
	}

	s.logger.Debug("calculating", zap.String("input", line))
	s.printer.Result(s.agent.Calculate(ctx, line))
	return false
}

func (s *Session) recall(i int) {
	e, ok := s.agent.Recall(i)
	if !ok {
		s.printer.Error(fmt.Sprintf("no history entry %d", i))
		return
	}
	s.printer.Entry(i, e)
}

// intArg parses the optional numeric argument of a meta command.
func (s *Session) intArg(args []string, def int) (int, bool) {
	if len(args) == 0 {
		return def, true
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		s.printer.Error(fmt.Sprintf("%q is not a non-negative number", args[0]))
		return 0, false
	}
	return n, true
}
