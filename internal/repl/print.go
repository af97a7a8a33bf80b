package repl

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"nlcalc/internal/calculator"
	"nlcalc/internal/history"
)

// Printer writes calculator output with a Styles palette. Calculation
// failures are styled error lines, never process errors.
type Printer struct {
	Out    io.Writer
	Styles Styles
}

func (p Printer) line(s string) {
	fmt.Fprintln(p.Out, s)
}

// Result prints the formatted result, red when it failed.
func (p Printer) Result(res calculator.Result) {
	text := calculator.Format(res)
	if !res.Success {
		p.line(p.Styles.Error.Render(text))
		return
	}
	p.line(p.Styles.Result.Render(text))
}

func (p Printer) History(entries []history.Entry) {
	p.line(calculator.FormatHistory(entries))
}

func (p Printer) Entry(index int, e history.Entry) {
	p.line(fmt.Sprintf("%3d. [%s] %s  →  %s", index, e.OperationType, e.Input, e.Display))
}

func (p Printer) Info(info calculator.Info) {
	p.line(p.Styles.Title.Render("Capabilities"))
	for _, c := range info.Capabilities {
		p.line(fmt.Sprintf("  %s  %s", p.Styles.Bold.Render(string(c.Type)), c.Description))
	}

	p.line(p.Styles.Title.Render("Functions"))
	p.line("  " + strings.Join(info.Functions, ", "))

	p.line(p.Styles.Title.Render("Units"))
	categories := make([]string, 0, len(info.Units))
	for c := range info.Units {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		p.line(fmt.Sprintf("  %-12s %s", c, strings.Join(info.Units[c], ", ")))
	}

	p.line(p.Styles.Muted.Render(fmt.Sprintf("History: %d of %d entries. Charts: %s",
		info.HistoryEntries, info.HistoryCapacity, info.ChartDir)))
}

func (p Printer) Examples(examples []string) {
	p.line(p.Styles.Title.Render("Examples"))
	for _, ex := range examples {
		p.line("  " + ex)
	}
}

func (p Printer) Error(msg string) {
	p.line(p.Styles.Error.Render("Error: " + msg))
}

func (p Printer) Muted(msg string) {
	p.line(p.Styles.Muted.Render(msg))
}
