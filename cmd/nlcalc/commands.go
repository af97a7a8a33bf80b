package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"nlcalc/internal/calculator"
)

func newCalcCmd(a *app, use, short, example string) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Short:   short,
		Example: example,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Result(a.agent.Calculate(cmd.Context(), strings.Join(args, " ")))
			return nil
		},
	}
}

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "convert <value> <from> <to>",
		Short:   "Convert a value between units",
		Example: "nlcalc convert 32 fahrenheit celsius",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args[:1])
			if err != nil {
				return err
			}
			a.printer.Result(a.agent.Convert(cmd.Context(), v[0], args[1], args[2]))
			return nil
		},
	}
}

func newPlotCmd(a *app) *cobra.Command {
	var from, to float64
	cmd := &cobra.Command{
		Use:     "plot <expression>",
		Short:   "Plot a function of x",
		Example: "nlcalc plot 'x^2' --from -5 --to 5",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Result(a.agent.Plot(cmd.Context(), strings.Join(args, " "), from, to))
			return nil
		},
	}
	cmd.Flags().Float64Var(&from, "from", -10, "start of the x range")
	cmd.Flags().Float64Var(&to, "to", 10, "end of the x range")
	return cmd
}

func newScatterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "scatter <x1> <y1> <x2> <y2> ...",
		Short:   "Scatter-plot x, y pairs",
		Example: "nlcalc scatter 1 2 2 4 3 6",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseFloats(args)
			if err != nil {
				return err
			}
			a.printer.Result(a.agent.Scatter(cmd.Context(), values))
			return nil
		},
	}
}

func newHistogramCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "histogram <value> ...",
		Short:   "Plot the distribution of values",
		Example: "nlcalc histogram 1 2 2 3 3 3 4",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseFloats(args)
			if err != nil {
				return err
			}
			a.printer.Result(a.agent.Histogram(cmd.Context(), values))
			return nil
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 0 {
				return fmt.Errorf("-n must not be negative")
			}
			a.printer.History(a.agent.History(n))
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "number", "n", 10, "number of entries to show (0 for all)")
	return cmd
}

func newRecallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recall [index]",
		Short: "Show a calculation from history (1 is the most recent)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i := 1
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v < 1 {
					return fmt.Errorf("index must be a positive integer, got %q", args[0])
				}
				i = v
			}
			e, ok := a.agent.Recall(i)
			if !ok {
				a.printer.Error(fmt.Sprintf("no history entry %d", i))
				return nil
			}
			a.printer.Entry(i, e)
			return nil
		},
	}
}

func newClearHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-history",
		Short: "Clear history and the previous answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.agent.ClearHistory()
			a.printer.Muted("History cleared.")
			return nil
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "List capabilities, functions and units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Info(a.agent.Info())
			return nil
		},
	}
}

func newExamplesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show sample inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Examples(calculator.Examples())
			return nil
		},
	}
}

func parseFloats(args []string) ([]float64, error) {
	values := make([]float64, 0, len(args))
	for _, s := range args {
		for _, part := range strings.Split(strings.Trim(s, "[]"), ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, fmt.Errorf("%q is not a number", part)
			}
			values = append(values, v)
		}
	}
	return values, nil
}
