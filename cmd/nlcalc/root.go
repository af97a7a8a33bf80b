package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nlcalc/internal/calculator"
	"nlcalc/internal/config"
	"nlcalc/internal/observability"
	"nlcalc/internal/repl"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	in  *os.File
	out io.Writer

	configPath string
	overrides  map[string]any
	loadedFrom string

	cfg      *config.Config
	agent    *calculator.Agent
	printer  repl.Printer
	shutdown observability.ShutdownFunc
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"chart-dir":    "chart.dir",
	"history-size": "history.size",
	"log-level":    "log.level",
	"addr":         "server.addr",
}

func newRootCmd(in *os.File, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:   "nlcalc",
		Short: "A calculator for expressions and plain-English questions",
		Long: `nlcalc evaluates arithmetic, statistics, trigonometry and unit conversions
written either as expressions ("2 + 3 * 4") or in plain English
("what is 15 plus 27?"), and renders function plots, scatter plots and
histograms as HTML charts. Run without a command for an interactive prompt.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
		RunE:    a.runInteractive,
		Version: version,
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default nlcalc.yaml in the working directory)")
	pf.String("chart-dir", "", "directory for generated charts")
	pf.Int("history-size", 0, "number of calculations kept in history")
	pf.String("log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		&cobra.Command{
			Use:   "interactive",
			Short: "Start the interactive prompt (default)",
			Args:  cobra.NoArgs,
			RunE:  a.runInteractive,
		},
		newCalcCmd(a, "calc <expression>", "Evaluate an expression", "nlcalc calc '2 + 3 * 4'"),
		newCalcCmd(a, "ask <question>", "Answer a plain-English question", "nlcalc ask what is 15 plus 27"),
		newConvertCmd(a),
		newPlotCmd(a),
		newScatterCmd(a),
		newHistogramCmd(a),
		newHistoryCmd(a),
		newRecallCmd(a),
		newClearHistoryCmd(a),
		newInfoCmd(a),
		newExamplesCmd(a),
		newServeCmd(a),
	)

	return root
}

// setup loads configuration, starts logging and telemetry and builds the
// calculator session.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	overrides := make(map[string]any)
	flags := cmd.Flags()
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		switch name {
		case "history-size":
			v, err := flags.GetInt(name)
			if err != nil {
				return err
			}
			overrides[key] = v
		default:
			overrides[key] = f.Value.String()
		}
	}

	loader := config.NewLoader()
	cfg, err := loader.Load(a.configPath, overrides)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.overrides = overrides
	a.loadedFrom = loader.Path()

	if err := observability.InitLogger(cfg.Log.Level, cfg.Log.Development); err != nil {
		return err
	}

	if cfg.Telemetry.Enabled {
		shutdown, err := initTelemetry(cmd.Context())
		if err != nil {
			return err
		}
		a.shutdown = shutdown
	}

	a.agent, err = calculator.NewAgent(calculator.Options{
		HistorySize: cfg.History.Size,
		ChartDir:    cfg.Chart.Dir,
		PlotSamples: cfg.Chart.Samples,
		Logger:      observability.Logger,
	})
	if err != nil {
		return fmt.Errorf("creating calculator: %w", err)
	}

	a.printer = repl.Printer{Out: a.out, Styles: stylesFor(a.out)}

	observability.Logger.Debug("configuration loaded",
		zap.String("file", a.loadedFrom),
		zap.String("chart_dir", cfg.Chart.Dir),
		zap.Int("history_size", cfg.History.Size),
		zap.Bool("telemetry", cfg.Telemetry.Enabled),
	)
	return nil
}

// stylesFor colors output only when it goes to a terminal.
func stylesFor(out io.Writer) repl.Styles {
	if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return repl.DefaultStyles()
	}
	return repl.PlainStyles()
}

func (a *app) teardown(ctx context.Context) error {
	defer observability.SyncLogger()
	if a.shutdown == nil {
		return nil
	}
	// ctx may already be cancelled by a signal; flush regardless.
	return a.shutdown(context.WithoutCancel(ctx))
}

func (a *app) runInteractive(cmd *cobra.Command, _ []string) error {
	reader := repl.NewInputReader(a.in, a.cfg.History.Size)
	session := repl.NewSession(a.agent, reader, a.out, a.printer.Styles, observability.Logger)

	err := session.Run(cmd.Context())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
