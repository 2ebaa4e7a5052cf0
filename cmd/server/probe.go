package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/clients/mail"
	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/queue"
	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/store"
	"github.com/jsamuelsen11/go-mail-relay/internal/app/fanout"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/config"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

// probeResult is one row of the probe table.
type probeResult struct {
	dependency string
	latency    time.Duration
	err        error
}

func newProbeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Run a one-shot deep check of every dependency",
		Long: "Connects to the data store, the work queue and the mail provider, " +
			"runs the startup deep check against each and prints the results. " +
			"Exits 1 if any check fails.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())

			results := runProbes(cmd.Context(), cfg, logger)
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, renderProbeTable(results, shouldColorize(out))); err != nil {
				return err
			}

			for _, r := range results {
				if r.err != nil {
					return exitWith(1)
				}
			}
			return nil
		},
	}
}

// runProbes deep-checks every dependency concurrently, then closes them.
func runProbes(ctx context.Context, cfg *config.Config, logger *slog.Logger) []probeResult {
	deps := []ports.Dependency{
		store.New(cfg.Datastore, logger),
		queue.New(cfg.Queue, logger),
		mail.New(cfg.Mail, nil, logger),
	}
	timeout := cfg.Lifecycle.DeepCheckTimeout

	settled := fanout.Run(ctx, len(deps), deps, func(ctx context.Context, dep ports.Dependency) (time.Duration, error) {
		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		err := dep.ProbeDeep(probeCtx)
		return time.Since(start), err
	})

	results := make([]probeResult, len(deps))
	for i, dep := range deps {
		results[i] = probeResult{
			dependency: dep.Name().String(),
			latency:    settled[i].Value,
			err:        settled[i].Err,
		}

		closeCtx, cancel := context.WithTimeout(context.Background(), timeout)
		if err := dep.Close(closeCtx); err != nil {
			logger.Warn("closing dependency after probe",
				slog.String("dependency", dep.Name().String()),
				slog.Any("error", err),
			)
		}
		cancel()
	}
	return results
}

func renderProbeTable(results []probeResult, colorize bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"Dependency", "Status", "Latency", "Detail"})

	for _, r := range results {
		status, detail := "ok", ""
		color := text.FgGreen
		if r.err != nil {
			status, detail = "failed", r.err.Error()
			color = text.FgRed
		}
		if colorize {
			status = color.Sprint(status)
		}
		tw.AppendRow(table.Row{r.dependency, status, r.latency.Round(time.Millisecond).String(), detail})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, WidthMax: 60},
	})
	return tw.Render()
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
