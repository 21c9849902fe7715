// Package cli implements the creditrisk command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	urfave "github.com/urfave/cli/v3"

	"github.com/JBB13/credit-risk-model/internal/infrastructure/config"
	"github.com/JBB13/credit-risk-model/pkg/observability"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer
}

// NewCommand builds the root command. Results are written to out, logs to errOut.
func NewCommand(out, errOut io.Writer) *urfave.Command {
	a := &app{out: out, errOut: errOut}

	return &urfave.Command{
		Name:                      "creditrisk",
		Version:                   fmt.Sprintf("%s (%s)", version, commit),
		Usage:                     "Probability of default and expected loss calculator",
		Writer:                    out,
		ErrWriter:                 errOut,
		DisableSliceFlagSeparator: true,
		Flags: []urfave.Flag{
			&urfave.BoolFlag{
				Name:  "debug",
				Usage: "Prints verbose logs",
			},
		},
		Commands: []*urfave.Command{
			a.scoreCommand(),
			a.schemaCommand(),
		},
		Before: func(ctx context.Context, cmd *urfave.Command) (context.Context, error) {
			cfg, err := config.Load()
			if err != nil {
				return ctx, fmt.Errorf("loading configuration: %w", err)
			}
			a.cfg = cfg

			level := cfg.LogLevel
			if cmd.Bool("debug") {
				level = "debug"
			}
			a.logger = observability.InitLogger(observability.LogConfig{
				Level:  level,
				Format: "text",
				Output: errOut,
			})
			return ctx, nil
		},
	}
}

func formatFlag() *urfave.StringFlag {
	return &urfave.StringFlag{
		Name:    "format",
		Aliases: []string{"o"},
		Usage:   "Output format [table, json, yaml]",
		Value:   formatTable,
	}
}

func checkFormat(f string) error {
	switch f {
	case formatTable, formatJSON, formatYAML, "yml":
		return nil
	default:
		return fmt.Errorf("unsupported format %q, want one of table, json, yaml", f)
	}
}
