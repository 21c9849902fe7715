package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	urfave "github.com/urfave/cli/v3"

	"github.com/JBB13/credit-risk-model/internal/application/dto"
	"github.com/JBB13/credit-risk-model/internal/application/usecase"
	"github.com/JBB13/credit-risk-model/internal/domain/model"
	"github.com/JBB13/credit-risk-model/internal/domain/service"
	"github.com/JBB13/credit-risk-model/internal/infrastructure/artifact"
	"github.com/JBB13/credit-risk-model/internal/infrastructure/tabular"
)

func (a *app) scoreCommand() *urfave.Command {
	return &urfave.Command{
		Name:  "score",
		Usage: "Score clients from a delimited file, manual entry or the sample client",
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Delimited file with a header row, one client per row",
			},
			&urfave.StringSliceFlag{
				Name:    "record",
				Aliases: []string{"r"},
				Usage:   "Feature value of a single client as name=value (repeat per feature)",
			},
			&urfave.StringFlag{
				Name:  "lgd",
				Usage: "Loss given default in percent, 0-100 (default from DEFAULT_LGD_PCT)",
			},
			&urfave.StringFlag{
				Name:  "ead",
				Usage: "Exposure at default (default from DEFAULT_EAD)",
			},
			&urfave.StringFlag{
				Name:  "currency",
				Usage: "ISO 4217 currency of the exposure (default from CURRENCY)",
			},
			&urfave.StringFlag{
				Name:  "model",
				Usage: "Path to the PD model artifact (default from MODEL_PATH)",
			},
			&urfave.StringFlag{
				Name:  "scaler",
				Usage: "Path to the feature scaler artifact (default from SCALER_PATH)",
			},
			formatFlag(),
		},
		Action: a.runScore,
	}
}

func (a *app) runScore(ctx context.Context, cmd *urfave.Command) error {
	format := cmd.String("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	records, err := a.collectRecords(cmd.String("file"), cmd.StringSlice("record"))
	if err != nil {
		return err
	}

	modelPath := firstNonEmpty(cmd.String("model"), a.cfg.ModelPath)
	scalerPath := firstNonEmpty(cmd.String("scaler"), a.cfg.ScalerPath)

	schema := model.DefaultSchema()
	set, err := artifact.Load(schema, modelPath, scalerPath)
	if err != nil {
		return err
	}
	a.logger.Debug("artifacts loaded", "model", modelPath, "scaler", scalerPath)

	pipeline := service.NewScoringPipeline(schema, set.Scaler, set.Model)
	uc, err := usecase.NewScoreClients(pipeline, nil, usecase.Defaults{
		LGDPercent: a.cfg.DefaultLGDPercent,
		EAD:        a.cfg.DefaultEAD,
		Currency:   a.cfg.CurrencyCode(),
	}, a.logger)
	if err != nil {
		return err
	}

	resp, err := uc.Execute(ctx, dto.ScoreClientsRequest{
		LGDPercent: cmd.String("lgd"),
		EAD:        cmd.String("ead"),
		Currency:   cmd.String("currency"),
		Records:    records,
	})
	if err != nil {
		var missing *model.MissingFeatureError
		if errors.As(err, &missing) {
			return fmt.Errorf("input is missing required features: %s", strings.Join(missing.Missing, ", "))
		}
		return err
	}

	return renderScores(a.out, format, resp)
}

func (a *app) collectRecords(file string, pairs []string) ([]model.ClientRecord, error) {
	switch {
	case file != "" && len(pairs) > 0:
		return nil, errors.New("--file and --record cannot be combined")
	case file != "":
		records, err := tabular.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading client file: %w", err)
		}
		return records, nil
	case len(pairs) > 0:
		rec, err := parseRecord(pairs)
		if err != nil {
			return nil, err
		}
		return []model.ClientRecord{rec}, nil
	default:
		a.logger.Info("no input supplied, scoring the sample client")
		return []model.ClientRecord{model.SampleRecord()}, nil
	}
}

func parseRecord(pairs []string) (model.ClientRecord, error) {
	rec := make(model.ClientRecord, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --record %q, want name=value", p)
		}
		rec[name] = strings.TrimSpace(value)
	}
	return rec, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
