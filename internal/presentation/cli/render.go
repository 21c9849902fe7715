package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/JBB13/credit-risk-model/internal/application/dto"
	"github.com/JBB13/credit-risk-model/pkg/money"
)

func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("error encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("error encoding json: %w", err)
		}
		return nil
	}
}

func renderScores(w io.Writer, format string, resp dto.ScoreClientsResponse) error {
	if format != formatTable {
		return encode(w, format, resp)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ROW\tPD\tRISK\tLGD\tEAD\tEXPECTED LOSS\t")
	for _, r := range resp.Results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Row,
			strconv.FormatFloat(r.PD, 'f', 4, 64),
			r.RiskLevel,
			resp.LGDPercent+"%",
			displayAmount(r.EAD, resp.Currency),
			displayAmount(r.ExpectedLoss, resp.Currency),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nTotal expected loss: %s\n", resp.TotalExpectedLossDisplay)
	return err
}

func renderSchema(w io.Writer, format string, resp dto.FeatureSchemaResponse) error {
	if format != formatTable {
		return encode(w, format, resp)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tMIN\tDESCRIPTION")
	for _, f := range resp.Features {
		fmt.Fprintf(tw, "%d\t%s\t%g\t%s\n", f.Position, f.Name, f.Min, f.Description)
	}
	return tw.Flush()
}

// displayAmount falls back to the raw amount when it cannot be parsed.
func displayAmount(amount, currency string) string {
	m, err := money.NewFromString(amount, currency)
	if err != nil {
		return amount
	}
	return m.Display()
}
