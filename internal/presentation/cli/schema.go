package cli

import (
	"context"

	urfave "github.com/urfave/cli/v3"

	"github.com/JBB13/credit-risk-model/internal/application/usecase"
	"github.com/JBB13/credit-risk-model/internal/domain/model"
)

func (a *app) schemaCommand() *urfave.Command {
	return &urfave.Command{
		Name:  "schema",
		Usage: "List the features the model expects, in model order",
		Flags: []urfave.Flag{
			formatFlag(),
		},
		Action: func(_ context.Context, cmd *urfave.Command) error {
			format := cmd.String("format")
			if err := checkFormat(format); err != nil {
				return err
			}
			resp := usecase.NewGetFeatureSchema(model.DefaultSchema()).Execute()
			return renderSchema(a.out, format, resp)
		},
	}
}
