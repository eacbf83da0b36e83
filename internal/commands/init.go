package commands

import (
	"context"
	"fmt"

	"github.com/shopledger/shop_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var vatRate string
	var vatName string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Seed the chart of accounts and optionally the default VAT rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				created, err := a.services.Chart.InitChartOfAccounts(ctx, a.userID)
				if err != nil {
					return err
				}
				fmt.Printf("chart of accounts: %d account(s) created\n", created)

				if vatRate == "" {
					return nil
				}
				rate, err := decimal.NewFromString(vatRate)
				if err != nil {
					return fmt.Errorf("invalid --vat-rate %q: %w", vatRate, err)
				}
				existing, err := a.services.Tax.DefaultTaxRate(ctx)
				if err != nil {
					return err
				}
				if existing != nil {
					fmt.Printf("default VAT rate already configured: %s (%s%%)\n", existing.Name, existing.Rate)
					return nil
				}
				tax, err := a.services.Tax.CreateTaxRate(ctx, dto.CreateTaxRateRequest{
					Name:      vatName,
					Rate:      rate,
					IsDefault: true,
				}, a.userID)
				if err != nil {
					return err
				}
				fmt.Printf("default VAT rate created: %s (%s%%)\n", tax.Name, tax.Rate)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&vatRate, "vat-rate", "", "default VAT rate in percent, e.g. 19.25")
	cmd.Flags().StringVar(&vatName, "vat-name", "TVA", "name of the default VAT rate")

	return cmd
}
