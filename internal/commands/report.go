package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
	"github.com/spf13/cobra"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial reports",
	}

	cmd.PersistentFlags().String("exercise", "", "restrict the report to one exercise ID")

	cmd.AddCommand(newTrialBalanceCommand())
	cmd.AddCommand(newGeneralLedgerCommand())
	cmd.AddCommand(newIncomeStatementCommand())
	cmd.AddCommand(newBalanceSheetCommand())
	cmd.AddCommand(newAgedBalanceCommand())
	cmd.AddCommand(newProductMarginsCommand())
	cmd.AddCommand(newVATDeclarationCommand())
	cmd.AddCommand(newPendingAccountingCommand())
	return cmd
}

func exerciseFilter(cmd *cobra.Command) *string {
	exercise, _ := cmd.Flags().GetString("exercise")
	if exercise == "" {
		return nil
	}
	return &exercise
}

func newTrialBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trial-balance",
		Short: "Per-account debit/credit totals and balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				rows, err := a.services.Reporting.TrialBalance(ctx, exerciseFilter(cmd))
				if err != nil {
					return err
				}
				return printJSON(rows)
			})
		},
	}
}

func newGeneralLedgerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ledger <account-code>",
		Short: "Chronological account lines with running balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				lines, err := a.services.Reporting.GeneralLedger(ctx, args[0], exerciseFilter(cmd))
				if err != nil {
					return err
				}
				return printJSON(lines)
			})
		},
	}
}

func newIncomeStatementCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "income",
		Short: "Charges vs revenues and the net result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				statement, err := a.services.Reporting.IncomeStatement(ctx, exerciseFilter(cmd))
				if err != nil {
					return err
				}
				return printJSON(statement)
			})
		},
	}
}

func newBalanceSheetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance-sheet",
		Short: "Assets against equity and liabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				sheet, err := a.services.Reporting.BalanceSheet(ctx, exerciseFilter(cmd))
				if err != nil {
					return err
				}
				return printJSON(sheet)
			})
		},
	}
}

func newAgedBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "aged <client|supplier>",
		Short: "Aged receivables or payables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := domain.AgedBalanceKind(args[0])
			if kind != domain.AgedClients && kind != domain.AgedSuppliers {
				return fmt.Errorf("unknown aged balance kind %q, want client or supplier", args[0])
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				report, err := a.services.Reporting.AgedBalance(ctx, kind, time.Now())
				if err != nil {
					return err
				}
				return printJSON(report)
			})
		},
	}
}

func newProductMarginsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "margins",
		Short: "Per-product revenue, cost and margin",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				report, err := a.services.Reporting.ProductMargins(ctx, exerciseFilter(cmd))
				if err != nil {
					return err
				}
				return printJSON(report)
			})
		},
	}
}

func newVATDeclarationCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "vat",
		Short: "VAT declaration: collected vs deductible with monthly breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			dateRange, err := parseDateRange(from, to)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				declaration, err := a.services.Tax.VATDeclaration(ctx, exerciseFilter(cmd), dateRange)
				if err != nil {
					return err
				}
				return printJSON(declaration)
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "end date, YYYY-MM-DD")
	return cmd
}

func newPendingAccountingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "Sales whose accounting entry was never posted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				sales, err := a.services.Posting.PendingAccounting(ctx)
				if err != nil {
					return err
				}
				return printJSON(sales)
			})
		},
	}
}

func parseDateRange(from, to string) (portsrepo.DateRange, error) {
	var dateRange portsrepo.DateRange
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return dateRange, fmt.Errorf("invalid --from %q: %w", from, err)
		}
		dateRange.From = &t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return dateRange, fmt.Errorf("invalid --to %q: %w", to, err)
		}
		dateRange.To = &t
	}
	return dateRange, nil
}
