package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	"github.com/spf13/cobra"
)

func newStatementsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statements",
		Short: "Import and reconcile bank statements",
	}
	cmd.AddCommand(newStatementsImportCommand())
	cmd.AddCommand(newStatementsViewCommand())
	cmd.AddCommand(newStatementsReconcileCommand())
	cmd.AddCommand(newStatementsUnreconcileCommand())
	return cmd
}

func newStatementsImportCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import <account-code>",
		Short: "Import statement lines for a treasury account from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}
			var imports []domain.StatementImport
			if err := json.Unmarshal(raw, &imports); err != nil {
				return fmt.Errorf("parsing %s: %w", file, err)
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				count, err := a.services.Reconciliation.ImportStatements(ctx, args[0], imports, a.userID)
				if err != nil {
					return err
				}
				fmt.Printf("%d statement(s) imported\n", count)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with the statement lines (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newStatementsViewCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "view <account-code>",
		Short: "Show the reconciliation state of a treasury account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateRange, err := parseDateRange(from, to)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				var exerciseID *string
				view, err := a.services.Reconciliation.Reconciliation(ctx, args[0], exerciseID, dateRange)
				if err != nil {
					return err
				}
				return printJSON(view)
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "end date, YYYY-MM-DD")
	return cmd
}

func newStatementsReconcileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <statement-id> <line-id>",
		Short: "Match a statement line against a ledger line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.services.Reconciliation.Reconcile(ctx, args[0], args[1], a.userID); err != nil {
					return err
				}
				fmt.Println("statement reconciled")
				return nil
			})
		},
	}
}

func newStatementsUnreconcileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unreconcile <statement-id>",
		Short: "Clear a statement line's match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.services.Reconciliation.Unreconcile(ctx, args[0]); err != nil {
					return err
				}
				fmt.Println("statement unreconciled")
				return nil
			})
		},
	}
}
