package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newDailyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Manage daily sessions",
	}
	cmd.AddCommand(newDailyOpenCommand())
	cmd.AddCommand(newDailyCloseCommand())
	return cmd
}

func newDailyOpenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open (or return) the current daily session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				daily, err := a.services.Period.GetOrCreateOpenDaily(ctx, a.userID)
				if err != nil {
					return err
				}
				return printJSON(daily)
			})
		},
	}
}

func newDailyCloseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "close <daily-id>",
		Short: "Close a daily session and record its deferred VAT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				vatEntries, err := a.services.Period.CloseDaily(ctx, args[0], a.userID)
				if err != nil {
					return err
				}
				fmt.Printf("daily closed, %d VAT entr%s recorded\n", vatEntries, pluralY(vatEntries))
				return nil
			})
		},
	}
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
