package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	"github.com/spf13/cobra"
)

func newPostCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post shop events to the ledger",
	}
	cmd.AddCommand(newPostEventCommand("sale", "Post a completed sale from a JSON file",
		func(ctx context.Context, a *app, raw []byte, exerciseID string, dailyID *string) (*domain.JournalEntry, error) {
			var event domain.SaleEvent
			if err := json.Unmarshal(raw, &event); err != nil {
				return nil, err
			}
			return a.services.Posting.PostSale(ctx, event, exerciseID, dailyID, a.userID)
		}))
	cmd.AddCommand(newPostEventCommand("supply", "Post a received supply from a JSON file",
		func(ctx context.Context, a *app, raw []byte, exerciseID string, dailyID *string) (*domain.JournalEntry, error) {
			var event domain.SupplyEvent
			if err := json.Unmarshal(raw, &event); err != nil {
				return nil, err
			}
			return a.services.Posting.PostSupply(ctx, event, exerciseID, dailyID, a.userID)
		}))
	cmd.AddCommand(newPostEventCommand("expense", "Post an approved expense from a JSON file",
		func(ctx context.Context, a *app, raw []byte, exerciseID string, dailyID *string) (*domain.JournalEntry, error) {
			var event domain.ExpenseEvent
			if err := json.Unmarshal(raw, &event); err != nil {
				return nil, err
			}
			return a.services.Posting.PostExpense(ctx, event, exerciseID, dailyID, a.userID)
		}))
	cmd.AddCommand(newPostEventCommand("income", "Post a non-sale income from a JSON file",
		func(ctx context.Context, a *app, raw []byte, exerciseID string, dailyID *string) (*domain.JournalEntry, error) {
			var event domain.IncomeEvent
			if err := json.Unmarshal(raw, &event); err != nil {
				return nil, err
			}
			return a.services.Posting.PostIncome(ctx, event, exerciseID, dailyID, a.userID)
		}))
	cmd.AddCommand(newPostEventCommand("client-payment", "Post a payment received on a credit sale from a JSON file",
		func(ctx context.Context, a *app, raw []byte, exerciseID string, dailyID *string) (*domain.JournalEntry, error) {
			var event domain.ClientPaymentEvent
			if err := json.Unmarshal(raw, &event); err != nil {
				return nil, err
			}
			return a.services.Posting.PostClientPayment(ctx, event, exerciseID, dailyID, a.userID)
		}))
	cmd.AddCommand(newPostEventCommand("supplier-payment", "Post a payment made to a supplier from a JSON file",
		func(ctx context.Context, a *app, raw []byte, exerciseID string, dailyID *string) (*domain.JournalEntry, error) {
			var event domain.SupplierPaymentEvent
			if err := json.Unmarshal(raw, &event); err != nil {
				return nil, err
			}
			return a.services.Posting.PostSupplierPayment(ctx, event, exerciseID, dailyID, a.userID)
		}))
	return cmd
}

// newPostEventCommand builds one posting subcommand. The event is always
// scoped to the current open daily, which in turn pins the open exercise.
func newPostEventCommand(use, short string, post func(ctx context.Context, a *app, raw []byte, exerciseID string, dailyID *string) (*domain.JournalEntry, error)) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				daily, err := a.services.Period.GetOrCreateOpenDaily(ctx, a.userID)
				if err != nil {
					return err
				}
				entry, err := post(ctx, a, raw, daily.ExerciseID, &daily.DailyID)
				if err != nil {
					return err
				}
				if entry == nil {
					fmt.Println("event skipped, nothing to post")
					return nil
				}
				return printJSON(entry)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with the event to post (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
