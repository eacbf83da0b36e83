package commands

import (
	"context"

	"github.com/spf13/cobra"
)

func newExerciseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Manage fiscal exercises",
	}
	cmd.AddCommand(newExerciseCurrentCommand())
	cmd.AddCommand(newExerciseCloseCommand())
	cmd.AddCommand(newExerciseOpenCommand())
	return cmd
}

func newExerciseCurrentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show (or create) the open exercise",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				exercise, err := a.services.Period.GetOrCreateOpenExercise(ctx, a.userID)
				if err != nil {
					return err
				}
				return printJSON(exercise)
			})
		},
	}
}

func newExerciseCloseCommand() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "close <exercise-id>",
		Short: "Close an exercise: zero the nominal accounts into the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				closing, err := a.services.Closing.CloseExercise(ctx, args[0], notes, a.userID)
				if err != nil {
					return err
				}
				return printJSON(closing)
			})
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "free-form note stored with the closing record")
	return cmd
}

func newExerciseOpenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <closing-id>",
		Short: "Open the successor exercise with the carry-forward entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				exercise, err := a.services.Closing.OpenNewExercise(ctx, args[0], a.userID)
				if err != nil {
					return err
				}
				return printJSON(exercise)
			})
		},
	}
}
