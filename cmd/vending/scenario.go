package main

import (
	"VendingBus/internal/app"
	"VendingBus/internal/core/domain"
	"context"

	"github.com/spf13/cobra"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Run the fixed demo: machine 001 sells 3, then gets 5 refilled",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvents(cmd, func(ctx context.Context, a *app.App) error {
			return a.Run(ctx, []domain.Event{
				domain.NewSoldEvent("001", 3),
				domain.NewRefilledEvent("001", 5),
			})
		})
	},
}
