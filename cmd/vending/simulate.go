package main

import (
	"VendingBus/internal/app"
	"VendingBus/internal/simulation"
	"context"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Publish random sale and refill events",
	Long: `simulate publishes a number of random events: half are sales of one or
two units, the rest refills of three or five units, each on a random machine.
A seed of 0 picks a random seed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvents(cmd, func(ctx context.Context, a *app.App) error {
			machines, err := a.Repo.List(ctx)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(machines))
			for _, m := range machines {
				ids = append(ids, m.ID)
			}

			seed := cfg.Simulation.Seed
			if seed == 0 {
				seed = rand.Uint64()
			}
			baseLogger.Info().Uint64("seed", seed).Int("events", cfg.Simulation.Events).Msg("Starting simulation")

			gen := simulation.NewGenerator(seed, ids)
			return a.Run(ctx, gen.Take(cfg.Simulation.Events))
		})
	},
}

func init() {
	simulateCmd.Flags().IntP("events", "n", 5, "number of random events to publish")
	simulateCmd.Flags().Uint64("seed", 0, "random seed (0 = random)")
	_ = viper.BindPFlag("simulation.events", simulateCmd.Flags().Lookup("events"))
	_ = viper.BindPFlag("simulation.seed", simulateCmd.Flags().Lookup("seed"))
}
